// Package logger provides structured JSON logging built on log/slog, plus
// helpers for capturing log output in tests.
package logger
