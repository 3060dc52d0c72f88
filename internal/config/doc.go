// Package config loads and validates application settings from environment
// variables (prefix ACCOUNTS_) and an optional config.yaml file.
package config
