// Package shared holds request decoding, response writing, and trace ID
// helpers used by both the api handlers and the middleware.
package shared
