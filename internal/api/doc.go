// Package api exposes account registration over HTTP.
//
// Handlers decode and shape-check JSON bodies, call the registration service,
// and translate its errors into status codes and client-safe messages
// (MapErrorToStatusCode, GetSafeErrorMessage). Every error body carries the
// request's trace ID so clients can quote it in support requests.
package api
