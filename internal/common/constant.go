// Package common contains shared constants and sentinel errors used across
// the arena kit components.
package common

// Header names attached to outbound HTTP requests.
const (
	AuthorizationHeaderName = "Authorization"
	ContentTypeHeaderName   = "Content-Type"
	RequestIDHeaderName     = "X-Request-ID"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "

	JSONContentType = "application/json"
)
