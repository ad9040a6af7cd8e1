// Package common contains shared constants, sentinel errors and small helpers
// used across tripcal components.
package common

const (
	// TokenKey is the storage key of the session token.
	TokenKey = "userToken"

	// BackgroundTimeKey holds the epoch millis at which the app was last
	// sent to background. It is transient and removed on the next foreground.
	BackgroundTimeKey = "backgroundTime"

	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName correlates client log lines with backend requests.
	RequestIDHeaderName = "X-Request-ID"
)
