package services

import (
	"errors"

	"github.com/dmitrijs2005/tripcal/internal/client/client"
	"github.com/dmitrijs2005/tripcal/internal/client/validate"
)

var (
	// ErrInFlight rejects a second submission while the first is running.
	ErrInFlight = errors.New("request already in progress")

	ErrNoCurrentEvent = errors.New("no event is open")
	ErrEventMismatch  = errors.New("open event does not match")
	ErrInvalidCode    = errors.New("invalid verification code")
	ErrNoProfile      = errors.New("profile not loaded")
)

// Messages shown for non-validation failures.
const (
	MsgServerError    = "A server error occurred. Please try again."
	MsgSessionExpired = "Your session has expired. Please log in again."
	MsgInFlight       = "Please wait, the previous request is still running."
	MsgNoEvent        = "Missing event id or token."
	MsgInvalidCode    = "Invalid verification code."
	MsgNoProfile      = "User information is not available."
	MsgLoginFailed    = "Invalid email or password."
	MsgUnknown        = "Something went wrong. Please try again."
)

// UserMessage turns any error returned by this package into text fit for the
// user. Validation and server messages are passed through verbatim.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var fe *validate.FieldError
	if errors.As(err, &fe) {
		return fe.Message
	}
	var se *client.ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}

	switch {
	case errors.Is(err, client.ErrUnavailable):
		return MsgServerError
	case errors.Is(err, client.ErrUnauthorized):
		return MsgSessionExpired
	case errors.Is(err, client.ErrMissingToken):
		return MsgLoginFailed
	case errors.Is(err, ErrInFlight):
		return MsgInFlight
	case errors.Is(err, ErrNoCurrentEvent), errors.Is(err, ErrEventMismatch):
		return MsgNoEvent
	case errors.Is(err, ErrInvalidCode):
		return MsgInvalidCode
	case errors.Is(err, ErrNoProfile):
		return MsgNoProfile
	default:
		return MsgUnknown
	}
}
