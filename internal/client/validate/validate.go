// Package validate holds the client-side input checks shown inline next to
// form fields.
//
// The keyword denylists here are a UX heuristic that mirrors what the backend
// would reject anyway. They are not a security control: the server must
// parameterize its queries regardless of what the client lets through.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrValidation is matched by every *FieldError.
var ErrValidation = errors.New("validation error")

// FieldError reports a rejected form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

func fieldError(field, msg string) *FieldError {
	return &FieldError{Field: field, Message: msg}
}

// Messages shown to the user.
const (
	MsgInvalidCredentials = "Invalid email or password."
	MsgInvalidEmail       = "Invalid email format."
	MsgInvalidPassword    = "Password must be at least 8 characters and contain a number and one of !@#$%^&*."
	MsgPasswordMismatch   = "Passwords do not match."
	MsgInvalidName        = "Invalid first or last name."
	MsgForbiddenInput     = "Please avoid using special SQL keywords or symbols."
	MsgRequired           = "Please fill in all required fields."
	MsgMissingDatetime    = "Please select both start and end times."
	MsgEndBeforeStart     = "End time must not be before start time."
	MsgInvalidTravelMode  = "Please choose a travel mode."
	MsgMissingCode        = "Please enter the verification code."
)

var (
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitRe     = regexp.MustCompile(`[0-9]`)
	specialRe   = regexp.MustCompile(`[!@#$%^&*]`)
	firstNameRe = regexp.MustCompile(`^[a-zA-Z-]+$`)
	lastNameRe  = regexp.MustCompile(`^[a-zA-Z]+$`)

	// eventDenylist applies to free-text event fields.
	eventDenylist = regexp.MustCompile(`(?i)(;|--|DROP|SELECT|INSERT|DELETE|UPDATE|CREATE|ALTER|EXEC|UNION)`)

	// profileDenylist is stricter: quotes and the OR/AND words are refused too.
	profileDenylist = regexp.MustCompile(`(?i)('|;|--|\b(SELECT|UPDATE|DELETE|INSERT|DROP|ALTER|CREATE|TRUNCATE|EXEC|UNION|OR|AND)\b)`)
)

// Email checks the address shape only.
func Email(email string) bool {
	return emailRe.MatchString(email)
}

// Password enforces the policy: at least 8 characters, one digit and one of
// !@#$%^&*.
func Password(password string) bool {
	return len(password) >= 8 && digitRe.MatchString(password) && specialRe.MatchString(password)
}

// SafeEventText reports whether s passes the event-field denylist.
func SafeEventText(s string) bool {
	return !eventDenylist.MatchString(s)
}

// SafeProfileText reports whether s passes the profile-field denylist.
func SafeProfileText(s string) bool {
	return !profileDenylist.MatchString(s)
}

// Login validates the sign-in form. Both failures share one message so the
// form does not reveal which field was wrong.
func Login(email, password string) error {
	if !Email(email) {
		return fieldError("email", MsgInvalidCredentials)
	}
	if !Password(password) {
		return fieldError("password", MsgInvalidCredentials)
	}
	return nil
}

// Signup validates the registration form.
func Signup(firstName, lastName, email, password string) error {
	if !firstNameRe.MatchString(firstName) {
		return fieldError("first_name", MsgInvalidName)
	}
	if !lastNameRe.MatchString(lastName) {
		return fieldError("last_name", MsgInvalidName)
	}
	if !Email(email) {
		return fieldError("email", MsgInvalidEmail)
	}
	if !Password(password) {
		return fieldError("password", MsgInvalidPassword)
	}
	return nil
}

// Profile validates the profile edit form.
func Profile(firstName, lastName, email string) error {
	if !firstNameRe.MatchString(firstName) || !SafeProfileText(firstName) {
		return fieldError("first_name", MsgInvalidName)
	}
	if !lastNameRe.MatchString(lastName) || !SafeProfileText(lastName) {
		return fieldError("last_name", MsgInvalidName)
	}
	if !Email(email) || !SafeProfileText(email) {
		return fieldError("email", MsgInvalidEmail)
	}
	return nil
}

// PasswordChange validates the new/confirm pair.
func PasswordChange(newPassword, confirm string) error {
	if newPassword != confirm {
		return fieldError("password", MsgPasswordMismatch)
	}
	if !Password(newPassword) {
		return fieldError("password", MsgInvalidPassword)
	}
	return nil
}

// VerificationCode rejects a blank code.
func VerificationCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return fieldError("code", MsgMissingCode)
	}
	return nil
}
