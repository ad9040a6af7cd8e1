package common

import "errors"

// Local storage errors. Callers match them with errors.Is.
var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrCorruptValue     = errors.New("corrupt stored value")
)
