package validate

import (
	"strings"

	"github.com/dmitrijs2005/tripcal/internal/client/models"
)

// NewEvent validates the add-event form. The denylist runs before the
// required-field check, so a forbidden title is reported even when the
// address is missing.
func NewEvent(e models.NewEvent) error {
	if !SafeEventText(e.Title) {
		return fieldError("title", MsgForbiddenInput)
	}
	if !SafeEventText(e.Address) {
		return fieldError("address", MsgForbiddenInput)
	}
	if strings.TrimSpace(e.Title) == "" {
		return fieldError("title", MsgRequired)
	}
	if strings.TrimSpace(e.Address) == "" {
		return fieldError("address", MsgRequired)
	}
	if e.StartDatetime.IsZero() || e.EndDatetime.IsZero() {
		return fieldError("datetime", MsgMissingDatetime)
	}
	if e.EndDatetime.Before(e.StartDatetime) {
		return fieldError("end_datetime", MsgEndBeforeStart)
	}
	if !e.TravelMode.Valid() {
		return fieldError("travel_mode", MsgInvalidTravelMode)
	}
	return nil
}
