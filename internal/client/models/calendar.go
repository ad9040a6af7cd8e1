package models

import "fmt"

// CalendarMode selects how many days the calendar view spans.
type CalendarMode string

const (
	CalendarModeDay   CalendarMode = "day"
	CalendarModeWeek  CalendarMode = "week"
	CalendarModeMonth CalendarMode = "month"
)

// DefaultCalendarMode is the mode a fresh session starts in.
const DefaultCalendarMode = CalendarModeWeek

// ParseCalendarMode validates s as a CalendarMode.
func ParseCalendarMode(s string) (CalendarMode, error) {
	switch m := CalendarMode(s); m {
	case CalendarModeDay, CalendarModeWeek, CalendarModeMonth:
		return m, nil
	default:
		return "", fmt.Errorf("unknown calendar mode %q (want day, week or month)", s)
	}
}
