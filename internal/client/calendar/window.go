// Package calendar turns the grouped event list into what the timeline and
// calendar screens show: date windows per calendar mode, flat occurrences
// and an iCalendar export.
package calendar

import (
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/tripcal/internal/client/models"
)

// DateLayout is the format of EventGroup.Date.
const DateLayout = "2006-01-02"

// Range is an inclusive span of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the day of t falls in r.
func (r Range) Contains(t time.Time) bool {
	d := day(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days is the number of days in r.
func (r Range) Days() int {
	return int(math.Round(r.End.Sub(r.Start).Hours()/24)) + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Window returns the days shown around anchor for mode. Weeks begin on
// weekStart; months run from the 1st to the last day.
func Window(mode models.CalendarMode, anchor time.Time, weekStart time.Weekday) Range {
	a := day(anchor)
	switch mode {
	case models.CalendarModeDay:
		return Range{Start: a, End: a}
	case models.CalendarModeMonth:
		first := time.Date(a.Year(), a.Month(), 1, 0, 0, 0, 0, a.Location())
		return Range{Start: first, End: first.AddDate(0, 1, -1)}
	default:
		offset := (int(a.Weekday()) - int(weekStart) + 7) % 7
		start := a.AddDate(0, 0, -offset)
		return Range{Start: start, End: start.AddDate(0, 0, 6)}
	}
}

// Step moves anchor by one window in direction dir (+1 or -1).
func Step(mode models.CalendarMode, anchor time.Time, dir int) time.Time {
	switch mode {
	case models.CalendarModeDay:
		return anchor.AddDate(0, 0, dir)
	case models.CalendarModeMonth:
		return anchor.AddDate(0, dir, 0)
	default:
		return anchor.AddDate(0, 0, 7*dir)
	}
}

// InWindow keeps the groups whose date lies in r. Groups with an unreadable
// date are dropped.
func InWindow(groups []models.EventGroup, r Range) []models.EventGroup {
	from, to := r.Start.Format(DateLayout), r.End.Format(DateLayout)
	out := make([]models.EventGroup, 0, len(groups))
	for _, g := range groups {
		if _, err := time.Parse(DateLayout, g.Date); err != nil {
			continue
		}
		if g.Date >= from && g.Date <= to {
			out = append(out, g)
		}
	}
	return out
}

// OnDate returns the events of the group dated d, if any.
func OnDate(groups []models.EventGroup, d time.Time) []models.Event {
	key := d.Format(DateLayout)
	for _, g := range groups {
		if g.Date == key {
			return g.Events
		}
	}
	return nil
}
