package calendar

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/tripcal/internal/client/models"
)

// Default hours used when an event lacks its own start or end.
const (
	DefaultStartHour = 9
	DefaultEndHour   = 10
)

// Occurrence is one event placed on the time axis.
type Occurrence struct {
	Event models.Event
	Start time.Time
	End   time.Time
}

// Flatten places every event of groups on the time axis in loc, sorted by
// start. A missing start falls back to the group date at 09:00, a missing end
// to 10:00 of the same date; an end before the start is clamped to the start.
func Flatten(groups []models.EventGroup, loc *time.Location) []Occurrence {
	if loc == nil {
		loc = time.Local
	}

	var out []Occurrence
	for _, g := range groups {
		date, err := time.ParseInLocation(DateLayout, g.Date, loc)
		if err != nil {
			date = time.Time{}
		}
		for _, ev := range g.Events {
			o := Occurrence{Event: ev.Clone()}

			switch {
			case ev.StartDatetime != nil:
				o.Start = ev.StartDatetime.In(loc)
			case ev.EventDatetime != nil:
				o.Start = ev.EventDatetime.In(loc)
			default:
				o.Start = date.Add(DefaultStartHour * time.Hour)
			}

			if ev.EndDatetime != nil {
				o.End = ev.EndDatetime.In(loc)
			} else {
				o.End = day(o.Start).Add(DefaultEndHour * time.Hour)
			}
			if o.End.Before(o.Start) {
				o.End = o.Start
			}
			out = append(out, o)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}
