package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/dmitrijs2005/tripcal/internal/client/models"
)

const productID = "-//tripcal//tripcal client//EN"

// ExportICS writes groups as an iCalendar feed with one VEVENT per event.
// UIDs are derived from event ids so a re-export updates rather than
// duplicates entries in the importing calendar.
func ExportICS(w io.Writer, groups []models.EventGroup, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, o := range Flatten(groups, time.UTC) {
		ev := cal.AddEvent(fmt.Sprintf("event-%s@tripcal", o.Event.ID))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetStartAt(o.Start)
		ev.SetEndAt(o.End)
		ev.SetSummary(o.Event.Title)
		if place := o.Event.Place(); place != "" {
			ev.SetLocation(place)
		}
		if desc := describe(o.Event); desc != "" {
			ev.SetDescription(desc)
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("write ics: %w", err)
	}
	return nil
}

func describe(ev models.Event) string {
	var parts []string
	if ev.TravelMode.Valid() {
		parts = append(parts, "Travel: "+ev.TravelMode.String())
	}
	if ev.Weather != "" {
		w := "Weather: " + ev.Weather
		if ev.Temperature != nil {
			w += fmt.Sprintf(" (%.1f°)", *ev.Temperature)
		}
		parts = append(parts, w)
	}
	return strings.Join(parts, "\n")
}
