package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/tripcal/internal/client/calendar"
	"github.com/dmitrijs2005/tripcal/internal/client/models"
	"github.com/dmitrijs2005/tripcal/internal/client/state"
)

func (a *App) renderTimeline(ctx context.Context) {
	occ := calendar.Flatten(a.store.Events(), a.loc)
	if len(occ) == 0 {
		fmt.Fprintln(a.out, "No events yet. Use 'add' to create one.")
		return
	}

	var day string
	for _, o := range occ {
		if d := o.Start.Format(calendar.DateLayout); d != day {
			day = d
			fmt.Fprintf(a.out, "%s %s\n", d, o.Start.Weekday().String()[:3])
		}
		fmt.Fprintf(a.out, "  %s\n", occurrenceLine(o))
	}
	a.logger.Debug(ctx, "timeline rendered", "events", len(occ))
}

func (a *App) renderCalendar(mode models.CalendarMode) {
	win := calendar.Window(mode, a.anchor, a.weekStart)
	groups := calendar.InWindow(a.store.Events(), win)
	occ := calendar.Flatten(groups, a.loc)

	fmt.Fprintf(a.out, "%s view %s\n", mode, win)
	byDay := make(map[string][]calendar.Occurrence, len(occ))
	for _, o := range occ {
		k := o.Start.Format(calendar.DateLayout)
		byDay[k] = append(byDay[k], o)
	}

	for d := win.Start; !d.After(win.End); d = d.AddDate(0, 0, 1) {
		k := d.Format(calendar.DateLayout)
		list := byDay[k]
		if mode == models.CalendarModeMonth && len(list) == 0 {
			continue
		}
		fmt.Fprintf(a.out, "%s %s\n", k, d.Weekday().String()[:3])
		for _, o := range list {
			fmt.Fprintf(a.out, "  %s\n", occurrenceLine(o))
		}
	}
	if len(occ) == 0 {
		fmt.Fprintln(a.out, "  no events")
	}
}

func occurrenceLine(o calendar.Occurrence) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s-%s %s", o.Event.ID, o.Start.Format("15:04"), o.End.Format("15:04"), o.Event.Title)
	if place := o.Event.Place(); place != "" {
		fmt.Fprintf(&b, " @ %s", place)
	}
	if w := weather(o.Event); w != "" {
		fmt.Fprintf(&b, " (%s)", w)
	}
	return b.String()
}

func weather(ev models.Event) string {
	parts := make([]string, 0, 2)
	if ev.Weather != "" {
		parts = append(parts, ev.Weather)
	}
	if ev.Temperature != nil {
		parts = append(parts, fmt.Sprintf("%.0f°C", *ev.Temperature))
	}
	return strings.Join(parts, ", ")
}

func renderEvent(w io.Writer, ev models.Event, loc *time.Location) {
	fmt.Fprintf(w, "%s  [%s]\n", ev.Title, ev.ID)
	// Times are shown in the event's own zone when it has one.
	zone := ev.ZoneIn(loc)
	layout := InputLayout
	if zone != loc {
		layout += " MST"
	}
	if ev.StartDatetime != nil {
		fmt.Fprintf(w, "  Starts:  %s\n", ev.StartDatetime.In(zone).Format(layout))
	}
	if ev.EndDatetime != nil {
		fmt.Fprintf(w, "  Ends:    %s\n", ev.EndDatetime.In(zone).Format(layout))
	}
	if place := ev.Place(); place != "" {
		fmt.Fprintf(w, "  Where:   %s\n", place)
	}
	if ev.TravelMode.Valid() {
		fmt.Fprintf(w, "  Travel:  %s\n", ev.TravelMode)
	}
	if s := weather(ev); s != "" {
		fmt.Fprintf(w, "  Weather: %s\n", s)
	}
}

// deleteConfirm is the modal shown before an event is deleted.
type deleteConfirm struct {
	event models.Event
	loc   *time.Location
}

func (m deleteConfirm) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "About to delete:"); err != nil {
		return err
	}
	renderEvent(w, m.event, m.loc)
	return nil
}

// renderModal draws the modal slot whenever it becomes visible.
func (a *App) renderModal(s state.Snapshot, _ state.Slice) {
	if !s.Modal.Visible || s.Modal.Content == nil {
		return
	}
	if err := s.Modal.Content.Render(a.out); err != nil {
		a.logger.Warn(context.Background(), "modal render failed", "error", err)
	}
}
