package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/tripcal/internal/client/calendar"
	"github.com/dmitrijs2005/tripcal/internal/client/models"
	"github.com/dmitrijs2005/tripcal/internal/client/router"
	"github.com/dmitrijs2005/tripcal/internal/client/services"
)

func (a *App) Timeline(ctx context.Context) error {
	if !a.enter(ctx, router.Timeline, nil) {
		return nil
	}
	a.renderTimeline(ctx)
	return nil
}

// Calendar shows the window around the anchor date. Arguments switch the
// mode (day, week, month) or move the anchor (next, prev, today).
func (a *App) Calendar(ctx context.Context, args []string) error {
	if !a.enter(ctx, router.Calendar, nil) {
		return nil
	}

	mode := a.store.CalendarMode()
	for _, arg := range args {
		switch arg {
		case "next", "n":
			a.anchor = calendar.Step(mode, a.anchor, 1)
		case "prev", "p":
			a.anchor = calendar.Step(mode, a.anchor, -1)
		case "today":
			a.anchor = a.now().In(a.loc)
		default:
			m, err := models.ParseCalendarMode(arg)
			if err != nil {
				return usageError("Usage: calendar [day|week|month] [next|prev|today]")
			}
			mode = m
			a.store.SetCalendarMode(m)
		}
	}

	a.renderCalendar(mode)
	return nil
}

func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("Usage: open <event id>")
	}
	if !a.gate.Enter(ctx, router.EventDetail) {
		a.showCurrent(ctx)
		return nil
	}

	ev, err := a.events.Open(ctx, models.EventID(args[0]))
	if err != nil {
		return err
	}
	renderEvent(a.out, *ev, a.loc)
	return nil
}

// Back leaves the current screen. Leaving the detail screen also forgets the
// open event.
func (a *App) Back(ctx context.Context) error {
	if a.nav.Current().Route == router.EventDetail {
		a.events.CloseDetail()
	} else if !a.nav.Back() {
		fmt.Fprintln(a.out, "Nothing to go back to.")
		return nil
	}
	a.showCurrent(ctx)
	return nil
}

// Add runs the add-event form. The address comes from the address search
// screen unless one was already picked.
func (a *App) Add(ctx context.Context) error {
	if !a.enter(ctx, router.AddEvent, nil) {
		return nil
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	start, err := GetDateTime(a.reader, "Starts", a.loc, a.out)
	if err != nil {
		return err
	}
	end, err := GetDateTime(a.reader, "Ends", a.loc, a.out)
	if err != nil {
		return err
	}

	modes := models.TravelModes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	pick, err := GetChoice(a.reader, "Travel mode", names, a.out)
	if err != nil {
		return err
	}
	var mode models.TravelMode
	if pick >= 0 {
		mode = modes[pick]
	}

	if a.store.PendingAddress() == "" {
		if err := a.pickAddress(ctx); err != nil {
			return err
		}
	}

	err = a.events.Create(ctx, models.NewEvent{
		Title:         title,
		EventDatetime: start,
		Address:       a.store.PendingAddress(),
		TravelMode:    mode,
		StartDatetime: start,
		EndDatetime:   end,
	})
	if err != nil {
		return err
	}

	if a.nav.Current().Route == router.AddEvent {
		a.nav.Back()
	}
	fmt.Fprintln(a.out, "Event created.")
	return nil
}

// pickAddress runs the address search screen. An empty query or choice
// leaves without picking.
func (a *App) pickAddress(ctx context.Context) error {
	a.nav.Push(router.AddAddress, nil)

	query, err := getSimpleText(a.reader, "Search address", a.out)
	if err != nil || query == "" {
		a.nav.Back()
		return err
	}

	opts, err := a.events.SearchAddress(ctx, query)
	if err != nil {
		a.nav.Back()
		return err
	}
	if len(opts) == 0 {
		fmt.Fprintln(a.out, "No matching addresses.")
		a.nav.Back()
		return nil
	}

	names := make([]string, len(opts))
	for i, o := range opts {
		names[i] = o.Formatted
	}
	pick, err := GetChoice(a.reader, "Address", names, a.out)
	if err != nil || pick < 0 {
		a.nav.Back()
		return err
	}
	a.events.SelectAddress(opts[pick])
	return nil
}

// Delete asks for confirmation in the modal and deletes the open event.
func (a *App) Delete(ctx context.Context) error {
	cur := a.store.CurrentEvent()
	if cur == nil {
		return services.ErrNoCurrentEvent
	}

	a.store.ShowModal(deleteConfirm{event: *cur, loc: a.loc})
	ok, err := Confirm(a.reader, "Delete this event?", a.out)
	if err != nil || !ok {
		a.store.HideModal()
		return err
	}

	if err := a.events.Delete(ctx, cur.ID); err != nil {
		a.store.HideModal()
		return err
	}
	fmt.Fprintln(a.out, "Event deleted.")
	a.showCurrent(ctx)
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if !a.gate.Enter(ctx, router.Timeline) {
		a.showCurrent(ctx)
		return nil
	}
	if err := a.events.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d events loaded.\n", models.CountEvents(a.store.Events()))
	return nil
}

// Export writes all events as iCalendar to the named file, or to the
// terminal without one.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return usageError("Usage: export [file.ics]")
	}
	if !a.gate.Enter(ctx, router.Calendar) {
		a.showCurrent(ctx)
		return nil
	}

	groups := a.store.Events()
	var w io.Writer = a.out
	if len(args) == 1 {
		f, err := os.OpenFile(args[0], os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return usageError(fmt.Sprintf("Cannot write %s: %v", args[0], err))
		}
		defer f.Close()
		w = f
	}

	if err := calendar.ExportICS(w, groups, a.now()); err != nil {
		return fmt.Errorf("export calendar: %w", err)
	}
	if len(args) == 1 {
		fmt.Fprintf(a.out, "Exported %d events to %s.\n", models.CountEvents(groups), args[0])
	}
	return nil
}
