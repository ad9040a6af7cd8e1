package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/tripcal/internal/client/client"
	"github.com/dmitrijs2005/tripcal/internal/client/models"
	"github.com/dmitrijs2005/tripcal/internal/client/router"
	"github.com/dmitrijs2005/tripcal/internal/client/state"
	"github.com/dmitrijs2005/tripcal/internal/client/validate"
	"github.com/dmitrijs2005/tripcal/internal/logging"
)

// EventService is the event mutation flow. Mutations never patch the local
// list: each one is followed by a full refetch that replaces it.
type EventService interface {
	Refresh(ctx context.Context) error
	Open(ctx context.Context, id models.EventID) (*models.Event, error)
	CloseDetail()
	Create(ctx context.Context, ev models.NewEvent) error
	Delete(ctx context.Context, id models.EventID) error
	SearchAddress(ctx context.Context, query string) ([]models.AddressOption, error)
	SelectAddress(opt models.AddressOption)
}

type eventService struct {
	authed
	api   client.Client
	store *state.Store
	nav   router.Navigator
	guard *inflight
	group singleflight.Group

	// fetchMu serializes list fetches so a slow refresh cannot land after
	// the list fetched by a later mutation.
	fetchMu sync.Mutex
}

func NewEventService(api client.Client, sess Session, store *state.Store, nav router.Navigator, logger logging.Logger) EventService {
	return &eventService{
		authed: authed{sess: sess, logger: logger},
		api:    api,
		store:  store,
		nav:    nav,
		guard:  newInflight(),
	}
}

// Refresh replaces the event list with the server's. Calls made while one is
// running share its result.
func (s *eventService) Refresh(ctx context.Context) error {
	_, err, shared := s.group.Do("events", func() (any, error) {
		return nil, s.refetch(ctx)
	})
	if shared {
		s.logger.Debug(ctx, "event refresh shared with a running one")
	}
	return err
}

func (s *eventService) refetch(ctx context.Context) error {
	tok, err := s.token(ctx)
	if err != nil {
		return err
	}
	_, err = s.replaceEvents(ctx, tok, "list events")
	return err
}

// replaceEvents fetches the list and stores it together with also. The list
// is dropped when the events were replaced or cleared while the fetch ran,
// which only a sign-out can do; it reports whether the list was stored.
func (s *eventService) replaceEvents(ctx context.Context, tok, op string, also ...state.Command) (bool, error) {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	version := s.store.EventsVersion()
	groups, err := s.api.ListEvents(ctx, tok)
	if err != nil {
		return false, s.check(ctx, fmt.Errorf("%s: %w", op, err))
	}

	cmds := append([]state.Command{state.SetEventsIfCurrent{Groups: groups, Version: version}}, also...)
	if s.store.Dispatch(cmds...)&state.SliceEvents == 0 {
		s.logger.Debug(ctx, "event list changed during fetch, dropping result")
		return false, nil
	}
	return true, nil
}

// Open loads one event into the detail screen.
func (s *eventService) Open(ctx context.Context, id models.EventID) (*models.Event, error) {
	tok, err := s.token(ctx)
	if err != nil {
		return nil, err
	}
	ev, err := s.api.GetEvent(ctx, tok, id)
	if err != nil {
		return nil, s.check(ctx, fmt.Errorf("get event %s: %w", id, err))
	}

	s.store.Dispatch(state.SetCurrentEvent{Event: *ev})
	s.nav.Push(router.EventDetail, map[string]string{"eventId": id.String()})
	return ev, nil
}

func (s *eventService) CloseDetail() {
	s.store.Dispatch(state.ClearCurrentEvent{})
	s.nav.Back()
}

// Create validates the form, sends it, then refetches. On failure the state
// is left as it was.
func (s *eventService) Create(ctx context.Context, ev models.NewEvent) error {
	if err := validate.NewEvent(ev); err != nil {
		return err
	}
	release, err := s.guard.acquire("create")
	if err != nil {
		return err
	}
	defer release()

	tok, err := s.token(ctx)
	if err != nil {
		return err
	}
	if err := s.api.CreateEvent(ctx, tok, ev); err != nil {
		return s.check(ctx, fmt.Errorf("create event: %w", err))
	}
	s.logger.Info(ctx, "event created", "title", ev.Title)

	if err := s.refetch(ctx); err != nil {
		return err
	}
	s.store.Dispatch(state.SetPendingAddress{})
	return nil
}

// Delete removes the open event. It requires the detail screen to hold the
// same event. When the refetch after a successful delete fails, the error is
// returned and the stale list and open event are kept.
func (s *eventService) Delete(ctx context.Context, id models.EventID) error {
	release, err := s.guard.acquire("delete:" + id.String())
	if err != nil {
		return err
	}
	defer release()

	cur := s.store.CurrentEvent()
	if cur == nil {
		return ErrNoCurrentEvent
	}
	if cur.ID != id {
		return fmt.Errorf("%w: open %s, asked %s", ErrEventMismatch, cur.ID, id)
	}

	tok, err := s.token(ctx)
	if err != nil {
		return err
	}
	if err := s.api.DeleteEvent(ctx, tok, id); err != nil {
		return s.check(ctx, fmt.Errorf("delete event %s: %w", id, err))
	}
	s.logger.Info(ctx, "event deleted", "id", id.String())

	stored, err := s.replaceEvents(ctx, tok, "list events after delete",
		state.ClearCurrentEvent{},
		state.SetModal{},
	)
	if err != nil {
		return err
	}
	if stored {
		s.nav.Replace(router.Timeline, nil)
	}
	return nil
}

func (s *eventService) SearchAddress(ctx context.Context, query string) ([]models.AddressOption, error) {
	tok, err := s.token(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := s.api.SearchAddress(ctx, tok, query)
	if err != nil {
		return nil, s.check(ctx, fmt.Errorf("search address: %w", err))
	}
	return opts, nil
}

// SelectAddress hands the chosen address to the add-event form and leaves
// the search screen.
func (s *eventService) SelectAddress(opt models.AddressOption) {
	s.store.Dispatch(state.SetPendingAddress{Address: opt.Formatted})
	if s.nav.Current().Route == router.AddAddress {
		s.nav.Back()
	}
}
