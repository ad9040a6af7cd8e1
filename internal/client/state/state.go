// Package state is the in-memory application state shared by every screen.
//
// State is changed only by dispatching commands; each command replaces one
// slice of the state wholesale. Subscribers register for a mask of slices and
// are told after the change, outside the store lock, in dispatch order.
package state

import (
	"io"
	"sync"

	"github.com/dmitrijs2005/tripcal/internal/client/models"
)

// Slice identifies one part of the state.
type Slice uint

const (
	SliceProfile Slice = 1 << iota
	SliceEvents
	SliceCurrentEvent
	SliceModal
	SliceCalendarMode
	SlicePendingAddress

	SliceAll = SliceProfile | SliceEvents | SliceCurrentEvent | SliceModal | SliceCalendarMode | SlicePendingAddress
)

// Modal is content shown in the single modal slot.
type Modal interface {
	Render(w io.Writer) error
}

type ModalState struct {
	Visible bool
	Content Modal
}

// Snapshot is a copy of the whole state; callers may keep and modify it.
type Snapshot struct {
	Profile        *models.Profile
	Events         []models.EventGroup
	CurrentEvent   *models.Event
	Modal          ModalState
	CalendarMode   models.CalendarMode
	PendingAddress string

	// EventsVersion counts every replacement of Events, clears included.
	EventsVersion uint64
}

func (s Snapshot) clone() Snapshot {
	c := s
	if s.Profile != nil {
		p := *s.Profile
		c.Profile = &p
	}
	c.Events = models.CloneGroups(s.Events)
	if s.CurrentEvent != nil {
		e := s.CurrentEvent.Clone()
		c.CurrentEvent = &e
	}
	return c
}

type subscription struct {
	mask Slice
	fn   func(Snapshot, Slice)
}

type notice struct {
	snap    Snapshot
	changed Slice
}

type Store struct {
	mu         sync.Mutex
	state      Snapshot
	subs       map[int]subscription
	nextSub    int
	queue      []notice
	delivering bool
}

func New() *Store {
	return &Store{
		state: Snapshot{CalendarMode: models.DefaultCalendarMode},
		subs:  make(map[int]subscription),
	}
}

// Dispatch applies cmds in order as one change, notifies subscribers and
// returns the slices that changed. A dispatch made from inside a subscriber is
// queued and delivered after the current round.
func (s *Store) Dispatch(cmds ...Command) Slice {
	s.mu.Lock()

	var changed Slice
	for _, c := range cmds {
		changed |= c.apply(&s.state)
	}
	if changed == 0 {
		s.mu.Unlock()
		return 0
	}

	s.queue = append(s.queue, notice{snap: s.state.clone(), changed: changed})
	if s.delivering {
		s.mu.Unlock()
		return changed
	}

	s.delivering = true
	defer func() {
		s.delivering = false
		s.mu.Unlock()
	}()
	for len(s.queue) > 0 {
		n := s.queue[0]
		s.queue = s.queue[1:]
		fns := s.subscribersFor(n.changed)

		s.mu.Unlock()
		s.deliver(fns, n)
		s.mu.Lock()
	}
	return changed
}

// deliver runs fns outside the lock. If one panics the lock is taken back
// before the panic continues, so the deferred reset in Dispatch holds it.
func (s *Store) deliver(fns []func(Snapshot, Slice), n notice) {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.queue = nil
			panic(r)
		}
	}()
	for _, fn := range fns {
		fn(n.snap.clone(), n.changed)
	}
}

func (s *Store) subscribersFor(changed Slice) []func(Snapshot, Slice) {
	var fns []func(Snapshot, Slice)
	for id := 0; id < s.nextSub; id++ {
		sub, ok := s.subs[id]
		if ok && sub.mask&changed != 0 {
			fns = append(fns, sub.fn)
		}
	}
	return fns
}

// Subscribe calls fn whenever a slice in mask changes. The returned func
// removes the subscription.
func (s *Store) Subscribe(mask Slice, fn func(Snapshot, Slice)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = subscription{mask: mask, fn: fn}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// EventsVersion returns the current Snapshot.EventsVersion.
func (s *Store) EventsVersion() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.EventsVersion
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Profile returns a copy of the signed-in profile, or nil.
func (s *Store) Profile() *models.Profile {
	return s.Snapshot().Profile
}

func (s *Store) Events() []models.EventGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneGroups(s.state.Events)
}

func (s *Store) CurrentEvent() *models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentEvent == nil {
		return nil
	}
	e := s.state.CurrentEvent.Clone()
	return &e
}
