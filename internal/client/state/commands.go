package state

import "github.com/dmitrijs2005/tripcal/internal/client/models"

// Command is a typed state update. The set is closed; see the Set* and
// Clear* types below.
type Command interface {
	apply(s *Snapshot) Slice
}

type SetProfile struct{ Profile models.Profile }

func (c SetProfile) apply(s *Snapshot) Slice {
	p := c.Profile
	s.Profile = &p
	return SliceProfile
}

type ClearProfile struct{}

func (ClearProfile) apply(s *Snapshot) Slice {
	s.Profile = nil
	return SliceProfile
}

type SetEvents struct{ Groups []models.EventGroup }

func (c SetEvents) apply(s *Snapshot) Slice {
	s.Events = models.CloneGroups(c.Groups)
	if s.Events == nil {
		s.Events = []models.EventGroup{}
	}
	s.EventsVersion++
	return SliceEvents
}

// SetEventsIfCurrent is SetEvents for a list fetched when the events were at
// Version. If they were replaced or cleared since, the command does nothing.
type SetEventsIfCurrent struct {
	Groups  []models.EventGroup
	Version uint64
}

func (c SetEventsIfCurrent) apply(s *Snapshot) Slice {
	if s.EventsVersion != c.Version {
		return 0
	}
	return SetEvents{Groups: c.Groups}.apply(s)
}

type ClearEvents struct{}

func (ClearEvents) apply(s *Snapshot) Slice {
	s.Events = nil
	s.EventsVersion++
	return SliceEvents
}

type SetCurrentEvent struct{ Event models.Event }

func (c SetCurrentEvent) apply(s *Snapshot) Slice {
	e := c.Event.Clone()
	s.CurrentEvent = &e
	return SliceCurrentEvent
}

type ClearCurrentEvent struct{}

func (ClearCurrentEvent) apply(s *Snapshot) Slice {
	s.CurrentEvent = nil
	return SliceCurrentEvent
}

// SetModal replaces the modal slot. Hiding keeps nothing: content is dropped.
type SetModal struct {
	Visible bool
	Content Modal
}

func (c SetModal) apply(s *Snapshot) Slice {
	if !c.Visible {
		s.Modal = ModalState{}
		return SliceModal
	}
	s.Modal = ModalState{Visible: true, Content: c.Content}
	return SliceModal
}

type SetCalendarMode struct{ Mode models.CalendarMode }

func (c SetCalendarMode) apply(s *Snapshot) Slice {
	s.CalendarMode = c.Mode
	return SliceCalendarMode
}

type SetPendingAddress struct{ Address string }

func (c SetPendingAddress) apply(s *Snapshot) Slice {
	s.PendingAddress = c.Address
	return SlicePendingAddress
}

// ClearSession drops everything tied to the signed-in user in one change.
func ClearSession() []Command {
	return []Command{ClearProfile{}, ClearEvents{}, ClearCurrentEvent{}, SetModal{}}
}
