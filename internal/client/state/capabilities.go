package state

import "github.com/dmitrijs2005/tripcal/internal/client/models"

// Modals is the modal slot as seen by screens.
type Modals interface {
	ShowModal(content Modal)
	HideModal()
	Modal() ModalState
}

type CalendarModes interface {
	CalendarMode() models.CalendarMode
	SetCalendarMode(mode models.CalendarMode)
}

// Addresses carries the address picked on the search screen back to the
// add-event form.
type Addresses interface {
	PendingAddress() string
	SetPendingAddress(address string)
}

var (
	_ Modals        = (*Store)(nil)
	_ CalendarModes = (*Store)(nil)
	_ Addresses     = (*Store)(nil)
)

func (s *Store) ShowModal(content Modal) {
	s.Dispatch(SetModal{Visible: true, Content: content})
}

func (s *Store) HideModal() {
	s.Dispatch(SetModal{})
}

func (s *Store) Modal() ModalState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Modal
}

func (s *Store) CalendarMode() models.CalendarMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CalendarMode
}

func (s *Store) SetCalendarMode(mode models.CalendarMode) {
	s.Dispatch(SetCalendarMode{Mode: mode})
}

func (s *Store) PendingAddress() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.PendingAddress
}

func (s *Store) SetPendingAddress(address string) {
	s.Dispatch(SetPendingAddress{Address: address})
}
