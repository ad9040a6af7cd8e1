package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TravelMode is how the user plans to reach an event.
type TravelMode int

const (
	TravelModeCar     TravelMode = 1
	TravelModeTransit TravelMode = 2
	TravelModeBike    TravelMode = 3
	TravelModeWalking TravelMode = 4
	TravelModeFlight  TravelMode = 5
)

var travelModeNames = map[TravelMode]string{
	TravelModeCar:     "car",
	TravelModeTransit: "transit",
	TravelModeBike:    "bike",
	TravelModeWalking: "walking",
	TravelModeFlight:  "flight",
}

// TravelModes lists the modes in their wire order.
func TravelModes() []TravelMode {
	return []TravelMode{TravelModeCar, TravelModeTransit, TravelModeBike, TravelModeWalking, TravelModeFlight}
}

func (m TravelMode) String() string {
	if name, ok := travelModeNames[m]; ok {
		return name
	}
	return "unknown(" + strconv.Itoa(int(m)) + ")"
}

// Valid reports whether m is one of the five known modes.
func (m TravelMode) Valid() bool {
	_, ok := travelModeNames[m]
	return ok
}

// ParseTravelMode accepts either the wire number ("1".."5") or the name
// ("car", "Transit", ...).
func ParseTravelMode(s string) (TravelMode, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		m := TravelMode(n)
		if !m.Valid() {
			return 0, fmt.Errorf("unknown travel mode %d", n)
		}
		return m, nil
	}
	for m, name := range travelModeNames {
		if strings.EqualFold(name, s) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown travel mode %q", s)
}

// EventID is the server identifier of an event. Some backend builds send it
// as a number, others as a string; both decode to the same value.
type EventID string

func (id *EventID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = EventID(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("event id: %w", err)
	}
	*id = EventID(n.String())
	return nil
}

func (id EventID) String() string { return string(id) }

// Location is where an event takes place. The list endpoint sends an object,
// older builds a bare address string.
type Location struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

func (l *Location) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &l.Address)
	}
	type plain Location
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*l = Location(p)
	return nil
}

// Event is a scheduled trip item enriched by the backend with weather data.
type Event struct {
	ID            EventID    `json:"id"`
	Title         string     `json:"title"`
	EventDatetime *time.Time `json:"event_datetime,omitempty"`
	StartDatetime *time.Time `json:"start_datetime,omitempty"`
	EndDatetime   *time.Time `json:"end_datetime,omitempty"`
	Address       string     `json:"address,omitempty"`
	Location      *Location  `json:"location,omitempty"`
	TravelMode    TravelMode `json:"travel_mode,omitempty"`
	Weather       string     `json:"weather,omitempty"`
	Temperature   *float64   `json:"temperature,omitempty"`
	Icon          string     `json:"icon,omitempty"`
	// Timezone is the IANA zone the event was planned in, if the server
	// sent one.
	Timezone      string     `json:"timezone,omitempty"`
}

// UnmarshalJSON decodes the datetimes leniently: an empty or unreadable
// value leaves the field nil instead of failing the whole list.
func (e *Event) UnmarshalJSON(b []byte) error {
	type plain Event
	aux := struct {
		*plain
		EventDatetime looseTime `json:"event_datetime"`
		StartDatetime looseTime `json:"start_datetime"`
		EndDatetime   looseTime `json:"end_datetime"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	e.EventDatetime = aux.EventDatetime.t
	e.StartDatetime = aux.StartDatetime.t
	e.EndDatetime = aux.EndDatetime.t
	return nil
}

// ZoneIn returns the event's own zone when it has a known one, else def.
func (e Event) ZoneIn(def *time.Location) *time.Location {
	if e.Timezone == "" {
		return def
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return def
	}
	return loc
}

// Place returns the best human-readable location of the event.
func (e Event) Place() string {
	if e.Location != nil {
		if e.Location.Address != "" {
			return e.Location.Address
		}
		if e.Location.City != "" {
			return e.Location.City
		}
	}
	return e.Address
}

// Clone returns a deep copy of e.
func (e Event) Clone() Event {
	c := e
	c.EventDatetime = cloneTime(e.EventDatetime)
	c.StartDatetime = cloneTime(e.StartDatetime)
	c.EndDatetime = cloneTime(e.EndDatetime)
	if e.Location != nil {
		loc := *e.Location
		c.Location = &loc
	}
	if e.Temperature != nil {
		t := *e.Temperature
		c.Temperature = &t
	}
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// EventGroup is the list endpoint's unit: all events of one calendar date.
type EventGroup struct {
	Date   string  `json:"date"`
	Events []Event `json:"events"`
}

// CloneGroups deep-copies a grouped event list. A nil input stays nil.
func CloneGroups(groups []EventGroup) []EventGroup {
	if groups == nil {
		return nil
	}
	out := make([]EventGroup, len(groups))
	for i, g := range groups {
		out[i].Date = g.Date
		if g.Events != nil {
			out[i].Events = make([]Event, len(g.Events))
			for j, e := range g.Events {
				out[i].Events[j] = e.Clone()
			}
		}
	}
	return out
}

// FindEvent looks an event up by id across all groups.
func FindEvent(groups []EventGroup, id EventID) (Event, bool) {
	for _, g := range groups {
		for _, e := range g.Events {
			if e.ID == id {
				return e, true
			}
		}
	}
	return Event{}, false
}

// CountEvents returns the total number of events across groups.
func CountEvents(groups []EventGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Events)
	}
	return n
}

// isoLayout matches what the backend expects: UTC with milliseconds.
const isoLayout = "2006-01-02T15:04:05.000Z"

// NewEvent is the create payload. Datetimes are sent as UTC ISO-8601.
type NewEvent struct {
	Title         string
	EventDatetime time.Time
	Address       string
	TravelMode    TravelMode
	StartDatetime time.Time
	EndDatetime   time.Time
}

func (n NewEvent) MarshalJSON() ([]byte, error) {
	eventAt := n.EventDatetime
	if eventAt.IsZero() {
		eventAt = n.StartDatetime
	}
	return json.Marshal(struct {
		Title         string     `json:"title"`
		EventDatetime string     `json:"event_datetime"`
		Address       string     `json:"address"`
		TravelMode    TravelMode `json:"travel_mode"`
		StartDatetime string     `json:"start_datetime"`
		EndDatetime   string     `json:"end_datetime"`
	}{
		Title:         n.Title,
		EventDatetime: FormatISO(eventAt),
		Address:       n.Address,
		TravelMode:    n.TravelMode,
		StartDatetime: FormatISO(n.StartDatetime),
		EndDatetime:   FormatISO(n.EndDatetime),
	})
}

// FormatISO renders t in UTC with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}
