package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
	_ "time/tzdata"
)

// datetimeLayouts are tried in order. The ones without a zone are read in
// the local zone.
var datetimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDatetime reads an ISO-8601 datetime with or without a zone offset.
func ParseDatetime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	for _, layout := range datetimeLayouts {
		if lt, lerr := time.ParseInLocation(layout, s, time.Local); lerr == nil {
			return lt, nil
		}
	}
	return time.Time{}, err
}

// looseTime is a nullable datetime that never fails to decode.
type looseTime struct {
	t *time.Time
}

func (l *looseTime) UnmarshalJSON(b []byte) error {
	l.t = nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil || strings.TrimSpace(s) == "" {
		return nil
	}
	t, err := ParseDatetime(s)
	if err != nil {
		return nil
	}
	l.t = &t
	return nil
}
