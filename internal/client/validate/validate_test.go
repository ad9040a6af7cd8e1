package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tripcal/internal/client/models"
)

func requireField(t *testing.T, err error, field, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, field, fe.Field)
	assert.Equal(t, msg, fe.Message)
}

func TestEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", "ann.lee+trip@example.com"} {
		assert.True(t, Email(ok), ok)
	}
	for _, bad := range []string{"", "ann", "ann@example", "ann lee@example.com", "@example.com", "ann@@example.com"} {
		assert.False(t, Email(bad), bad)
	}
}

func TestPassword(t *testing.T) {
	tests := map[string]bool{
		"abcdef1!":  true,
		"Abcdefg1*": true,
		"abcde1!":   false,
		"abcdefgh!": false,
		"abcdefgh1": false,
		"abcdefg1?": false,
	}
	for pw, want := range tests {
		assert.Equal(t, want, Password(pw), pw)
	}
}

func TestLogin(t *testing.T) {
	require.NoError(t, Login("ann@example.com", "abcdef1!"))
	requireField(t, Login("nope", "abcdef1!"), "email", MsgInvalidCredentials)
	requireField(t, Login("ann@example.com", "short"), "password", MsgInvalidCredentials)
}

func TestSignup(t *testing.T) {
	require.NoError(t, Signup("Mary-Ann", "Lee", "ann@example.com", "abcdef1!"))

	requireField(t, Signup("Ann1", "Lee", "ann@example.com", "abcdef1!"), "first_name", MsgInvalidName)
	requireField(t, Signup("Ann", "Lee-Smith", "ann@example.com", "abcdef1!"), "last_name", MsgInvalidName)
	requireField(t, Signup("Ann", "Lee", "ann.example.com", "abcdef1!"), "email", MsgInvalidEmail)
	requireField(t, Signup("Ann", "Lee", "ann@example.com", "abcdefgh"), "password", MsgInvalidPassword)
}

func TestProfile(t *testing.T) {
	require.NoError(t, Profile("Ann", "Lee", "ann@example.com"))

	requireField(t, Profile("Or", "Lee", "ann@example.com"), "first_name", MsgInvalidName)
	requireField(t, Profile("Ann", "and", "ann@example.com"), "last_name", MsgInvalidName)
	requireField(t, Profile("Ann", "Lee", "o'neil@example.com"), "email", MsgInvalidEmail)

	// Words only match on boundaries.
	require.NoError(t, Profile("Andrea", "Orwell", "ann@example.com"))
}

func TestSafeText(t *testing.T) {
	assert.True(t, SafeEventText("Dinner at Luigi's"))
	assert.False(t, SafeEventText("Dinner; drop table"))
	assert.False(t, SafeEventText("select a restaurant"))
	assert.False(t, SafeEventText("a -- b"))

	assert.True(t, SafeProfileText("Sandra"))
	assert.False(t, SafeProfileText("O'Hara"))
	assert.False(t, SafeProfileText("Tom AND Jerry"))
}

func TestPasswordChange(t *testing.T) {
	require.NoError(t, PasswordChange("abcdef1!", "abcdef1!"))
	requireField(t, PasswordChange("abcdef1!", "abcdef1?"), "password", MsgPasswordMismatch)
	requireField(t, PasswordChange("abcdefgh", "abcdefgh"), "password", MsgInvalidPassword)
}

func TestVerificationCode(t *testing.T) {
	require.NoError(t, VerificationCode("123456"))
	requireField(t, VerificationCode("  "), "code", MsgMissingCode)
}

func TestNewEvent(t *testing.T) {
	start := time.Date(2025, 3, 12, 19, 0, 0, 0, time.UTC)
	valid := models.NewEvent{
		Title:         "Dinner",
		Address:       "1 Main St",
		TravelMode:    models.TravelModeCar,
		StartDatetime: start,
		EndDatetime:   start.Add(2 * time.Hour),
	}
	require.NoError(t, NewEvent(valid))

	tests := []struct {
		name  string
		edit  func(*models.NewEvent)
		field string
		msg   string
	}{
		{
			name:  "denylisted title wins over missing address",
			edit:  func(e *models.NewEvent) { e.Title = "x; DROP"; e.Address = "" },
			field: "title",
			msg:   MsgForbiddenInput,
		},
		{
			name:  "denylisted address",
			edit:  func(e *models.NewEvent) { e.Address = "Union Square" },
			field: "address",
			msg:   MsgForbiddenInput,
		},
		{
			name:  "blank title",
			edit:  func(e *models.NewEvent) { e.Title = "  " },
			field: "title",
			msg:   MsgRequired,
		},
		{
			name:  "missing address",
			edit:  func(e *models.NewEvent) { e.Address = "" },
			field: "address",
			msg:   MsgRequired,
		},
		{
			name:  "missing end",
			edit:  func(e *models.NewEvent) { e.EndDatetime = time.Time{} },
			field: "datetime",
			msg:   MsgMissingDatetime,
		},
		{
			name:  "end before start",
			edit:  func(e *models.NewEvent) { e.EndDatetime = start.Add(-time.Minute) },
			field: "end_datetime",
			msg:   MsgEndBeforeStart,
		},
		{
			name:  "no travel mode",
			edit:  func(e *models.NewEvent) { e.TravelMode = 0 },
			field: "travel_mode",
			msg:   MsgInvalidTravelMode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := valid
			tt.edit(&ev)
			requireField(t, NewEvent(ev), tt.field, tt.msg)
		})
	}

	t.Run("end equal to start is fine", func(t *testing.T) {
		ev := valid
		ev.EndDatetime = ev.StartDatetime
		assert.NoError(t, NewEvent(ev))
	})
}
