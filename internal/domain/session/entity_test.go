//go:build unit

package session_test

import (
	"testing"
	"time"

	"kidcheck/internal/domain/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, start, end time.Time, leadMin, minAge, maxAge int) *session.Session {
	t.Helper()
	s, err := session.NewSession(uuid.New(), "Morning Care", true, start, end, leadMin, minAge, maxAge, 20)
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)

	cases := []struct {
		name           string
		start, end     time.Time
		minAge, maxAge int
		errIs          error
	}{
		{name: "valid session", start: start, end: end, minAge: 3, maxAge: 12},
		{name: "equal age band boundaries", start: start, end: end, minAge: 6, maxAge: 6},
		{name: "start equal to end", start: start, end: start, minAge: 3, maxAge: 12, errIs: session.ErrInvalidTimeRange},
		{name: "start after end", start: end, end: start, minAge: 3, maxAge: 12, errIs: session.ErrInvalidTimeRange},
		{name: "inverted age band", start: start, end: end, minAge: 10, maxAge: 5, errIs: session.ErrInvalidAgeBand},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := session.NewSession(uuid.New(), "Morning Care", true, c.start, c.end, 30, c.minAge, c.maxAge, 20)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
		})
	}

	t.Run("negative lead is clamped to zero", func(t *testing.T) {
		s, err := session.NewSession(uuid.New(), "Morning Care", true, start, end, -5, 3, 12, 20)
		require.NoError(t, err)
		assert.Equal(t, 0, s.CheckinLeadMin())
	})
}

func TestSession_IsCheckInOpen(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)
	s := newSession(t, start, end, 30, 3, 12)

	cases := []struct {
		name string
		now  time.Time
		open bool
	}{
		{name: "before the lead window", now: start.Add(-31 * time.Minute), open: false},
		{name: "exactly at window open", now: start.Add(-30 * time.Minute), open: true},
		{name: "during the lead window", now: start.Add(-10 * time.Minute), open: true},
		{name: "mid session", now: start.Add(time.Hour), open: true},
		{name: "exactly at session end", now: end, open: true},
		{name: "after session end", now: end.Add(time.Second), open: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.open, s.IsCheckInOpen(c.now))
		})
	}
}

func TestSession_IsAgeEligible(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s := newSession(t, start, start.Add(time.Hour), 30, 3, 12)

	assert.False(t, s.IsAgeEligible(2))
	assert.True(t, s.IsAgeEligible(3), "lower boundary is inclusive")
	assert.True(t, s.IsAgeEligible(7))
	assert.True(t, s.IsAgeEligible(12), "upper boundary is inclusive")
	assert.False(t, s.IsAgeEligible(13))
}
