// Package session models a supervised service session a child can be
// checked into: a scheduled, capacity-bounded activity with an age band
// and a check-in window relative to its start.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeRange = errors.New("session start must be before end")
	ErrInvalidAgeBand   = errors.New("minimum age must not exceed maximum age")
)

type Session struct {
	id             uuid.UUID
	name           string
	active         bool
	startTime      time.Time
	endTime        time.Time
	checkinLeadMin int
	minAge         int
	maxAge         int
	maxCapacity    int
}

func NewSession(
	id uuid.UUID,
	name string,
	active bool,
	startTime, endTime time.Time,
	checkinLeadMin, minAge, maxAge, maxCapacity int,
) (*Session, error) {
	if !startTime.Before(endTime) {
		return nil, ErrInvalidTimeRange
	}
	if minAge > maxAge {
		return nil, ErrInvalidAgeBand
	}
	if checkinLeadMin < 0 {
		checkinLeadMin = 0
	}

	return &Session{
		id:             id,
		name:           name,
		active:         active,
		startTime:      startTime,
		endTime:        endTime,
		checkinLeadMin: checkinLeadMin,
		minAge:         minAge,
		maxAge:         maxAge,
		maxCapacity:    maxCapacity,
	}, nil
}

// IsCheckInOpen reports whether now falls inside the check-in window
// [start - lead, end]. Pure; the caller supplies the clock.
func (s *Session) IsCheckInOpen(now time.Time) bool {
	opensAt := s.startTime.Add(-time.Duration(s.checkinLeadMin) * time.Minute)
	return !now.Before(opensAt) && !now.After(s.endTime)
}

// IsAgeEligible reports whether a whole-year age fits the session's age
// band, boundaries inclusive.
func (s *Session) IsAgeEligible(ageYears int) bool {
	return ageYears >= s.minAge && ageYears <= s.maxAge
}

func (s *Session) ID() uuid.UUID        { return s.id }
func (s *Session) Name() string         { return s.name }
func (s *Session) IsActive() bool       { return s.active }
func (s *Session) StartTime() time.Time { return s.startTime }
func (s *Session) EndTime() time.Time   { return s.endTime }
func (s *Session) CheckinLeadMin() int  { return s.checkinLeadMin }
func (s *Session) MinAge() int          { return s.minAge }
func (s *Session) MaxAge() int          { return s.maxAge }
func (s *Session) MaxCapacity() int     { return s.maxCapacity }
