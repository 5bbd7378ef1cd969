package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/tkardach/SwimClubServer/pkg/types"
)

// ErrInvalidSchedule is returned by Schedule.Validate
var ErrInvalidSchedule = errors.New("domain: invalid schedule")

// TimeslotType represents the kind of activity a timeslot is reserved for
type TimeslotType string

const (
	TimeslotFamily  TimeslotType = "family"
	TimeslotLap     TimeslotType = "lap"
	TimeslotLessons TimeslotType = "lessons"
	TimeslotBlocked TimeslotType = "blocked"
)

// IsKnown returns true for one of the four timeslot types
func (t TimeslotType) IsKnown() bool {
	switch t {
	case TimeslotFamily, TimeslotLap, TimeslotLessons, TimeslotBlocked:
		return true
	}
	return false
}

// IsReservable returns true if members can book this type
func (t TimeslotType) IsReservable() bool {
	for _, r := range ReservableTypes {
		if r == t {
			return true
		}
	}
	return false
}

// TimeslotDefinition is one bookable window of a schedule
type TimeslotDefinition struct {
	Type         TimeslotType
	Start        types.NumericTime
	End          types.NumericTime
	MaxOccupants int
}

// Matches returns true if the definition has the given start, end and type
func (d TimeslotDefinition) Matches(start, end types.NumericTime, t TimeslotType) bool {
	return d.Start == start && d.End == end && d.Type == t
}

// Validate checks times, ordering, type and capacity
func (d TimeslotDefinition) Validate() error {
	if !d.Type.IsKnown() {
		return fmt.Errorf("%w: unknown timeslot type %q", ErrInvalidSchedule, d.Type)
	}
	if err := d.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidSchedule, err)
	}
	if err := d.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidSchedule, err)
	}
	if d.End <= d.Start {
		return fmt.Errorf("%w: timeslot end %d must be after start %d", ErrInvalidSchedule, d.End, d.Start)
	}
	if d.MaxOccupants < 0 || d.MaxOccupants > MaxSlotOccupants {
		return fmt.Errorf("%w: maxOccupants must be between 0 and %d", ErrInvalidSchedule, MaxSlotOccupants)
	}
	return nil
}

// Schedule is the set of timeslots for one weekday, effective from StartDate
type Schedule struct {
	ID        int64
	Day       int // 0 = Sunday
	StartDate time.Time
	Timeslots []TimeslotDefinition
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the weekday and every timeslot
func (s *Schedule) Validate() error {
	if s.Day < MinWeekday || s.Day > MaxWeekday {
		return fmt.Errorf("%w: day %d is not a valid weekday", ErrInvalidSchedule, s.Day)
	}
	if s.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidSchedule)
	}
	for i, slot := range s.Timeslots {
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("timeslot %d: %w", i, err)
		}
	}
	return nil
}

// FindTimeslot returns the definition matching start, end and type
func (s *Schedule) FindTimeslot(start, end types.NumericTime, t TimeslotType) (TimeslotDefinition, bool) {
	for _, slot := range s.Timeslots {
		if slot.Matches(start, end, t) {
			return slot, true
		}
	}
	return TimeslotDefinition{}, false
}

// DateOnly truncates t to midnight in its own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay returns true if both times fall on the same calendar date
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
