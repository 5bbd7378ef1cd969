package domain

import (
	"time"
)

// BookingPolicy holds the quota, cutoff and season settings of the admission engine.
// Weeks run Saturday through Friday.
type BookingPolicy struct {
	FamilyMaxPerWeek int
	FamilyMaxPerDay  int
	LapMaxPerWeek    int
	LapMaxPerDay     int

	// Once the clock reaches CutoffWeekday at CutoffHour the next week opens for booking
	CutoffWeekday time.Weekday
	CutoffHour    int

	// No bookings after SeasonEndMonth/SeasonEndDay of the booking year; zero month disables the check
	SeasonEndMonth time.Month
	SeasonEndDay   int

	SameDayExceptionDisabled bool

	Location *time.Location
}

// DefaultBookingPolicy returns the policy used when nothing is configured
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		FamilyMaxPerWeek: DefaultFamilyMaxPerWeek,
		FamilyMaxPerDay:  DefaultFamilyMaxPerDay,
		LapMaxPerWeek:    DefaultLapMaxPerWeek,
		LapMaxPerDay:     DefaultLapMaxPerDay,
		CutoffWeekday:    time.Thursday,
		CutoffHour:       DefaultCutoffHour,
		Location:         time.UTC,
	}
}

// MaxPerWeek returns the weekly quota for the reservation type
func (p BookingPolicy) MaxPerWeek(t TimeslotType) int {
	if t == TimeslotFamily {
		return p.FamilyMaxPerWeek
	}
	return p.LapMaxPerWeek
}

// MaxPerDay returns the daily quota for the reservation type
func (p BookingPolicy) MaxPerDay(t TimeslotType) int {
	if t == TimeslotFamily {
		return p.FamilyMaxPerDay
	}
	return p.LapMaxPerDay
}

// In converts t to the club time zone
func (p BookingPolicy) In(t time.Time) time.Time {
	if p.Location == nil {
		return t
	}
	return t.In(p.Location)
}

// ClubDate returns midnight of t's calendar date in the club time zone
func (p BookingPolicy) ClubDate(t time.Time) time.Time {
	loc := p.Location
	if loc == nil {
		loc = t.Location()
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Today returns the current club date
func (p BookingPolicy) Today(now time.Time) time.Time {
	return DateOnly(p.In(now))
}

// weekIndex orders weekdays from Saturday (0) to Friday (6)
func weekIndex(d time.Weekday) int {
	return (int(d) + 1) % 7
}

// WeekStart returns the Saturday that starts the week containing date
func WeekStart(date time.Time) time.Time {
	day := DateOnly(date)
	return day.AddDate(0, 0, -weekIndex(day.Weekday()))
}

// WeekBounds returns the Saturday and Friday (both at midnight) of the week containing date
func WeekBounds(date time.Time) (time.Time, time.Time) {
	start := WeekStart(date)
	return start, start.AddDate(0, 0, 6)
}

// WindowEnd returns the last bookable date (midnight) as seen at now
func (p BookingPolicy) WindowEnd(now time.Time) time.Time {
	now = p.In(now)
	_, end := WeekBounds(now)

	nowIdx := weekIndex(now.Weekday())
	cutoffIdx := weekIndex(p.CutoffWeekday)
	if nowIdx > cutoffIdx || (nowIdx == cutoffIdx && now.Hour() >= p.CutoffHour) {
		end = end.AddDate(0, 0, 7)
	}
	return end
}

// WithinWindow returns true if date is not past the booking window end
func (p BookingPolicy) WithinWindow(date, now time.Time) bool {
	return !DateOnly(date).After(p.WindowEnd(now))
}

// SeasonEnded returns true if date falls after the configured season end
func (p BookingPolicy) SeasonEnded(date time.Time) bool {
	if p.SeasonEndMonth == 0 {
		return false
	}
	day := DateOnly(date)
	end := time.Date(day.Year(), p.SeasonEndMonth, p.SeasonEndDay, 0, 0, 0, 0, day.Location())
	return day.After(end)
}
