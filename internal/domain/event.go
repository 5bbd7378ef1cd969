package domain

import (
	"strings"
	"time"

	"github.com/tkardach/SwimClubServer/pkg/types"
)

// legacySubjectPrefix is prepended to certificate numbers by older calendar entries
const legacySubjectPrefix = "#"

// Event is a reservation materialized as a calendar event.
// Summary carries the member certificate number, Description the timeslot type.
type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Attendees   []string
}

// MemberSubject returns the event summary written for a member
func MemberSubject(certificateNumber string) string {
	return certificateNumber
}

// BelongsTo returns true if the event summary identifies the member,
// accepting both the bare and the "#"-prefixed certificate number
func (e Event) BelongsTo(certificateNumber string) bool {
	if certificateNumber == "" {
		return false
	}
	return e.Summary == certificateNumber || e.Summary == legacySubjectPrefix+certificateNumber
}

// SubjectCertificate returns the certificate number in the summary without the legacy prefix
func (e Event) SubjectCertificate() string {
	return strings.TrimPrefix(e.Summary, legacySubjectPrefix)
}

// Type returns the reservation type stored in the description
func (e Event) Type() TimeslotType {
	return TimeslotType(e.Description)
}

// IsBlocking returns true for administrative blocks
func (e Event) IsBlocking() bool {
	return e.Type() == TimeslotBlocked
}

// StartTime returns the start as HHMM
func (e Event) StartTime() types.NumericTime {
	return types.NewNumericTime(e.Start)
}

// EndTime returns the end as HHMM
func (e Event) EndTime() types.NumericTime {
	return types.NewNumericTime(e.End)
}

// HasTimes returns true if the event starts and ends exactly at start and end
func (e Event) HasTimes(start, end types.NumericTime) bool {
	return !e.AllDay && e.StartTime() == start && e.EndTime() == end
}

// Covers returns true if the event spans the whole [start, end] window
func (e Event) Covers(start, end types.NumericTime) bool {
	return !e.AllDay && e.StartTime() <= start && e.EndTime() >= end
}

// OnDate returns true if the event starts on the date
func (e Event) OnDate(date time.Time) bool {
	return SameDay(e.Start, date)
}

// CountWithTimes counts events occupying exactly [start, end]
func CountWithTimes(events []Event, start, end types.NumericTime) int {
	count := 0
	for _, e := range events {
		if e.HasTimes(start, end) {
			count++
		}
	}
	return count
}

// FindBlocking returns the first blocked event present in events
func FindBlocking(events []Event) (Event, bool) {
	for _, e := range events {
		if e.IsBlocking() {
			return e, true
		}
	}
	return Event{}, false
}

// FindBlockingCover returns a blocked event spanning [start, end]
func FindBlockingCover(events []Event, start, end types.NumericTime) (Event, bool) {
	for _, e := range events {
		if e.IsBlocking() && e.Covers(start, end) {
			return e, true
		}
	}
	return Event{}, false
}

// FilterByMember keeps the member's events
func FilterByMember(events []Event, certificateNumber string) []Event {
	result := make([]Event, 0, len(events))
	for _, e := range events {
		if e.BelongsTo(certificateNumber) {
			result = append(result, e)
		}
	}
	return result
}

// FilterByType keeps events of the reservation type
func FilterByType(events []Event, t TimeslotType) []Event {
	result := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Type() == t {
			result = append(result, e)
		}
	}
	return result
}

// FilterByDate keeps events starting on the date
func FilterByDate(events []Event, date time.Time) []Event {
	result := make([]Event, 0, len(events))
	for _, e := range events {
		if e.OnDate(date) {
			result = append(result, e)
		}
	}
	return result
}

// IsVacant reports whether a timeslot can take another reservation given the events on its date
func IsVacant(slot TimeslotDefinition, events []Event) bool {
	if slot.Type == TimeslotBlocked || slot.Type == TimeslotLessons {
		return false
	}
	if CountWithTimes(events, slot.Start, slot.End) >= slot.MaxOccupants {
		return false
	}
	if _, blocked := FindBlockingCover(events, slot.Start, slot.End); blocked {
		return false
	}
	return true
}
