package domain

// Default booking policy values
const (
	DefaultFamilyMaxPerWeek = 3
	DefaultFamilyMaxPerDay  = 1
	DefaultLapMaxPerWeek    = 4
	DefaultLapMaxPerDay     = 2
	DefaultCutoffHour       = 18
	DefaultTimeZone         = "America/Los_Angeles"
)

// Schedule validation constants
const (
	MinWeekday       = 0 // Sunday
	MaxWeekday       = 6 // Saturday
	MaxSlotOccupants = 1000
	MaxIssueLength   = 5000
	EventsPageSize   = 1000 // events per calendar listing page
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ReservableTypes timeslot types members can book
var ReservableTypes = []TimeslotType{
	TimeslotFamily,
	TimeslotLap,
}
