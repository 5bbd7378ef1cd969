package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		// 2024-06-15 суббота
		{"saturday starts the week", day(2024, 6, 15), day(2024, 6, 15), day(2024, 6, 21)},
		{"sunday", day(2024, 6, 16), day(2024, 6, 15), day(2024, 6, 21)},
		{"thursday", day(2024, 6, 20), day(2024, 6, 15), day(2024, 6, 21)},
		{"friday ends the week", day(2024, 6, 21), day(2024, 6, 15), day(2024, 6, 21)},
		{"time of day ignored", time.Date(2024, 6, 19, 23, 59, 0, 0, time.UTC), day(2024, 6, 15), day(2024, 6, 21)},
		{"across month", day(2024, 7, 2), day(2024, 6, 29), day(2024, 7, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBounds(tt.date)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestBookingPolicy_WindowEnd(t *testing.T) {
	p := DefaultBookingPolicy()

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"saturday morning", time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC), day(2024, 6, 21)},
		{"thursday before cutoff", time.Date(2024, 6, 20, 17, 59, 0, 0, time.UTC), day(2024, 6, 21)},
		{"thursday at cutoff", time.Date(2024, 6, 20, 18, 0, 0, 0, time.UTC), day(2024, 6, 28)},
		{"friday", time.Date(2024, 6, 21, 8, 0, 0, 0, time.UTC), day(2024, 6, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.WindowEnd(tt.now))
		})
	}

	now := time.Date(2024, 6, 17, 10, 0, 0, 0, time.UTC)
	assert.True(t, p.WithinWindow(day(2024, 6, 21), now))
	assert.False(t, p.WithinWindow(day(2024, 6, 22), now))
}

func TestBookingPolicy_SeasonEnded(t *testing.T) {
	p := DefaultBookingPolicy()
	assert.False(t, p.SeasonEnded(day(2024, 12, 31)), "no season end configured")

	p.SeasonEndMonth = time.September
	p.SeasonEndDay = 30
	assert.False(t, p.SeasonEnded(day(2024, 9, 30)))
	assert.True(t, p.SeasonEnded(day(2024, 10, 1)))
	assert.False(t, p.SeasonEnded(day(2025, 6, 1)))
}

func TestBookingPolicy_Quotas(t *testing.T) {
	p := DefaultBookingPolicy()

	assert.Equal(t, 3, p.MaxPerWeek(TimeslotFamily))
	assert.Equal(t, 1, p.MaxPerDay(TimeslotFamily))
	assert.Equal(t, 4, p.MaxPerWeek(TimeslotLap))
	assert.Equal(t, 2, p.MaxPerDay(TimeslotLap))
}
