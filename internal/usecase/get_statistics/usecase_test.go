package get_statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tkardach/SwimClubServer/internal/domain"
	"github.com/tkardach/SwimClubServer/pkg/logger"
)

type MockCalendarClient struct {
	mock.Mock
}

func (m *MockCalendarClient) GetEventsForRange(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

type MockRosterClient struct {
	mock.Mock
}

func (m *MockRosterClient) GetAllPaidMembersDict(ctx context.Context, lite bool) (map[string]domain.Member, error) {
	args := m.Called(ctx, lite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Member), args.Error(1)
}

func date(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func family(summary string, d time.Time) domain.Event {
	return domain.Event{
		Summary:     summary,
		Description: string(domain.TimeslotFamily),
		Start:       d.Add(8 * time.Hour),
		End:         d.Add(9*time.Hour + 30*time.Minute),
	}
}

func TestExecute_WeekStatistics(t *testing.T) {
	cal := &MockCalendarClient{}
	roster := &MockRosterClient{}

	// Неделя 2024-06-15 (суббота) - 2024-06-21 (пятница)
	cal.On("GetEventsForRange", mock.Anything, date(6, 15), date(6, 22)).Return([]domain.Event{
		family("101", date(6, 15)),
		family("#101", date(6, 17)),
		family("101", date(6, 19)),
		family("202", date(6, 18)),
		{Summary: "202", Description: string(domain.TimeslotLap), Start: date(6, 18), End: date(6, 18).Add(time.Hour)},
		{Summary: "Closed", Description: string(domain.TimeslotBlocked), Start: date(6, 20), End: date(6, 21)},
	}, nil)
	cal.On("GetEventsForRange", mock.Anything, date(6, 8), date(6, 15)).Return([]domain.Event{family("101", date(6, 10))}, nil)
	cal.On("GetEventsForRange", mock.Anything, date(6, 1), date(6, 8)).Return([]domain.Event{}, nil)
	cal.On("GetEventsForRange", mock.Anything, date(5, 25), date(6, 1)).Return([]domain.Event{
		family("101", date(5, 27)),
		family("303", date(5, 28)),
	}, nil)
	cal.On("GetEventsForRange", mock.Anything, date(5, 18), date(5, 25)).Return([]domain.Event{}, nil)

	roster.On("GetAllPaidMembersDict", mock.Anything, true).Return(map[string]domain.Member{
		"101PM": {ID: "101PM"},
		"202PM": {ID: "202PM"},
		"303PM": {ID: "303PM"},
	}, nil)

	uc := NewUseCase(cal, roster, domain.DefaultBookingPolicy(), logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: date(6, 19)})

	require.NoError(t, err)
	assert.Equal(t, date(6, 15), resp.WeekStart)
	assert.Equal(t, date(6, 21), resp.WeekEnd)
	assert.Equal(t, map[string]int{"101": 3, "202": 1}, resp.Reservations)
	assert.Equal(t, 2, resp.MembersReserved)
	assert.Equal(t, 3, resp.PaidMembers)
	assert.Equal(t, 1, resp.MembersAtLimit)

	require.Len(t, resp.PreviousWeeks, HistoryWeeks)
	assert.Equal(t, date(6, 8), resp.PreviousWeeks[0].WeekStart)
	assert.Equal(t, []int{1, 0, 2, 0}, []int{
		resp.PreviousWeeks[0].MembersReserved,
		resp.PreviousWeeks[1].MembersReserved,
		resp.PreviousWeeks[2].MembersReserved,
		resp.PreviousWeeks[3].MembersReserved,
	})
	cal.AssertExpectations(t)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("missing date", func(t *testing.T) {
		uc := NewUseCase(&MockCalendarClient{}, &MockRosterClient{}, domain.DefaultBookingPolicy(), logger.NewNop())
		_, err := uc.Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("calendar failure", func(t *testing.T) {
		cal := &MockCalendarClient{}
		cal.On("GetEventsForRange", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("quota"))
		uc := NewUseCase(cal, &MockRosterClient{}, domain.DefaultBookingPolicy(), logger.NewNop())

		_, err := uc.Execute(context.Background(), &Request{Date: date(6, 19)})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("roster failure", func(t *testing.T) {
		cal := &MockCalendarClient{}
		cal.On("GetEventsForRange", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Event{}, nil)
		roster := &MockRosterClient{}
		roster.On("GetAllPaidMembersDict", mock.Anything, true).Return(nil, errors.New("sheet gone"))
		uc := NewUseCase(cal, roster, domain.DefaultBookingPolicy(), logger.NewNop())

		_, err := uc.Execute(context.Background(), &Request{Date: date(6, 19)})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
