package get_statistics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getStatistics "github.com/tkardach/SwimClubServer/internal/usecase/get_statistics"
	"github.com/tkardach/SwimClubServer/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *getStatistics.Request) (*getStatistics.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getStatistics.Response), args.Error(1)
}

func serve(uc GetStatisticsUseCase, date string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/statistics/week/"+date, nil)
	req = mux.SetURLVars(req, map[string]string{"date": date})
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		weekStart := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
		uc := &MockUseCase{}
		uc.On("Execute", mock.Anything, mock.Anything).Return(&getStatistics.Response{
			WeekStart:       weekStart,
			WeekEnd:         weekStart.AddDate(0, 0, 6),
			Reservations:    map[string]int{"101": 3, "103": 1},
			MembersReserved: 2,
			PaidMembers:     40,
			MembersAtLimit:  1,
			PreviousWeeks:   []getStatistics.WeekSummary{{WeekStart: weekStart.AddDate(0, 0, -7), MembersReserved: 5}},
		}, nil)

		rec := serve(uc, "2024-06-19")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp StatisticsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "2024-06-15", resp.WeekStart)
		assert.Equal(t, "2024-06-21", resp.WeekEnd)
		assert.Equal(t, 3, resp.Reservations["101"])
		assert.Equal(t, 1, resp.MembersAtLimit)
		require.Len(t, resp.PreviousWeeks, 1)
		assert.Equal(t, "2024-06-08", resp.PreviousWeeks[0].WeekStart)
	})

	t.Run("bad date", func(t *testing.T) {
		uc := &MockUseCase{}
		assert.Equal(t, http.StatusBadRequest, serve(uc, "yesterday").Code)
		uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("internal", func(t *testing.T) {
		uc := &MockUseCase{}
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getStatistics.ErrInternal)
		assert.Equal(t, http.StatusInternalServerError, serve(uc, "2024-06-19").Code)
	})
}
