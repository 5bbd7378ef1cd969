package create_schedule

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tkardach/SwimClubServer/internal/service/schedules"
	"github.com/tkardach/SwimClubServer/internal/service/schedules/models"
	"github.com/tkardach/SwimClubServer/pkg/logger"
)

type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) Create(ctx context.Context, req *models.ScheduleRequest) (*models.ScheduleResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduleResponse), args.Error(1)
}

const body = `{"day":3,"startDate":"2024-06-01","timeslots":[{"type":"family","start":800,"end":930,"maxOccupants":4}]}`

func post(svc ScheduleService, payload string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/schedules", strings.NewReader(payload)))
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &MockScheduleService{}
		svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.ScheduleRequest) bool {
			return req.Day == 3 && req.StartDate.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) &&
				len(req.Timeslots) == 1 && req.Timeslots[0].MaxOccupants == 4
		})).Return(&models.ScheduleResponse{ID: 7, Day: 3, StartDate: "2024-06-01"}, nil)

		rec := post(svc, body)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":7`)
		svc.AssertExpectations(t)
	})

	t.Run("rfc3339 start date", func(t *testing.T) {
		svc := &MockScheduleService{}
		svc.On("Create", mock.Anything, mock.Anything).Return(&models.ScheduleResponse{ID: 8}, nil)

		rec := post(svc, `{"day":3,"startDate":"2024-06-01T07:00:00Z","timeslots":[{"type":"lap","start":930,"end":1100,"maxOccupants":6}]}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc := &MockScheduleService{}
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: day 3", schedules.ErrScheduleAlreadyExists))

		rec := post(svc, body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), msgAlreadyExists)
	})

	t.Run("invalid timeslot from service", func(t *testing.T) {
		svc := &MockScheduleService{}
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: end must be after start", schedules.ErrInvalidInput))

		assert.Equal(t, http.StatusBadRequest, post(svc, body).Code)
	})

	badBodies := map[string]string{
		"day out of range":  `{"day":7,"startDate":"2024-06-01","timeslots":[{"type":"family","start":800,"end":930,"maxOccupants":4}]}`,
		"no timeslots":      `{"day":3,"startDate":"2024-06-01","timeslots":[]}`,
		"missing startDate": `{"day":3,"timeslots":[{"type":"family","start":800,"end":930,"maxOccupants":4}]}`,
		"bad startDate":     `{"day":3,"startDate":"June 1","timeslots":[{"type":"family","start":800,"end":930,"maxOccupants":4}]}`,
		"zero occupants":    `{"day":3,"startDate":"2024-06-01","timeslots":[{"type":"family","start":800,"end":930,"maxOccupants":0}]}`,
	}
	for name, payload := range badBodies {
		t.Run(name, func(t *testing.T) {
			svc := &MockScheduleService{}
			assert.Equal(t, http.StatusBadRequest, post(svc, payload).Code)
			svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}
