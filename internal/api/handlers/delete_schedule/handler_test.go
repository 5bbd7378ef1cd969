package delete_schedule

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tkardach/SwimClubServer/internal/service/schedules"
	"github.com/tkardach/SwimClubServer/internal/service/schedules/models"
	"github.com/tkardach/SwimClubServer/pkg/logger"
)

type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) Delete(ctx context.Context, id int64) (*models.ScheduleResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduleResponse), args.Error(1)
}

func del(svc ScheduleService, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/schedules/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &MockScheduleService{}
	svc.On("Delete", mock.Anything, int64(5)).Return(&models.ScheduleResponse{ID: 5, Day: 4}, nil)
	svc.On("Delete", mock.Anything, int64(6)).Return(nil, schedules.ErrScheduleNotFound)
	svc.On("Delete", mock.Anything, int64(7)).Return(nil, errors.Join(schedules.ErrInternal, errors.New("db gone")))

	rec := del(svc, "5")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"day":4`)

	assert.Equal(t, http.StatusNotFound, del(svc, "6").Code)
	assert.Equal(t, http.StatusInternalServerError, del(svc, "7").Code)
	assert.Equal(t, http.StatusBadRequest, del(svc, "x").Code)
}
