package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	deleteReservationHandler "github.com/tkardach/SwimClubServer/internal/api/handlers/delete_reservation"
	"github.com/tkardach/SwimClubServer/internal/api/middleware"
	"github.com/tkardach/SwimClubServer/internal/service/reservations/models"
	"github.com/tkardach/SwimClubServer/pkg/logger"
)

const testSecret = "routes-secret"

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) Delete(ctx context.Context, id string, caller *models.Caller) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationResponse), args.Error(1)
}

// named отвечает 200 с именем маршрута
func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(name))
	}
}

func newTestRouter(svc *MockReservationService) *mux.Router {
	r := mux.NewRouter()
	registerRoutes(r.PathPrefix("/api/v1").Subrouter(), middleware.NewAuth(testSecret, logger.NewNop()), apiHandlers{
		getTimeslots:      named("timeslots"),
		listSchedules:     named("schedules"),
		currentSchedule:   named("current"),
		scheduleForDate:   named("date"),
		schedulePeriod:    named("period"),
		createReservation: named("create-reservation"),
		reportIssue:       named("issue"),
		getMyReservations: named("my-reservations"),
		deleteReservation: deleteReservationHandler.NewHandler(svc, logger.NewNop()).Handle,
		createSchedule:    named("create-schedule"),
		updateSchedule:    named("update-schedule"),
		deleteSchedule:    named("delete-schedule"),
		getAccounts:       named("accounts"),
		getWeekStatistics: named("statistics"),
	})
	return r
}

func sessionToken(t *testing.T, email string, isAdmin bool) string {
	t.Helper()

	claims := middleware.Claims{
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func serve(r *mux.Router, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_DeleteReservation(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		svc := &MockReservationService{}

		rec := serve(newTestRouter(svc), http.MethodDelete, "/api/v1/reservations/evt-1", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "session is required")
		svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc := &MockReservationService{}

		rec := serve(newTestRouter(svc), http.MethodDelete, "/api/v1/reservations/evt-1", "garbage")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid token.")
		svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("member session", func(t *testing.T) {
		svc := &MockReservationService{}
		svc.On("Delete", mock.Anything, "evt-1", &models.Caller{Email: "smith@example.com"}).
			Return(&models.ReservationResponse{ID: "evt-1", Type: "family"}, nil)

		rec := serve(newTestRouter(svc), http.MethodDelete, "/api/v1/reservations/evt-1",
			sessionToken(t, "smith@example.com", false))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"evt-1"`)
		svc.AssertExpectations(t)
	})
}

func TestRoutes_Auth(t *testing.T) {
	member := sessionToken(t, "smith@example.com", false)
	admin := sessionToken(t, "admin@example.com", true)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
		wantBody   string
	}{
		{"public schedules", http.MethodGet, "/api/v1/schedules", "", http.StatusOK, "schedules"},
		{"public timeslots", http.MethodGet, "/api/v1/timeslots/2024-06-19", "", http.StatusOK, "timeslots"},
		{"reservation without token", http.MethodPost, "/api/v1/reservations", "", http.StatusOK, "create-reservation"},
		{"reservation with bad token", http.MethodPost, "/api/v1/reservations", "garbage", http.StatusBadRequest, "Invalid token."},
		{"my reservations without token", http.MethodGet, "/api/v1/reservations/me", "", http.StatusUnauthorized, "No token provided"},
		{"my reservations", http.MethodGet, "/api/v1/reservations/me", member, http.StatusOK, "my-reservations"},
		{"create schedule without token", http.MethodPost, "/api/v1/schedules", "", http.StatusUnauthorized, "No token provided"},
		{"create schedule as member", http.MethodPost, "/api/v1/schedules", member, http.StatusForbidden, "Access denied."},
		{"create schedule as admin", http.MethodPost, "/api/v1/schedules", admin, http.StatusOK, "create-schedule"},
		{"delete schedule as admin", http.MethodDelete, "/api/v1/schedules/1", admin, http.StatusOK, "delete-schedule"},
		{"accounts as member", http.MethodGet, "/api/v1/accounts", member, http.StatusForbidden, "Access denied."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newTestRouter(&MockReservationService{}), tt.method, tt.path, tt.token)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
