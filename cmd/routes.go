package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tkardach/SwimClubServer/internal/api/middleware"
)

// apiHandlers обработчики маршрутов /api/v1
type apiHandlers struct {
	getTimeslots      http.HandlerFunc
	listSchedules     http.HandlerFunc
	currentSchedule   http.HandlerFunc
	scheduleForDate   http.HandlerFunc
	schedulePeriod    http.HandlerFunc
	createReservation http.HandlerFunc
	reportIssue       http.HandlerFunc
	getMyReservations http.HandlerFunc
	deleteReservation http.HandlerFunc
	createSchedule    http.HandlerFunc
	updateSchedule    http.HandlerFunc
	deleteSchedule    http.HandlerFunc
	getAccounts       http.HandlerFunc
	getWeekStatistics http.HandlerFunc
}

// registerRoutes регистрирует маршруты API на роутере с префиксом /api/v1
func registerRoutes(api *mux.Router, auth *middleware.Auth, h apiHandlers) {
	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные места в таймслотах на дату
	api.HandleFunc("/timeslots/{date}", h.getTimeslots).Methods(http.MethodGet)
	api.HandleFunc("/schedules/timeslots/{date}", h.getTimeslots).Methods(http.MethodGet)

	// Расписания
	api.HandleFunc("/schedules", h.listSchedules).Methods(http.MethodGet)
	api.HandleFunc("/schedules/current", h.currentSchedule).Methods(http.MethodGet)
	api.HandleFunc("/schedules/date/{date}", h.scheduleForDate).Methods(http.MethodGet)
	api.HandleFunc("/schedules/period/{date}", h.schedulePeriod).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют x-auth-token)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Required)

	// /reservations/me регистрируется раньше /reservations/{id}
	protected.HandleFunc("/reservations/me", h.getMyReservations).Methods(http.MethodGet)

	// ============================================================
	// OPTIONAL AUTH (пользователь определяется, если передан токен)
	// ============================================================

	optional := api.PathPrefix("").Subrouter()
	optional.Use(auth.Optional)

	// Без токена бронирование по memberEmail
	optional.HandleFunc("/reservations", h.createReservation).Methods(http.MethodPost)
	optional.HandleFunc("/issues", h.reportIssue).Methods(http.MethodPost)

	// Без сессии обработчик отвечает 400
	optional.HandleFunc("/reservations/{id}", h.deleteReservation).Methods(http.MethodDelete)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(auth.Required, auth.Admin)

	admin.HandleFunc("/schedules", h.createSchedule).Methods(http.MethodPost)
	admin.HandleFunc("/schedules/{id}", h.updateSchedule).Methods(http.MethodPut)
	admin.HandleFunc("/schedules/{id}", h.deleteSchedule).Methods(http.MethodDelete)
	admin.HandleFunc("/accounts", h.getAccounts).Methods(http.MethodGet)
	admin.HandleFunc("/statistics/week/{date}", h.getWeekStatistics).Methods(http.MethodGet)
}
