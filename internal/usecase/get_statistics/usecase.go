package get_statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/tkardach/SwimClubServer/internal/domain"
)

// UseCase use case для статистики семейных бронирований за неделю
type UseCase struct {
	calendarClient CalendarClient
	rosterClient   RosterClient
	policy         domain.BookingPolicy
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(calendarClient CalendarClient, rosterClient RosterClient, policy domain.BookingPolicy, logger Logger) *UseCase {
	return &UseCase{
		calendarClient: calendarClient,
		rosterClient:   rosterClient,
		policy:         policy,
		logger:         logger,
	}
}

// Execute считает семейные бронирования недели (суббота - пятница), содержащей дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := uc.policy.ClubDate(req.Date)
	weekStart, weekEnd := domain.WeekBounds(date)

	uc.logger.Info("GetStatistics: week %s - %s", weekStart.Format(domain.DateFormat), weekEnd.Format(domain.DateFormat))

	// 1. Бронирования текущей недели
	reservations, err := uc.weekReservations(ctx, weekStart)
	if err != nil {
		return nil, err
	}

	// 2. Участники с оплаченными взносами
	paid, err := uc.rosterClient.GetAllPaidMembersDict(ctx, true)
	if err != nil {
		uc.logger.Error("GetStatistics: failed to get paid members: %v", err)
		return nil, fmt.Errorf("%w: failed to get paid members: %v", ErrInternal, err)
	}

	atLimit := 0
	for _, count := range reservations {
		if count >= uc.policy.FamilyMaxPerWeek {
			atLimit++
		}
	}

	// 3. Предыдущие недели
	history := make([]WeekSummary, 0, HistoryWeeks)
	for i := 1; i <= HistoryWeeks; i++ {
		start := weekStart.AddDate(0, 0, -7*i)
		previous, err := uc.weekReservations(ctx, start)
		if err != nil {
			return nil, err
		}
		history = append(history, WeekSummary{WeekStart: start, MembersReserved: len(previous)})
	}

	return &Response{
		WeekStart:       weekStart,
		WeekEnd:         weekEnd,
		Reservations:    reservations,
		MembersReserved: len(reservations),
		PaidMembers:     len(paid),
		MembersAtLimit:  atLimit,
		PreviousWeeks:   history,
	}, nil
}

// weekReservations семейные бронирования по участникам за неделю с weekStart
func (uc *UseCase) weekReservations(ctx context.Context, weekStart time.Time) (map[string]int, error) {
	events, err := uc.calendarClient.GetEventsForRange(ctx, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		uc.logger.Error("GetStatistics: failed to get events for week %s: %v", weekStart.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get events: %v", ErrInternal, err)
	}

	result := make(map[string]int)
	for _, e := range domain.FilterByType(events, domain.TimeslotFamily) {
		result[e.SubjectCertificate()]++
	}
	return result, nil
}
