package get_timeslots

import (
	"context"
	"errors"
	"fmt"

	"github.com/tkardach/SwimClubServer/internal/domain"
	scheduleRepo "github.com/tkardach/SwimClubServer/internal/infra/storage/schedule"
)

// UseCase use case для получения таймслотов с занятостью на дату
type UseCase struct {
	scheduleRepo   ScheduleRepository
	calendarClient CalendarClient
	policy         domain.BookingPolicy
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	calendarClient CalendarClient,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:   scheduleRepo,
		calendarClient: calendarClient,
		policy:         policy,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения таймслотов
// Прошедшая дата или отсутствие расписания дают пустой список
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req == nil || req.Date.IsZero() {
		uc.logger.Warn("GetTimeslots: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := uc.policy.ClubDate(req.Date)
	now := uc.timeProvider.Now()
	empty := &Response{Date: date, Timeslots: []TimeslotView{}}

	uc.logger.Info("GetTimeslots: date=%s", date.Format(domain.DateFormat))

	// 2. Прошедшие даты не бронируются
	if date.Before(uc.policy.Today(now)) {
		return empty, nil
	}

	// 3. Получаем действующее расписание дня недели
	schedule, err := uc.scheduleRepo.GetCurrentForDay(ctx, int(date.Weekday()), date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetTimeslots: no schedule for %s", date.Format(domain.DateFormat))
			return empty, nil
		}
		uc.logger.Error("GetTimeslots: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 4. Получаем события календаря на дату
	events, err := uc.calendarClient.GetEventsForDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetTimeslots: failed to get events: %v", err)
		return nil, fmt.Errorf("%w: failed to get events: %v", ErrInternal, err)
	}

	// 5. Вычисляем занятость каждого таймслота
	withinWindow := uc.policy.WithinWindow(date, now)

	views := make([]TimeslotView, 0, len(schedule.Timeslots))
	for _, slot := range schedule.Timeslots {
		views = append(views, TimeslotView{
			Type:         slot.Type,
			Start:        slot.Start,
			End:          slot.End,
			MaxOccupants: slot.MaxOccupants,
			Occupied:     domain.CountWithTimes(events, slot.Start, slot.End),
			Vacant:       withinWindow && domain.IsVacant(slot, events),
		})
	}

	uc.logger.Info("GetTimeslots: %d timeslots for %s", len(views), date.Format(domain.DateFormat))

	return &Response{
		Date:      date,
		Timeslots: views,
	}, nil
}
