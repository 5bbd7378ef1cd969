package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tkardach/SwimClubServer/internal/domain"
	"github.com/tkardach/SwimClubServer/internal/infra/lock"
	scheduleRepo "github.com/tkardach/SwimClubServer/internal/infra/storage/schedule"
	"github.com/tkardach/SwimClubServer/internal/integrations/broker"
	rosterClient "github.com/tkardach/SwimClubServer/internal/integrations/roster"
)

// UseCase use case для создания бронирования (допуск по правилам клуба)
type UseCase struct {
	scheduleRepo   ScheduleRepository
	calendarClient CalendarClient
	rosterClient   RosterClient
	locker         SlotLocker
	publisher      Publisher
	metrics        Metrics
	policy         domain.BookingPolicy
	allowOverride  bool
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
// allowOverride разрешает администраторам обход правил (только вне production)
func NewUseCase(
	scheduleRepo ScheduleRepository,
	calendarClient CalendarClient,
	rosterClient RosterClient,
	locker SlotLocker,
	publisher Publisher,
	metrics Metrics,
	policy domain.BookingPolicy,
	allowOverride bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:   scheduleRepo,
		calendarClient: calendarClient,
		rosterClient:   rosterClient,
		locker:         locker,
		publisher:      publisher,
		metrics:        metrics,
		policy:         policy,
		allowOverride:  allowOverride,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// admission состояние одного решения
type admission struct {
	req      *Request
	email    string
	date     time.Time
	now      time.Time
	slot     domain.TimeslotDefinition
	extra    int
	override Override
}

// Execute выполняет use case создания бронирования
// Проверки от занятости слота до записи в календарь выполняются под блокировкой слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.observe(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	email, err := resolveEmail(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: identity rejected: %v", err)
		return nil, err
	}

	date := uc.policy.ClubDate(req.Date)
	uc.logger.Info("CreateReservation: email=%s, date=%s, time=%s-%s, type=%s, swimmers=%d",
		email, date.Format(domain.DateFormat), req.Start, req.End, req.Type, req.NumberSwimmers)

	a := &admission{
		req:      req,
		email:    email,
		date:     date,
		now:      uc.timeProvider.Now(),
		extra:    extraReservations(req.Type, req.NumberSwimmers),
		override: uc.overrideFor(req.Caller),
	}

	// 2. Проверяем, что такой таймслот есть в расписании на эту дату
	schedule, err := uc.scheduleRepo.GetCurrentForDay(ctx, int(date.Weekday()), date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("CreateReservation: no schedule for %s", date.Format(domain.DateFormat))
			return nil, fmt.Errorf("%w: no schedule for %s", ErrTimeslotNotFound, date.Format(domain.DateFormat))
		}
		uc.logger.Error("CreateReservation: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	slot, ok := schedule.FindTimeslot(req.Start, req.End, req.Type)
	if !ok {
		uc.logger.Warn("CreateReservation: no %s timeslot %s-%s on %s", req.Type, req.Start, req.End, date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: no %s timeslot from %s to %s on %s",
			ErrTimeslotNotFound, req.Type, req.Start, req.End, date.Format(domain.DateFormat))
	}
	a.slot = slot

	// 3. Остальные проверки и запись под блокировкой слота
	var result *Response
	err = uc.locker.WithLock(ctx, lock.SlotKey(date, req.Start, req.End), func(lockCtx context.Context) error {
		resp, err := uc.admit(lockCtx, a)
		if err != nil {
			return err
		}
		result = resp
		return nil
	})
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) || errors.Is(err, lock.ErrLockFailed) {
			uc.logger.Error("CreateReservation: failed to lock timeslot: %v", err)
			return nil, fmt.Errorf("%w: timeslot is busy, try again: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: created %d event(s) for %s on %s %s-%s",
		len(result.Events), result.CertificateNumber, date.Format(domain.DateFormat), req.Start, req.End)

	// 4. Публикуем событие (ошибка не отменяет бронирование)
	uc.publish(ctx, a, result)

	return result, nil
}

// admit проверки допуска и запись в календарь
func (uc *UseCase) admit(ctx context.Context, a *admission) (*Response, error) {
	req := a.req

	// 3.1. Блокировки и предварительная проверка мест
	slotEvents, err := uc.calendarClient.GetEventsForDateAndTime(ctx, a.date, a.date, req.Start, req.End)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get slot events: %v", err)
		return nil, fmt.Errorf("%w: failed to get slot events: %v", ErrInternal, err)
	}

	if blocking, ok := domain.FindBlocking(slotEvents); ok {
		uc.logger.Warn("CreateReservation: timeslot blocked by %q", blocking.Summary)
		return nil, fmt.Errorf("%w: %s", ErrSlotBlocked, blocking.Summary)
	}

	slotCount := domain.CountWithTimes(slotEvents, req.Start, req.End)
	if slotCount >= a.slot.MaxOccupants {
		uc.logger.Warn("CreateReservation: slot full, %d/%d", slotCount, a.slot.MaxOccupants)
		return nil, fmt.Errorf("%w: all %d places are taken", ErrSlotFull, a.slot.MaxOccupants)
	}

	// 3.2. Для дорожки нужно число пловцов
	if req.Type == domain.TimeslotLap && req.NumberSwimmers <= 0 {
		return nil, ErrInvalidSwimmerCount
	}

	// 3.3. Ищем участника в реестре
	member, err := uc.rosterClient.FindMemberByEmail(ctx, a.email)
	if err != nil {
		switch {
		case errors.Is(err, rosterClient.ErrMemberNotFound):
			uc.logger.Warn("CreateReservation: member %s not found", a.email)
			return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, a.email)
		case errors.Is(err, rosterClient.ErrMultipleMembersFound):
			uc.logger.Warn("CreateReservation: multiple members for %s", a.email)
			return nil, fmt.Errorf("%w: %s", ErrMultipleMembersFound, a.email)
		default:
			uc.logger.Error("CreateReservation: failed to find member %s: %v", a.email, err)
			return nil, fmt.Errorf("%w: failed to find member: %v", ErrInternal, err)
		}
	}

	if a.override.SkipPolicyGates {
		uc.logger.Warn("CreateReservation: admin %s skips policy checks for %s", req.Caller.Email, member.LastName)
	}

	// 3.4. Окно бронирования и сезон
	if !a.override.SkipPolicyGates {
		if err := uc.checkSeasonWindow(a); err != nil {
			uc.logger.Warn("CreateReservation: %v", err)
			return nil, err
		}
	}

	// 3.5. Взносы
	paid, err := uc.rosterClient.GetAllPaidMembersDict(ctx, true)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get paid members: %v", err)
		return nil, fmt.Errorf("%w: failed to get paid members: %v", ErrInternal, err)
	}
	if _, ok := paid[member.ID]; !ok {
		uc.logger.Warn("CreateReservation: %s (%s) has not paid dues", member.LastName, member.ID)
		return nil, fmt.Errorf("%w: the %s family has not paid their dues", ErrDuesNotPaid, member.LastName)
	}

	// 3.6. Лимиты и соседние бронирования участника
	if !a.override.SkipPolicyGates {
		if err := uc.checkMemberQuotas(ctx, a, member); err != nil {
			uc.logger.Warn("CreateReservation: %v", err)
			return nil, err
		}
	}

	// 3.7. Финальная проверка мест с учетом дополнительных пловцов
	if slotCount+a.extra >= a.slot.MaxOccupants {
		left := a.slot.MaxOccupants - slotCount
		uc.logger.Warn("CreateReservation: not enough places, need %d, left %d", a.extra+1, left)
		return nil, fmt.Errorf("%w: %d places requested but only %d left", ErrSlotFull, a.extra+1, left)
	}

	// 3.8. Запись в календарь
	events, err := uc.write(ctx, a, member)
	if err != nil {
		uc.logger.Error("CreateReservation: calendar write failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrCalendarWriteFailed, err)
	}

	return &Response{
		Events:            events,
		LastName:          member.LastName,
		CertificateNumber: member.CertificateNumber,
	}, nil
}

// checkSeasonWindow начало слота в будущем, дата в открытом окне и до конца сезона
func (uc *UseCase) checkSeasonWindow(a *admission) error {
	slotStart := a.req.Start.On(a.date, a.date.Location())
	if !a.now.Before(slotStart) {
		return fmt.Errorf("%w: %s %s", ErrDateInPast, a.date.Format(domain.DateFormat), a.req.Start)
	}

	if !uc.policy.WithinWindow(a.date, a.now) {
		return fmt.Errorf("%w: reservations are open through %s",
			ErrOutsideBookingWindow, uc.policy.WindowEnd(a.now).Format(domain.DateFormat))
	}

	if uc.policy.SeasonEnded(a.date) {
		return fmt.Errorf("%w: no reservations after %s %d", ErrSeasonEnded, uc.policy.SeasonEndMonth, uc.policy.SeasonEndDay)
	}

	return nil
}

// checkMemberQuotas недельный и дневной лимиты, дополнительные пловцы, соседние бронирования
func (uc *UseCase) checkMemberQuotas(ctx context.Context, a *admission, member *domain.Member) error {
	req := a.req

	weekStart, weekEnd := domain.WeekBounds(a.date)
	weekEvents, err := uc.calendarClient.GetEventsForRange(ctx, weekStart, weekEnd.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get week events: %v", err)
		return fmt.Errorf("%w: failed to get week events: %v", ErrInternal, err)
	}

	memberWeek := domain.FilterByMember(weekEvents, member.CertificateNumber)
	typedWeek := domain.FilterByType(memberWeek, req.Type)

	// Недельный лимит; семья может забронировать еще раз на сегодня, если лимит ровно исчерпан
	weekly := len(typedWeek)
	maxWeek := uc.policy.MaxPerWeek(req.Type)
	if weekly >= maxWeek {
		sameDay := req.Type == domain.TimeslotFamily &&
			!uc.policy.SameDayExceptionDisabled &&
			domain.SameDay(a.date, uc.policy.Today(a.now))

		if !sameDay || weekly > maxWeek {
			msg := fmt.Sprintf("the %s family has reached the limit of %d %s reservations per week",
				member.LastName, maxWeek, req.Type)
			if sameDay {
				msg += " and already used the same-day exception"
			}
			return fmt.Errorf("%w: %s", ErrWeeklyLimitExceeded, msg)
		}
		uc.logger.Info("CreateReservation: same-day exception for %s", member.ID)
	}

	if a.extra > 0 && weekly+a.extra >= maxWeek {
		return fmt.Errorf("%w: %d swimmers would exceed the limit of %d %s reservations per week, %d already used",
			ErrWeeklyLimitExceeded, req.NumberSwimmers, maxWeek, req.Type, weekly)
	}

	// Дневной лимит
	daily := len(domain.FilterByDate(typedWeek, a.date))
	maxDay := uc.policy.MaxPerDay(req.Type)
	if daily >= maxDay {
		return fmt.Errorf("%w: the %s family has reached the limit of %d %s reservations per day",
			ErrDailyLimitExceeded, member.LastName, maxDay, req.Type)
	}

	if a.extra > 0 && daily+a.extra >= maxDay {
		return fmt.Errorf("%w: %d swimmers would exceed the limit of %d %s reservations per day, %d already used",
			ErrDailyLimitExceeded, req.NumberSwimmers, maxDay, req.Type, daily)
	}

	// Соседние бронирования в тот же день
	if adjacent, ok := findBackToBack(domain.FilterByDate(memberWeek, a.date), req); ok {
		return fmt.Errorf("%w: existing reservation %s-%s", ErrBackToBackNotAllowed, adjacent.StartTime(), adjacent.EndTime())
	}

	return nil
}

// write создает одно событие или extra+1 копий одной пачкой
func (uc *UseCase) write(ctx context.Context, a *admission, member *domain.Member) ([]domain.Event, error) {
	req := a.req

	attendees := make([]string, 0, len(req.Attendees)+1)
	attendees = append(attendees, a.email)
	for _, attendee := range req.Attendees {
		if attendee != "" && domain.NormalizeEmail(attendee) != a.email {
			attendees = append(attendees, attendee)
		}
	}

	event := domain.Event{
		Summary:     domain.MemberSubject(member.CertificateNumber),
		Description: string(req.Type),
		Location:    req.Location,
		Start:       req.Start.On(a.date, a.date.Location()),
		End:         req.End.On(a.date, a.date.Location()),
		Attendees:   attendees,
	}

	if a.extra == 0 {
		created, err := uc.calendarClient.PostEvent(ctx, event)
		if err != nil {
			return nil, err
		}
		return []domain.Event{*created}, nil
	}

	batch := make([]domain.Event, a.extra+1)
	for i := range batch {
		batch[i] = event
	}
	return uc.calendarClient.PostEvents(ctx, batch)
}

func (uc *UseCase) overrideFor(caller *Caller) Override {
	return Override{SkipPolicyGates: uc.allowOverride && caller != nil && caller.IsAdmin}
}

func (uc *UseCase) publish(ctx context.Context, a *admission, result *Response) {
	if uc.publisher == nil {
		return
	}

	ids := make([]string, 0, len(result.Events))
	for _, e := range result.Events {
		ids = append(ids, e.ID)
	}

	message := broker.ReservationMessage{
		MessageID:         uuid.NewString(),
		Kind:              broker.RoutingReservationCreated,
		EventIDs:          ids,
		MemberEmail:       a.email,
		CertificateNumber: result.CertificateNumber,
		LastName:          result.LastName,
		ReservationType:   string(a.req.Type),
		Date:              a.date.Format(domain.DateFormat),
		Start:             int(a.req.Start),
		End:               int(a.req.End),
		NumberSwimmers:    a.req.NumberSwimmers,
		OccurredAt:        a.now,
	}

	if err := uc.publisher.Publish(ctx, broker.RoutingReservationCreated, message); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish %s: %v", broker.RoutingReservationCreated, err)
	}
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.ObserveDecision(Outcome(err))
}

// Outcome метка решения для метрик
func Outcome(err error) string {
	if err == nil {
		return "approved"
	}

	outcomes := []struct {
		err   error
		label string
	}{
		{ErrInvalidInput, "invalid_input"},
		{ErrTimeslotNotFound, "timeslot_not_found"},
		{ErrSlotBlocked, "slot_blocked"},
		{ErrSlotFull, "slot_full"},
		{ErrInvalidSwimmerCount, "invalid_swimmer_count"},
		{ErrMemberNotFound, "member_not_found"},
		{ErrMultipleMembersFound, "multiple_members"},
		{ErrDateInPast, "date_in_past"},
		{ErrOutsideBookingWindow, "outside_window"},
		{ErrSeasonEnded, "season_ended"},
		{ErrDuesNotPaid, "dues_not_paid"},
		{ErrWeeklyLimitExceeded, "weekly_limit"},
		{ErrDailyLimitExceeded, "daily_limit"},
		{ErrBackToBackNotAllowed, "back_to_back"},
		{ErrCalendarWriteFailed, "calendar_write_failed"},
	}
	for _, o := range outcomes {
		if errors.Is(err, o.err) {
			return o.label
		}
	}
	return "internal_error"
}
