package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tkardach/SwimClubServer/internal/domain"
	"github.com/tkardach/SwimClubServer/internal/integrations/broker"
	calendarClient "github.com/tkardach/SwimClubServer/internal/integrations/calendar"
	rosterClient "github.com/tkardach/SwimClubServer/internal/integrations/roster"
	"github.com/tkardach/SwimClubServer/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями участника
type Service struct {
	calendarClient CalendarClient
	rosterClient   RosterClient
	publisher      Publisher
	policy         domain.BookingPolicy
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	calendarClient CalendarClient,
	rosterClient RosterClient,
	publisher Publisher,
	policy domain.BookingPolicy,
	logger Logger,
) *Service {
	return &Service{
		calendarClient: calendarClient,
		rosterClient:   rosterClient,
		publisher:      publisher,
		policy:         policy,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// ListForMember получает бронирования участника начиная с текущей недели
func (s *Service) ListForMember(ctx context.Context, caller *models.Caller) (*models.ReservationListResponse, error) {
	if caller == nil || caller.Email == "" {
		return nil, fmt.Errorf("%w: session is required", ErrInvalidInput)
	}

	member, err := s.findMember(ctx, "ListForMember", caller.Email)
	if err != nil {
		return nil, err
	}

	from := domain.WeekStart(s.policy.Today(s.timeProvider.Now()))
	s.logger.Info("ListForMember: fetching reservations for %s since %s", member.CertificateNumber, from.Format(domain.DateFormat))

	events, err := s.calendarClient.GetEventsForMember(ctx, member.CertificateNumber, from)
	if err != nil {
		s.logger.Error("ListForMember: calendar error: %v", err)
		return nil, fmt.Errorf("%w: ListForMember - calendar error: %v", ErrInternal, err)
	}

	return models.FromDomainEvents(events), nil
}

// Delete удаляет бронирование
// Участник может удалить только свое бронирование, администратор - любое
func (s *Service) Delete(ctx context.Context, id string, caller *models.Caller) (*models.ReservationResponse, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: reservation id is required", ErrInvalidInput)
	}
	if caller == nil || caller.Email == "" {
		return nil, fmt.Errorf("%w: session is required", ErrInvalidInput)
	}

	s.logger.Info("Delete: deleting reservation id=%s by %s", id, caller.Email)

	// 1. Получаем событие
	event, err := s.calendarClient.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, calendarClient.ErrEventNotFound) {
			s.logger.Warn("Delete: reservation id=%s not found", id)
			return nil, ErrEventNotFound
		}
		s.logger.Error("Delete: failed to get reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Delete - calendar error: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа
	if !caller.IsAdmin {
		if err := s.checkOwnership(ctx, event, caller); err != nil {
			return nil, err
		}
	}

	// 3. Удаляем
	if err := s.calendarClient.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, calendarClient.ErrEventNotFound) {
			s.logger.Warn("Delete: reservation id=%s disappeared before delete", id)
			return nil, ErrEventNotFound
		}
		s.logger.Error("Delete: failed to delete reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}

	s.logger.Info("Delete: successfully deleted reservation id=%s", id)
	s.publishDeleted(ctx, event, caller)

	return models.FromDomainEvent(event), nil
}

// checkOwnership проверяет, что событие принадлежит участнику с email сессии
func (s *Service) checkOwnership(ctx context.Context, event *domain.Event, caller *models.Caller) error {
	member, err := s.findMember(ctx, "Delete", caller.Email)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return ErrAccessDenied
		}
		return err
	}

	if !event.BelongsTo(member.CertificateNumber) {
		s.logger.Warn("Delete: %s does not own reservation id=%s", caller.Email, event.ID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) findMember(ctx context.Context, op, email string) (*domain.Member, error) {
	member, err := s.rosterClient.FindMemberByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, rosterClient.ErrMemberNotFound) || errors.Is(err, rosterClient.ErrMultipleMembersFound) {
			s.logger.Warn("%s: no single member for %s: %v", op, email, err)
			return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, email)
		}
		s.logger.Error("%s: roster error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - roster error: %v", ErrInternal, op, err)
	}
	return member, nil
}

func (s *Service) publishDeleted(ctx context.Context, event *domain.Event, caller *models.Caller) {
	if s.publisher == nil {
		return
	}

	// Первый участник события - владелец бронирования
	email := domain.NormalizeEmail(caller.Email)
	if len(event.Attendees) > 0 && event.Attendees[0] != "" {
		email = domain.NormalizeEmail(event.Attendees[0])
	}

	message := broker.ReservationMessage{
		MessageID:         uuid.NewString(),
		Kind:              broker.RoutingReservationDeleted,
		EventIDs:          []string{event.ID},
		MemberEmail:       email,
		CertificateNumber: event.SubjectCertificate(),
		ReservationType:   string(event.Type()),
		Date:              event.Start.Format(domain.DateFormat),
		Start:             int(event.StartTime()),
		End:               int(event.EndTime()),
		OccurredAt:        s.timeProvider.Now(),
	}

	if err := s.publisher.Publish(ctx, broker.RoutingReservationDeleted, message); err != nil {
		s.logger.Warn("Delete: failed to publish %s: %v", broker.RoutingReservationDeleted, err)
	}
}
