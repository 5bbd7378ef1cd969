package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tkardach/SwimClubServer/internal/domain"
	scheduleRepo "github.com/tkardach/SwimClubServer/internal/infra/storage/schedule"
	"github.com/tkardach/SwimClubServer/internal/service/schedules/models"
)

// Service сервис для работы с расписаниями бассейна
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает новое расписание
// На один день недели и дату начала допускается только одно расписание
func (s *Service) Create(ctx context.Context, req *models.ScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Create: creating schedule for day=%d, startDate=%s", req.Day, req.StartDate.Format(domain.DateFormat))

	// 1. Валидируем входные данные
	schedule := req.ToDomainSchedule()
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем дубликат и создаем в одной сериализуемой транзакции
	var created *domain.Schedule
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.ensureUnique(txCtx, "Create", schedule.Day, schedule.StartDate, 0); err != nil {
			return err
		}

		result, err := s.scheduleRepo.Create(txCtx, schedule)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrDuplicateSchedule) {
				s.logger.Warn("Create: duplicate schedule for day=%d", schedule.Day)
				return ErrScheduleAlreadyExists
			}
			s.logger.Error("Create: repository error: %v", err)
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		created = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: successfully created schedule id=%d", created.ID)
	return models.FromDomainSchedule(created), nil
}

// GetByID получает расписание по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", err)
	}
	return models.FromDomainSchedule(schedule), nil
}

// List получает все расписания
func (s *Service) List(ctx context.Context) (*models.ScheduleListResponse, error) {
	schedules, err := s.scheduleRepo.List(ctx)
	if err != nil {
		return nil, s.mapRepoError("List", err)
	}
	return models.FromDomainSchedules(schedules), nil
}

// GetCurrent получает действующие на дату расписания, по одному на день недели
func (s *Service) GetCurrent(ctx context.Context, date time.Time) (*models.ScheduleListResponse, error) {
	schedules, err := s.scheduleRepo.GetCurrent(ctx, domain.DateOnly(date))
	if err != nil {
		return nil, s.mapRepoError("GetCurrent", err)
	}
	return models.FromDomainSchedules(schedules), nil
}

// GetForDate получает расписание, действующее в дату date
func (s *Service) GetForDate(ctx context.Context, date time.Time) (*models.ScheduleResponse, error) {
	day := domain.DateOnly(date)

	schedule, err := s.scheduleRepo.GetCurrentForDay(ctx, int(day.Weekday()), day)
	if err != nil {
		return nil, s.mapRepoError("GetForDate", err)
	}
	return models.FromDomainSchedule(schedule), nil
}

// GetPeriod получает действующие на дату расписания и все будущие
func (s *Service) GetPeriod(ctx context.Context, date time.Time) (*models.ScheduleListResponse, error) {
	schedules, err := s.scheduleRepo.GetPeriod(ctx, domain.DateOnly(date))
	if err != nil {
		return nil, s.mapRepoError("GetPeriod", err)
	}
	return models.FromDomainSchedules(schedules), nil
}

// Update заменяет день, дату начала и таймслоты расписания
func (s *Service) Update(ctx context.Context, id int64, req *models.ScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating schedule id=%d", id)

	schedule := req.ToDomainSchedule()
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var updated *domain.Schedule
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.scheduleRepo.GetByID(txCtx, id); err != nil {
			return s.mapRepoError("Update", err)
		}

		if err := s.ensureUnique(txCtx, "Update", schedule.Day, schedule.StartDate, id); err != nil {
			return err
		}

		result, err := s.scheduleRepo.Update(txCtx, id, schedule)
		if err != nil {
			return s.mapRepoError("Update", err)
		}
		updated = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated schedule id=%d", id)
	return models.FromDomainSchedule(updated), nil
}

// Delete удаляет расписание и возвращает удаленные данные
func (s *Service) Delete(ctx context.Context, id int64) (*models.ScheduleResponse, error) {
	s.logger.Info("Delete: deleting schedule id=%d", id)

	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Delete", err)
	}

	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		return nil, s.mapRepoError("Delete", err)
	}

	s.logger.Info("Delete: schedule removed id=%d, day=%d", id, schedule.Day)
	return models.FromDomainSchedule(schedule), nil
}

// ensureUnique проверяет, что (day, startDate) не занят другим расписанием
func (s *Service) ensureUnique(ctx context.Context, op string, day int, startDate time.Time, ownID int64) error {
	existing, err := s.scheduleRepo.GetByDayAndStartDate(ctx, day, startDate)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return nil
		}
		s.logger.Error("%s: failed to check existing schedule: %v", op, err)
		return fmt.Errorf("%w: %s - failed to check existing schedule: %v", ErrInternal, op, err)
	}

	if existing.ID != ownID {
		s.logger.Warn("%s: schedule id=%d already exists for day=%d, startDate=%s",
			op, existing.ID, day, startDate.Format(domain.DateFormat))
		return fmt.Errorf("%w: day %d starting %s", ErrScheduleAlreadyExists, day, startDate.Format(domain.DateFormat))
	}
	return nil
}

func (s *Service) mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, scheduleRepo.ErrScheduleNotFound):
		s.logger.Warn("%s: schedule not found", op)
		return ErrScheduleNotFound
	case errors.Is(err, scheduleRepo.ErrDuplicateSchedule):
		s.logger.Warn("%s: duplicate schedule", op)
		return ErrScheduleAlreadyExists
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
