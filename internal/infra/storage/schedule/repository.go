package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/tkardach/SwimClubServer/internal/domain"
	"github.com/tkardach/SwimClubServer/pkg/dbmetrics"
	"github.com/tkardach/SwimClubServer/pkg/psqlbuilder"
	"github.com/tkardach/SwimClubServer/pkg/types"
)

const (
	tableName = "schedules"

	// uniqueViolation код ошибки postgres при нарушении UNIQUE
	uniqueViolation = "23505"
)

var columns = []string{
	"id",
	"day",
	"start_date",
	"timeslots",
	"created_at",
	"updated_at",
}

// timeslotRow JSONB-представление определения таймслота
type timeslotRow struct {
	Type         string `json:"type"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
	MaxOccupants int    `json:"maxOccupants"`
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий для работы с расписаниями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое расписание
// Нарушение уникальности (day, start_date) возвращается как ErrDuplicateSchedule
func (r *Repository) Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	timeslots, err := encodeTimeslots(schedule.Timeslots)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrEncodeTimeslots, err)
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("day", "start_date", "timeslots").
		Values(schedule.Day, formatDate(schedule.StartDate), timeslots).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSchedule
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// GetByID получает расписание по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryOne(ctx, "GetByID", query, args)
}

// GetByDayAndStartDate получает расписание с точным совпадением дня недели и даты начала действия
func (r *Repository) GetByDayAndStartDate(ctx context.Context, day int, startDate time.Time) (*domain.Schedule, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"day": day, "start_date": formatDate(startDate)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDayAndStartDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryOne(ctx, "GetByDayAndStartDate", query, args)
}

// GetCurrentForDay получает действующее расписание дня недели на дату:
// самое позднее по start_date, но не позже date
func (r *Repository) GetCurrentForDay(ctx context.Context, day int, date time.Time) (*domain.Schedule, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"day": day}).
		Where(squirrel.LtOrEq{"start_date": formatDate(date)}).
		OrderBy("start_date DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentForDay - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryOne(ctx, "GetCurrentForDay", query, args)
}

// List получает все расписания, отсортированные по дню недели и дате начала
func (r *Repository) List(ctx context.Context) ([]*domain.Schedule, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("day ASC", "start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryMany(ctx, "List", query, args)
}

// GetCurrent получает действующие на дату расписания, не более одного на день недели
func (r *Repository) GetCurrent(ctx context.Context, date time.Time) ([]*domain.Schedule, error) {
	query, args, err := psqlbuilder.Select(columns...).
		Options("DISTINCT ON (day)").
		From(tableName).
		Where(squirrel.LtOrEq{"start_date": formatDate(date)}).
		OrderBy("day ASC", "start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrent - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryMany(ctx, "GetCurrent", query, args)
}

// GetPeriod получает действующие на дату расписания и все, что вступят в силу позже
func (r *Repository) GetPeriod(ctx context.Context, date time.Time) ([]*domain.Schedule, error) {
	current, err := r.GetCurrent(ctx, date)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Gt{"start_date": formatDate(date)}).
		OrderBy("start_date ASC", "day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPeriod - build select query: %v", ErrBuildQuery, err)
	}

	upcoming, err := r.queryMany(ctx, "GetPeriod", query, args)
	if err != nil {
		return nil, err
	}

	return append(current, upcoming...), nil
}

// Update обновляет день, дату начала и таймслоты расписания
func (r *Repository) Update(ctx context.Context, id int64, schedule *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	timeslots, err := encodeTimeslots(schedule.Timeslots)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - %v", ErrEncodeTimeslots, err)
	}

	query, args, err := psqlbuilder.Update(tableName).
		Set("day", schedule.Day).
		Set("start_date", formatDate(schedule.StartDate)).
		Set("timeslots", timeslots).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSchedule
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	schedule.ID = id
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// Delete удаляет расписание
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// Helper methods

func (r *Repository) queryOne(ctx context.Context, op, query string, args []interface{}) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	schedule, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan schedule: %v", ErrScanRow, op, err)
	}

	return schedule, nil
}

func (r *Repository) queryMany(ctx context.Context, op, query string, args []interface{}) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return schedules, nil
}

func scanSchedule(row rowScanner) (*domain.Schedule, error) {
	var schedule domain.Schedule
	var raw []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&schedule.ID,
		&schedule.Day,
		&schedule.StartDate,
		&raw,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	timeslots, err := decodeTimeslots(raw)
	if err != nil {
		return nil, err
	}

	schedule.StartDate = domain.DateOnly(schedule.StartDate)
	schedule.Timeslots = timeslots
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

func encodeTimeslots(slots []domain.TimeslotDefinition) ([]byte, error) {
	rows := make([]timeslotRow, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, timeslotRow{
			Type:         string(s.Type),
			Start:        int(s.Start),
			End:          int(s.End),
			MaxOccupants: s.MaxOccupants,
		})
	}
	return json.Marshal(rows)
}

func decodeTimeslots(raw []byte) ([]domain.TimeslotDefinition, error) {
	if len(raw) == 0 {
		return []domain.TimeslotDefinition{}, nil
	}

	var rows []timeslotRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode timeslots: %w", err)
	}

	slots := make([]domain.TimeslotDefinition, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, domain.TimeslotDefinition{
			Type:         domain.TimeslotType(row.Type),
			Start:        types.NumericTime(row.Start),
			End:          types.NumericTime(row.End),
			MaxOccupants: row.MaxOccupants,
		})
	}
	return slots, nil
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateFormat)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
