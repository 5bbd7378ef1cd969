package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrDuplicateSchedule возвращается при нарушении уникальности (day, start_date)
	ErrDuplicateSchedule = errors.New("schedule.repository: schedule for day and start date already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrEncodeTimeslots возвращается, когда таймслоты не удалось сериализовать в JSONB
	ErrEncodeTimeslots = errors.New("schedule.repository: failed to encode timeslots")
)
