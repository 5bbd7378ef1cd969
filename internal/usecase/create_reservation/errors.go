package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrTimeslotNotFound возвращается, когда в расписании нет таймслота с такими временем и типом
	ErrTimeslotNotFound = errors.New("create_reservation: timeslot not found")

	// ErrSlotBlocked возвращается, когда таймслот закрыт административным событием
	ErrSlotBlocked = errors.New("create_reservation: timeslot is blocked")

	// ErrSlotFull возвращается, когда в таймслоте не осталось мест
	ErrSlotFull = errors.New("create_reservation: timeslot is full")

	// ErrInvalidSwimmerCount возвращается, когда для дорожки не указано число пловцов
	ErrInvalidSwimmerCount = errors.New("create_reservation: number of swimmers must be greater than 0")

	// ErrMemberNotFound возвращается, когда email не найден в реестре
	ErrMemberNotFound = errors.New("create_reservation: member not found")

	// ErrMultipleMembersFound возвращается, когда email принадлежит нескольким участникам
	ErrMultipleMembersFound = errors.New("create_reservation: multiple members found")

	// ErrDateInPast возвращается, когда таймслот уже начался
	ErrDateInPast = errors.New("create_reservation: timeslot has already started")

	// ErrOutsideBookingWindow возвращается, когда дата за пределами открытой недели бронирования
	ErrOutsideBookingWindow = errors.New("create_reservation: date is outside the booking window")

	// ErrSeasonEnded возвращается после окончания сезона
	ErrSeasonEnded = errors.New("create_reservation: the season has ended")

	// ErrDuesNotPaid возвращается, когда у участника не оплачены взносы
	ErrDuesNotPaid = errors.New("create_reservation: dues not paid")

	// ErrWeeklyLimitExceeded возвращается при превышении недельного лимита
	ErrWeeklyLimitExceeded = errors.New("create_reservation: weekly reservation limit exceeded")

	// ErrDailyLimitExceeded возвращается при превышении дневного лимита
	ErrDailyLimitExceeded = errors.New("create_reservation: daily reservation limit exceeded")

	// ErrBackToBackNotAllowed возвращается, когда бронирование примыкает к другому бронированию участника
	ErrBackToBackNotAllowed = errors.New("create_reservation: back-to-back reservations are not allowed")

	// ErrCalendarWriteFailed возвращается, когда события не удалось записать в календарь
	ErrCalendarWriteFailed = errors.New("create_reservation: failed to write reservation to calendar")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
