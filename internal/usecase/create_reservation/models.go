package create_reservation

import (
	"time"

	"github.com/tkardach/SwimClubServer/internal/domain"
	"github.com/tkardach/SwimClubServer/pkg/types"
)

// Caller аутентифицированный пользователь, выполняющий запрос
type Caller struct {
	Email   string
	IsAdmin bool
}

// Request модель запроса на бронирование
type Request struct {
	Date           time.Time           // Дата бронирования (время суток игнорируется)
	Start          types.NumericTime   // Начало таймслота, HHMM
	End            types.NumericTime   // Конец таймслота, HHMM
	Type           domain.TimeslotType // family или lap
	NumberSwimmers int                 // Количество пловцов (для lap каждый занимает место)
	MemberEmail    string              // Email участника, если бронирует не сам вызывающий
	Caller         *Caller             // nil для запросов без сессии (киоск)
	Location       string              // Опционально
	Attendees      []string            // Дополнительные участники события
}

// Override служебный обход правил бронирования
// Действует только для администратора вне production и пропускает проверки окна, сезона, лимитов и соседних бронирований
type Override struct {
	SkipPolicyGates bool
}

// Response модель ответа с созданными событиями
type Response struct {
	Events            []domain.Event // Созданные события (по одному на место)
	LastName          string         // Фамилия участника
	CertificateNumber string         // Номер сертификата участника
}
