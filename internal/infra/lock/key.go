package lock

import (
	"fmt"
	"time"

	"github.com/tkardach/SwimClubServer/internal/domain"
	"github.com/tkardach/SwimClubServer/pkg/types"
)

const keyPrefix = "swimclub:slot"

// SlotKey ключ блокировки таймслота: swimclub:slot:<yyyy-mm-dd>:<start>:<end>
// Участник в ключ не входит: запросы одного участника на разные слоты не сериализуются
func SlotKey(date time.Time, start, end types.NumericTime) string {
	return fmt.Sprintf("%s:%s:%04d:%04d", keyPrefix, date.Format(domain.DateFormat), int(start), int(end))
}
