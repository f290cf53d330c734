package reserve_slot

import (
	"time"

	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// Request модель запроса на резервирование слота
type Request struct {
	SessionID       string           // ID браузерной сессии клиента
	SalonID         int64            // ID салона
	StaffID         int64            // ID сотрудника
	Date            time.Time        // Дата слота (без времени)
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность услуги, 0 - длительность по умолчанию
}

// Response модель ответа с созданным резервом
type Response struct {
	ID              int64            // ID резерва
	StaffID         int64            // ID сотрудника
	Date            time.Time        // Дата слота
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	ExpiresAt       time.Time        // Момент истечения резерва
}
