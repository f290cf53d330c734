package get_staff_availability

import (
	"time"

	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// Request модель запроса доступности сотрудника на дату
type Request struct {
	SessionID       string    // ID браузерной сессии (резервы этой сессии не считаются занятыми)
	SalonID         int64     // ID салона
	StaffID         int64     // ID сотрудника
	Date            time.Time // Дата (без времени)
	DurationMinutes int       // Длительность услуги для генерации слотов, 0 - по умолчанию
}

// Interval занятый интервал [StartTime, EndTime)
type Interval struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Response модель ответа с доступностью сотрудника
type Response struct {
	StaffID   int64
	Date      time.Time
	Available bool
	Reason    string  // причина недоступности, пусто если Available
	Note      *string // заметка из исключения графика

	StartTime types.TimeString // начало рабочего окна
	EndTime   types.TimeString // конец рабочего окна
	IsCustom  bool             // окно задано исключением на дату

	Booked    []Interval         // интервалы подтвержденных записей
	Held      []Interval         // интервалы живых резервов других сессий
	FreeSlots []types.TimeString // свободные времена начала слотов
}
