package get_bulk_availability

import (
	"time"

	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// MaxStaffPerRequest ограничение на количество сотрудников в одном запросе
const MaxStaffPerRequest = 50

// Request модель запроса доступности нескольких сотрудников на дату
type Request struct {
	SessionID       string    // ID браузерной сессии (резервы этой сессии не считаются занятыми)
	SalonID         int64     // ID салона
	StaffIDs        []int64   // ID сотрудников
	Date            time.Time // Дата (без времени)
	DurationMinutes int       // Длительность услуги для генерации слотов, 0 - по умолчанию
}

// Interval занятый интервал [StartTime, EndTime)
type Interval struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// StaffAvailability доступность одного сотрудника
type StaffAvailability struct {
	StaffID   int64
	Available bool
	Reason    string
	Note      *string

	StartTime types.TimeString
	EndTime   types.TimeString
	IsCustom  bool

	Booked    []Interval
	Held      []Interval
	FreeSlots []types.TimeString
}

// Response модель ответа с доступностью сотрудников
// Порядок элементов повторяет порядок StaffIDs запроса
type Response struct {
	Date  time.Time
	Staff []*StaffAvailability
}
