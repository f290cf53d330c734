package domain

// Default configuration values
const (
	DefaultHoldTTLMinutes          = 10 // how long a slot reservation survives without being confirmed
	DefaultServiceDurationMinutes  = 30
	DefaultMinBookingNoticeMinutes = 0
)

// Business validation constants
const (
	MinWeekday = 0 // Sunday
	MaxWeekday = 6 // Saturday

	MinDiscountPercent = 0
	MaxDiscountPercent = 100

	MaxNoteLength               = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не блокирующих временной слот
// Используется при фильтрации пересекающихся записей
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}
