package get_staff_availability

import (
	"context"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
)

// AvailabilityResolver интерфейс сервиса доступности сотрудников
type AvailabilityResolver interface {
	ResolveForDate(ctx context.Context, salonID, staffID int64, date time.Time) (*domain.DayAvailability, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListByStaffIDs(ctx context.Context, staffIDs []int64, date time.Time) ([]*domain.Appointment, error)
}

// ReservationRepository интерфейс репозитория резервов слотов
type ReservationRepository interface {
	ListLiveByStaffIDs(ctx context.Context, staffIDs []int64, date time.Time, excludeSessionID string, now time.Time) ([]*domain.SlotReservation, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
