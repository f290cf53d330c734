package reserve_slot

import (
	"context"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// ReservationRepository интерфейс репозитория резервов слотов
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.SlotReservation) (*domain.SlotReservation, error)
	ListOverlapping(ctx context.Context, staffID int64, date time.Time, start, end types.TimeString, excludeSessionID string, now time.Time) ([]*domain.SlotReservation, error)
	DeleteBySession(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListOverlapping(ctx context.Context, staffID int64, date time.Time, start, end types.TimeString) ([]*domain.Appointment, error)
}

// AvailabilityResolver интерфейс сервиса доступности сотрудников
type AvailabilityResolver interface {
	ResolveForDate(ctx context.Context, salonID, staffID int64, date time.Time) (*domain.DayAvailability, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
