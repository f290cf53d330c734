package reservations

import (
	"context"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// ReservationRepository интерфейс репозитория резервов слотов
type ReservationRepository interface {
	ListBySession(ctx context.Context, sessionID string) ([]*domain.SlotReservation, error)
	DeleteBySession(ctx context.Context, sessionID string) error
	DeleteBySessionAndSlot(ctx context.Context, sessionID string, staffID int64, date time.Time, start types.TimeString) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
