package availability

import (
	"context"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetShopHours(ctx context.Context, salonID int64, weekday int) (*domain.ShopHours, error)
	GetStaffWorkingHours(ctx context.Context, staffID int64, weekday int) (*domain.StaffWorkingHours, error)
	GetOverride(ctx context.Context, staffID int64, date time.Time) (*domain.ScheduleOverride, error)
	ListStaffWorkingHoursByStaffIDs(ctx context.Context, staffIDs []int64, weekday int) ([]*domain.StaffWorkingHours, error)
	ListOverridesByStaffIDs(ctx context.Context, staffIDs []int64, date time.Time) ([]*domain.ScheduleOverride, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
