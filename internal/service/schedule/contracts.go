package schedule

import (
	"context"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	ListShopHours(ctx context.Context, salonID int64) ([]*domain.ShopHours, error)
	UpsertShopHours(ctx context.Context, hours *domain.ShopHours) (*domain.ShopHours, error)
	GetStaffWorkingHours(ctx context.Context, staffID int64, weekday int) (*domain.StaffWorkingHours, error)
	UpsertStaffWorkingHours(ctx context.Context, wh *domain.StaffWorkingHours) (*domain.StaffWorkingHours, error)
	ListOverridesByMonth(ctx context.Context, staffID int64, year int, month time.Month) ([]*domain.ScheduleOverride, error)
	UpsertOverride(ctx context.Context, override *domain.ScheduleOverride) (*domain.ScheduleOverride, error)
	DeleteOverride(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
