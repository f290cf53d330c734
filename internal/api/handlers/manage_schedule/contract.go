package manage_schedule

import (
	"context"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	SetShopHours(ctx context.Context, salonID int64, req *models.SetShopHoursRequest) ([]*models.ShopHoursResponse, error)
	ListShopHours(ctx context.Context, salonID int64) ([]*models.ShopHoursResponse, error)
	UpsertWorkingHours(ctx context.Context, staffID int64, req *models.UpsertWorkingHoursRequest) (*models.WorkingHoursResponse, error)
	UpsertOverride(ctx context.Context, staffID int64, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error)
	DeleteOverride(ctx context.Context, id int64) error
	ListOverridesByMonth(ctx context.Context, staffID int64, year int, month time.Month) ([]*models.OverrideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
