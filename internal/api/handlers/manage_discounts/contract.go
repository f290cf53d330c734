package manage_discounts

import (
	"context"

	"github.com/kmlvnk/SLN-BookingService/internal/service/discounts/models"
)

type DiscountsService interface {
	Create(ctx context.Context, req *models.CreateDiscountRequest) (*models.DiscountResponse, error)
	List(ctx context.Context, salonID int64, activeOnly bool) ([]*models.DiscountResponse, error)
	Deactivate(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
