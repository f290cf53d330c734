package get_best_discount

import (
	"context"

	"github.com/kmlvnk/SLN-BookingService/internal/service/discounts/models"
)

type DiscountsService interface {
	BestForService(ctx context.Context, salonID, serviceID int64) (*models.BestDiscountResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
