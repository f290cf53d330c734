package quote_price

import (
	"context"

	"github.com/kmlvnk/SLN-BookingService/internal/service/discounts/models"
)

type DiscountsService interface {
	QuotePrice(ctx context.Context, req *models.QuotePriceRequest) (*models.PriceQuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
