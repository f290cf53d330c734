package get_bulk_availability

import (
	"context"

	getBulkAvailability "github.com/kmlvnk/SLN-BookingService/internal/usecase/get_bulk_availability"
)

type GetBulkAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getBulkAvailability.Request) (*getBulkAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
