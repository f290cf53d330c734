package release_slot

import (
	"context"
	"time"
)

type ReservationsService interface {
	Release(ctx context.Context, sessionID string, staffID *int64, date *time.Time, startTime *string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
