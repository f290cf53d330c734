package manage_appointments

import (
	"context"

	"github.com/kmlvnk/SLN-BookingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error)
	ListByStaff(ctx context.Context, req *models.GetStaffAppointmentsRequest) ([]*models.AppointmentResponse, error)
	Cancel(ctx context.Context, id int64, reason string) error
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
