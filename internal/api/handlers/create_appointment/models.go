package create_appointment

import (
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	createAppointment "github.com/kmlvnk/SLN-BookingService/internal/usecase/create_appointment"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	SalonID       int64   `json:"salonId"`
	StaffID       int64   `json:"staffId"`
	ServiceID     int64   `json:"serviceId"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	Notes         *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	SalonID         int64  `json:"salonId"`
	StaffID         int64  `json:"staffId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	ServiceName     string   `json:"serviceName"`
	ListPrice       float64  `json:"listPrice"`
	FinalPrice      float64  `json:"finalPrice"`
	DiscountPercent *float64 `json:"discountPercent,omitempty"`
	CustomerName    string   `json:"customerName"`
	CustomerPhone   string   `json:"customerPhone"`
	Notes           *string  `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(sessionID string, date time.Time) *createAppointment.Request {
	return &createAppointment.Request{
		SessionID:     sessionID,
		SalonID:       r.SalonID,
		StaffID:       r.StaffID,
		ServiceID:     r.ServiceID,
		Date:          date,
		StartTime:     types.TimeString(r.StartTime),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		SalonID:         resp.SalonID,
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ListPrice:       resp.ListPrice,
		FinalPrice:      resp.FinalPrice,
		DiscountPercent: resp.DiscountPercent,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
