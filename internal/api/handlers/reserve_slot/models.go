package reserve_slot

import (
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	reserveSlot "github.com/kmlvnk/SLN-BookingService/internal/usecase/reserve_slot"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	SalonID         int64  `json:"salonId"`
	StaffID         int64  `json:"staffId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64  `json:"id"`
	StaffID         int64  `json:"staffId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	ExpiresAt       string `json:"expiresAt"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *ReserveSlotRequest) ToUseCaseRequest(sessionID string, date time.Time) *reserveSlot.Request {
	return &reserveSlot.Request{
		SessionID:       sessionID,
		SalonID:         r.SalonID,
		StaffID:         r.StaffID,
		Date:            date,
		StartTime:       types.TimeString(r.StartTime),
		DurationMinutes: r.DurationMinutes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		StaffID:         resp.StaffID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		ExpiresAt:       resp.ExpiresAt.Format(time.RFC3339),
	}
}
