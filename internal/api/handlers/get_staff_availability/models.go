package get_staff_availability

import (
	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	getStaffAvailability "github.com/kmlvnk/SLN-BookingService/internal/usecase/get_staff_availability"
)

// IntervalResponse занятый интервал [startTime, endTime)
type IntervalResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	StaffID   int64   `json:"staffId"`
	Date      string  `json:"date"`
	Available bool    `json:"available"`
	Reason    string  `json:"reason,omitempty"`
	Note      *string `json:"note,omitempty"`

	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	IsCustom  bool   `json:"isCustom,omitempty"`

	Booked    []IntervalResponse `json:"booked"`
	Held      []IntervalResponse `json:"held"`
	FreeSlots []string           `json:"freeSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getStaffAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		StaffID:   resp.StaffID,
		Date:      resp.Date.Format(domain.DateFormat),
		Available: resp.Available,
		Reason:    resp.Reason,
		Note:      resp.Note,
		IsCustom:  resp.IsCustom,
		Booked:    make([]IntervalResponse, 0, len(resp.Booked)),
		Held:      make([]IntervalResponse, 0, len(resp.Held)),
		FreeSlots: make([]string, 0, len(resp.FreeSlots)),
	}

	if resp.Available {
		out.StartTime = resp.StartTime.String()
		out.EndTime = resp.EndTime.String()
	}

	for _, i := range resp.Booked {
		out.Booked = append(out.Booked, IntervalResponse{StartTime: i.StartTime.String(), EndTime: i.EndTime.String()})
	}
	for _, i := range resp.Held {
		out.Held = append(out.Held, IntervalResponse{StartTime: i.StartTime.String(), EndTime: i.EndTime.String()})
	}
	for _, s := range resp.FreeSlots {
		out.FreeSlots = append(out.FreeSlots, s.String())
	}

	return out
}
