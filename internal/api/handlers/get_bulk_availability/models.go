package get_bulk_availability

import (
	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	getBulkAvailability "github.com/kmlvnk/SLN-BookingService/internal/usecase/get_bulk_availability"
)

// BulkAvailabilityRequest HTTP request model
type BulkAvailabilityRequest struct {
	StaffIDs        []int64 `json:"staffIds"`
	Date            string  `json:"date"`
	DurationMinutes int     `json:"durationMinutes,omitempty"`
}

// IntervalResponse занятый интервал [startTime, endTime)
type IntervalResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// StaffAvailabilityResponse доступность одного сотрудника
type StaffAvailabilityResponse struct {
	StaffID   int64   `json:"staffId"`
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

// BulkAvailabilityResponse HTTP response model
type BulkAvailabilityResponse struct {
	Date  string                      `json:"date"`
	Staff []StaffAvailabilityResponse `json:"staff"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBulkAvailability.Response) *BulkAvailabilityResponse {
	out := &BulkAvailabilityResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Staff: make([]StaffAvailabilityResponse, 0, len(resp.Staff)),
	}

	for _, s := range resp.Staff {
		item := StaffAvailabilityResponse{
			StaffID:   s.StaffID,
			Available: s.Available,
			Reason:    s.Reason,
			Note:      s.Note,
			IsCustom:  s.IsCustom,
			Booked:    make([]IntervalResponse, 0, len(s.Booked)),
			Held:      make([]IntervalResponse, 0, len(s.Held)),
			FreeSlots: make([]string, 0, len(s.FreeSlots)),
		}

		if s.Available {
			item.StartTime = s.StartTime.String()
			item.EndTime = s.EndTime.String()
		}

		for _, i := range s.Booked {
			item.Booked = append(item.Booked, IntervalResponse{StartTime: i.StartTime.String(), EndTime: i.EndTime.String()})
		}
		for _, i := range s.Held {
			item.Held = append(item.Held, IntervalResponse{StartTime: i.StartTime.String(), EndTime: i.EndTime.String()})
		}
		for _, slot := range s.FreeSlots {
			item.FreeSlots = append(item.FreeSlots, slot.String())
		}

		out.Staff = append(out.Staff, item)
	}

	return out
}
