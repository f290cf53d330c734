package reserve_slot

import (
	"fmt"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/pkg/timerange"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SessionID == "" {
		return fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date time.Time, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(today) {
		return ErrInvalidDate
	}

	return nil
}

// validateWithinAvailability проверяет, что слот [start, end) целиком лежит
// в рабочем окне сотрудника и не задевает исключаемые интервалы
func validateWithinAvailability(day *domain.DayAvailability, start, end types.TimeString) error {
	if !day.Available {
		return fmt.Errorf("%w: %s", ErrStaffUnavailable, day.Reason)
	}

	if start.IsBefore(day.StartTime) || end.IsAfter(day.EndTime) {
		return ErrOutsideWorkingHours
	}

	for _, excl := range day.ExcludeRanges {
		if timerange.Overlaps(start, end, excl.StartTime, excl.EndTime) {
			return ErrOutsideWorkingHours
		}
	}

	return nil
}
