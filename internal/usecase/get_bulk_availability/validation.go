package get_bulk_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if len(req.StaffIDs) == 0 {
		return fmt.Errorf("%w: staffIDs are required", ErrInvalidInput)
	}

	if len(req.StaffIDs) > MaxStaffPerRequest {
		return fmt.Errorf("%w: too many staffIDs, max %d", ErrInvalidInput, MaxStaffPerRequest)
	}

	for _, id := range req.StaffIDs {
		if id <= 0 {
			return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}

	return nil
}
