package domain

import (
	"time"

	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// SlotReservation is a short-lived, session-scoped hold on a time slot,
// preventing other customers from booking it while one customer completes
// checkout. Holds are advisory soft state: an expired hold has zero effect
// on availability, and final correctness rests on the unique constraint on
// (staff_id, reservation_date, start_time) at commit time.
type SlotReservation struct {
	ID              int64
	StaffID         int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	SessionID       string
	ExpiresAt       time.Time
	CreatedAt       time.Time
}

// IsExpired returns true if the hold no longer affects availability
func (r *SlotReservation) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}

// EndTime returns the exclusive end of the held interval
func (r *SlotReservation) EndTime() (types.TimeString, error) {
	return r.StartTime.AddMinutes(r.DurationMinutes)
}
