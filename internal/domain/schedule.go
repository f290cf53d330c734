package domain

import (
	"time"

	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// ShopHours represents salon-wide open/close times for one weekday.
// Weekday follows time.Weekday numbering: 0=Sunday .. 6=Saturday.
// A missing record for a weekday means the salon is closed that day.
type ShopHours struct {
	ID        int64
	SalonID   int64
	Weekday   int
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StaffWorkingHours represents a staff member's default availability for one weekday.
// A missing record means "fall back to shop hours", which is different from
// an explicit record with IsWorking=false ("not working this day").
type StaffWorkingHours struct {
	ID        int64
	StaffID   int64
	Weekday   int
	IsWorking bool
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduleOverride represents a date-specific exception to a staff member's
// weekly schedule: a full day off, a partial-day time-off block subtracted
// from the normal working window, or explicit custom hours replacing the
// weekday's working hours for that one date.
// At most one override exists per (staff, date); writes are upserts.
type ScheduleOverride struct {
	ID        int64
	StaffID   int64
	Date      time.Time
	IsDayOff  bool
	IsTimeOff bool              // partial-day time off; StartTime/EndTime give the excluded interval
	StartTime *types.TimeString // nil when IsDayOff
	EndTime   *types.TimeString // nil when IsDayOff
	Note      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCustomHours returns true if the override replaces the day's working hours
// with explicit custom hours rather than marking time off
func (o *ScheduleOverride) IsCustomHours() bool {
	return !o.IsDayOff && !o.IsTimeOff && o.StartTime != nil && o.EndTime != nil
}
