package domain

import (
	"time"

	"github.com/kmlvnk/SLN-BookingService/pkg/timerange"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// Discount represents a time-window discount rule for a salon.
// The discount window [StartTime, EndTime) is half-open: a discount
// ending "16:00" does not apply at exactly 16:00.
type Discount struct {
	ID              int64
	SalonID         int64
	Title           string
	DiscountPercent float64
	StartTime       types.TimeString
	EndTime         types.TimeString
	DaysOfWeek      []int   // 0=Sunday .. 6=Saturday
	ServiceIDs      []int64 // services the discount applies to
	StaffIDs        []int64 // empty = applies to all staff
	IsActive        bool
	ValidFrom       *time.Time // nil = unbounded
	ValidUntil      *time.Time // nil = unbounded
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasValidPercent returns true if DiscountPercent is within [0, 100].
// Out-of-range values are treated as "no discount", never clamped.
func (d *Discount) HasValidPercent() bool {
	return d.DiscountPercent >= 0 && d.DiscountPercent <= 100
}

// AppliesToService returns true if the discount covers the given service
func (d *Discount) AppliesToService(serviceID int64) bool {
	for _, id := range d.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// AppliesToWeekday returns true if the discount covers the given weekday
func (d *Discount) AppliesToWeekday(weekday int) bool {
	for _, wd := range d.DaysOfWeek {
		if wd == weekday {
			return true
		}
	}
	return false
}

// AppliesToStaff returns true if the discount covers the given staff member.
// A nil staffID means the caller is not constrained by staff: the filter is
// bypassed even when StaffIDs is non-empty. An empty StaffIDs set matches everyone.
func (d *Discount) AppliesToStaff(staffID *int64) bool {
	if staffID == nil {
		return true
	}
	if len(d.StaffIDs) == 0 {
		return true
	}
	for _, id := range d.StaffIDs {
		if id == *staffID {
			return true
		}
	}
	return false
}

// AppliesToTime returns true if t falls within the half-open discount window
func (d *Discount) AppliesToTime(t types.TimeString) bool {
	return timerange.InRange(t, d.StartTime, d.EndTime)
}

// WithinValidityDates returns true if date falls within the optional
// absolute [ValidFrom, ValidUntil] bounds (inclusive, date precision)
func (d *Discount) WithinValidityDates(date time.Time) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if d.ValidFrom != nil {
		from := time.Date(d.ValidFrom.Year(), d.ValidFrom.Month(), d.ValidFrom.Day(), 0, 0, 0, 0, date.Location())
		if day.Before(from) {
			return false
		}
	}
	if d.ValidUntil != nil {
		until := time.Date(d.ValidUntil.Year(), d.ValidUntil.Month(), d.ValidUntil.Day(), 0, 0, 0, 0, date.Location())
		if day.After(until) {
			return false
		}
	}
	return true
}
