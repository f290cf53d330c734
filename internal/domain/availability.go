package domain

import "github.com/kmlvnk/SLN-BookingService/pkg/types"

// Unavailability reasons returned by the availability resolver.
// Admin tooling branches on these, so the exact strings are part of the contract.
const (
	ReasonDayOff        = "Day off"
	ReasonNotWorking    = "Not working this day"
	ReasonShopClosed    = "Shop closed"
	ReasonNotConfigured = "Schedule not configured"
	ReasonNoHours       = "No available hours"
)

// TimeRange is a half-open [StartTime, EndTime) interval within one day
type TimeRange struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// DayAvailability is the resolved availability of one staff member on one date
type DayAvailability struct {
	Available bool
	Reason    string // set when Available is false
	StartTime types.TimeString
	EndTime   types.TimeString
	IsCustom  bool // effective hours come from a custom-hours override
	// Sub-intervals of the working window that must be subtracted
	// when generating bookable slots (partial-day time off)
	ExcludeRanges []TimeRange
	Note          *string
}
