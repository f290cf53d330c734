package domain

import (
	"time"

	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a confirmed customer appointment in a salon
type Appointment struct {
	ID              int64
	SalonID         int64
	StaffID         int64
	ServiceID       int64
	SessionID       *string // browsing session that booked the appointment, if any
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName     string
	ListPrice       float64
	FinalPrice      float64
	DiscountPercent *float64
	CustomerName    string
	CustomerPhone   string
	Notes           *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment blocks its time slot.
// Cancelled and no-show appointments do not block.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusConfirmed
}

// EndTime returns the exclusive end of the appointment interval
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// StaffAppointmentsFilter filter for querying a staff member's appointments
type StaffAppointmentsFilter struct {
	StaffIDs        []int64
	Date            *time.Time
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *AppointmentStatus
	IncludeInactive bool
}
