package get_staff_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/internal/service/availability"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// UseCase use case для получения доступности сотрудника на дату
type UseCase struct {
	availability    AvailabilityResolver
	appointmentRepo AppointmentRepository
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityResolver AvailabilityResolver,
	appointmentRepo AppointmentRepository,
	reservationRepo ReservationRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability:    availabilityResolver,
		appointmentRepo: appointmentRepo,
		reservationRepo: reservationRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetStaffAvailability: salon=%d, staff=%d, date=%s",
		req.SalonID, req.StaffID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetStaffAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Разрешаем рабочее окно сотрудника на дату
	day, err := uc.availability.ResolveForDate(ctx, req.SalonID, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetStaffAvailability: failed to resolve availability: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}

	resp := &Response{
		StaffID:   req.StaffID,
		Date:      req.Date,
		Available: day.Available,
		Reason:    day.Reason,
		Note:      day.Note,
		StartTime: day.StartTime,
		EndTime:   day.EndTime,
		IsCustom:  day.IsCustom,
		Booked:    []Interval{},
		Held:      []Interval{},
		FreeSlots: []types.TimeString{},
	}

	if !day.Available {
		return resp, nil
	}

	staffIDs := []int64{req.StaffID}

	// 3. Занятые интервалы: подтвержденные записи
	appointments, err := uc.appointmentRepo.ListByStaffIDs(ctx, staffIDs, req.Date)
	if err != nil {
		uc.logger.Error("GetStaffAvailability: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 4. Занятые интервалы: живые резервы других сессий
	held, err := uc.reservationRepo.ListLiveByStaffIDs(ctx, staffIDs, req.Date, req.SessionID, now)
	if err != nil {
		uc.logger.Error("GetStaffAvailability: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	busy := make([]domain.TimeRange, 0, len(appointments)+len(held))

	for _, a := range appointments {
		end, err := a.EndTime()
		if err != nil {
			uc.logger.Error("GetStaffAvailability: bad appointment interval id=%d: %v", a.ID, err)
			return nil, fmt.Errorf("%w: bad appointment interval: %v", ErrInternal, err)
		}
		resp.Booked = append(resp.Booked, Interval{StartTime: a.StartTime, EndTime: end})
		busy = append(busy, domain.TimeRange{StartTime: a.StartTime, EndTime: end})
	}

	for _, r := range held {
		end, err := r.EndTime()
		if err != nil {
			uc.logger.Error("GetStaffAvailability: bad reservation interval id=%d: %v", r.ID, err)
			return nil, fmt.Errorf("%w: bad reservation interval: %v", ErrInternal, err)
		}
		resp.Held = append(resp.Held, Interval{StartTime: r.StartTime, EndTime: end})
		busy = append(busy, domain.TimeRange{StartTime: r.StartTime, EndTime: end})
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultServiceDurationMinutes
	}

	// 5. Генерируем свободные слоты, на сегодня отбрасывая прошедшее время
	notBefore := notBeforeForDate(req.Date, now)
	resp.FreeSlots = availability.FreeSlots(day, busy, duration, notBefore)
	if resp.FreeSlots == nil {
		resp.FreeSlots = []types.TimeString{}
	}

	uc.logger.Info("GetStaffAvailability: staff=%d date=%s, %d free slots",
		req.StaffID, req.Date.Format(domain.DateFormat), len(resp.FreeSlots))

	return resp, nil
}

// notBeforeForDate возвращает фильтр прошедшего времени: для сегодняшней
// даты слоты раньше текущего времени не предлагаются
func notBeforeForDate(date time.Time, now time.Time) types.TimeString {
	if date.Year() == now.Year() && date.Month() == now.Month() && date.Day() == now.Day() {
		return types.NewTimeString(now)
	}
	return ""
}
