package get_bulk_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/internal/service/availability"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// UseCase use case для получения доступности нескольких сотрудников на дату.
// Данные всех сотрудников загружаются одним запросом на каждый тип сущности:
// расписания, записи и резервы не порождают N+1 запросов
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

// Execute выполняет use case получения доступности сотрудников
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBulkAvailability: salon=%d, staff=%d, date=%s",
		req.SalonID, len(req.StaffIDs), req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetBulkAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Рабочие окна всех сотрудников
	days, err := uc.availability.ResolveForStaffIDs(ctx, req.SalonID, req.StaffIDs, req.Date)
	if err != nil {
		uc.logger.Error("GetBulkAvailability: failed to resolve availability: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}

	// 3. Записи всех сотрудников одним запросом
	appointments, err := uc.appointmentRepo.ListByStaffIDs(ctx, req.StaffIDs, req.Date)
	if err != nil {
		uc.logger.Error("GetBulkAvailability: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 4. Живые резервы всех сотрудников одним запросом
	held, err := uc.reservationRepo.ListLiveByStaffIDs(ctx, req.StaffIDs, req.Date, req.SessionID, now)
	if err != nil {
		uc.logger.Error("GetBulkAvailability: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	bookedByStaff := make(map[int64][]Interval, len(req.StaffIDs))
	for _, a := range appointments {
		end, err := a.EndTime()
		if err != nil {
			uc.logger.Error("GetBulkAvailability: bad appointment interval id=%d: %v", a.ID, err)
			return nil, fmt.Errorf("%w: bad appointment interval: %v", ErrInternal, err)
		}
		bookedByStaff[a.StaffID] = append(bookedByStaff[a.StaffID], Interval{StartTime: a.StartTime, EndTime: end})
	}

	heldByStaff := make(map[int64][]Interval, len(req.StaffIDs))
	for _, r := range held {
		end, err := r.EndTime()
		if err != nil {
			uc.logger.Error("GetBulkAvailability: bad reservation interval id=%d: %v", r.ID, err)
			return nil, fmt.Errorf("%w: bad reservation interval: %v", ErrInternal, err)
		}
		heldByStaff[r.StaffID] = append(heldByStaff[r.StaffID], Interval{StartTime: r.StartTime, EndTime: end})
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultServiceDurationMinutes
	}
	notBefore := notBeforeForDate(req.Date, now)

	// 5. Собираем ответ, сохраняя порядок сотрудников из запроса
	resp := &Response{
		Date:  req.Date,
		Staff: make([]*StaffAvailability, 0, len(req.StaffIDs)),
	}

	for _, staffID := range req.StaffIDs {
		day := days[staffID]
		if day == nil {
			day = &domain.DayAvailability{Available: false, Reason: domain.ReasonNotConfigured}
		}

		entry := &StaffAvailability{
			StaffID:   staffID,
			Available: day.Available,
			Reason:    day.Reason,
			Note:      day.Note,
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
			IsCustom:  day.IsCustom,
			Booked:    bookedByStaff[staffID],
			Held:      heldByStaff[staffID],
			FreeSlots: []types.TimeString{},
		}
		if entry.Booked == nil {
			entry.Booked = []Interval{}
		}
		if entry.Held == nil {
			entry.Held = []Interval{}
		}

		if day.Available {
			busy := make([]domain.TimeRange, 0, len(entry.Booked)+len(entry.Held))
			for _, i := range entry.Booked {
				busy = append(busy, domain.TimeRange{StartTime: i.StartTime, EndTime: i.EndTime})
			}
			for _, i := range entry.Held {
				busy = append(busy, domain.TimeRange{StartTime: i.StartTime, EndTime: i.EndTime})
			}

			if slots := availability.FreeSlots(day, busy, duration, notBefore); slots != nil {
				entry.FreeSlots = slots
			}
		}

		resp.Staff = append(resp.Staff, entry)
	}

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
