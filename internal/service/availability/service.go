package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	scheduleRepo "github.com/kmlvnk/SLN-BookingService/internal/infra/storage/schedule"
	"github.com/kmlvnk/SLN-BookingService/pkg/timerange"
)

// Service сервис расчета доступности сотрудников
//
// Правила приоритета на конкретную дату:
//  1. Исключение "выходной" (is_day_off) - сотрудник недоступен
//  2. Исключение с особыми часами - часы берутся из исключения как есть,
//     без пересечения с часами работы салона
//  3. Недельный график сотрудника - пересекается с часами работы салона
//  4. Нет графика сотрудника - используются часы работы салона
//  5. Частичный отгул (is_time_off) не меняет рабочее окно, а добавляет
//     исключаемый интервал внутри него
type Service struct {
	schedules ScheduleRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(schedules ScheduleRepository, logger Logger) *Service {
	return &Service{
		schedules: schedules,
		logger:    logger,
	}
}

// ResolveForDate вычисляет доступность одного сотрудника на дату
func (s *Service) ResolveForDate(ctx context.Context, salonID, staffID int64, date time.Time) (*domain.DayAvailability, error) {
	weekday := int(date.Weekday())

	shop, err := s.schedules.GetShopHours(ctx, salonID, weekday)
	if err != nil && !errors.Is(err, scheduleRepo.ErrShopHoursNotFound) {
		s.logger.Error("ResolveForDate: failed to fetch shop hours for salon=%d weekday=%d: %v", salonID, weekday, err)
		return nil, fmt.Errorf("%w: ResolveForDate - shop hours: %v", ErrInternal, err)
	}

	staffHours, err := s.schedules.GetStaffWorkingHours(ctx, staffID, weekday)
	if err != nil && !errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
		s.logger.Error("ResolveForDate: failed to fetch working hours for staff=%d weekday=%d: %v", staffID, weekday, err)
		return nil, fmt.Errorf("%w: ResolveForDate - staff working hours: %v", ErrInternal, err)
	}

	override, err := s.schedules.GetOverride(ctx, staffID, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		s.logger.Error("ResolveForDate: failed to fetch override for staff=%d date=%s: %v", staffID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ResolveForDate - schedule override: %v", ErrInternal, err)
	}

	return ResolveDay(shop, staffHours, override), nil
}

// ResolveForStaffIDs вычисляет доступность нескольких сотрудников на дату.
// Расписания всех сотрудников загружаются одним запросом на каждый тип записи,
// чтобы bulk-просмотр не порождал N+1 запросов
func (s *Service) ResolveForStaffIDs(ctx context.Context, salonID int64, staffIDs []int64, date time.Time) (map[int64]*domain.DayAvailability, error) {
	result := make(map[int64]*domain.DayAvailability, len(staffIDs))
	if len(staffIDs) == 0 {
		return result, nil
	}

	weekday := int(date.Weekday())

	shop, err := s.schedules.GetShopHours(ctx, salonID, weekday)
	if err != nil && !errors.Is(err, scheduleRepo.ErrShopHoursNotFound) {
		s.logger.Error("ResolveForStaffIDs: failed to fetch shop hours for salon=%d weekday=%d: %v", salonID, weekday, err)
		return nil, fmt.Errorf("%w: ResolveForStaffIDs - shop hours: %v", ErrInternal, err)
	}

	workingHours, err := s.schedules.ListStaffWorkingHoursByStaffIDs(ctx, staffIDs, weekday)
	if err != nil {
		s.logger.Error("ResolveForStaffIDs: failed to fetch working hours for %d staff: %v", len(staffIDs), err)
		return nil, fmt.Errorf("%w: ResolveForStaffIDs - staff working hours: %v", ErrInternal, err)
	}

	overrides, err := s.schedules.ListOverridesByStaffIDs(ctx, staffIDs, date)
	if err != nil {
		s.logger.Error("ResolveForStaffIDs: failed to fetch overrides for %d staff: %v", len(staffIDs), err)
		return nil, fmt.Errorf("%w: ResolveForStaffIDs - schedule overrides: %v", ErrInternal, err)
	}

	hoursByStaff := make(map[int64]*domain.StaffWorkingHours, len(workingHours))
	for _, wh := range workingHours {
		hoursByStaff[wh.StaffID] = wh
	}

	overrideByStaff := make(map[int64]*domain.ScheduleOverride, len(overrides))
	for _, o := range overrides {
		overrideByStaff[o.StaffID] = o
	}

	for _, staffID := range staffIDs {
		result[staffID] = ResolveDay(shop, hoursByStaff[staffID], overrideByStaff[staffID])
	}

	return result, nil
}

// ResolveDay вычисляет доступность сотрудника на день по трем источникам.
// Любой из аргументов может быть nil, что означает отсутствие записи:
// отсутствие часов салона - салон закрыт, отсутствие графика сотрудника -
// сотрудник работает по часам салона, отсутствие исключения - обычный день
func ResolveDay(shop *domain.ShopHours, staffHours *domain.StaffWorkingHours, override *domain.ScheduleOverride) *domain.DayAvailability {
	if override != nil && override.IsDayOff {
		return &domain.DayAvailability{
			Available: false,
			Reason:    domain.ReasonDayOff,
			Note:      override.Note,
		}
	}

	if override != nil && override.IsCustomHours() {
		if !timerange.IsNonEmptyRange(*override.StartTime, *override.EndTime) {
			return &domain.DayAvailability{
				Available: false,
				Reason:    domain.ReasonNoHours,
				Note:      override.Note,
			}
		}
		// Особые часы на дату авторитетны и не пересекаются с часами салона
		return &domain.DayAvailability{
			Available: true,
			StartTime: *override.StartTime,
			EndTime:   *override.EndTime,
			IsCustom:  true,
			Note:      override.Note,
		}
	}

	day := resolveWeekly(shop, staffHours)

	if day.Available && override != nil && override.IsTimeOff && override.StartTime != nil && override.EndTime != nil {
		exclStart := timerange.LaterOf(*override.StartTime, day.StartTime)
		exclEnd := timerange.EarlierOf(*override.EndTime, day.EndTime)
		if timerange.IsNonEmptyRange(exclStart, exclEnd) {
			day.ExcludeRanges = append(day.ExcludeRanges, domain.TimeRange{
				StartTime: exclStart,
				EndTime:   exclEnd,
			})
		}
		day.Note = override.Note
	}

	return day
}

// resolveWeekly вычисляет доступность по недельному графику без учета исключений
func resolveWeekly(shop *domain.ShopHours, staffHours *domain.StaffWorkingHours) *domain.DayAvailability {
	if staffHours != nil {
		if !staffHours.IsWorking {
			return &domain.DayAvailability{
				Available: false,
				Reason:    domain.ReasonNotWorking,
			}
		}

		start := staffHours.StartTime
		end := staffHours.EndTime

		if shop != nil {
			if !shop.IsOpen {
				return &domain.DayAvailability{
					Available: false,
					Reason:    domain.ReasonShopClosed,
				}
			}
			// График сотрудника пересекается с часами работы салона
			start = timerange.LaterOf(start, shop.OpenTime)
			end = timerange.EarlierOf(end, shop.CloseTime)
		}

		if !timerange.IsNonEmptyRange(start, end) {
			return &domain.DayAvailability{
				Available: false,
				Reason:    domain.ReasonNoHours,
			}
		}

		return &domain.DayAvailability{
			Available: true,
			StartTime: start,
			EndTime:   end,
		}
	}

	if shop == nil {
		return &domain.DayAvailability{
			Available: false,
			Reason:    domain.ReasonNotConfigured,
		}
	}

	if !shop.IsOpen {
		return &domain.DayAvailability{
			Available: false,
			Reason:    domain.ReasonShopClosed,
		}
	}

	if !timerange.IsNonEmptyRange(shop.OpenTime, shop.CloseTime) {
		return &domain.DayAvailability{
			Available: false,
			Reason:    domain.ReasonNoHours,
		}
	}

	return &domain.DayAvailability{
		Available: true,
		StartTime: shop.OpenTime,
		EndTime:   shop.CloseTime,
	}
}
