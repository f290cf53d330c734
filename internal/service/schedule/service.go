package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	scheduleRepo "github.com/kmlvnk/SLN-BookingService/internal/infra/storage/schedule"
	"github.com/kmlvnk/SLN-BookingService/internal/service/schedule/models"
	"github.com/kmlvnk/SLN-BookingService/pkg/timerange"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// Service сервис администрирования расписаний
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// SetShopHours устанавливает часы работы салона на неделю.
// Все дни записываются в одной транзакции: неделя либо обновляется
// целиком, либо не меняется вовсе
func (s *Service) SetShopHours(ctx context.Context, salonID int64, req *models.SetShopHoursRequest) ([]*models.ShopHoursResponse, error) {
	if len(req.Days) == 0 {
		return nil, fmt.Errorf("%w: at least one day is required", ErrInvalidInput)
	}

	hours := make([]*domain.ShopHours, 0, len(req.Days))
	for _, day := range req.Days {
		h, err := s.buildShopHours(salonID, day)
		if err != nil {
			return nil, err
		}
		hours = append(hours, h)
	}

	result := make([]*models.ShopHoursResponse, 0, len(hours))
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, h := range hours {
			saved, err := s.scheduleRepo.UpsertShopHours(ctx, h)
			if err != nil {
				return err
			}
			result = append(result, models.FromDomainShopHours(saved))
		}
		return nil
	})
	if err != nil {
		s.logger.Error("SetShopHours: failed to save shop hours for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: SetShopHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetShopHours: saved %d days for salon=%d", len(result), salonID)
	return result, nil
}

// ListShopHours получает часы работы салона на все дни недели
func (s *Service) ListShopHours(ctx context.Context, salonID int64) ([]*models.ShopHoursResponse, error) {
	list, err := s.scheduleRepo.ListShopHours(ctx, salonID)
	if err != nil {
		s.logger.Error("ListShopHours: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListShopHours - repository error: %v", ErrInternal, err)
	}

	result := make([]*models.ShopHoursResponse, 0, len(list))
	for _, h := range list {
		result = append(result, models.FromDomainShopHours(h))
	}
	return result, nil
}

// UpsertWorkingHours устанавливает график сотрудника на день недели
func (s *Service) UpsertWorkingHours(ctx context.Context, staffID int64, req *models.UpsertWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	if req.Weekday < domain.MinWeekday || req.Weekday > domain.MaxWeekday {
		return nil, fmt.Errorf("%w: weekday %d", ErrInvalidWeekday, req.Weekday)
	}

	wh := &domain.StaffWorkingHours{
		StaffID:   staffID,
		Weekday:   req.Weekday,
		IsWorking: req.IsWorking,
	}

	// Для нерабочего дня времена не обязательны
	if req.IsWorking {
		start, end, err := parseTimeRange(req.StartTime, req.EndTime)
		if err != nil {
			return nil, err
		}
		wh.StartTime = start
		wh.EndTime = end
	}

	saved, err := s.scheduleRepo.UpsertStaffWorkingHours(ctx, wh)
	if err != nil {
		s.logger.Error("UpsertWorkingHours: failed to save working hours for staff=%d weekday=%d: %v", staffID, req.Weekday, err)
		return nil, fmt.Errorf("%w: UpsertWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertWorkingHours: saved working hours for staff=%d weekday=%d", staffID, req.Weekday)
	return models.FromDomainWorkingHours(saved), nil
}

// UpsertOverride устанавливает исключение из графика на дату.
// Повторная запись на ту же дату обновляет существующее исключение
func (s *Service) UpsertOverride(ctx context.Context, staffID int64, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error) {
	override := &domain.ScheduleOverride{
		StaffID:   staffID,
		Date:      req.Date,
		IsDayOff:  req.IsDayOff,
		IsTimeOff: req.IsTimeOff,
		Note:      req.Note,
	}

	if req.IsDayOff && req.IsTimeOff {
		return nil, fmt.Errorf("%w: override cannot be both day off and time off", ErrInvalidInput)
	}

	if !req.IsDayOff {
		if req.StartTime == nil || req.EndTime == nil {
			return nil, fmt.Errorf("%w: start and end time are required", ErrInvalidInput)
		}
		start, end, err := parseTimeRange(*req.StartTime, *req.EndTime)
		if err != nil {
			return nil, err
		}
		override.StartTime = &start
		override.EndTime = &end
	}

	saved, err := s.scheduleRepo.UpsertOverride(ctx, override)
	if err != nil {
		s.logger.Error("UpsertOverride: failed to save override for staff=%d date=%s: %v",
			staffID, req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: UpsertOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertOverride: saved override for staff=%d date=%s", staffID, req.Date.Format(domain.DateFormat))
	return models.FromDomainOverride(saved), nil
}

// DeleteOverride удаляет исключение из графика
func (s *Service) DeleteOverride(ctx context.Context, id int64) error {
	if err := s.scheduleRepo.DeleteOverride(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: override id=%d not found", id)
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: failed to delete override id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteOverride: override id=%d deleted", id)
	return nil
}

// ListOverridesByMonth получает исключения сотрудника за календарный месяц
func (s *Service) ListOverridesByMonth(ctx context.Context, staffID int64, year int, month time.Month) ([]*models.OverrideResponse, error) {
	list, err := s.scheduleRepo.ListOverridesByMonth(ctx, staffID, year, month)
	if err != nil {
		s.logger.Error("ListOverridesByMonth: repository error for staff=%d %d-%02d: %v", staffID, year, month, err)
		return nil, fmt.Errorf("%w: ListOverridesByMonth - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOverrides(list), nil
}

func (s *Service) buildShopHours(salonID int64, day models.DayHours) (*domain.ShopHours, error) {
	if day.Weekday < domain.MinWeekday || day.Weekday > domain.MaxWeekday {
		return nil, fmt.Errorf("%w: weekday %d", ErrInvalidWeekday, day.Weekday)
	}

	h := &domain.ShopHours{
		SalonID: salonID,
		Weekday: day.Weekday,
		IsOpen:  day.IsOpen,
	}

	if day.IsOpen {
		open, closeTime, err := parseTimeRange(day.OpenTime, day.CloseTime)
		if err != nil {
			return nil, err
		}
		h.OpenTime = open
		h.CloseTime = closeTime
	}

	return h, nil
}

// parseTimeRange разбирает пару времен и проверяет, что интервал не пуст
func parseTimeRange(startStr, endStr string) (types.TimeString, types.TimeString, error) {
	start, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, startStr)
	}
	end, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid end time %q", ErrInvalidInput, endStr)
	}
	if !timerange.IsNonEmptyRange(start, end) {
		return "", "", fmt.Errorf("%w: %s..%s", ErrInvalidTimeRange, start, end)
	}
	return start, end, nil
}
