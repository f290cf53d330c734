package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	catalogClient "github.com/kmlvnk/SLN-BookingService/internal/integrations/catalogservice"
	"github.com/kmlvnk/SLN-BookingService/internal/service/discounts"
)

// UseCase use case для создания подтвержденной записи клиента
type UseCase struct {
	appointmentRepo AppointmentRepository
	reservationRepo ReservationRepository
	discountRepo    DiscountRepository
	catalog         CatalogServiceClient
	availability    AvailabilityResolver
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	reservationRepo ReservationRepository,
	discountRepo DiscountRepository,
	catalog CatalogServiceClient,
	availability AvailabilityResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		reservationRepo: reservationRepo,
		discountRepo:    discountRepo,
		catalog:         catalog,
		availability:    availability,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
//
// Цена и длительность всегда берутся из каталога, а не из запроса клиента.
// Конфликтные проверки повторяются на коммите в сериализуемой транзакции:
// резерв, сделанный ранее, не освобождает от финальной проверки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: session=%s, salon=%d, staff=%d, service=%d, date=%s, time=%s",
		req.SessionID, req.SalonID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата не должна быть в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Услуга из каталога: авторитетный источник цены и длительности
	service, err := uc.catalog.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found in salon=%d", req.ServiceID, req.SalonID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Сотрудник должен существовать и быть активным
	staff, err := uc.catalog.GetStaff(ctx, req.SalonID, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found in salon=%d", req.StaffID, req.SalonID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		uc.logger.Warn("CreateAppointment: staff id=%d is inactive", req.StaffID)
		return nil, ErrStaffNotFound
	}

	duration := service.DurationMinutes
	if duration <= 0 {
		duration = domain.DefaultServiceDurationMinutes
	}

	// 5. Конец слота не должен выходить за пределы суток
	endTime, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		uc.logger.Warn("CreateAppointment: slot %s+%dmin exceeds day range", req.StartTime, duration)
		return nil, fmt.Errorf("%w: slot end is out of day range", ErrInvalidInput)
	}

	// 6. Слот должен лежать в рабочем окне сотрудника
	day, err := uc.availability.ResolveForDate(ctx, req.SalonID, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to resolve availability for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}
	if err := validateWithinAvailability(day, req.StartTime, endTime); err != nil {
		uc.logger.Warn("CreateAppointment: slot %s-%s rejected by availability: %v", req.StartTime, endTime, err)
		return nil, err
	}

	// 7. Цена пересчитывается на сервере по активным скидкам
	discountList, err := uc.discountRepo.ListBySalon(ctx, req.SalonID, true)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to list discounts for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to list discounts: %v", ErrInternal, err)
	}

	applied := discounts.FindApplicable(discountList, discounts.Slot{
		ServiceID: req.ServiceID,
		StaffID:   &req.StaffID,
		Date:      req.Date,
		StartTime: req.StartTime,
	})
	finalPrice := discounts.PriceAfter(service.Price, applied)

	var result *domain.Appointment

	// 8. Финальные конфликтные проверки и создание записи в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Ленивая очистка истекших резервов
		if _, err := uc.reservationRepo.DeleteExpired(txCtx, now); err != nil {
			uc.logger.Error("CreateAppointment: failed to purge expired reservations: %v", err)
			return fmt.Errorf("%w: failed to purge expired reservations: %v", ErrInternal, err)
		}

		// 8.2. Слот не должен пересекаться с подтвержденными записями (FOR UPDATE)
		appointments, err := uc.appointmentRepo.ListOverlapping(txCtx, req.StaffID, req.Date, req.StartTime, endTime)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check appointments: %v", err)
			return fmt.Errorf("%w: failed to check appointments: %v", ErrInternal, err)
		}
		if len(appointments) > 0 {
			uc.logger.Warn("CreateAppointment: slot %s-%s overlaps %d appointments", req.StartTime, endTime, len(appointments))
			return ErrSlotAlreadyBooked
		}

		// 8.3. Слот не должен удерживаться живым резервом другой сессии
		held, err := uc.reservationRepo.ListOverlapping(txCtx, req.StaffID, req.Date, req.StartTime, endTime, req.SessionID, now)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check reservations: %v", err)
			return fmt.Errorf("%w: failed to check reservations: %v", ErrInternal, err)
		}
		if len(held) > 0 {
			uc.logger.Warn("CreateAppointment: slot %s-%s held by another session", req.StartTime, endTime)
			return ErrSlotHeld
		}

		// 8.4. Создаем запись с денормализацией данных услуги и клиента
		appointment := &domain.Appointment{
			SalonID:         req.SalonID,
			StaffID:         req.StaffID,
			ServiceID:       req.ServiceID,
			SessionID:       &req.SessionID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ListPrice:       service.Price,
			FinalPrice:      finalPrice,
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			Notes:           req.Notes,
		}
		if applied != nil {
			appointment.DiscountPercent = &applied.DiscountPercent
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 8.5. Резерв сессии выполнил свою задачу и освобождается
		if err := uc.reservationRepo.DeleteBySession(txCtx, req.SessionID); err != nil {
			uc.logger.Error("CreateAppointment: failed to release reservation: %v", err)
			return fmt.Errorf("%w: failed to release reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d, final price %.2f", result.ID, result.FinalPrice)

	return &Response{
		ID:              result.ID,
		SalonID:         result.SalonID,
		StaffID:         result.StaffID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ListPrice:       result.ListPrice,
		FinalPrice:      result.FinalPrice,
		DiscountPercent: result.DiscountPercent,
		CustomerName:    result.CustomerName,
		CustomerPhone:   result.CustomerPhone,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
	}, nil
}
