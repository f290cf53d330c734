package reserve_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	reservationRepo "github.com/kmlvnk/SLN-BookingService/internal/infra/storage/reservation"
)

// UseCase use case для временного резервирования слота на время оформления
type UseCase struct {
	reservationRepo ReservationRepository
	appointmentRepo AppointmentRepository
	availability    AvailabilityResolver
	txManager       TransactionManager
	timeProvider    TimeProvider
	holdTTL         time.Duration
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	appointmentRepo AppointmentRepository,
	availability AvailabilityResolver,
	txManager TransactionManager,
	holdTTL time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		appointmentRepo: appointmentRepo,
		availability:    availability,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		holdTTL:         holdTTL,
		logger:          logger,
	}
}

// Execute выполняет use case резервирования слота
//
// Резерв защищает слот на время оформления записи. Проверки выполняются
// в сериализуемой транзакции, но единственного победителя при гонке двух
// сессий за один слот гарантирует уникальный индекс в БД, а не проверки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: session=%s, salon=%d, staff=%d, date=%s, time=%s",
		req.SessionID, req.SalonID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата не должна быть в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("ReserveSlot: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultServiceDurationMinutes
	}

	// 3. Конец слота не должен выходить за пределы суток
	endTime, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		uc.logger.Warn("ReserveSlot: slot %s+%dmin exceeds day range", req.StartTime, duration)
		return nil, fmt.Errorf("%w: slot end is out of day range", ErrInvalidInput)
	}

	// 4. Слот должен лежать в рабочем окне сотрудника
	day, err := uc.availability.ResolveForDate(ctx, req.SalonID, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("ReserveSlot: failed to resolve availability for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}
	if err := validateWithinAvailability(day, req.StartTime, endTime); err != nil {
		uc.logger.Warn("ReserveSlot: slot %s-%s rejected by availability: %v", req.StartTime, endTime, err)
		return nil, err
	}

	var result *domain.SlotReservation

	// 5. Конфликтные проверки и создание резерва в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Ленивая очистка истекших резервов
		if _, err := uc.reservationRepo.DeleteExpired(txCtx, now); err != nil {
			uc.logger.Error("ReserveSlot: failed to purge expired reservations: %v", err)
			return fmt.Errorf("%w: failed to purge expired reservations: %v", ErrInternal, err)
		}

		// 5.2. Сессия держит не более одного резерва: выбор нового слота
		// освобождает предыдущий
		if err := uc.reservationRepo.DeleteBySession(txCtx, req.SessionID); err != nil {
			uc.logger.Error("ReserveSlot: failed to release previous reservation: %v", err)
			return fmt.Errorf("%w: failed to release previous reservation: %v", ErrInternal, err)
		}

		// 5.3. Слот не должен пересекаться с подтвержденными записями
		appointments, err := uc.appointmentRepo.ListOverlapping(txCtx, req.StaffID, req.Date, req.StartTime, endTime)
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to check appointments: %v", err)
			return fmt.Errorf("%w: failed to check appointments: %v", ErrInternal, err)
		}
		if len(appointments) > 0 {
			uc.logger.Warn("ReserveSlot: slot %s-%s overlaps %d appointments", req.StartTime, endTime, len(appointments))
			return ErrSlotAlreadyBooked
		}

		// 5.4. Слот не должен удерживаться живым резервом другой сессии
		held, err := uc.reservationRepo.ListOverlapping(txCtx, req.StaffID, req.Date, req.StartTime, endTime, req.SessionID, now)
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to check reservations: %v", err)
			return fmt.Errorf("%w: failed to check reservations: %v", ErrInternal, err)
		}
		if len(held) > 0 {
			uc.logger.Warn("ReserveSlot: slot %s-%s held by another session", req.StartTime, endTime)
			return ErrSlotHeld
		}

		// 5.5. Создаем резерв
		reservation := &domain.SlotReservation{
			StaffID:         req.StaffID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			SessionID:       req.SessionID,
			ExpiresAt:       now.Add(uc.holdTTL),
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			// Проигравший гонку за уникальный индекс получает тот же ответ,
			// что и при обнаружении чужого резерва проверкой
			if errors.Is(err, reservationRepo.ErrDuplicateSlot) {
				uc.logger.Warn("ReserveSlot: lost race for slot staff=%d %s %s", req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotHeld
			}
			uc.logger.Error("ReserveSlot: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ReserveSlot: reserved slot id=%d until %s", result.ID, result.ExpiresAt.Format(time.RFC3339))

	return &Response{
		ID:              result.ID,
		StaffID:         result.StaffID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		ExpiresAt:       result.ExpiresAt,
	}, nil
}
