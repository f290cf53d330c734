package reservations

import (
	"context"
	"fmt"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// TimeProvider источник текущего времени, подменяется в тестах
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Service сервис для работы с временными резервами слотов.
// Резервы носят рекомендательный характер: окончательную защиту от
// двойного бронирования дает уникальный индекс в БД
type Service struct {
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса резервов
func NewService(
	reservationRepo ReservationRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Release освобождает резервы сессии.
// Если слот указан, удаляется только резерв этого слота, иначе все резервы сессии.
// Освобождение несуществующего резерва не считается ошибкой
func (s *Service) Release(ctx context.Context, sessionID string, staffID *int64, date *time.Time, startTime *string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	if staffID != nil && date != nil && startTime != nil {
		start, err := types.NewTimeStringFromString(*startTime)
		if err != nil {
			return fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, *startTime)
		}

		if err := s.reservationRepo.DeleteBySessionAndSlot(ctx, sessionID, *staffID, *date, start); err != nil {
			s.logger.Error("Release: failed to release slot staff=%d date=%s time=%s for session=%s: %v",
				*staffID, date.Format(domain.DateFormat), start, sessionID, err)
			return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Release: released slot staff=%d date=%s time=%s for session=%s",
			*staffID, date.Format(domain.DateFormat), start, sessionID)
		return nil
	}

	if err := s.reservationRepo.DeleteBySession(ctx, sessionID); err != nil {
		s.logger.Error("Release: failed to release reservations for session=%s: %v", sessionID, err)
		return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Release: released all reservations for session=%s", sessionID)
	return nil
}

// ListBySession получает резервы сессии, отбрасывая истекшие
func (s *Service) ListBySession(ctx context.Context, sessionID string) ([]*domain.SlotReservation, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	list, err := s.reservationRepo.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("ListBySession: failed to list reservations for session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: ListBySession - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	live := make([]*domain.SlotReservation, 0, len(list))
	for _, res := range list {
		if !res.IsExpired(now) {
			live = append(live, res)
		}
	}

	return live, nil
}

// PurgeExpired удаляет истекшие резервы (ленивая очистка).
// Вызывается перед операциями, которым важна актуальность резервов
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	purged, err := s.reservationRepo.DeleteExpired(ctx, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("PurgeExpired: failed to purge expired reservations: %v", err)
		return 0, fmt.Errorf("%w: PurgeExpired - repository error: %v", ErrInternal, err)
	}

	if purged > 0 {
		s.logger.Info("PurgeExpired: purged %d expired reservations", purged)
	}

	return purged, nil
}
