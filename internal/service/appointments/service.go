package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	appointmentRepo "github.com/kmlvnk/SLN-BookingService/internal/infra/storage/appointment"
	"github.com/kmlvnk/SLN-BookingService/internal/service/appointments/models"
)

// Service сервис для работы с существующими записями
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// ListByStaff получает записи сотрудников по фильтру
func (s *Service) ListByStaff(ctx context.Context, req *models.GetStaffAppointmentsRequest) ([]*models.AppointmentResponse, error) {
	if len(req.StaffIDs) == 0 {
		return nil, fmt.Errorf("%w: staff ids are required", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	list, err := s.appointmentRepo.ListByStaff(ctx, filter)
	if err != nil {
		s.logger.Error("ListByStaff: repository error for %d staff: %v", len(req.StaffIDs), err)
		return nil, fmt.Errorf("%w: ListByStaff - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointments(list), nil
}

// Cancel отменяет запись с указанием причины.
// Отменять можно только подтвержденные записи, слот при этом освобождается
func (s *Service) Cancel(ctx context.Context, id int64, reason string) error {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d in status=%s cannot be cancelled", id, appt.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, id, reason); err != nil {
		s.logger.Error("Cancel: failed to cancel appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: appointment id=%d cancelled, slot released", id)
	return nil
}

// UpdateStatus обновляет статус записи.
// Используется администратором для отметки неявки клиента
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	domainStatus, err := models.ToDomainStatus(status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status %q for appointment id=%d", status, id)
		return ErrInvalidStatus
	}

	if domainStatus == domain.StatusCancelled {
		// Отмена идет отдельным путем с обязательной причиной
		return ErrInvalidStatus
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, domainStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: failed to update appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d status set to %s", id, domainStatus)
	return nil
}
