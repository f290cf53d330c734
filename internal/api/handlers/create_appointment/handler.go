package create_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/api/handlers"
	"github.com/kmlvnk/SLN-BookingService/internal/api/middleware"
	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	createAppointment "github.com/kmlvnk/SLN-BookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidBody         = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast          = "нельзя записаться на прошедшую дату"
	msgServiceNotFound     = "услуга не найдена"
	msgStaffNotFound       = "сотрудник не найден"
	msgStaffUnavailable    = "сотрудник недоступен в выбранную дату"
	msgOutsideWorkingHours = "слот выходит за рамки рабочего времени"
	msgSlotAlreadyBooked   = "слот уже занят"
	msgSlotHeld            = "слот удерживается другим клиентом"
	msgInvalidRequest      = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		handlers.RespondBadRequest(w, "отсутствует идентификатор сессии")
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(sessionID, date))
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: staff=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Date in past: staff=%d, date=%s", req.StaffID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrStaffUnavailable):
			h.logger.Info("POST /appointments - Staff unavailable: staff=%d, date=%s", req.StaffID, req.Date)
			handlers.RespondConflict(w, msgStaffUnavailable)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Info("POST /appointments - Outside working hours: staff=%d, start=%s", req.StaffID, req.StartTime)
			handlers.RespondConflict(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrSlotAlreadyBooked):
			h.logger.Info("POST /appointments - Slot booked: staff=%d, date=%s, start=%s", req.StaffID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, createAppointment.ErrSlotHeld):
			h.logger.Info("POST /appointments - Slot held: staff=%d, date=%s, start=%s", req.StaffID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotHeld)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /appointments - Failed: staff=%d, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Created: id=%d, staff=%d, date=%s, start=%s, price=%.2f",
		result.ID, result.StaffID, req.Date, req.StartTime, result.FinalPrice)

	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
