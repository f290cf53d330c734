package reserve_slot

import (
	"errors"
	"net/http"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/api/handlers"
	"github.com/kmlvnk/SLN-BookingService/internal/api/middleware"
	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	reserveSlot "github.com/kmlvnk/SLN-BookingService/internal/usecase/reserve_slot"
)

const (
	msgInvalidBody         = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast          = "нельзя резервировать слот на прошедшую дату"
	msgStaffUnavailable    = "сотрудник недоступен в выбранную дату"
	msgOutsideWorkingHours = "слот выходит за рамки рабочего времени"
	msgSlotAlreadyBooked   = "слот уже занят"
	msgSlotHeld            = "слот удерживается другим клиентом"
	msgInvalidRequest      = "некорректные параметры запроса"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		handlers.RespondBadRequest(w, "отсутствует идентификатор сессии")
		return
	}

	var req ReserveSlotRequest
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
		case errors.Is(err, reserveSlot.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Date in past: staff=%d, date=%s", req.StaffID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, reserveSlot.ErrStaffUnavailable):
			h.logger.Info("POST /reservations - Staff unavailable: staff=%d, date=%s", req.StaffID, req.Date)
			handlers.RespondConflict(w, msgStaffUnavailable)

		case errors.Is(err, reserveSlot.ErrOutsideWorkingHours):
			h.logger.Info("POST /reservations - Outside working hours: staff=%d, start=%s", req.StaffID, req.StartTime)
			handlers.RespondConflict(w, msgOutsideWorkingHours)

		case errors.Is(err, reserveSlot.ErrSlotAlreadyBooked):
			h.logger.Info("POST /reservations - Slot booked: staff=%d, date=%s, start=%s", req.StaffID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, reserveSlot.ErrSlotHeld):
			h.logger.Info("POST /reservations - Slot held: staff=%d, date=%s, start=%s", req.StaffID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotHeld)

		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /reservations - Failed: staff=%d, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reserved: id=%d, staff=%d, date=%s, start=%s",
		result.ID, result.StaffID, req.Date, req.StartTime)

	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
