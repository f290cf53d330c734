package manage_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kmlvnk/SLN-BookingService/internal/api/handlers"
	"github.com/kmlvnk/SLN-BookingService/internal/api/middleware"
	"github.com/kmlvnk/SLN-BookingService/internal/service/appointments"
	"github.com/kmlvnk/SLN-BookingService/internal/service/appointments/models"
)

const (
	msgInvalidID           = "некорректный ID записи"
	msgInvalidBody         = "некорректное тело запроса"
	msgAppointmentNotFound = "запись не найдена"
	msgCannotCancel        = "запись нельзя отменить в текущем статусе"
	msgReasonRequired      = "причина отмены обязательна"
	msgInvalidStatus       = "некорректный статус записи"
	msgInvalidRequest      = "некорректные параметры запроса"
)

type Handler struct {
	appointments AppointmentsService
	logger       Logger
}

func NewHandler(appointments AppointmentsService, logger Logger) *Handler {
	return &Handler{
		appointments: appointments,
		logger:       logger,
	}
}

// Get GET /api/v1/admin/appointments/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.appointments.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		default:
			h.logger.Error("GET /admin/appointments - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListByStaff POST /api/v1/admin/appointments/search
//
// Поиск по нескольким сотрудникам с фильтрами по дате и статусу,
// поэтому параметры передаются телом, а не query строкой
func (h *Handler) ListByStaff(w http.ResponseWriter, r *http.Request) {
	var req models.GetStaffAppointmentsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.appointments.ListByStaff(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidStatus), errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("POST /admin/appointments/search - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /admin/appointments/search - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Cancel PATCH /api/v1/admin/appointments/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if req.CancellationReason == "" {
		handlers.RespondBadRequest(w, msgReasonRequired)
		return
	}

	if err := h.appointments.Cancel(r.Context(), id, req.CancellationReason); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrCannotCancel):
			h.logger.Warn("PATCH /admin/appointments/cancel - Cannot cancel: id=%d, user=%d", id, userID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /admin/appointments/cancel - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/appointments/cancel - Cancelled: id=%d, user=%d", id, userID)
	handlers.RespondNoContent(w)
}

// UpdateStatus PUT /api/v1/admin/appointments/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.appointments.UpdateStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("PUT /admin/appointments/status - Invalid status: id=%d, status=%q", id, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PUT /admin/appointments/status - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/appointments/status - Updated: id=%d, status=%s, user=%d", id, req.Status, userID)
	handlers.RespondNoContent(w)
}
