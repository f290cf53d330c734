package release_slot

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/api/handlers"
	"github.com/kmlvnk/SLN-BookingService/internal/api/middleware"
	"github.com/kmlvnk/SLN-BookingService/internal/domain"
)

const (
	msgInvalidStaffID = "некорректный ID сотрудника"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	reservations ReservationsService
	logger       Logger
}

func NewHandler(reservations ReservationsService, logger Logger) *Handler {
	return &Handler{
		reservations: reservations,
		logger:       logger,
	}
}

// Handle DELETE /api/v1/reservations
//
// Без параметров снимает все резервы сессии. С параметрами
// staffId, date и startTime снимает только конкретный слот
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		handlers.RespondBadRequest(w, "отсутствует идентификатор сессии")
		return
	}

	var (
		staffID   *int64
		date      *time.Time
		startTime *string
	)

	query := r.URL.Query()

	if raw := query.Get("staffId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		staffID = &id
	}

	if raw := query.Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = &parsed
	}

	if raw := query.Get("startTime"); raw != "" {
		startTime = &raw
	}

	if err := h.reservations.Release(r.Context(), sessionID, staffID, date, startTime); err != nil {
		h.logger.Error("DELETE /reservations - Failed: session=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondNoContent(w)
}
