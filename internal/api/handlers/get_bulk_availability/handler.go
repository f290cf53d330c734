package get_bulk_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kmlvnk/SLN-BookingService/internal/api/handlers"
	"github.com/kmlvnk/SLN-BookingService/internal/api/middleware"
	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	getBulkAvailability "github.com/kmlvnk/SLN-BookingService/internal/usecase/get_bulk_availability"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgInvalidBody    = "некорректное тело запроса"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetBulkAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetBulkAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/{salonId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req BulkAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	sessionID, _ := middleware.SessionIDFromContext(r.Context())

	result, err := h.useCase.Execute(r.Context(), &getBulkAvailability.Request{
		SessionID:       sessionID,
		SalonID:         salonID,
		StaffIDs:        req.StaffIDs,
		Date:            date,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, getBulkAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: salon=%d: %v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /availability - Failed: salon=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
