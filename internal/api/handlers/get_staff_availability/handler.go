package get_staff_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kmlvnk/SLN-BookingService/internal/api/handlers"
	"github.com/kmlvnk/SLN-BookingService/internal/api/middleware"
	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	getStaffAvailability "github.com/kmlvnk/SLN-BookingService/internal/usecase/get_staff_availability"
)

const (
	msgInvalidSalonID  = "некорректный ID салона"
	msgInvalidStaffID  = "некорректный ID сотрудника"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность услуги"
	msgInvalidRequest  = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetStaffAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetStaffAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/staff/{staffId}/availability?date=YYYY-MM-DD&durationMinutes=30
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	duration := 0
	if raw := r.URL.Query().Get("durationMinutes"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	sessionID, _ := middleware.SessionIDFromContext(r.Context())

	result, err := h.useCase.Execute(r.Context(), &getStaffAvailability.Request{
		SessionID:       sessionID,
		SalonID:         salonID,
		StaffID:         staffID,
		Date:            date,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, getStaffAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: salon=%d, staff=%d: %v", salonID, staffID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /availability - Failed: salon=%d, staff=%d, error=%v", salonID, staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
