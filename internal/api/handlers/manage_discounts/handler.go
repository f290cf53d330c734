package manage_discounts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kmlvnk/SLN-BookingService/internal/api/handlers"
	"github.com/kmlvnk/SLN-BookingService/internal/api/middleware"
	"github.com/kmlvnk/SLN-BookingService/internal/service/discounts"
	"github.com/kmlvnk/SLN-BookingService/internal/service/discounts/models"
)

const (
	msgInvalidSalonID    = "некорректный ID салона"
	msgInvalidDiscountID = "некорректный ID скидки"
	msgInvalidBody       = "некорректное тело запроса"
	msgDiscountNotFound  = "скидка не найдена"
	msgInvalidRequest    = "некорректные параметры запроса"
)

type Handler struct {
	discounts DiscountsService
	logger    Logger
}

func NewHandler(discounts DiscountsService, logger Logger) *Handler {
	return &Handler{
		discounts: discounts,
		logger:    logger,
	}
}

// Create POST /api/v1/admin/salons/{salonId}/discounts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req models.CreateDiscountRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.SalonID = salonID

	result, err := h.discounts.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, discounts.ErrInvalidInput):
			h.logger.Warn("POST /admin/discounts - Invalid input: salon=%d, user=%d: %v", salonID, userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /admin/discounts - Failed: salon=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/discounts - Created: id=%d, salon=%d, user=%d", result.ID, salonID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/admin/salons/{salonId}/discounts?activeOnly=true
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	result, err := h.discounts.List(r.Context(), salonID, activeOnly)
	if err != nil {
		h.logger.Error("GET /admin/discounts - Failed: salon=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Deactivate DELETE /api/v1/admin/discounts/{id}
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDiscountID)
		return
	}

	if err := h.discounts.Deactivate(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, discounts.ErrDiscountNotFound):
			h.logger.Warn("DELETE /admin/discounts - Not found: id=%d, user=%d", id, userID)
			handlers.RespondNotFound(w, msgDiscountNotFound)

		default:
			h.logger.Error("DELETE /admin/discounts - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/discounts - Deactivated: id=%d, user=%d", id, userID)
	handlers.RespondNoContent(w)
}
