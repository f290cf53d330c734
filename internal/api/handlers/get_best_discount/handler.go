package get_best_discount

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kmlvnk/SLN-BookingService/internal/api/handlers"
)

const (
	msgInvalidSalonID   = "некорректный ID салона"
	msgInvalidServiceID = "некорректный ID услуги"
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

// Handle GET /api/v1/salons/{salonId}/services/{serviceId}/best-discount
//
// Витринная операция "скидка до X%": возвращает максимальный процент
// скидки на услугу без учета времени, дня недели и сотрудника
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.discounts.BestForService(r.Context(), salonID, serviceID)
	if err != nil {
		h.logger.Error("GET /best-discount - Failed: salon=%d, service=%d, error=%v", salonID, serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
