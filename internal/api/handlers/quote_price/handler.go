package quote_price

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kmlvnk/SLN-BookingService/internal/api/handlers"
	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/internal/service/discounts"
	"github.com/kmlvnk/SLN-BookingService/internal/service/discounts/models"
)

const (
	msgInvalidSalonID   = "некорректный ID салона"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidStaffID   = "некорректный ID сотрудника"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound  = "услуга не найдена"
	msgInvalidRequest   = "некорректные параметры запроса"
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

// Handle GET /api/v1/salons/{salonId}/price-quote?serviceId=1&date=YYYY-MM-DD&startTime=10:00&staffId=5
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	query := r.URL.Query()

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var staffID *int64
	if raw := query.Get("staffId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		staffID = &id
	}

	result, err := h.discounts.QuotePrice(r.Context(), &models.QuotePriceRequest{
		SalonID:   salonID,
		ServiceID: serviceID,
		StaffID:   staffID,
		Date:      date,
		StartTime: query.Get("startTime"),
	})
	if err != nil {
		switch {
		case errors.Is(err, discounts.ErrServiceNotFound):
			h.logger.Warn("GET /price-quote - Service not found: salon=%d, service=%d", salonID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, discounts.ErrInvalidInput):
			h.logger.Warn("GET /price-quote - Invalid input: salon=%d: %v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /price-quote - Failed: salon=%d, service=%d, error=%v", salonID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
