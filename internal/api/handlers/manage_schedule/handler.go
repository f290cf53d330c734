package manage_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kmlvnk/SLN-BookingService/internal/api/handlers"
	"github.com/kmlvnk/SLN-BookingService/internal/api/middleware"
	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/internal/service/schedule"
	"github.com/kmlvnk/SLN-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidSalonID    = "некорректный ID салона"
	msgInvalidStaffID    = "некорректный ID сотрудника"
	msgInvalidOverrideID = "некорректный ID исключения"
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidMonth      = "некорректные параметры year и month"
	msgInvalidWeekday    = "день недели должен быть в диапазоне 0..6"
	msgInvalidTimeRange  = "некорректный временной диапазон"
	msgOverrideNotFound  = "исключение из графика не найдено"
	msgInvalidRequest    = "некорректные параметры запроса"
)

type Handler struct {
	schedule ScheduleService
	logger   Logger
}

func NewHandler(schedule ScheduleService, logger Logger) *Handler {
	return &Handler{
		schedule: schedule,
		logger:   logger,
	}
}

// SetShopHours PUT /api/v1/admin/salons/{salonId}/shop-hours
//
// Заменяет недельное расписание салона целиком, одной транзакцией
func (h *Handler) SetShopHours(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req models.SetShopHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.schedule.SetShopHours(r.Context(), salonID, &req)
	if err != nil {
		h.respondScheduleError(w, "PUT /admin/shop-hours", salonID, err)
		return
	}

	h.logger.Info("PUT /admin/shop-hours - Updated: salon=%d, days=%d, user=%d", salonID, len(result), userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetShopHours GET /api/v1/admin/salons/{salonId}/shop-hours
func (h *Handler) GetShopHours(w http.ResponseWriter, r *http.Request) {
	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	result, err := h.schedule.ListShopHours(r.Context(), salonID)
	if err != nil {
		h.logger.Error("GET /admin/shop-hours - Failed: salon=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpsertWorkingHours PUT /api/v1/admin/staff/{staffId}/working-hours
func (h *Handler) UpsertWorkingHours(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req models.UpsertWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.schedule.UpsertWorkingHours(r.Context(), staffID, &req)
	if err != nil {
		h.respondScheduleError(w, "PUT /admin/working-hours", staffID, err)
		return
	}

	h.logger.Info("PUT /admin/working-hours - Updated: staff=%d, weekday=%d, user=%d", staffID, req.Weekday, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpsertOverride PUT /api/v1/admin/staff/{staffId}/overrides
func (h *Handler) UpsertOverride(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req UpsertOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.schedule.UpsertOverride(r.Context(), staffID, &models.UpsertOverrideRequest{
		Date:      date,
		IsDayOff:  req.IsDayOff,
		IsTimeOff: req.IsTimeOff,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Note:      req.Note,
	})
	if err != nil {
		h.respondScheduleError(w, "PUT /admin/overrides", staffID, err)
		return
	}

	h.logger.Info("PUT /admin/overrides - Updated: staff=%d, date=%s, user=%d", staffID, req.Date, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteOverride DELETE /api/v1/admin/overrides/{id}
func (h *Handler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidOverrideID)
		return
	}

	if err := h.schedule.DeleteOverride(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, schedule.ErrOverrideNotFound):
			handlers.RespondNotFound(w, msgOverrideNotFound)

		default:
			h.logger.Error("DELETE /admin/overrides - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/overrides - Deleted: id=%d, user=%d", id, userID)
	handlers.RespondNoContent(w)
}

// ListOverrides GET /api/v1/admin/staff/{staffId}/overrides?year=2026&month=9
func (h *Handler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	month, err := strconv.Atoi(query.Get("month"))
	if err != nil || month < 1 || month > 12 {
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.schedule.ListOverridesByMonth(r.Context(), staffID, year, time.Month(month))
	if err != nil {
		h.logger.Error("GET /admin/overrides - Failed: staff=%d, error=%v", staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// respondScheduleError мапит ошибки сервиса расписаний на HTTP статусы
func (h *Handler) respondScheduleError(w http.ResponseWriter, op string, entityID int64, err error) {
	switch {
	case errors.Is(err, schedule.ErrInvalidWeekday):
		h.logger.Warn("%s - Invalid weekday: id=%d: %v", op, entityID, err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)

	case errors.Is(err, schedule.ErrInvalidTimeRange):
		h.logger.Warn("%s - Invalid time range: id=%d: %v", op, entityID, err)
		handlers.RespondBadRequest(w, msgInvalidTimeRange)

	case errors.Is(err, schedule.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: id=%d: %v", op, entityID, err)
		handlers.RespondBadRequest(w, msgInvalidRequest)

	default:
		h.logger.Error("%s - Failed: id=%d, error=%v", op, entityID, err)
		handlers.RespondInternalError(w)
	}
}
