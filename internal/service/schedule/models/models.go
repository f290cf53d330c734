package models

import (
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
)

// Request модели

// DayHours часы работы на один день недели
type DayHours struct {
	Weekday   int    `json:"weekday"` // 0=воскресенье .. 6=суббота
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`  // "09:00"
	CloseTime string `json:"closeTime"` // "18:00"
}

// SetShopHoursRequest запрос на установку часов работы салона на неделю
type SetShopHoursRequest struct {
	Days []DayHours `json:"days"`
}

// UpsertWorkingHoursRequest запрос на установку графика сотрудника на день недели
type UpsertWorkingHoursRequest struct {
	Weekday   int    `json:"weekday"`
	IsWorking bool   `json:"isWorking"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// UpsertOverrideRequest запрос на установку исключения из графика на дату
type UpsertOverrideRequest struct {
	Date      time.Time `json:"date"`
	IsDayOff  bool      `json:"isDayOff"`
	IsTimeOff bool      `json:"isTimeOff"`
	StartTime *string   `json:"startTime,omitempty"`
	EndTime   *string   `json:"endTime,omitempty"`
	Note      *string   `json:"note,omitempty"`
}

// Response модели

// ShopHoursResponse часы работы салона на день недели
type ShopHoursResponse struct {
	ID        int64  `json:"id"`
	SalonID   int64  `json:"salonId"`
	Weekday   int    `json:"weekday"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// WorkingHoursResponse график сотрудника на день недели
type WorkingHoursResponse struct {
	ID        int64  `json:"id"`
	StaffID   int64  `json:"staffId"`
	Weekday   int    `json:"weekday"`
	IsWorking bool   `json:"isWorking"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// OverrideResponse исключение из графика на дату
type OverrideResponse struct {
	ID        int64   `json:"id"`
	StaffID   int64   `json:"staffId"`
	Date      string  `json:"date"` // "2026-09-01"
	IsDayOff  bool    `json:"isDayOff"`
	IsTimeOff bool    `json:"isTimeOff"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Note      *string `json:"note,omitempty"`
}

// FromDomainShopHours конвертирует domain модель в response
func FromDomainShopHours(h *domain.ShopHours) *ShopHoursResponse {
	return &ShopHoursResponse{
		ID:        h.ID,
		SalonID:   h.SalonID,
		Weekday:   h.Weekday,
		IsOpen:    h.IsOpen,
		OpenTime:  h.OpenTime.String(),
		CloseTime: h.CloseTime.String(),
	}
}

// FromDomainWorkingHours конвертирует domain модель в response
func FromDomainWorkingHours(wh *domain.StaffWorkingHours) *WorkingHoursResponse {
	return &WorkingHoursResponse{
		ID:        wh.ID,
		StaffID:   wh.StaffID,
		Weekday:   wh.Weekday,
		IsWorking: wh.IsWorking,
		StartTime: wh.StartTime.String(),
		EndTime:   wh.EndTime.String(),
	}
}

// FromDomainOverride конвертирует domain модель в response
func FromDomainOverride(o *domain.ScheduleOverride) *OverrideResponse {
	resp := &OverrideResponse{
		ID:        o.ID,
		StaffID:   o.StaffID,
		Date:      o.Date.Format(domain.DateFormat),
		IsDayOff:  o.IsDayOff,
		IsTimeOff: o.IsTimeOff,
		Note:      o.Note,
	}
	if o.StartTime != nil {
		s := o.StartTime.String()
		resp.StartTime = &s
	}
	if o.EndTime != nil {
		e := o.EndTime.String()
		resp.EndTime = &e
	}
	return resp
}

// FromDomainOverrides конвертирует список domain моделей в response
func FromDomainOverrides(list []*domain.ScheduleOverride) []*OverrideResponse {
	result := make([]*OverrideResponse, 0, len(list))
	for _, o := range list {
		result = append(result, FromDomainOverride(o))
	}
	return result
}
