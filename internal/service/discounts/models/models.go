package models

import (
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
)

// Request модели

// QuotePriceRequest запрос расчета цены услуги на конкретный слот
type QuotePriceRequest struct {
	SalonID   int64      `json:"salonId"`
	ServiceID int64      `json:"serviceId"`
	StaffID   *int64     `json:"staffId,omitempty"` // nil - без фильтра по сотруднику
	Date      time.Time  `json:"date"`
	StartTime string     `json:"startTime"` // "10:00"
}

// CreateDiscountRequest запрос на создание скидки
type CreateDiscountRequest struct {
	SalonID         int64      `json:"salonId"`
	Title           string     `json:"title"`
	DiscountPercent float64    `json:"discountPercent"`
	StartTime       string     `json:"startTime"` // "10:00"
	EndTime         string     `json:"endTime"`   // "16:00"
	DaysOfWeek      []int      `json:"daysOfWeek"`
	ServiceIDs      []int64    `json:"serviceIds"`
	StaffIDs        []int64    `json:"staffIds,omitempty"` // пусто - для всех сотрудников
	ValidFrom       *time.Time `json:"validFrom,omitempty"`
	ValidUntil      *time.Time `json:"validUntil,omitempty"`
}

// Response модели

// PriceQuoteResponse ответ с расчетом цены
type PriceQuoteResponse struct {
	ServiceID       int64    `json:"serviceId"`
	ServiceName     string   `json:"serviceName"`
	ListPrice       float64  `json:"listPrice"`
	FinalPrice      float64  `json:"finalPrice"`
	DiscountID      *int64   `json:"discountId,omitempty"`
	DiscountTitle   *string  `json:"discountTitle,omitempty"`
	DiscountPercent *float64 `json:"discountPercent,omitempty"`
}

// BestDiscountResponse ответ с максимальной скидкой на услугу.
// Поля скидки отсутствуют, если на услугу нет активных скидок
type BestDiscountResponse struct {
	ServiceID  int64    `json:"serviceId"`
	DiscountID *int64   `json:"discountId,omitempty"`
	Title      *string  `json:"title,omitempty"`
	MaxPercent *float64 `json:"maxPercent,omitempty"`
}

// DiscountResponse ответ с данными скидки
type DiscountResponse struct {
	ID              int64      `json:"id"`
	SalonID         int64      `json:"salonId"`
	Title           string     `json:"title"`
	DiscountPercent float64    `json:"discountPercent"`
	StartTime       string     `json:"startTime"`
	EndTime         string     `json:"endTime"`
	DaysOfWeek      []int      `json:"daysOfWeek"`
	ServiceIDs      []int64    `json:"serviceIds"`
	StaffIDs        []int64    `json:"staffIds"`
	IsActive        bool       `json:"isActive"`
	ValidFrom       *time.Time `json:"validFrom,omitempty"`
	ValidUntil      *time.Time `json:"validUntil,omitempty"`
}

// FromDomainDiscount конвертирует domain модель в response
func FromDomainDiscount(d *domain.Discount) *DiscountResponse {
	return &DiscountResponse{
		ID:              d.ID,
		SalonID:         d.SalonID,
		Title:           d.Title,
		DiscountPercent: d.DiscountPercent,
		StartTime:       d.StartTime.String(),
		EndTime:         d.EndTime.String(),
		DaysOfWeek:      d.DaysOfWeek,
		ServiceIDs:      d.ServiceIDs,
		StaffIDs:        d.StaffIDs,
		IsActive:        d.IsActive,
		ValidFrom:       d.ValidFrom,
		ValidUntil:      d.ValidUntil,
	}
}

// FromDomainDiscounts конвертирует список domain моделей в response
func FromDomainDiscounts(list []*domain.Discount) []*DiscountResponse {
	result := make([]*DiscountResponse, 0, len(list))
	for _, d := range list {
		result = append(result, FromDomainDiscount(d))
	}
	return result
}
