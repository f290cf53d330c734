package create_appointment

import (
	"time"

	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	SessionID     string           // ID браузерной сессии клиента
	SalonID       int64            // ID салона
	StaffID       int64            // ID сотрудника
	ServiceID     int64            // ID услуги
	Date          time.Time        // Дата записи (без времени)
	StartTime     types.TimeString // Время начала (например, "10:00")
	CustomerName  string           // Имя клиента
	CustomerPhone string           // Телефон клиента
	Notes         *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID записи
	SalonID         int64            // ID салона
	StaffID         int64            // ID сотрудника
	ServiceID       int64            // ID услуги
	Date            time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи

	// Денормализованные данные
	ServiceName     string   // Название услуги
	ListPrice       float64  // Цена услуги по каталогу
	FinalPrice      float64  // Итоговая цена с учетом скидки
	DiscountPercent *float64 // Примененный процент скидки
	CustomerName    string   // Имя клиента
	CustomerPhone   string   // Телефон клиента
	Notes           *string  // Пожелания

	CreatedAt time.Time // Время создания
}
