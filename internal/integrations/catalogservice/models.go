package catalogservice

// Service модель услуги салона из CatalogService
type Service struct {
	ID              int64   `json:"id"`
	SalonID         int64   `json:"salonId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	IsActive        bool    `json:"isActive"`
}

// Staff модель сотрудника салона из CatalogService
type Staff struct {
	ID       int64  `json:"id"`
	SalonID  int64  `json:"salonId"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}
