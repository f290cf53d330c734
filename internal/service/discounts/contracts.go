package discounts

import (
	"context"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/internal/integrations/catalogservice"
)

// DiscountRepository интерфейс репозитория скидок
type DiscountRepository interface {
	Create(ctx context.Context, d *domain.Discount) (*domain.Discount, error)
	GetByID(ctx context.Context, id int64) (*domain.Discount, error)
	ListBySalon(ctx context.Context, salonID int64, activeOnly bool) ([]*domain.Discount, error)
	Update(ctx context.Context, d *domain.Discount) error
	Deactivate(ctx context.Context, id int64) error
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, salonID, serviceID int64) (*catalogservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
