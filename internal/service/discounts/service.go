package discounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	discountRepo "github.com/kmlvnk/SLN-BookingService/internal/infra/storage/discount"
	"github.com/kmlvnk/SLN-BookingService/internal/integrations/catalogservice"
	"github.com/kmlvnk/SLN-BookingService/internal/service/discounts/models"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// Service сервис для работы со скидками и расчетом цен
type Service struct {
	discountRepo DiscountRepository
	catalog      CatalogServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса скидок
func NewService(
	discountRepo DiscountRepository,
	catalog CatalogServiceClient,
	logger Logger,
) *Service {
	return &Service{
		discountRepo: discountRepo,
		catalog:      catalog,
		logger:       logger,
	}
}

// QuotePrice рассчитывает цену услуги на слот с учетом скидок.
// Цена всегда берется из каталога, а не из запроса клиента.
// При нескольких применимых скидках побеждает первая по порядку создания
func (s *Service) QuotePrice(ctx context.Context, req *models.QuotePriceRequest) (*models.PriceQuoteResponse, error) {
	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, req.StartTime)
	}

	service, err := s.catalog.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			s.logger.Warn("QuotePrice: service id=%d not found in salon=%d", req.ServiceID, req.SalonID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("QuotePrice: catalog error for service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: QuotePrice - catalog error: %v", ErrInternal, err)
	}

	list, err := s.discountRepo.ListBySalon(ctx, req.SalonID, true)
	if err != nil {
		s.logger.Error("QuotePrice: failed to list discounts for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: QuotePrice - repository error: %v", ErrInternal, err)
	}

	slot := Slot{
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		Date:      req.Date,
		StartTime: startTime,
	}

	applied := FindApplicable(list, slot)
	finalPrice := PriceAfter(service.Price, applied)

	resp := &models.PriceQuoteResponse{
		ServiceID:   service.ID,
		ServiceName: service.Name,
		ListPrice:   service.Price,
		FinalPrice:  finalPrice,
	}
	if applied != nil {
		resp.DiscountID = &applied.ID
		resp.DiscountTitle = &applied.Title
		resp.DiscountPercent = &applied.DiscountPercent
	}

	return resp, nil
}

// BestForService возвращает максимальный процент скидки на услугу
// для витрины "скидка до X%". Время, день недели и сотрудник не
// учитываются, в отличие от расчета цены на конкретный слот
func (s *Service) BestForService(ctx context.Context, salonID, serviceID int64) (*models.BestDiscountResponse, error) {
	list, err := s.discountRepo.ListBySalon(ctx, salonID, true)
	if err != nil {
		s.logger.Error("BestForService: failed to list discounts for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: BestForService - repository error: %v", ErrInternal, err)
	}

	resp := &models.BestDiscountResponse{ServiceID: serviceID}

	if best := Best(list, serviceID); best != nil {
		resp.DiscountID = &best.ID
		resp.Title = &best.Title
		resp.MaxPercent = &best.DiscountPercent
	}

	return resp, nil
}

// Create создает скидку салона
func (s *Service) Create(ctx context.Context, req *models.CreateDiscountRequest) (*models.DiscountResponse, error) {
	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, req.StartTime)
	}
	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time %q", ErrInvalidInput, req.EndTime)
	}
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	for _, wd := range req.DaysOfWeek {
		if wd < domain.MinWeekday || wd > domain.MaxWeekday {
			return nil, fmt.Errorf("%w: weekday %d out of range", ErrInvalidInput, wd)
		}
	}

	discount := &domain.Discount{
		SalonID:         req.SalonID,
		Title:           req.Title,
		DiscountPercent: req.DiscountPercent,
		StartTime:       startTime,
		EndTime:         endTime,
		DaysOfWeek:      req.DaysOfWeek,
		ServiceIDs:      req.ServiceIDs,
		StaffIDs:        req.StaffIDs,
		IsActive:        true,
		ValidFrom:       req.ValidFrom,
		ValidUntil:      req.ValidUntil,
	}

	created, err := s.discountRepo.Create(ctx, discount)
	if err != nil {
		s.logger.Error("Create: failed to create discount for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created discount id=%d for salon=%d", created.ID, created.SalonID)
	return models.FromDomainDiscount(created), nil
}

// List получает скидки салона
func (s *Service) List(ctx context.Context, salonID int64, activeOnly bool) ([]*models.DiscountResponse, error) {
	list, err := s.discountRepo.ListBySalon(ctx, salonID, activeOnly)
	if err != nil {
		s.logger.Error("List: failed to list discounts for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDiscounts(list), nil
}

// Deactivate выключает скидку, не удаляя её из истории
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if err := s.discountRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, discountRepo.ErrDiscountNotFound) {
			s.logger.Warn("Deactivate: discount id=%d not found", id)
			return ErrDiscountNotFound
		}
		s.logger.Error("Deactivate: failed to deactivate discount id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: discount id=%d deactivated", id)
	return nil
}
