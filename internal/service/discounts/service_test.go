package discounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/internal/integrations/catalogservice"
)

type fakeDiscountRepo struct {
	discounts []*domain.Discount

	listActiveOnly bool
}

func (f *fakeDiscountRepo) Create(_ context.Context, d *domain.Discount) (*domain.Discount, error) {
	return d, nil
}

func (f *fakeDiscountRepo) GetByID(_ context.Context, _ int64) (*domain.Discount, error) {
	return nil, nil
}

func (f *fakeDiscountRepo) ListBySalon(_ context.Context, salonID int64, activeOnly bool) ([]*domain.Discount, error) {
	f.listActiveOnly = activeOnly
	var out []*domain.Discount
	for _, d := range f.discounts {
		if d.SalonID != salonID {
			continue
		}
		if activeOnly && !d.IsActive {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDiscountRepo) Update(_ context.Context, _ *domain.Discount) error {
	return nil
}

func (f *fakeDiscountRepo) Deactivate(_ context.Context, _ int64) error {
	return nil
}

type fakeCatalog struct{}

func (fakeCatalog) GetService(_ context.Context, _, _ int64) (*catalogservice.Service, error) {
	return nil, catalogservice.ErrServiceNotFound
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func storefrontDiscount(id int64, percent float64, serviceIDs []int64) *domain.Discount {
	return &domain.Discount{
		ID:              id,
		SalonID:         1,
		Title:           "Happy hours",
		DiscountPercent: percent,
		StartTime:       "10:00",
		EndTime:         "16:00",
		DaysOfWeek:      []int{int(time.Monday)},
		ServiceIDs:      serviceIDs,
		IsActive:        true,
	}
}

func TestBestForService_ReturnsHighestPercent(t *testing.T) {
	repo := &fakeDiscountRepo{discounts: []*domain.Discount{
		storefrontDiscount(1, 10, []int64{100}),
		storefrontDiscount(2, 40, []int64{100}),
		storefrontDiscount(3, 25, []int64{200}),
	}}
	svc := NewService(repo, fakeCatalog{}, testLogger{})

	got, err := svc.BestForService(context.Background(), 1, 100)
	require.NoError(t, err)

	assert.True(t, repo.listActiveOnly)
	require.NotNil(t, got.MaxPercent)
	assert.Equal(t, 40.0, *got.MaxPercent)
	assert.Equal(t, int64(2), *got.DiscountID)
}

func TestBestForService_IgnoresSlotConstraints(t *testing.T) {
	// Окно и день недели скидки не влияют на витринный максимум
	d := storefrontDiscount(1, 30, []int64{100})
	d.StaffIDs = []int64{7}
	repo := &fakeDiscountRepo{discounts: []*domain.Discount{d}}
	svc := NewService(repo, fakeCatalog{}, testLogger{})

	got, err := svc.BestForService(context.Background(), 1, 100)
	require.NoError(t, err)

	require.NotNil(t, got.MaxPercent)
	assert.Equal(t, 30.0, *got.MaxPercent)
}

func TestBestForService_NoDiscountsForService(t *testing.T) {
	repo := &fakeDiscountRepo{discounts: []*domain.Discount{
		storefrontDiscount(1, 40, []int64{200}),
	}}
	svc := NewService(repo, fakeCatalog{}, testLogger{})

	got, err := svc.BestForService(context.Background(), 1, 100)
	require.NoError(t, err)

	assert.Equal(t, int64(100), got.ServiceID)
	assert.Nil(t, got.MaxPercent)
	assert.Nil(t, got.DiscountID)
	assert.Nil(t, got.Title)
}
