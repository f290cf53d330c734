package discounts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/pkg/ptr"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// Вторник
var testDate = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

func makeDiscount(percent float64) *domain.Discount {
	return &domain.Discount{
		ID:              1,
		SalonID:         1,
		Title:           "Happy hours",
		DiscountPercent: percent,
		StartTime:       "10:00",
		EndTime:         "16:00",
		DaysOfWeek:      []int{int(testDate.Weekday())},
		ServiceIDs:      []int64{100},
		IsActive:        true,
	}
}

func makeSlot(startTime string) Slot {
	return Slot{
		ServiceID: 100,
		Date:      testDate,
		StartTime: types.TimeString(startTime),
	}
}

func TestAppliesToSlot_PercentBounds(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    bool
	}{
		{name: "negative percent never applies", percent: -10, want: false},
		{name: "percent above 100 never applies", percent: 150, want: false},
		{name: "zero percent applies", percent: 0, want: true},
		{name: "full percent applies", percent: 100, want: true},
		{name: "normal percent applies", percent: 20, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := makeDiscount(tt.percent)
			assert.Equal(t, tt.want, AppliesToSlot(d, makeSlot("12:00")))
		})
	}
}

func TestAppliesToSlot_EndTimeExclusive(t *testing.T) {
	d := makeDiscount(20)

	assert.True(t, AppliesToSlot(d, makeSlot("15:59")))
	assert.False(t, AppliesToSlot(d, makeSlot("16:00")))
	assert.True(t, AppliesToSlot(d, makeSlot("10:00")))
}

func TestAppliesToSlot_StaffFilter(t *testing.T) {
	d := makeDiscount(20)
	d.StaffIDs = []int64{7}

	tests := []struct {
		name    string
		staffID *int64
		want    bool
	}{
		{name: "matching staff", staffID: ptr.Ptr(int64(7)), want: true},
		{name: "other staff", staffID: ptr.Ptr(int64(8)), want: false},
		{name: "no staff constraint bypasses filter", staffID: nil, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := makeSlot("12:00")
			slot.StaffID = tt.staffID
			assert.Equal(t, tt.want, AppliesToSlot(d, slot))
		})
	}
}

func TestAppliesToSlot_EmptyStaffListMatchesEveryone(t *testing.T) {
	d := makeDiscount(20)
	require.Empty(t, d.StaffIDs)

	slot := makeSlot("12:00")
	slot.StaffID = ptr.Ptr(int64(42))

	assert.True(t, AppliesToSlot(d, slot))
}

func TestAppliesToSlot_InactiveAndMismatches(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *domain.Discount)
		slot   Slot
	}{
		{
			name:   "inactive discount",
			mutate: func(d *domain.Discount) { d.IsActive = false },
			slot:   makeSlot("12:00"),
		},
		{
			name:   "wrong weekday",
			mutate: func(d *domain.Discount) { d.DaysOfWeek = []int{int(testDate.Weekday()) + 1} },
			slot:   makeSlot("12:00"),
		},
		{
			name:   "wrong service",
			mutate: func(d *domain.Discount) { d.ServiceIDs = []int64{999} },
			slot:   makeSlot("12:00"),
		},
		{
			name:   "expired validity window",
			mutate: func(d *domain.Discount) { d.ValidUntil = ptr.Ptr(testDate.AddDate(0, 0, -1)) },
			slot:   makeSlot("12:00"),
		},
		{
			name:   "not yet valid",
			mutate: func(d *domain.Discount) { d.ValidFrom = ptr.Ptr(testDate.AddDate(0, 0, 1)) },
			slot:   makeSlot("12:00"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := makeDiscount(20)
			tt.mutate(d)
			assert.False(t, AppliesToSlot(d, tt.slot))
		})
	}
}

func TestAppliesToSlot_ValidityBoundsInclusive(t *testing.T) {
	d := makeDiscount(20)
	d.ValidFrom = ptr.Ptr(testDate)
	d.ValidUntil = ptr.Ptr(testDate)

	assert.True(t, AppliesToSlot(d, makeSlot("12:00")))
}

func TestFindApplicable_FirstMatchWins(t *testing.T) {
	first := makeDiscount(10)
	first.ID = 1
	second := makeDiscount(50)
	second.ID = 2

	got := FindApplicable([]*domain.Discount{first, second}, makeSlot("12:00"))

	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
}

func TestFindApplicable_SkipsInapplicable(t *testing.T) {
	inactive := makeDiscount(10)
	inactive.ID = 1
	inactive.IsActive = false
	applicable := makeDiscount(50)
	applicable.ID = 2

	got := FindApplicable([]*domain.Discount{inactive, applicable}, makeSlot("12:00"))

	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)
}

func TestFindApplicable_NoMatch(t *testing.T) {
	d := makeDiscount(20)

	assert.Nil(t, FindApplicable([]*domain.Discount{d}, makeSlot("18:00")))
	assert.Nil(t, FindApplicable(nil, makeSlot("12:00")))
}

func TestBest_HighestPercentWins(t *testing.T) {
	first := makeDiscount(10)
	first.ID = 1
	second := makeDiscount(50)
	second.ID = 2
	third := makeDiscount(30)
	third.ID = 3

	got := Best([]*domain.Discount{first, second, third}, 100)

	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)
}

func TestBest_TieKeepsEarlier(t *testing.T) {
	first := makeDiscount(30)
	first.ID = 1
	second := makeDiscount(30)
	second.ID = 2

	got := Best([]*domain.Discount{first, second}, 100)

	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
}

func TestBest_IgnoresTimeDayAndStaff(t *testing.T) {
	// Окно 10:00-16:00 по вторникам, только сотрудник 7: для витрины
	// "скидка до X%" все это не имеет значения, важна только услуга
	d := makeDiscount(40)
	d.DaysOfWeek = []int{int(time.Friday)}
	d.StaffIDs = []int64{7}

	got := Best([]*domain.Discount{d}, 100)

	require.NotNil(t, got)
	assert.Equal(t, 40.0, got.DiscountPercent)
}

func TestBest_ServiceMismatchReturnsNil(t *testing.T) {
	d := makeDiscount(40)

	assert.Nil(t, Best([]*domain.Discount{d}, 999))
}

func TestPriceAfter(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount *domain.Discount
		want     float64
	}{
		{name: "no discount", price: 1000, discount: nil, want: 1000},
		{name: "twenty percent", price: 1000, discount: makeDiscount(20), want: 800},
		{name: "zero percent keeps price", price: 1000, discount: makeDiscount(0), want: 1000},
		{name: "hundred percent gives zero", price: 1000, discount: makeDiscount(100), want: 0},
		{name: "rounds to cents", price: 999.99, discount: makeDiscount(33), want: 669.99},
		{name: "percent above 100 keeps price", price: 100, discount: makeDiscount(150), want: 100},
		{name: "negative percent keeps price", price: 100, discount: makeDiscount(-10), want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriceAfter(tt.price, tt.discount))
		})
	}
}
