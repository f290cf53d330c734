package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/pkg/ptr"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

func shopHours(open bool, from, to string) *domain.ShopHours {
	return &domain.ShopHours{
		SalonID:   1,
		IsOpen:    open,
		OpenTime:  types.TimeString(from),
		CloseTime: types.TimeString(to),
	}
}

func staffHours(working bool, from, to string) *domain.StaffWorkingHours {
	return &domain.StaffWorkingHours{
		StaffID:   10,
		IsWorking: working,
		StartTime: types.TimeString(from),
		EndTime:   types.TimeString(to),
	}
}

func TestResolveDay_DayOffOverrideWinsOverEverything(t *testing.T) {
	override := &domain.ScheduleOverride{
		IsDayOff: true,
		Note:     ptr.Ptr("personal leave"),
	}

	day := ResolveDay(shopHours(true, "09:00", "18:00"), staffHours(true, "10:00", "17:00"), override)

	require.False(t, day.Available)
	assert.Equal(t, domain.ReasonDayOff, day.Reason)
	require.NotNil(t, day.Note)
	assert.Equal(t, "personal leave", *day.Note)
}

func TestResolveDay_CustomHoursOverrideIsAuthoritative(t *testing.T) {
	// Особые часы выходят за часы работы салона и не урезаются ими
	override := &domain.ScheduleOverride{
		StartTime: ptr.Ptr(types.TimeString("08:00")),
		EndTime:   ptr.Ptr(types.TimeString("20:00")),
	}

	day := ResolveDay(shopHours(true, "09:00", "18:00"), staffHours(true, "10:00", "17:00"), override)

	require.True(t, day.Available)
	assert.True(t, day.IsCustom)
	assert.Equal(t, types.TimeString("08:00"), day.StartTime)
	assert.Equal(t, types.TimeString("20:00"), day.EndTime)
}

func TestResolveDay_CustomHoursWithEmptyRange(t *testing.T) {
	override := &domain.ScheduleOverride{
		StartTime: ptr.Ptr(types.TimeString("14:00")),
		EndTime:   ptr.Ptr(types.TimeString("14:00")),
	}

	day := ResolveDay(shopHours(true, "09:00", "18:00"), nil, override)

	require.False(t, day.Available)
	assert.Equal(t, domain.ReasonNoHours, day.Reason)
}

func TestResolveDay_StaffHoursIntersectedWithShopHours(t *testing.T) {
	tests := []struct {
		name      string
		staff     *domain.StaffWorkingHours
		wantStart types.TimeString
		wantEnd   types.TimeString
	}{
		{
			name:      "staff inside shop hours",
			staff:     staffHours(true, "10:00", "16:00"),
			wantStart: "10:00",
			wantEnd:   "16:00",
		},
		{
			name:      "staff starts before shop opens",
			staff:     staffHours(true, "08:00", "16:00"),
			wantStart: "09:00",
			wantEnd:   "16:00",
		},
		{
			name:      "staff ends after shop closes",
			staff:     staffHours(true, "10:00", "20:00"),
			wantStart: "10:00",
			wantEnd:   "18:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := ResolveDay(shopHours(true, "09:00", "18:00"), tt.staff, nil)

			require.True(t, day.Available)
			assert.Equal(t, tt.wantStart, day.StartTime)
			assert.Equal(t, tt.wantEnd, day.EndTime)
			assert.False(t, day.IsCustom)
		})
	}
}

func TestResolveDay_EmptyIntersectionMeansNoHours(t *testing.T) {
	// Сотрудник работает только до открытия салона
	day := ResolveDay(shopHours(true, "09:00", "18:00"), staffHours(true, "06:00", "09:00"), nil)

	require.False(t, day.Available)
	assert.Equal(t, domain.ReasonNoHours, day.Reason)
}

func TestResolveDay_ExplicitNotWorking(t *testing.T) {
	day := ResolveDay(shopHours(true, "09:00", "18:00"), staffHours(false, "00:00", "00:00"), nil)

	require.False(t, day.Available)
	assert.Equal(t, domain.ReasonNotWorking, day.Reason)
}

func TestResolveDay_FallbackToShopHours(t *testing.T) {
	day := ResolveDay(shopHours(true, "09:00", "18:00"), nil, nil)

	require.True(t, day.Available)
	assert.Equal(t, types.TimeString("09:00"), day.StartTime)
	assert.Equal(t, types.TimeString("18:00"), day.EndTime)
}

func TestResolveDay_ShopClosed(t *testing.T) {
	tests := []struct {
		name  string
		staff *domain.StaffWorkingHours
	}{
		{name: "no staff schedule", staff: nil},
		{name: "staff schedule exists", staff: staffHours(true, "10:00", "17:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := ResolveDay(shopHours(false, "00:00", "00:00"), tt.staff, nil)

			require.False(t, day.Available)
			assert.Equal(t, domain.ReasonShopClosed, day.Reason)
		})
	}
}

func TestResolveDay_NothingConfigured(t *testing.T) {
	day := ResolveDay(nil, nil, nil)

	require.False(t, day.Available)
	assert.Equal(t, domain.ReasonNotConfigured, day.Reason)
}

func TestResolveDay_StaffHoursWithoutShopRecord(t *testing.T) {
	// Явный график сотрудника без записи о часах салона используется как есть
	day := ResolveDay(nil, staffHours(true, "10:00", "17:00"), nil)

	require.True(t, day.Available)
	assert.Equal(t, types.TimeString("10:00"), day.StartTime)
	assert.Equal(t, types.TimeString("17:00"), day.EndTime)
}

func TestResolveDay_PartialTimeOffAddsExcludeRange(t *testing.T) {
	override := &domain.ScheduleOverride{
		IsTimeOff: true,
		StartTime: ptr.Ptr(types.TimeString("12:00")),
		EndTime:   ptr.Ptr(types.TimeString("14:00")),
	}

	day := ResolveDay(shopHours(true, "09:00", "18:00"), staffHours(true, "10:00", "17:00"), override)

	require.True(t, day.Available)
	assert.Equal(t, types.TimeString("10:00"), day.StartTime)
	assert.Equal(t, types.TimeString("17:00"), day.EndTime)
	require.Len(t, day.ExcludeRanges, 1)
	assert.Equal(t, types.TimeString("12:00"), day.ExcludeRanges[0].StartTime)
	assert.Equal(t, types.TimeString("14:00"), day.ExcludeRanges[0].EndTime)
}

func TestResolveDay_PartialTimeOffClampedToWorkingWindow(t *testing.T) {
	override := &domain.ScheduleOverride{
		IsTimeOff: true,
		StartTime: ptr.Ptr(types.TimeString("08:00")),
		EndTime:   ptr.Ptr(types.TimeString("11:00")),
	}

	day := ResolveDay(shopHours(true, "09:00", "18:00"), staffHours(true, "10:00", "17:00"), override)

	require.True(t, day.Available)
	require.Len(t, day.ExcludeRanges, 1)
	assert.Equal(t, types.TimeString("10:00"), day.ExcludeRanges[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), day.ExcludeRanges[0].EndTime)
}

func TestResolveDay_PartialTimeOffOutsideWindowIgnored(t *testing.T) {
	override := &domain.ScheduleOverride{
		IsTimeOff: true,
		StartTime: ptr.Ptr(types.TimeString("18:00")),
		EndTime:   ptr.Ptr(types.TimeString("20:00")),
	}

	day := ResolveDay(shopHours(true, "09:00", "18:00"), staffHours(true, "10:00", "17:00"), override)

	require.True(t, day.Available)
	assert.Empty(t, day.ExcludeRanges)
}
