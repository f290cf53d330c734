package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

func workDay(from, to string) *domain.DayAvailability {
	return &domain.DayAvailability{
		Available: true,
		StartTime: types.TimeString(from),
		EndTime:   types.TimeString(to),
	}
}

func TestFreeSlots_FullWindow(t *testing.T) {
	slots := FreeSlots(workDay("09:00", "12:00"), nil, 60, "")

	assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, slots)
}

func TestFreeSlots_SlotMustFitEntirely(t *testing.T) {
	// Последний час 11:30-12:00 короче слота и не попадает в выдачу
	slots := FreeSlots(workDay("09:00", "11:30"), nil, 60, "")

	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, slots)
}

func TestFreeSlots_BusyIntervalsRemoved(t *testing.T) {
	busy := []domain.TimeRange{{StartTime: "10:00", EndTime: "11:00"}}

	slots := FreeSlots(workDay("09:00", "12:00"), busy, 60, "")

	assert.Equal(t, []types.TimeString{"09:00", "11:00"}, slots)
}

func TestFreeSlots_PartialOverlapBlocksSlot(t *testing.T) {
	busy := []domain.TimeRange{{StartTime: "10:30", EndTime: "10:45"}}

	slots := FreeSlots(workDay("09:00", "12:00"), busy, 60, "")

	assert.Equal(t, []types.TimeString{"09:00", "11:00"}, slots)
}

func TestFreeSlots_ExcludeRangesBlockSlots(t *testing.T) {
	day := workDay("09:00", "12:00")
	day.ExcludeRanges = []domain.TimeRange{{StartTime: "09:00", EndTime: "10:00"}}

	slots := FreeSlots(day, nil, 60, "")

	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, slots)
}

func TestFreeSlots_NotBeforeFiltersPastTimes(t *testing.T) {
	slots := FreeSlots(workDay("09:00", "12:00"), nil, 60, "10:30")

	assert.Equal(t, []types.TimeString{"11:00"}, slots)
}

func TestFreeSlots_UnavailableDay(t *testing.T) {
	day := &domain.DayAvailability{Available: false, Reason: domain.ReasonDayOff}

	assert.Nil(t, FreeSlots(day, nil, 60, ""))
	assert.Nil(t, FreeSlots(nil, nil, 60, ""))
}

func TestFreeSlots_BackToBackBusyDoesNotBlockNeighbours(t *testing.T) {
	busy := []domain.TimeRange{{StartTime: "10:00", EndTime: "11:00"}}

	slots := FreeSlots(workDay("09:00", "13:00"), busy, 60, "")

	assert.Equal(t, []types.TimeString{"09:00", "11:00", "12:00"}, slots)
}
