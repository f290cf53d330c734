package availability

import (
	"fmt"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/pkg/timerange"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// FreeSlots генерирует свободные времена начала слотов в рабочем окне дня.
// Слоты идут с шагом durationMinutes от начала окна, слот [t, t+duration)
// должен целиком помещаться в окно и не пересекаться ни с занятыми
// интервалами, ни с исключаемыми интервалами дня.
// Слоты раньше notBefore отбрасываются (фильтр прошедшего времени на сегодня),
// пустое notBefore означает отсутствие фильтра
func FreeSlots(day *domain.DayAvailability, busy []domain.TimeRange, durationMinutes int, notBefore types.TimeString) []types.TimeString {
	if day == nil || !day.Available || durationMinutes <= 0 {
		return nil
	}

	blocked := make([]domain.TimeRange, 0, len(busy)+len(day.ExcludeRanges))
	blocked = append(blocked, busy...)
	blocked = append(blocked, day.ExcludeRanges...)

	windowStart := day.StartTime.Minutes()
	windowEnd := day.EndTime.Minutes()
	minStart := -1
	if !notBefore.IsZero() {
		minStart = notBefore.Minutes()
	}

	var slots []types.TimeString
	for start := windowStart; start+durationMinutes <= windowEnd; start += durationMinutes {
		if start < minStart {
			continue
		}

		slotStart := minutesToTime(start)
		slotEnd := minutesToTime(start + durationMinutes)

		if overlapsAny(slotStart, slotEnd, blocked) {
			continue
		}
		slots = append(slots, slotStart)
	}

	return slots
}

func overlapsAny(start, end types.TimeString, blocked []domain.TimeRange) bool {
	for _, b := range blocked {
		if timerange.Overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}

func minutesToTime(m int) types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}
