// Package timerange содержит чистые функции для сравнения времени "HH:MM"
// и работы с полуоткрытыми интервалами [start, end).
package timerange

import (
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// ToMinutes переводит строку "HH:MM" в количество минут с начала суток
func ToMinutes(hhmm string) int {
	return types.TimeString(hhmm).Minutes()
}

// InRange проверяет попадание времени t в полуоткрытый интервал [start, end)
// Конец интервала исключается: InRange(end, start, end) == false
func InRange(t, start, end types.TimeString) bool {
	m := t.Minutes()
	return m >= start.Minutes() && m < end.Minutes()
}

// LaterOf возвращает более позднее из двух времен
func LaterOf(a, b types.TimeString) types.TimeString {
	if a.Minutes() >= b.Minutes() {
		return a
	}
	return b
}

// EarlierOf возвращает более раннее из двух времен
func EarlierOf(a, b types.TimeString) types.TimeString {
	if a.Minutes() <= b.Minutes() {
		return a
	}
	return b
}

// IsNonEmptyRange проверяет, что интервал [start, end) не пуст (start строго раньше end)
func IsNonEmptyRange(start, end types.TimeString) bool {
	return start.Minutes() < end.Minutes()
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
// Интервалы пересекаются, только если aStart < bEnd И bStart < aEnd (строгие неравенства,
// граничащие интервалы не считаются пересекающимися)
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.Minutes() < bEnd.Minutes() && bStart.Minutes() < aEnd.Minutes()
}
