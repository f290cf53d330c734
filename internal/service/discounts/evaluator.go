package discounts

import (
	"math"
	"time"

	"github.com/kmlvnk/SLN-BookingService/internal/domain"
	"github.com/kmlvnk/SLN-BookingService/pkg/types"
)

// Slot контекст применения скидки: услуга, сотрудник (опционально),
// дата и время начала записи
type Slot struct {
	ServiceID int64
	StaffID   *int64 // nil - фильтр по сотрудникам не применяется
	Date      time.Time
	StartTime types.TimeString
}

// AppliesToSlot проверяет, применима ли скидка к слоту.
// Скидка с процентом вне [0, 100] считается неприменимой, а не обрезается
func AppliesToSlot(d *domain.Discount, slot Slot) bool {
	if !d.IsActive || !d.HasValidPercent() {
		return false
	}
	if !d.WithinValidityDates(slot.Date) {
		return false
	}
	if !d.AppliesToWeekday(int(slot.Date.Weekday())) {
		return false
	}
	if !d.AppliesToService(slot.ServiceID) {
		return false
	}
	if !d.AppliesToStaff(slot.StaffID) {
		return false
	}
	return d.AppliesToTime(slot.StartTime)
}

// FindApplicable возвращает первую применимую скидку в порядке списка.
// Порядок списка определяет победителя при нескольких применимых скидках,
// репозиторий отдает скидки в порядке создания
func FindApplicable(list []*domain.Discount, slot Slot) *domain.Discount {
	for _, d := range list {
		if AppliesToSlot(d, slot) {
			return d
		}
	}
	return nil
}

// Best возвращает скидку на услугу с максимальным процентом.
// Время, день недели и сотрудник не учитываются: операция отвечает на
// вопрос "скидка до X%" для витрины, а не применимость к конкретному
// слоту. При равных процентах побеждает более ранняя в списке
func Best(list []*domain.Discount, serviceID int64) *domain.Discount {
	var best *domain.Discount
	for _, d := range list {
		if !d.AppliesToService(serviceID) {
			continue
		}
		if best == nil || d.DiscountPercent > best.DiscountPercent {
			best = d
		}
	}
	return best
}

// PriceAfter применяет скидку к цене с округлением до копеек.
// Нулевой процент оставляет цену без изменений, 100 процентов дает ноль.
// Скидка с процентом вне [0, 100] не применяется, цена не меняется
func PriceAfter(price float64, d *domain.Discount) float64 {
	if d == nil || !d.HasValidPercent() {
		return price
	}
	final := price * (1 - d.DiscountPercent/100)
	return math.Round(final*100) / 100
}
