package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резерв не найден
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrDuplicateSlot возвращается при нарушении уникальности (staff_id, reservation_date, start_time):
	// слот уже зарезервирован конкурирующей сессией
	ErrDuplicateSlot = errors.New("reservation.repository: slot already reserved")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
