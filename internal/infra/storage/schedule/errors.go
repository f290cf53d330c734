package schedule

import "errors"

var (
	// ErrShopHoursNotFound возвращается, когда расписание салона на день недели не найдено
	ErrShopHoursNotFound = errors.New("schedule.repository: shop hours not found")

	// ErrWorkingHoursNotFound возвращается, когда график сотрудника на день недели не найден
	ErrWorkingHoursNotFound = errors.New("schedule.repository: staff working hours not found")

	// ErrOverrideNotFound возвращается, когда исключение из графика не найдено
	ErrOverrideNotFound = errors.New("schedule.repository: schedule override not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
