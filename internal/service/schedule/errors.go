package schedule

import "errors"

var (
	// ErrOverrideNotFound возвращается, когда исключение из графика не найдено
	ErrOverrideNotFound = errors.New("schedule override not found")

	// ErrInvalidWeekday возвращается при дне недели вне диапазона 0..6
	ErrInvalidWeekday = errors.New("weekday out of range")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule service: internal error")
)
