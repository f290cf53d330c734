package discounts

import "errors"

var (
	// ErrDiscountNotFound возвращается, когда скидка не найдена
	ErrDiscountNotFound = errors.New("discount not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("discounts service: internal error")
)
