package catalogservice

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("catalogservice: service not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден в каталоге
	ErrStaffNotFound = errors.New("catalogservice: staff not found")

	// ErrInvalidResponse возвращается при некорректном ответе CatalogService
	ErrInvalidResponse = errors.New("catalogservice: invalid response")

	// ErrInternal возвращается при ошибках выполнения запроса
	ErrInternal = errors.New("catalogservice: internal error")
)
