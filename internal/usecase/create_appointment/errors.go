package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден в каталоге
	ErrStaffNotFound = errors.New("create_appointment: staff not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrStaffUnavailable возвращается, когда сотрудник недоступен в этот день
	ErrStaffUnavailable = errors.New("create_appointment: staff is unavailable on this date")

	// ErrOutsideWorkingHours возвращается, когда слот выходит за рабочее окно сотрудника
	ErrOutsideWorkingHours = errors.New("create_appointment: slot is outside working hours")

	// ErrSlotAlreadyBooked возвращается, когда слот занят подтвержденной записью
	ErrSlotAlreadyBooked = errors.New("create_appointment: slot is already booked")

	// ErrSlotHeld возвращается, когда слот удерживается другой сессией
	ErrSlotHeld = errors.New("create_appointment: slot is held by another session")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
