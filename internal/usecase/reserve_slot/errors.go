package reserve_slot

import "errors"

var (
	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("reserve_slot: invalid reservation date")

	// ErrStaffUnavailable возвращается, когда сотрудник недоступен в этот день
	ErrStaffUnavailable = errors.New("reserve_slot: staff is unavailable on this date")

	// ErrOutsideWorkingHours возвращается, когда слот выходит за рабочее окно сотрудника
	ErrOutsideWorkingHours = errors.New("reserve_slot: slot is outside working hours")

	// ErrSlotAlreadyBooked возвращается, когда слот занят подтвержденной записью
	ErrSlotAlreadyBooked = errors.New("reserve_slot: slot is already booked")

	// ErrSlotHeld возвращается, когда слот удерживается другой сессией
	ErrSlotHeld = errors.New("reserve_slot: slot is held by another session")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
