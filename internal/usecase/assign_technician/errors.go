package assign_technician

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("assign_technician: booking not found")

	// ErrTechnicianNotFound возвращается, когда техник не найден
	ErrTechnicianNotFound = errors.New("assign_technician: technician not found")

	// ErrTechnicianUnavailable возвращается, когда техник недоступен для назначения
	ErrTechnicianUnavailable = errors.New("assign_technician: technician is not available")

	// ErrBookingTerminal возвращается при попытке назначить техника
	// на завершённое или отменённое бронирование
	ErrBookingTerminal = errors.New("assign_technician: booking is in a terminal status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("assign_technician: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("assign_technician: internal error")
)
