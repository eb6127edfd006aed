package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrSlotNotFound возвращается, когда новый слот не существует
	ErrSlotNotFound = errors.New("reschedule_booking: time slot not found")

	// ErrSlotFull возвращается, когда в новом слоте нет свободных мест
	// Бронирование при этом остается на прежнем слоте
	ErrSlotFull = errors.New("reschedule_booking: time slot is fully booked")

	// ErrNotReschedulable возвращается, когда бронирование нельзя перенести
	// из текущего статуса
	ErrNotReschedulable = errors.New("reschedule_booking: booking cannot be rescheduled from its current status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
