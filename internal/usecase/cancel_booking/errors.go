package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAlreadyTerminal возвращается, когда бронирование уже в терминальном статусе
	ErrAlreadyTerminal = errors.New("cancel_booking: booking is already in a terminal status")

	// ErrNotCancellable возвращается, когда бронирование нельзя отменить
	// из текущего статуса (работа уже началась)
	ErrNotCancellable = errors.New("cancel_booking: booking cannot be cancelled from its current status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
