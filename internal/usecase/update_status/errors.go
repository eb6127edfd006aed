package update_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_status: booking not found")

	// ErrIllegalTransition возвращается, когда запрошенный переход статуса
	// не разрешен таблицей переходов. Бизнес-ошибка клиента, не системный сбой
	ErrIllegalTransition = errors.New("update_status: illegal status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_status: internal error")
)
