package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не существует или снят с доступности
	ErrSlotNotFound = errors.New("create_booking: time slot not found")

	// ErrSlotFull возвращается, когда в слоте не осталось свободных мест
	// Ожидаемый бизнес-результат: клиент выбирает другой слот
	ErrSlotFull = errors.New("create_booking: time slot is fully booked")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
