package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrSlotNotFound возвращается, когда на запрошенные дату и время
	// нет открытого слота со свободными местами
	ErrSlotNotFound = errors.New("get_available_slots: no open slot for requested date and time")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
