package domain

import "github.com/seatslabs/VSC-BookingService/pkg/types"

// Slot grid defaults
const (
	// SlotDurationMinutes длительность каждого слота
	SlotDurationMinutes = 60

	// SlotDefaultCapacity вместимость слота по умолчанию (параллельных бронирований)
	SlotDefaultCapacity = 3

	// SlotWindowDays размер скользящего окна генерации слотов
	SlotWindowDays = 30
)

// SlotGridStartTimes фиксированная сетка начала слотов на каждый день
// Часовые слоты с 08:00 до 17:00 с перерывом на обед в 12:00
var SlotGridStartTimes = []types.TimeString{
	"08:00", "09:00", "10:00", "11:00",
	"13:00", "14:00", "15:00", "16:00",
}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxNotesLength = 500
)
