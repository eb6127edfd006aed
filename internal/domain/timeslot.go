package domain

import (
	"time"

	"github.com/seatslabs/VSC-BookingService/pkg/types"
)

// TimeSlot временной слот сервисного центра
// Логическая идентичность - пара (дата, время начала); слот вмещает
// до MaxCapacity параллельных бронирований
type TimeSlot struct {
	ID              int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	MaxCapacity     int
	CurrentBookings int
	IsAvailable     bool
	CreatedAt       time.Time
}

// HasCapacity возвращает true, если в слоте есть свободные места
func (s *TimeSlot) HasCapacity() bool {
	return s.CurrentBookings < s.MaxCapacity
}

// IsOpen возвращает true, если слот доступен и в нём есть свободные места
func (s *TimeSlot) IsOpen() bool {
	return s.IsAvailable && s.HasCapacity()
}

// FreeSpots возвращает количество свободных мест в слоте
func (s *TimeSlot) FreeSpots() int {
	free := s.MaxCapacity - s.CurrentBookings
	if free < 0 {
		return 0
	}
	return free
}

// ScheduledAt возвращает дату-время начала слота
func (s *TimeSlot) ScheduledAt() (time.Time, error) {
	return s.StartTime.At(s.Date)
}
