package create_booking

import (
	"time"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID  int64   // ID клиента
	VehicleID   int64   // ID автомобиля клиента
	ServiceID   int64   // ID услуги
	SlotID      int64   // ID выбранного временного слота
	ActorUserID int64   // ID пользователя, создающего бронирование (для истории)
	Notes       *string // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	Reference       string
	CustomerID      int64
	VehicleID       int64
	ServiceID       int64
	TimeSlotID      int64
	Status          string
	ScheduledAt     time.Time
	Notes           *string
	Price           float64 // Цена, зафиксированная в момент создания
	ServiceName     string
	ServiceDuration int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		Reference:       b.Reference,
		CustomerID:      b.CustomerID,
		VehicleID:       b.VehicleID,
		ServiceID:       b.ServiceID,
		TimeSlotID:      b.TimeSlotID,
		Status:          string(b.Status),
		ScheduledAt:     b.ScheduledAt,
		Notes:           b.Notes,
		Price:           b.Price,
		ServiceName:     b.ServiceName,
		ServiceDuration: b.ServiceDuration,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
