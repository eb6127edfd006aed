package update_status

import (
	"time"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
)

// Request модель запроса на смену статуса бронирования
type Request struct {
	BookingID   int64
	ToStatus    domain.BookingStatus
	ActorUserID int64   // Пользователь, выполняющий переход (для истории)
	Notes       *string // Заметка к переходу (опционально)
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID              int64
	Reference       string
	Status          string
	ScheduledAt     time.Time
	ActualStartTime *time.Time
	ActualEndTime   *time.Time
	UpdatedAt       time.Time
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		Reference:       b.Reference,
		Status:          string(b.Status),
		ScheduledAt:     b.ScheduledAt,
		ActualStartTime: b.ActualStartTime,
		ActualEndTime:   b.ActualEndTime,
		UpdatedAt:       b.UpdatedAt,
	}
}
