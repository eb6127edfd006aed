package bookings

import (
	"context"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	GetByCustomer(ctx context.Context, filter domain.CustomerBookingsFilter) ([]*domain.Booking, error)
	GetByTechnician(ctx context.Context, technicianID int64) ([]*domain.Booking, error)
}

// HistoryRepository интерфейс репозитория истории статусов
type HistoryRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.StatusHistoryEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
