package cancel_booking

import (
	"context"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
	bookingRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/booking"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, stamps bookingRepo.StatusStamps) error
}

// SlotRepository интерфейс репозитория временных слотов
type SlotRepository interface {
	Release(ctx context.Context, id int64) error
}

// HistoryRepository интерфейс репозитория истории статусов
type HistoryRepository interface {
	Append(ctx context.Context, entry *domain.StatusHistoryEntry) (*domain.StatusHistoryEntry, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
