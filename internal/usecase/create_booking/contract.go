package create_booking

import (
	"context"
	"time"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
)

// SlotRepository интерфейс репозитория временных слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	Reserve(ctx context.Context, id int64) error
}

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// HistoryRepository интерфейс репозитория истории статусов
type HistoryRepository interface {
	Append(ctx context.Context, entry *domain.StatusHistoryEntry) (*domain.StatusHistoryEntry, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReferenceGenerator генератор человекочитаемых номеров бронирования
type ReferenceGenerator interface {
	Generate() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
