package get_booking_history

import (
	"context"

	"github.com/seatslabs/VSC-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetHistory(ctx context.Context, bookingID int64) ([]*models.HistoryEntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
