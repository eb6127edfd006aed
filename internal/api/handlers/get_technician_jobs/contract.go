package get_technician_jobs

import (
	"context"

	"github.com/seatslabs/VSC-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetTechnicianJobs(ctx context.Context, technicianID int64) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
