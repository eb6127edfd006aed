package assign_technician

import (
	"context"

	assignTechnician "github.com/seatslabs/VSC-BookingService/internal/usecase/assign_technician"
)

type AssignTechnicianUseCase interface {
	Execute(ctx context.Context, req *assignTechnician.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
