package assign_technician

import (
	"context"
	"errors"
	"fmt"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
	bookingRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/catalog"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	AssignTechnician(ctx context.Context, id int64, technicianID int64) error
}

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetTechnician(ctx context.Context, id int64) (*domain.Technician, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Request модель запроса на назначение техника
type Request struct {
	BookingID    int64
	TechnicianID int64
}

// UseCase use case назначения техника на бронирование
// Назначение допустимо, только пока флаг доступности техника установлен;
// статус бронирования при назначении не меняется, запись в историю не создается
type UseCase struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, catalogRepo CatalogRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Execute выполняет назначение техника
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("AssignTechnician: booking=%d, technician=%d", req.BookingID, req.TechnicianID)

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.TechnicianID <= 0 {
		return fmt.Errorf("%w: technicianID must be positive", ErrInvalidInput)
	}

	technician, err := uc.catalogRepo.GetTechnician(ctx, req.TechnicianID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrTechnicianNotFound) {
			uc.logger.Warn("AssignTechnician: technician id=%d not found", req.TechnicianID)
			return ErrTechnicianNotFound
		}
		uc.logger.Error("AssignTechnician: failed to get technician id=%d: %v", req.TechnicianID, err)
		return fmt.Errorf("%w: failed to get technician: %v", ErrInternal, err)
	}

	if !technician.IsAvailable {
		uc.logger.Warn("AssignTechnician: technician id=%d is unavailable", req.TechnicianID)
		return ErrTechnicianUnavailable
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("AssignTechnician: booking id=%d not found", req.BookingID)
			return ErrBookingNotFound
		}
		uc.logger.Error("AssignTechnician: failed to get booking id=%d: %v", req.BookingID, err)
		return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.Status.IsTerminal() {
		uc.logger.Warn("AssignTechnician: booking id=%d is terminal (%s)", req.BookingID, booking.Status)
		return ErrBookingTerminal
	}

	if err := uc.bookingRepo.AssignTechnician(ctx, req.BookingID, req.TechnicianID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		uc.logger.Error("AssignTechnician: failed to assign technician for booking id=%d: %v", req.BookingID, err)
		return fmt.Errorf("%w: failed to assign technician: %v", ErrInternal, err)
	}

	uc.logger.Info("AssignTechnician: technician id=%d assigned to booking id=%d", req.TechnicianID, req.BookingID)
	return nil
}
