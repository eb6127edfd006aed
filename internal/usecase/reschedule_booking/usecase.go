package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/booking"
	slotRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/timeslot"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID int64
	NewSlotID int64
}

// UseCase use case переноса бронирования на другой слот
// Порядок внутри транзакции принципиален: сначала резервируется новый слот,
// и только после успеха освобождается старый. Если новый слот заполнен,
// транзакция откатывается и бронирование остается на прежнем слоте -
// частичного переноса не бывает
type UseCase struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет перенос бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("RescheduleBooking: booking=%d, newSlot=%d", req.BookingID, req.NewSlotID)

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.NewSlotID <= 0 {
		return fmt.Errorf("%w: newSlotID must be positive", ErrInvalidInput)
	}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d not reschedulable from %s",
				req.BookingID, booking.Status)
			return ErrNotReschedulable
		}

		// Перенос на тот же слот - ничего не меняем
		if booking.TimeSlotID == req.NewSlotID {
			uc.logger.Info("RescheduleBooking: booking id=%d already on slot id=%d", req.BookingID, req.NewSlotID)
			return nil
		}

		// Сначала резервируем новый слот; при неудаче старый остается нетронутым
		if err := uc.slotRepo.Reserve(txCtx, req.NewSlotID); err != nil {
			switch {
			case errors.Is(err, slotRepo.ErrSlotFull):
				uc.logger.Warn("RescheduleBooking: new slot id=%d is full", req.NewSlotID)
				return ErrSlotFull
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				uc.logger.Warn("RescheduleBooking: new slot id=%d not found", req.NewSlotID)
				return ErrSlotNotFound
			default:
				uc.logger.Error("RescheduleBooking: failed to reserve slot id=%d: %v", req.NewSlotID, err)
				return fmt.Errorf("%w: failed to reserve new slot: %w", ErrInternal, err)
			}
		}

		newSlot, err := uc.slotRepo.GetByID(txCtx, req.NewSlotID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get slot id=%d: %v", req.NewSlotID, err)
			return fmt.Errorf("%w: failed to get new slot: %w", ErrInternal, err)
		}

		scheduledAt, err := newSlot.ScheduledAt()
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to compute scheduled time for slot id=%d: %v", req.NewSlotID, err)
			return fmt.Errorf("%w: failed to compute scheduled time: %w", ErrInternal, err)
		}

		// Освобождаем старый слот
		if err := uc.slotRepo.Release(txCtx, booking.TimeSlotID); err != nil {
			uc.logger.Error("RescheduleBooking: failed to release slot id=%d: %v", booking.TimeSlotID, err)
			return fmt.Errorf("%w: failed to release old slot: %w", ErrInternal, err)
		}

		if err := uc.bookingRepo.UpdateSlot(txCtx, req.BookingID, req.NewSlotID, scheduledAt); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking slot: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to slot id=%d", req.BookingID, req.NewSlotID)
	return nil
}
