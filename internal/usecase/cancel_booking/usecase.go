package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
	bookingRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/booking"
	"github.com/seatslabs/VSC-BookingService/pkg/ptr"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID   int64
	ActorUserID int64
}

// UseCase use case отмены бронирования клиентом
// Смена статуса на cancelled, освобождение места в слоте и запись истории
// выполняются одной атомарной транзакцией
type UseCase struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	historyRepo HistoryRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	historyRepo HistoryRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		historyRepo: historyRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет отмену бронирования
// После отмены в слоте освобождается место, и новое бронирование
// на этот слот снова возможно
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("CancelBooking: booking=%d, actor=%d", req.BookingID, req.ActorUserID)

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.ActorUserID <= 0 {
		return fmt.Errorf("%w: actorUserID must be positive", ErrInvalidInput)
	}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if booking.Status.IsTerminal() {
			uc.logger.Warn("CancelBooking: booking id=%d already terminal (%s)", req.BookingID, booking.Status)
			return ErrAlreadyTerminal
		}

		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d not cancellable from %s", req.BookingID, booking.Status)
			return ErrNotCancellable
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, req.BookingID, domain.StatusCancelled, bookingRepo.StatusStamps{}); err != nil {
			uc.logger.Error("CancelBooking: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		// Освобождаем место в слоте - терминальное бронирование не удерживает вместимость
		if err := uc.slotRepo.Release(txCtx, booking.TimeSlotID); err != nil {
			uc.logger.Error("CancelBooking: failed to release slot id=%d: %v", booking.TimeSlotID, err)
			return fmt.Errorf("%w: failed to release slot: %w", ErrInternal, err)
		}

		_, err = uc.historyRepo.Append(txCtx, &domain.StatusHistoryEntry{
			BookingID:   req.BookingID,
			Status:      domain.StatusCancelled,
			ActorUserID: req.ActorUserID,
			Notes:       ptr.Ptr(domain.HistoryNoteCancelled),
		})
		if err != nil {
			uc.logger.Error("CancelBooking: failed to append history for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to append history: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled", req.BookingID)
	return nil
}
