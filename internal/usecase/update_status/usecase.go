package update_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
	bookingRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/booking"
	"github.com/seatslabs/VSC-BookingService/pkg/ptr"
)

// UseCase use case смены статуса бронирования
// Легальность перехода определяет таблица domain.CanTransition; обновление
// статуса, временные отметки и запись истории выполняются атомарно.
// Переход в cancelled или rejected дополнительно освобождает место в слоте -
// прерванное бронирование не должно удерживать вместимость
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	historyRepo  HistoryRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
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
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		historyRepo:  historyRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет смену статуса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateStatus: booking=%d, to=%s, actor=%d",
		req.BookingID, req.ToStatus, req.ActorUserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateStatus: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Читаем бронирование с блокировкой строки (FOR UPDATE внутри транзакции)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateStatus: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// Проверяем легальность перехода; статус бронирования при отказе не меняется
		if !domain.CanTransition(booking.Status, req.ToStatus) {
			uc.logger.Warn("UpdateStatus: illegal transition %s -> %s for booking id=%d",
				booking.Status, req.ToStatus, req.BookingID)
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, booking.Status, req.ToStatus)
		}

		// Временные отметки проставляются ровно один раз:
		// состояния без повторного прохождения через approved не достижимы заново
		now := uc.timeProvider.Now()
		var stamps bookingRepo.StatusStamps
		switch req.ToStatus {
		case domain.StatusInProgress:
			stamps.ActualStartTime = &now
		case domain.StatusCompleted:
			stamps.ActualEndTime = &now
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, req.BookingID, req.ToStatus, stamps); err != nil {
			uc.logger.Error("UpdateStatus: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		// Отмена и отклонение освобождают место в слоте
		if req.ToStatus == domain.StatusCancelled || req.ToStatus == domain.StatusRejected {
			if err := uc.slotRepo.Release(txCtx, booking.TimeSlotID); err != nil {
				uc.logger.Error("UpdateStatus: failed to release slot id=%d: %v", booking.TimeSlotID, err)
				return fmt.Errorf("%w: failed to release slot: %w", ErrInternal, err)
			}
		}

		_, err = uc.historyRepo.Append(txCtx, &domain.StatusHistoryEntry{
			BookingID:   req.BookingID,
			Status:      req.ToStatus,
			ActorUserID: req.ActorUserID,
			Notes:       historyNotes(req),
		})
		if err != nil {
			uc.logger.Error("UpdateStatus: failed to append history for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to append history: %w", ErrInternal, err)
		}

		booking.Status = req.ToStatus
		if stamps.ActualStartTime != nil {
			booking.ActualStartTime = stamps.ActualStartTime
		}
		if stamps.ActualEndTime != nil {
			booking.ActualEndTime = stamps.ActualEndTime
		}
		booking.UpdatedAt = now

		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateStatus: booking id=%d is now %s", result.ID, result.Status)
	return fromDomain(result), nil
}

// historyNotes возвращает заметку для записи истории
// Если заметка не передана, для approve/reject подставляются канонические
func historyNotes(req *Request) *string {
	if req.Notes != nil {
		return req.Notes
	}

	switch req.ToStatus {
	case domain.StatusApproved:
		return ptr.Ptr(domain.HistoryNoteApproved)
	case domain.StatusRejected:
		return ptr.Ptr(domain.HistoryNoteRejected)
	default:
		return nil
	}
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorUserID <= 0 {
		return fmt.Errorf("%w: actorUserID must be positive", ErrInvalidInput)
	}

	if !req.ToStatus.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.ToStatus)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
