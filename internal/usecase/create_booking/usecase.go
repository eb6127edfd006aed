package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
	bookingRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/catalog"
	slotRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/timeslot"
	"github.com/seatslabs/VSC-BookingService/pkg/ptr"
)

// UseCase use case создания бронирования
// Все эффекты одной операции - резервирование места в слоте, вставка
// бронирования и запись истории - выполняются в одной сериализуемой
// транзакции: либо происходят все, либо ни одного
type UseCase struct {
	slotRepo     SlotRepository
	catalogRepo  CatalogRepository
	bookingRepo  BookingRepository
	historyRepo  HistoryRepository
	txManager    TransactionManager
	refGenerator ReferenceGenerator
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	historyRepo HistoryRepository,
	txManager TransactionManager,
	refGenerator ReferenceGenerator,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		catalogRepo:  catalogRepo,
		bookingRepo:  bookingRepo,
		historyRepo:  historyRepo,
		txManager:    txManager,
		refGenerator: refGenerator,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Если на последнее место слота претендуют два конкурентных запроса,
// успешно завершается ровно один - условный инкремент счётчика занятости
// пропускает второй запрос только при наличии свободного места, и его
// транзакция откатывается с ErrSlotFull
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, vehicle=%d, service=%d, slot=%d",
		req.CustomerID, req.VehicleID, req.ServiceID, req.SlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Все операции с БД - в одной сериализуемой транзакции.
	// Коллизия номера бронирования повторяется один раз новой транзакцией:
	// после неудавшегося INSERT Postgres прерывает текущую транзакцию,
	// и повтор внутри неё невозможен
	result, err := uc.createInTx(ctx, req, uc.refGenerator.Generate())
	if errors.Is(err, bookingRepo.ErrReferenceCollision) {
		uc.logger.Warn("CreateBooking: reference collision, retrying in a new transaction")
		result, err = uc.createInTx(ctx, req, uc.refGenerator.Generate())
	}

	if err != nil {
		if errors.Is(err, bookingRepo.ErrReferenceCollision) {
			uc.logger.Error("CreateBooking: reference collision repeated: %v", err)
			return nil, fmt.Errorf("%w: reference collision repeated: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d reference=%s",
		result.ID, result.Reference)

	return fromDomain(result), nil
}

func (uc *UseCase) createInTx(ctx context.Context, req *Request, reference string) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Атомарно резервируем место в слоте
		// Проверка вместимости и инкремент - один условный UPDATE
		if err := uc.slotRepo.Reserve(txCtx, req.SlotID); err != nil {
			switch {
			case errors.Is(err, slotRepo.ErrSlotFull):
				uc.logger.Warn("CreateBooking: slot id=%d is full", req.SlotID)
				return ErrSlotFull
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			default:
				uc.logger.Error("CreateBooking: failed to reserve slot id=%d: %v", req.SlotID, err)
				return fmt.Errorf("%w: failed to reserve slot: %w", ErrInternal, err)
			}
		}

		// 2.2. Читаем слот - из него фиксируется дата-время бронирования
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}

		scheduledAt, err := slot.ScheduledAt()
		if err != nil {
			uc.logger.Error("CreateBooking: failed to compute scheduled time for slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to compute scheduled time: %w", ErrInternal, err)
		}

		// 2.3. Резолвим текущие условия услуги
		// Цена фиксируется на бронировании и больше не пересчитывается
		service, err := uc.catalogRepo.GetService(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}

		// 2.4. Вставляем бронирование со статусом pending
		booking := &domain.Booking{
			Reference:       reference,
			CustomerID:      req.CustomerID,
			VehicleID:       req.VehicleID,
			ServiceID:       req.ServiceID,
			TimeSlotID:      req.SlotID,
			Status:          domain.StatusPending,
			ScheduledAt:     scheduledAt,
			Notes:           req.Notes,
			Price:           service.EffectivePrice(),
			ServiceName:     service.Name,
			ServiceDuration: service.DurationMinutes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrReferenceCollision) {
				// Откатываемся целиком - решение о повторе принимает Execute
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// 2.5. Записываем начальную запись истории
		_, err = uc.historyRepo.Append(txCtx, &domain.StatusHistoryEntry{
			BookingID:   created.ID,
			Status:      domain.StatusPending,
			ActorUserID: req.ActorUserID,
			Notes:       ptr.Ptr(domain.HistoryNoteCreated),
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to append history for booking id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to append history: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}
