package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
	slotRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/timeslot"
	"github.com/seatslabs/VSC-BookingService/pkg/types"
)

// SlotRepository интерфейс репозитория временных слотов
type SlotRepository interface {
	ListAvailable(ctx context.Context, date time.Time) ([]*domain.TimeSlot, error)
	FindOpen(ctx context.Context, date time.Time, startTime types.TimeString) (*domain.TimeSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Request модель запроса доступных слотов
// StartTime опционален: если указан, возвращается только открытый слот
// на эту пару (дата, время начала)
type Request struct {
	Date      time.Time
	StartTime *types.TimeString
}

// Slot доступный слот в ответе
type Slot struct {
	ID             int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	AvailableSpots int
	TotalSpots     int
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date  time.Time
	Slots []Slot
}

// UseCase use case получения доступных слотов на дату
// Возвращает только открытые слоты со свободными местами,
// отсортированные по времени начала
type UseCase struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{slotRepo: slotRepo, logger: logger}
}

// Execute выполняет получение доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime != nil {
		return uc.findOpen(ctx, req.Date, *req.StartTime)
	}

	slots, err := uc.slotRepo.ListAvailable(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: repository error for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		result = append(result, Slot{
			ID:             s.ID,
			Date:           s.Date,
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			AvailableSpots: s.FreeSpots(),
			TotalSpots:     s.MaxCapacity,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d open slots on %s", len(result), req.Date.Format(domain.DateFormat))
	return &Response{Date: req.Date, Slots: result}, nil
}

// findOpen возвращает единственный открытый слот на пару (дата, время начала)
func (uc *UseCase) findOpen(ctx context.Context, date time.Time, startTime types.TimeString) (*Response, error) {
	if err := startTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, startTime)
	}

	slot, err := uc.slotRepo.FindOpen(ctx, date, startTime)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("GetAvailableSlots: no open slot on %s at %s",
				date.Format(domain.DateFormat), startTime)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("GetAvailableSlots: repository error for date=%s time=%s: %v",
			date.Format(domain.DateFormat), startTime, err)
		return nil, fmt.Errorf("%w: failed to find slot: %v", ErrInternal, err)
	}

	return &Response{
		Date: date,
		Slots: []Slot{{
			ID:             slot.ID,
			Date:           slot.Date,
			StartTime:      slot.StartTime,
			EndTime:        slot.EndTime,
			AvailableSpots: slot.FreeSpots(),
			TotalSpots:     slot.MaxCapacity,
		}},
	}, nil
}
