package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
)

// SlotRepository интерфейс репозитория временных слотов
type SlotRepository interface {
	CreateIfAbsent(ctx context.Context, slot *domain.TimeSlot) (bool, error)
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

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Generator генератор скользящего окна временных слотов
// Раскатывает фиксированную дневную сетку на daysAhead дней вперед;
// идемпотентен - уже существующие пары (дата, время начала) пропускаются
type Generator struct {
	slotRepo     SlotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewGenerator создает генератор слотов
func NewGenerator(slotRepo SlotRepository, logger Logger) *Generator {
	return &Generator{
		slotRepo:     slotRepo,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// EnsureGenerated создает слоты дневной сетки на daysAhead дней вперед,
// начиная с сегодняшнего дня. Возвращает количество созданных слотов
func (g *Generator) EnsureGenerated(ctx context.Context, daysAhead int) (int, error) {
	if daysAhead <= 0 {
		return 0, fmt.Errorf("%w: daysAhead must be positive", ErrInvalidInput)
	}

	today := dateOnly(g.timeProvider.Now())
	created := 0

	for day := 0; day < daysAhead; day++ {
		date := today.AddDate(0, 0, day)

		for _, slot := range GridForDate(date) {
			ok, err := g.slotRepo.CreateIfAbsent(ctx, slot)
			if err != nil {
				return created, fmt.Errorf("%w: failed to create slot %s %s: %v",
					ErrInternal, date.Format(domain.DateFormat), slot.StartTime, err)
			}
			if ok {
				created++
			}
		}
	}

	if created > 0 {
		g.logger.Info("EnsureGenerated: created %d slots over %d days", created, daysAhead)
	}

	return created, nil
}

// GridForDate возвращает дневную сетку слотов для даты
// Часовые слоты по domain.SlotGridStartTimes с вместимостью по умолчанию
func GridForDate(date time.Time) []*domain.TimeSlot {
	grid := make([]*domain.TimeSlot, 0, len(domain.SlotGridStartTimes))

	for _, start := range domain.SlotGridStartTimes {
		// Сетка содержит только валидные времена, ошибка здесь невозможна
		end, _ := start.AddMinutes(domain.SlotDurationMinutes)

		grid = append(grid, &domain.TimeSlot{
			Date:        date,
			StartTime:   start,
			EndTime:     end,
			MaxCapacity: domain.SlotDefaultCapacity,
			IsAvailable: true,
		})
	}

	return grid
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
