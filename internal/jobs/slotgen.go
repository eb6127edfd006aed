package jobs

import (
	"context"
	"time"
)

// SlotGenerator идемпотентная генерация скользящего окна слотов
type SlotGenerator interface {
	EnsureGenerated(ctx context.Context, daysAhead int) (int, error)
}

// SlotGenJob поддерживает скользящее окно слотов
// Выполняет генерацию сразу при старте и далее раз в сутки,
// чтобы окно всегда покрывало daysAhead дней вперед
type SlotGenJob struct {
	generator SlotGenerator
	daysAhead int
	interval  time.Duration
	logger    Logger
}

// NewSlotGenJob создает джобу генерации слотов
func NewSlotGenJob(generator SlotGenerator, daysAhead int, interval time.Duration, logger Logger) *SlotGenJob {
	return &SlotGenJob{
		generator: generator,
		daysAhead: daysAhead,
		interval:  interval,
		logger:    logger,
	}
}

// Run запускает цикл джобы; блокируется до отмены контекста
func (j *SlotGenJob) Run(ctx context.Context) {
	j.logger.Info("SlotGenJob: started, window=%d days, interval=%s", j.daysAhead, j.interval)

	j.generate(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("SlotGenJob: stopped")
			return
		case <-ticker.C:
			j.generate(ctx)
		}
	}
}

func (j *SlotGenJob) generate(ctx context.Context) {
	created, err := j.generator.EnsureGenerated(ctx, j.daysAhead)
	if err != nil {
		j.logger.Error("SlotGenJob: generation failed: %v", err)
		return
	}

	if created > 0 {
		j.logger.Info("SlotGenJob: generated %d new slots", created)
	}
}
