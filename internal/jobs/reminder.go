package jobs

import (
	"context"
	"time"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
	"github.com/seatslabs/VSC-BookingService/internal/integrations/notifyservice"
)

// ReminderRepository выборка бронирований, ожидающих напоминания
type ReminderRepository interface {
	ListDueReminders(ctx context.Context, date time.Time) ([]*domain.ReminderBooking, error)
}

// Notifier доставка напоминаний внешнему notification-сервису
type Notifier interface {
	SendReminder(ctx context.Context, notification *notifyservice.ReminderNotification) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ReminderJob ежечасная рассылка напоминаний о завтрашних визитах
// Джоба только читает подтвержденные бронирования на завтра и передает их
// notification-сервису; дедупликация повторных напоминаний - на его стороне
type ReminderJob struct {
	repo     ReminderRepository
	notifier Notifier
	interval time.Duration
	logger   Logger
}

// NewReminderJob создает джобу напоминаний
func NewReminderJob(repo ReminderRepository, notifier Notifier, interval time.Duration, logger Logger) *ReminderJob {
	return &ReminderJob{
		repo:     repo,
		notifier: notifier,
		interval: interval,
		logger:   logger,
	}
}

// Run запускает цикл джобы; блокируется до отмены контекста
func (j *ReminderJob) Run(ctx context.Context) {
	j.logger.Info("ReminderJob: started, interval=%s", j.interval)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("ReminderJob: stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

// sweep один проход рассылки: бронирования на завтрашнюю дату
func (j *ReminderJob) sweep(ctx context.Context) {
	tomorrow := time.Now().AddDate(0, 0, 1)

	bookings, err := j.repo.ListDueReminders(ctx, tomorrow)
	if err != nil {
		j.logger.Error("ReminderJob: failed to list due reminders: %v", err)
		return
	}

	if len(bookings) == 0 {
		return
	}

	j.logger.Info("ReminderJob: %d bookings due for reminders on %s",
		len(bookings), tomorrow.Format(domain.DateFormat))

	sent := 0
	for _, b := range bookings {
		err := j.notifier.SendReminder(ctx, &notifyservice.ReminderNotification{
			BookingID:     b.BookingID,
			Reference:     b.Reference,
			ScheduledAt:   b.ScheduledAt,
			ServiceName:   b.ServiceName,
			CustomerName:  b.CustomerName,
			CustomerEmail: b.CustomerEmail,
			CustomerPhone: b.CustomerPhone,
			VehicleName:   b.VehicleName,
		})
		if err != nil {
			// Недоставка одного напоминания не прерывает рассылку остальных
			j.logger.Warn("ReminderJob: failed to send reminder for booking id=%d: %v", b.BookingID, err)
			continue
		}
		sent++
	}

	j.logger.Info("ReminderJob: sent %d/%d reminders", sent, len(bookings))
}
