package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time { return p.now }

type fakeSlotRepo struct {
	existing map[string]bool
	created  []*domain.TimeSlot
}

func slotKey(slot *domain.TimeSlot) string {
	return slot.Date.Format(domain.DateFormat) + " " + slot.StartTime.String()
}

func (r *fakeSlotRepo) CreateIfAbsent(_ context.Context, slot *domain.TimeSlot) (bool, error) {
	key := slotKey(slot)
	if r.existing[key] {
		return false, nil
	}
	if r.existing == nil {
		r.existing = make(map[string]bool)
	}
	r.existing[key] = true
	r.created = append(r.created, slot)
	return true, nil
}

func TestGridForDate(t *testing.T) {
	date := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	grid := GridForDate(date)

	require.Len(t, grid, len(domain.SlotGridStartTimes))

	var starts []string
	for _, slot := range grid {
		starts = append(starts, slot.StartTime.String())

		assert.Equal(t, date, slot.Date)
		assert.Equal(t, domain.SlotDefaultCapacity, slot.MaxCapacity)
		assert.Equal(t, 0, slot.CurrentBookings)
		assert.True(t, slot.IsAvailable)

		// Каждый слот длится ровно час
		startMin, err := slot.StartTime.Minutes()
		require.NoError(t, err)
		endMin, err := slot.EndTime.Minutes()
		require.NoError(t, err)
		assert.Equal(t, domain.SlotDurationMinutes, endMin-startMin)
	}

	// Сетка с обеденным перерывом: после 11:00 следующий слот в 13:00
	assert.Equal(t, []string{"08:00", "09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"}, starts)
}

func TestEnsureGenerated(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 11, 20, 9, 15, 0, 0, time.UTC)

	t.Run("CreatesFullWindow", func(t *testing.T) {
		repo := &fakeSlotRepo{existing: make(map[string]bool)}
		g := NewGenerator(repo, nopLogger{})
		g.timeProvider = fixedTimeProvider{now: now}

		created, err := g.EnsureGenerated(ctx, 30)
		require.NoError(t, err)

		assert.Equal(t, 30*len(domain.SlotGridStartTimes), created)

		// Первый слот окна - сегодня, последний - через 29 дней
		first := repo.created[0]
		last := repo.created[len(repo.created)-1]
		assert.Equal(t, "2025-11-20", first.Date.Format(domain.DateFormat))
		assert.Equal(t, "2025-12-19", last.Date.Format(domain.DateFormat))
	})

	t.Run("Idempotent", func(t *testing.T) {
		repo := &fakeSlotRepo{existing: make(map[string]bool)}
		g := NewGenerator(repo, nopLogger{})
		g.timeProvider = fixedTimeProvider{now: now}

		created, err := g.EnsureGenerated(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 7*len(domain.SlotGridStartTimes), created)

		// Повторный вызов ничего не создаёт
		created, err = g.EnsureGenerated(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 0, created)
	})

	t.Run("ExtendsWindow", func(t *testing.T) {
		repo := &fakeSlotRepo{existing: make(map[string]bool)}
		g := NewGenerator(repo, nopLogger{})
		g.timeProvider = fixedTimeProvider{now: now}

		_, err := g.EnsureGenerated(ctx, 7)
		require.NoError(t, err)

		// Сдвиг на день вперед добавляет ровно одну дневную сетку
		g.timeProvider = fixedTimeProvider{now: now.AddDate(0, 0, 1)}
		created, err := g.EnsureGenerated(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, len(domain.SlotGridStartTimes), created)
	})

	t.Run("InvalidDaysAhead", func(t *testing.T) {
		g := NewGenerator(&fakeSlotRepo{}, nopLogger{})

		_, err := g.EnsureGenerated(ctx, 0)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = g.EnsureGenerated(ctx, -1)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
