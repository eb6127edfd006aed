package update_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
	bookingRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/booking"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	updates  []updateCall
}

type updateCall struct {
	id     int64
	status domain.BookingStatus
	stamps bookingRepo.StatusStamps
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, stamps bookingRepo.StatusStamps) error {
	r.updates = append(r.updates, updateCall{id: id, status: status, stamps: stamps})
	r.bookings[id].Status = status
	return nil
}

type fakeSlotRepo struct {
	released []int64
}

func (r *fakeSlotRepo) Release(_ context.Context, id int64) error {
	r.released = append(r.released, id)
	return nil
}

type fakeHistoryRepo struct {
	entries []*domain.StatusHistoryEntry
}

func (r *fakeHistoryRepo) Append(_ context.Context, entry *domain.StatusHistoryEntry) (*domain.StatusHistoryEntry, error) {
	copied := *entry
	copied.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, &copied)
	return &copied, nil
}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		Reference:   "BK-123456AB01",
		CustomerID:  1,
		VehicleID:   2,
		ServiceID:   3,
		TimeSlotID:  4,
		Status:      status,
		ScheduledAt: time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC),
	}
}

func newTestUseCase(bookings *fakeBookingRepo, slots *fakeSlotRepo, history *fakeHistoryRepo, now time.Time) *UseCase {
	uc := NewUseCase(bookings, slots, history, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: now}
	return uc
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 11, 20, 9, 30, 0, 0, time.UTC)

	t.Run("ApproveFromPending", func(t *testing.T) {
		bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(1, domain.StatusPending)}}
		slots := &fakeSlotRepo{}
		history := &fakeHistoryRepo{}
		uc := newTestUseCase(bookings, slots, history, now)

		resp, err := uc.Execute(ctx, &Request{BookingID: 1, ToStatus: domain.StatusApproved, ActorUserID: 10})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusApproved), resp.Status)
		assert.Nil(t, resp.ActualStartTime)
		assert.Empty(t, slots.released)

		// Каноническая заметка, если заметка не передана
		require.Len(t, history.entries, 1)
		require.NotNil(t, history.entries[0].Notes)
		assert.Equal(t, domain.HistoryNoteApproved, *history.entries[0].Notes)
	})

	t.Run("StartStampsActualStartTime", func(t *testing.T) {
		bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(1, domain.StatusApproved)}}
		uc := newTestUseCase(bookings, &fakeSlotRepo{}, &fakeHistoryRepo{}, now)

		resp, err := uc.Execute(ctx, &Request{BookingID: 1, ToStatus: domain.StatusInProgress, ActorUserID: 10})
		require.NoError(t, err)

		require.NotNil(t, resp.ActualStartTime)
		assert.Equal(t, now, *resp.ActualStartTime)
		assert.Nil(t, resp.ActualEndTime)
	})

	t.Run("CompleteStampsActualEndTime", func(t *testing.T) {
		bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(1, domain.StatusInProgress)}}
		uc := newTestUseCase(bookings, &fakeSlotRepo{}, &fakeHistoryRepo{}, now)

		resp, err := uc.Execute(ctx, &Request{BookingID: 1, ToStatus: domain.StatusCompleted, ActorUserID: 10})
		require.NoError(t, err)

		require.NotNil(t, resp.ActualEndTime)
		assert.Equal(t, now, *resp.ActualEndTime)
	})

	t.Run("RejectReleasesSlot", func(t *testing.T) {
		bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(1, domain.StatusPending)}}
		slots := &fakeSlotRepo{}
		history := &fakeHistoryRepo{}
		uc := newTestUseCase(bookings, slots, history, now)

		_, err := uc.Execute(ctx, &Request{BookingID: 1, ToStatus: domain.StatusRejected, ActorUserID: 10})
		require.NoError(t, err)

		assert.Equal(t, []int64{4}, slots.released)
		require.Len(t, history.entries, 1)
		require.NotNil(t, history.entries[0].Notes)
		assert.Equal(t, domain.HistoryNoteRejected, *history.entries[0].Notes)
	})

	t.Run("IllegalTransition", func(t *testing.T) {
		cases := []struct {
			from domain.BookingStatus
			to   domain.BookingStatus
		}{
			{domain.StatusPending, domain.StatusInProgress},
			{domain.StatusPending, domain.StatusCompleted},
			{domain.StatusCompleted, domain.StatusCancelled},
			{domain.StatusCancelled, domain.StatusApproved},
			{domain.StatusRejected, domain.StatusPending},
			{domain.StatusInProgress, domain.StatusCancelled},
		}

		for _, tc := range cases {
			bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(1, tc.from)}}
			slots := &fakeSlotRepo{}
			uc := newTestUseCase(bookings, slots, &fakeHistoryRepo{}, now)

			_, err := uc.Execute(ctx, &Request{BookingID: 1, ToStatus: tc.to, ActorUserID: 10})
			assert.ErrorIs(t, err, ErrIllegalTransition, "%s -> %s", tc.from, tc.to)

			// Статус не меняется, слот не освобождается
			assert.Empty(t, bookings.updates)
			assert.Empty(t, slots.released)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
		uc := newTestUseCase(bookings, &fakeSlotRepo{}, &fakeHistoryRepo{}, now)

		_, err := uc.Execute(ctx, &Request{BookingID: 99, ToStatus: domain.StatusApproved, ActorUserID: 10})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(1, domain.StatusPending)}}
		uc := newTestUseCase(bookings, &fakeSlotRepo{}, &fakeHistoryRepo{}, now)

		_, err := uc.Execute(ctx, &Request{BookingID: 1, ToStatus: domain.BookingStatus("archived"), ActorUserID: 10})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
