package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
	bookingRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/booking"
	slotRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/timeslot"
	"github.com/seatslabs/VSC-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	bookings    map[int64]*domain.Booking
	slotUpdates []slotUpdate
}

type slotUpdate struct {
	bookingID   int64
	slotID      int64
	scheduledAt time.Time
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) UpdateSlot(_ context.Context, id int64, slotID int64, scheduledAt time.Time) error {
	r.slotUpdates = append(r.slotUpdates, slotUpdate{bookingID: id, slotID: slotID, scheduledAt: scheduledAt})
	r.bookings[id].TimeSlotID = slotID
	r.bookings[id].ScheduledAt = scheduledAt
	return nil
}

type fakeSlotRepo struct {
	slots    map[int64]*domain.TimeSlot
	released []int64
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.TimeSlot, error) {
	slot, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (r *fakeSlotRepo) Reserve(_ context.Context, id int64) error {
	slot, ok := r.slots[id]
	if !ok || !slot.IsAvailable {
		return slotRepo.ErrSlotNotFound
	}
	if slot.CurrentBookings >= slot.MaxCapacity {
		return slotRepo.ErrSlotFull
	}
	slot.CurrentBookings++
	return nil
}

func (r *fakeSlotRepo) Release(_ context.Context, id int64) error {
	r.released = append(r.released, id)
	if slot, ok := r.slots[id]; ok && slot.CurrentBookings > 0 {
		slot.CurrentBookings--
	}
	return nil
}

func testSlot(t *testing.T, id int64, startTime string, capacity, booked int) *domain.TimeSlot {
	t.Helper()
	start, err := types.NewTimeStringFromString(startTime)
	require.NoError(t, err)
	end, err := start.AddMinutes(domain.SlotDurationMinutes)
	require.NoError(t, err)
	return &domain.TimeSlot{
		ID:              id,
		Date:            time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       start,
		EndTime:         end,
		MaxCapacity:     capacity,
		CurrentBookings: booked,
		IsAvailable:     true,
	}
}

func testBooking(status domain.BookingStatus, slotID int64) *domain.Booking {
	return &domain.Booking{
		ID:          1,
		Reference:   "BK-123456AB01",
		TimeSlotID:  slotID,
		Status:      status,
		ScheduledAt: time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC),
	}
}

func TestRescheduleBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		slots := &fakeSlotRepo{slots: map[int64]*domain.TimeSlot{
			4: testSlot(t, 4, "10:00", 3, 2),
			5: testSlot(t, 5, "14:00", 3, 0),
		}}
		bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(domain.StatusApproved, 4)}}
		uc := NewUseCase(bookings, slots, fakeTxManager{}, nopLogger{})

		err := uc.Execute(ctx, &Request{BookingID: 1, NewSlotID: 5})
		require.NoError(t, err)

		// Новый слот занят, старый освобождён
		assert.Equal(t, 1, slots.slots[5].CurrentBookings)
		assert.Equal(t, 1, slots.slots[4].CurrentBookings)
		assert.Equal(t, []int64{4}, slots.released)

		require.Len(t, bookings.slotUpdates, 1)
		assert.Equal(t, int64(5), bookings.slotUpdates[0].slotID)
		assert.Equal(t, time.Date(2025, 11, 20, 14, 0, 0, 0, time.UTC), bookings.slotUpdates[0].scheduledAt)
	})

	t.Run("NewSlotFullLeavesOldUntouched", func(t *testing.T) {
		slots := &fakeSlotRepo{slots: map[int64]*domain.TimeSlot{
			4: testSlot(t, 4, "10:00", 3, 1),
			5: testSlot(t, 5, "14:00", 3, 3),
		}}
		bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(domain.StatusApproved, 4)}}
		uc := NewUseCase(bookings, slots, fakeTxManager{}, nopLogger{})

		err := uc.Execute(ctx, &Request{BookingID: 1, NewSlotID: 5})
		assert.ErrorIs(t, err, ErrSlotFull)

		// Бронирование остается на прежнем слоте
		assert.Equal(t, 1, slots.slots[4].CurrentBookings)
		assert.Empty(t, slots.released)
		assert.Empty(t, bookings.slotUpdates)
		assert.Equal(t, int64(4), bookings.bookings[1].TimeSlotID)
	})

	t.Run("SameSlotNoOp", func(t *testing.T) {
		slots := &fakeSlotRepo{slots: map[int64]*domain.TimeSlot{4: testSlot(t, 4, "10:00", 3, 1)}}
		bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(domain.StatusPending, 4)}}
		uc := NewUseCase(bookings, slots, fakeTxManager{}, nopLogger{})

		err := uc.Execute(ctx, &Request{BookingID: 1, NewSlotID: 4})
		require.NoError(t, err)

		assert.Equal(t, 1, slots.slots[4].CurrentBookings)
		assert.Empty(t, bookings.slotUpdates)
	})

	t.Run("NotReschedulable", func(t *testing.T) {
		for _, status := range []domain.BookingStatus{
			domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled, domain.StatusRejected,
		} {
			slots := &fakeSlotRepo{slots: map[int64]*domain.TimeSlot{
				4: testSlot(t, 4, "10:00", 3, 1),
				5: testSlot(t, 5, "14:00", 3, 0),
			}}
			bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(status, 4)}}
			uc := NewUseCase(bookings, slots, fakeTxManager{}, nopLogger{})

			err := uc.Execute(ctx, &Request{BookingID: 1, NewSlotID: 5})
			assert.ErrorIs(t, err, ErrNotReschedulable, "status=%s", status)
			assert.Equal(t, 0, slots.slots[5].CurrentBookings)
		}
	})

	t.Run("NewSlotNotFound", func(t *testing.T) {
		slots := &fakeSlotRepo{slots: map[int64]*domain.TimeSlot{4: testSlot(t, 4, "10:00", 3, 1)}}
		bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(domain.StatusPending, 4)}}
		uc := NewUseCase(bookings, slots, fakeTxManager{}, nopLogger{})

		err := uc.Execute(ctx, &Request{BookingID: 1, NewSlotID: 99})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("BookingNotFound", func(t *testing.T) {
		uc := NewUseCase(
			&fakeBookingRepo{bookings: map[int64]*domain.Booking{}},
			&fakeSlotRepo{slots: map[int64]*domain.TimeSlot{}},
			fakeTxManager{},
			nopLogger{},
		)

		err := uc.Execute(ctx, &Request{BookingID: 1, NewSlotID: 5})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
