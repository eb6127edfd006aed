package assign_technician

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
	bookingRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/catalog"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	assigned []int64
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) AssignTechnician(_ context.Context, id int64, technicianID int64) error {
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	r.assigned = append(r.assigned, technicianID)
	r.bookings[id].TechnicianID = &technicianID
	return nil
}

type fakeCatalogRepo struct {
	technicians map[int64]*domain.Technician
}

func (r *fakeCatalogRepo) GetTechnician(_ context.Context, id int64) (*domain.Technician, error) {
	tech, ok := r.technicians[id]
	if !ok {
		return nil, catalogRepo.ErrTechnicianNotFound
	}
	return tech, nil
}

func TestAssignTechnician(t *testing.T) {
	ctx := context.Background()

	booking := func(status domain.BookingStatus) *domain.Booking {
		return &domain.Booking{ID: 1, Status: status}
	}
	technician := func(available bool) *domain.Technician {
		return &domain.Technician{ID: 7, UserID: 70, IsAvailable: available}
	}

	t.Run("Success", func(t *testing.T) {
		bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: booking(domain.StatusApproved)}}
		catalog := &fakeCatalogRepo{technicians: map[int64]*domain.Technician{7: technician(true)}}
		uc := NewUseCase(bookings, catalog, nopLogger{})

		err := uc.Execute(ctx, &Request{BookingID: 1, TechnicianID: 7})
		require.NoError(t, err)

		assert.Equal(t, []int64{7}, bookings.assigned)
		require.NotNil(t, bookings.bookings[1].TechnicianID)
		assert.Equal(t, int64(7), *bookings.bookings[1].TechnicianID)
	})

	t.Run("TechnicianUnavailable", func(t *testing.T) {
		bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: booking(domain.StatusApproved)}}
		catalog := &fakeCatalogRepo{technicians: map[int64]*domain.Technician{7: technician(false)}}
		uc := NewUseCase(bookings, catalog, nopLogger{})

		err := uc.Execute(ctx, &Request{BookingID: 1, TechnicianID: 7})
		assert.ErrorIs(t, err, ErrTechnicianUnavailable)
		assert.Empty(t, bookings.assigned)
	})

	t.Run("TechnicianNotFound", func(t *testing.T) {
		bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: booking(domain.StatusApproved)}}
		catalog := &fakeCatalogRepo{technicians: map[int64]*domain.Technician{}}
		uc := NewUseCase(bookings, catalog, nopLogger{})

		err := uc.Execute(ctx, &Request{BookingID: 1, TechnicianID: 7})
		assert.ErrorIs(t, err, ErrTechnicianNotFound)
	})

	t.Run("BookingTerminal", func(t *testing.T) {
		for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusRejected} {
			bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: booking(status)}}
			catalog := &fakeCatalogRepo{technicians: map[int64]*domain.Technician{7: technician(true)}}
			uc := NewUseCase(bookings, catalog, nopLogger{})

			err := uc.Execute(ctx, &Request{BookingID: 1, TechnicianID: 7})
			assert.ErrorIs(t, err, ErrBookingTerminal, "status=%s", status)
			assert.Empty(t, bookings.assigned)
		}
	})

	t.Run("BookingNotFound", func(t *testing.T) {
		bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
		catalog := &fakeCatalogRepo{technicians: map[int64]*domain.Technician{7: technician(true)}}
		uc := NewUseCase(bookings, catalog, nopLogger{})

		err := uc.Execute(ctx, &Request{BookingID: 1, TechnicianID: 7})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
