package timeslot

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	reserveQuery = "UPDATE time_slots SET current_bookings = current_bookings + 1 " +
		"WHERE id = $1 AND is_available = $2 AND current_bookings < max_capacity"
	getByIDQuery = "SELECT id, slot_date, start_time, end_time, max_capacity, " +
		"current_bookings, is_available, created_at FROM time_slots WHERE id = $1"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func slotRow(current, capacity int, available bool) *sqlmock.Rows {
	return sqlmock.NewRows(slotColumns).AddRow(
		int64(4),
		time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC),
		"10:00",
		"11:00",
		capacity,
		current,
		available,
		time.Now(),
	)
}

func TestReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(reserveQuery)).
			WithArgs(int64(4), true).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Reserve(ctx, 4)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Full", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(reserveQuery)).
			WithArgs(int64(4), true).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(getByIDQuery)).
			WithArgs(int64(4)).
			WillReturnRows(slotRow(3, 3, true))

		err := repo.Reserve(ctx, 4)
		assert.ErrorIs(t, err, ErrSlotFull)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unavailable", func(t *testing.T) {
		// Слот существует и не заполнен, но снят с доступности:
		// для вызывающих он выглядит как отсутствующий, а не как заполненный
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(reserveQuery)).
			WithArgs(int64(4), true).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(getByIDQuery)).
			WithArgs(int64(4)).
			WillReturnRows(slotRow(0, 3, false))

		err := repo.Reserve(ctx, 4)
		assert.ErrorIs(t, err, ErrSlotNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(reserveQuery)).
			WithArgs(int64(4), true).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(getByIDQuery)).
			WithArgs(int64(4)).
			WillReturnError(sql.ErrNoRows)

		err := repo.Reserve(ctx, 4)
		assert.ErrorIs(t, err, ErrSlotNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRelease(t *testing.T) {
	ctx := context.Background()
	releaseQuery := "UPDATE time_slots SET current_bookings = GREATEST(current_bookings - 1, 0) WHERE id = $1"

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(releaseQuery)).
			WithArgs(int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Release(ctx, 4)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(releaseQuery)).
			WithArgs(int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Release(ctx, 4)
		assert.ErrorIs(t, err, ErrSlotNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
