package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
	"github.com/seatslabs/VSC-BookingService/pkg/dbmetrics"
	"github.com/seatslabs/VSC-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий истории смены статусов бронирований
// Таблица append-only: записи только добавляются, UPDATE и DELETE отсутствуют
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория истории
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись истории для бронирования
func (r *Repository) Append(ctx context.Context, entry *domain.StatusHistoryEntry) (*domain.StatusHistoryEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_status_history").
		Columns(
			"booking_id",
			"status",
			"actor_user_id",
			"notes",
		).
		Values(
			entry.BookingID,
			entry.Status,
			entry.ActorUserID,
			entry.Notes,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Append - execute insert: %w", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	return entry, nil
}

// ListByBooking возвращает историю бронирования в хронологическом порядке
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.StatusHistoryEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"status",
		"actor_user_id",
		"notes",
		"created_at",
	).
		From("booking_status_history").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.StatusHistoryEntry, 0)
	for rows.Next() {
		var entry domain.StatusHistoryEntry
		var createdAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.BookingID,
			&entry.Status,
			&entry.ActorUserID,
			&entry.Notes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %w", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}
