package timeslot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
	"github.com/seatslabs/VSC-BookingService/pkg/dbmetrics"
	"github.com/seatslabs/VSC-BookingService/pkg/psqlbuilder"
	"github.com/seatslabs/VSC-BookingService/pkg/types"
)

// Repository репозиторий временных слотов
// Единственный владелец счётчика занятости current_bookings: инкремент и
// декремент выражены одиночными условными UPDATE, поэтому два конкурентных
// резервирования не могут одновременно пройти мимо проверки вместимости
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var slotColumns = []string{
	"id",
	"slot_date",
	"start_time",
	"end_time",
	"max_capacity",
	"current_bookings",
	"is_available",
	"created_at",
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlot(executor.QueryRowContext(ctx, query, args...))
}

// FindOpen находит открытый слот на указанные дату и время начала
// Возвращает слот, только если он доступен и в нём есть свободные места
func (r *Repository) FindOpen(ctx context.Context, date time.Time, startTime types.TimeString) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"slot_date": date}).
		Where(squirrel.Eq{"start_time": startTime}).
		Where(squirrel.Eq{"is_available": true}).
		Where(squirrel.Expr("current_bookings < max_capacity")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindOpen - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlot(executor.QueryRowContext(ctx, query, args...))
}

// Reserve атомарно занимает одно место в слоте
// Проверка вместимости и инкремент выполняются одним условным UPDATE:
// запрос меняет строку, только пока current_bookings < max_capacity, поэтому
// на последнее место из гонки конкурентных вызовов выигрывает ровно один.
// Возвращает ErrSlotFull, если мест не осталось, ErrSlotNotFound - если слот
// не существует или снят с доступности
func (r *Repository) Reserve(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("current_bookings", squirrel.Expr("current_bookings + 1")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"is_available": true}).
		Where(squirrel.Expr("current_bookings < max_capacity")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reserve - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reserve - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем "слот заполнен" и "слот не существует"
		slot, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		// Снятый с доступности слот для вызывающих неотличим от отсутствующего
		if !slot.IsAvailable {
			return ErrSlotNotFound
		}
		return ErrSlotFull
	}

	return nil
}

// Release атомарно освобождает одно место в слоте
// Счётчик не опускается ниже нуля (GREATEST) - при соблюдении инвариантов
// ядра этого и не должно происходить
func (r *Repository) Release(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("current_bookings", squirrel.Expr("GREATEST(current_bookings - 1, 0)")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// ListAvailable возвращает все открытые слоты на дату, отсортированные по времени начала
func (r *Repository) ListAvailable(ctx context.Context, date time.Time) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"slot_date": date}).
		Where(squirrel.Eq{"is_available": true}).
		Where(squirrel.Expr("current_bookings < max_capacity")).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		var slot domain.TimeSlot
		var createdAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.Date,
			&slot.StartTime,
			&slot.EndTime,
			&slot.MaxCapacity,
			&slot.CurrentBookings,
			&slot.IsAvailable,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAvailable - scan row: %w", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

// CreateIfAbsent создает слот, если пары (дата, время начала) ещё нет
// Идемпотентна за счёт ON CONFLICT DO NOTHING - используется генератором
// скользящего окна слотов. Возвращает true, если слот был создан
func (r *Repository) CreateIfAbsent(ctx context.Context, slot *domain.TimeSlot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slots").
		Columns(
			"slot_date",
			"start_time",
			"end_time",
			"max_capacity",
			"current_bookings",
			"is_available",
		).
		Values(
			slot.Date,
			slot.StartTime,
			slot.EndTime,
			slot.MaxCapacity,
			0,
			true,
		).
		Suffix("ON CONFLICT (slot_date, start_time) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: CreateIfAbsent - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfAbsent - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfAbsent - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// scanSlot сканирует одну строку результата в domain.TimeSlot
func (r *Repository) scanSlot(row *sql.Row) (*domain.TimeSlot, error) {
	var slot domain.TimeSlot
	var createdAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.MaxCapacity,
		&slot.CurrentBookings,
		&slot.IsAvailable,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanSlot - scan slot: %w", ErrScanRow, err)
	}

	slot.CreatedAt = createdAt.Time
	return &slot, nil
}
