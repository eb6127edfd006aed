package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
	"github.com/seatslabs/VSC-BookingService/pkg/dbmetrics"
	"github.com/seatslabs/VSC-BookingService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки Postgres при нарушении unique constraint
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var bookingColumns = []string{
	"id",
	"reference",
	"customer_id",
	"vehicle_id",
	"service_id",
	"time_slot_id",
	"technician_id",
	"status",
	"scheduled_at",
	"notes",
	"price",
	"service_name",
	"service_duration_minutes",
	"actual_start_time",
	"actual_end_time",
	"created_at",
	"updated_at",
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её
// При нарушении уникальности reference возвращает ErrReferenceCollision -
// вызывающая сторона генерирует новый номер и повторяет вставку
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"customer_id",
			"vehicle_id",
			"service_id",
			"time_slot_id",
			"status",
			"scheduled_at",
			"notes",
			"price",
			"service_name",
			"service_duration_minutes",
		).
		Values(
			booking.Reference,
			booking.CustomerID,
			booking.VehicleID,
			booking.ServiceID,
			booking.TimeSlotID,
			booking.Status,
			booking.ScheduledAt,
			booking.Notes,
			booking.Price,
			booking.ServiceName,
			booking.ServiceDuration,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrReferenceCollision
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется через FOR UPDATE, чтобы конкурентные
// смены статуса не читали устаревшее состояние
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...))
}

// GetByReference получает бронирование по человекочитаемому номеру
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"reference": reference}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...))
}

// GetByCustomer получает список бронирований клиента
// Опционально фильтрует по статусу, поддерживает пагинацию
func (r *Repository) GetByCustomer(ctx context.Context, filter domain.CustomerBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": filter.CustomerID}).
		OrderBy("scheduled_at DESC")

	// Фильтрация по статусу, если указан
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByTechnician получает бронирования, назначенные технику,
// в порядке запланированного времени
func (r *Repository) GetByTechnician(ctx context.Context, technicianID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"technician_id": technicianID}).
		OrderBy("scheduled_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTechnician - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTechnician - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// StatusStamps временные отметки, проставляемые при смене статуса
// Ненулевые поля записываются вместе со статусом одним UPDATE
type StatusStamps struct {
	ActualStartTime *time.Time
	ActualEndTime   *time.Time
}

// UpdateStatus обновляет статус бронирования и связанные временные отметки
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, stamps StatusStamps) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if stamps.ActualStartTime != nil {
		updateBuilder = updateBuilder.Set("actual_start_time", *stamps.ActualStartTime)
	}
	if stamps.ActualEndTime != nil {
		updateBuilder = updateBuilder.Set("actual_end_time", *stamps.ActualEndTime)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// AssignTechnician назначает техника на бронирование
// Статус бронирования при этом не меняется
func (r *Repository) AssignTechnician(ctx context.Context, id int64, technicianID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("technician_id", technicianID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AssignTechnician - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AssignTechnician - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AssignTechnician - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateSlot переносит бронирование на другой слот
// Занятость самих слотов меняет вызывающая сторона (usecase переноса)
// в той же транзакции
func (r *Repository) UpdateSlot(ctx context.Context, id int64, slotID int64, scheduledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("time_slot_id", slotID).
		Set("scheduled_at", scheduledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ListDueReminders возвращает подтвержденные бронирования на указанную дату
// вместе с контактами клиента и данными автомобиля
// Используется джобой рассылки напоминаний за день до визита
func (r *Repository) ListDueReminders(ctx context.Context, date time.Time) ([]*domain.ReminderBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.id",
		"b.reference",
		"b.scheduled_at",
		"b.service_name",
		"c.full_name",
		"c.email",
		"c.phone",
		"v.brand || ' ' || v.model",
	).
		From("bookings b").
		Join("customers c ON c.id = b.customer_id").
		Join("vehicles v ON v.id = b.vehicle_id").
		Where(squirrel.Eq{"b.status": domain.StatusApproved}).
		Where(squirrel.Expr("b.scheduled_at::date = ?::date", date)).
		OrderBy("b.scheduled_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reminders := make([]*domain.ReminderBooking, 0)
	for rows.Next() {
		var rb domain.ReminderBooking
		err := rows.Scan(
			&rb.BookingID,
			&rb.Reference,
			&rb.ScheduledAt,
			&rb.ServiceName,
			&rb.CustomerName,
			&rb.CustomerEmail,
			&rb.CustomerPhone,
			&rb.VehicleName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDueReminders - scan row: %w", ErrScanRow, err)
		}
		reminders = append(reminders, &rb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - rows error: %w", ErrScanRow, err)
	}

	return reminders, nil
}

// scanBooking сканирует одну строку результата в domain.Booking
func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.CustomerID,
		&booking.VehicleID,
		&booking.ServiceID,
		&booking.TimeSlotID,
		&booking.TechnicianID,
		&booking.Status,
		&booking.ScheduledAt,
		&booking.Notes,
		&booking.Price,
		&booking.ServiceName,
		&booking.ServiceDuration,
		&booking.ActualStartTime,
		&booking.ActualEndTime,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanBooking - scan booking: %w", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.Reference,
			&booking.CustomerID,
			&booking.VehicleID,
			&booking.ServiceID,
			&booking.TimeSlotID,
			&booking.TechnicianID,
			&booking.Status,
			&booking.ScheduledAt,
			&booking.Notes,
			&booking.Price,
			&booking.ServiceName,
			&booking.ServiceDuration,
			&booking.ActualStartTime,
			&booking.ActualEndTime,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}
