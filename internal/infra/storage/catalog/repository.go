package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
	"github.com/seatslabs/VSC-BookingService/pkg/dbmetrics"
	"github.com/seatslabs/VSC-BookingService/pkg/psqlbuilder"
)

// Repository read-only доступ к справочникам услуг и техников
// Сами справочники обслуживаются внешним CRUD слоем; ядру бронирований нужны
// текущие условия услуги в момент создания и флаг доступности техника
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает активную услугу по ID
// Вызывается внутри транзакции создания бронирования: цена и длительность
// фиксируются на бронировании, последующие изменения прайса его не затрагивают
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"base_price",
		"discount_percent",
		"duration_minutes",
		"is_active",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&service.BasePrice,
		&service.DiscountPercent,
		&service.DurationMinutes,
		&service.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	return &service, nil
}

// GetTechnician получает техника по ID
func (r *Repository) GetTechnician(ctx context.Context, id int64) (*domain.Technician, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"specialization",
		"is_available",
		"created_at",
	).
		From("technicians").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTechnician - build select query: %v", ErrBuildQuery, err)
	}

	var technician domain.Technician
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&technician.ID,
		&technician.UserID,
		&technician.Specialization,
		&technician.IsAvailable,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTechnicianNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTechnician - scan technician: %w", ErrScanRow, err)
	}

	technician.CreatedAt = createdAt.Time
	return &technician, nil
}
