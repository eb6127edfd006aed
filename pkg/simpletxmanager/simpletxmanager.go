package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/seatslabs/VSC-BookingService/pkg/dbmetrics"
	"github.com/seatslabs/VSC-BookingService/pkg/txmanager"
)

// TransactionManager менеджер транзакций поверх чистого *sql.DB, без обёртки метрик
// Используется, когда сбор метрик отключен в конфигурации
type TransactionManager struct {
	inner *txmanager.TransactionManager
}

// NewTransactionManager создает менеджер транзакций над *sql.DB
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{
		inner: txmanager.NewTransactionManager(&plainBeginner{db: db}),
	}
}

// DoSerializable выполняет fn в сериализуемой транзакции
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.inner.DoSerializable(ctx, fn)
}

// plainBeginner адаптирует *sql.DB к txmanager.TxBeginner
type plainBeginner struct {
	db *sql.DB
}

func (b *plainBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx, err := b.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("simpletxmanager: begin: %w", err)
	}
	return tx, nil
}
