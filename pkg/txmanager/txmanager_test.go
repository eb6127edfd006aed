package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatslabs/VSC-BookingService/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr error
	commits   int
	rollbacks int
}

func (t *fakeTx) QueryRowContext(_ context.Context, _ string, _ ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) QueryContext(_ context.Context, _ string, _ ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) ExecContext(_ context.Context, _ string, _ ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) Commit() error {
	t.commits++
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rollbacks++
	return nil
}

type fakeBeginner struct {
	beginErr   error
	commitErrs []error // ошибка Commit по номеру попытки
	lastOpts   *sql.TxOptions
	txs        []*fakeTx
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	b.lastOpts = opts

	tx := &fakeTx{}
	if len(b.txs) < len(b.commitErrs) {
		tx.commitErr = b.commitErrs[len(b.txs)]
	}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func serializationErr() error {
	return &pq.Error{Code: "40001"}
}

func TestDoSerializable(t *testing.T) {
	ctx := context.Background()

	t.Run("CommitsOnSuccess", func(t *testing.T) {
		db := &fakeBeginner{}
		m := NewTransactionManager(db)

		var sawTx bool
		err := m.DoSerializable(ctx, func(txCtx context.Context) error {
			sawTx = dbmetrics.IsInTransaction(txCtx)
			return nil
		})
		require.NoError(t, err)

		assert.True(t, sawTx)
		require.Len(t, db.txs, 1)
		assert.Equal(t, 1, db.txs[0].commits)
		assert.Equal(t, 0, db.txs[0].rollbacks)
		require.NotNil(t, db.lastOpts)
		assert.Equal(t, sql.LevelSerializable, db.lastOpts.Isolation)
	})

	t.Run("RollsBackOnFnError", func(t *testing.T) {
		db := &fakeBeginner{}
		m := NewTransactionManager(db)

		wantErr := errors.New("business failure")
		err := m.DoSerializable(ctx, func(context.Context) error { return wantErr })
		assert.ErrorIs(t, err, wantErr)

		// Бизнес-ошибка не повторяется
		require.Len(t, db.txs, 1)
		assert.Equal(t, 0, db.txs[0].commits)
		assert.Equal(t, 1, db.txs[0].rollbacks)
	})

	t.Run("RetriesCommitSerializationFailure", func(t *testing.T) {
		db := &fakeBeginner{commitErrs: []error{serializationErr(), nil}}
		m := NewTransactionManager(db)

		calls := 0
		err := m.DoSerializable(ctx, func(context.Context) error {
			calls++
			return nil
		})
		require.NoError(t, err)

		assert.Equal(t, 2, calls)
		require.Len(t, db.txs, 2)
		assert.Equal(t, 1, db.txs[0].rollbacks)
		assert.Equal(t, 1, db.txs[1].commits)
	})

	t.Run("ExhaustsRetriesOnPersistentConflict", func(t *testing.T) {
		db := &fakeBeginner{commitErrs: []error{serializationErr(), serializationErr(), serializationErr()}}
		m := NewTransactionManager(db)

		err := m.DoSerializable(ctx, func(context.Context) error { return nil })
		assert.ErrorIs(t, err, ErrCommitTx)
		assert.Len(t, db.txs, maxRetries)
	})

	t.Run("RetriesFnSerializationFailure", func(t *testing.T) {
		// Конфликт сериализации, пойманный запросом внутри транзакции и
		// обернутый репозиторием с сохранением цепочки
		db := &fakeBeginner{}
		m := NewTransactionManager(db)

		calls := 0
		err := m.DoSerializable(ctx, func(context.Context) error {
			calls++
			if calls == 1 {
				return fmt.Errorf("repository: execute update: %w", serializationErr())
			}
			return nil
		})
		require.NoError(t, err)

		assert.Equal(t, 2, calls)
		require.Len(t, db.txs, 2)
	})

	t.Run("DoesNotRetryOtherCommitErrors", func(t *testing.T) {
		db := &fakeBeginner{commitErrs: []error{errors.New("connection reset")}}
		m := NewTransactionManager(db)

		err := m.DoSerializable(ctx, func(context.Context) error { return nil })
		assert.ErrorIs(t, err, ErrCommitTx)
		assert.Len(t, db.txs, 1)
	})

	t.Run("BeginError", func(t *testing.T) {
		db := &fakeBeginner{beginErr: errors.New("pool exhausted")}
		m := NewTransactionManager(db)

		err := m.DoSerializable(ctx, func(context.Context) error { return nil })
		assert.ErrorIs(t, err, ErrBeginTx)
	})

	t.Run("RollsBackAndRepanics", func(t *testing.T) {
		db := &fakeBeginner{}
		m := NewTransactionManager(db)

		require.Panics(t, func() {
			_ = m.DoSerializable(ctx, func(context.Context) error {
				panic("boom")
			})
		})

		require.Len(t, db.txs, 1)
		assert.Equal(t, 0, db.txs[0].commits)
		assert.Equal(t, 1, db.txs[0].rollbacks)
	})
}
