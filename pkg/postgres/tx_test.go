package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx records commit and rollback; every other pgx.Tx method panics.
type fakeTx struct {
	pgx.Tx
	commitErr  error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback(context.Context) error {
	if f.committed || f.rolledBack {
		return pgx.ErrTxClosed
	}
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (b fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestWithTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		tx := &fakeTx{}
		require.NoError(t, WithTransaction(ctx, fakeBeginner{tx: tx}, func(pgx.Tx) error { return nil }))
		assert.True(t, tx.committed)
		assert.False(t, tx.rolledBack)
	})

	t.Run("rolls back and returns fn error", func(t *testing.T) {
		tx := &fakeTx{}
		fnErr := errors.New("duplicate keyword row")
		err := WithTransaction(ctx, fakeBeginner{tx: tx}, func(pgx.Tx) error { return fnErr })
		assert.Same(t, fnErr, err)
		assert.True(t, tx.rolledBack)
		assert.False(t, tx.committed)
	})

	t.Run("wraps commit failure", func(t *testing.T) {
		tx := &fakeTx{commitErr: errors.New("serialization failure")}
		err := WithTransaction(ctx, fakeBeginner{tx: tx}, func(pgx.Tx) error { return nil })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "postgres: transaction")
	})

	t.Run("wraps begin failure", func(t *testing.T) {
		err := WithTransaction(ctx, fakeBeginner{err: errors.New("pool closed")}, func(pgx.Tx) error {
			t.Fatal("fn must not run")
			return nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pool closed")
	})
}
