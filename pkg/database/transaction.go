package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// WithTransaction function:
//     Begin transaction
//     Defer rollback - tự động rollback nếu fn return error hoặc panic
//     Commit nếu không có error

// TxBeginner is satisfied by *pgxpool.Pool and pgxmock pools
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxFunc là function type được execute trong transaction
type TxFunc func(pgx.Tx) error

// WithTransaction wraps một function trong transaction
// Auto rollback nếu có error, auto commit nếu success
func WithTransaction(ctx context.Context, db TxBeginner, fn TxFunc) error {
	return WithTransactionTimeout(ctx, db, 0, fn)
}

// WithTransactionTimeout is WithTransaction with each of Begin (pool
// acquire included), Commit and Rollback bounded by timeout.
// timeout <= 0 leaves them bounded only by ctx.
// Rollback still runs after ctx is cancelled so the connection is released.
func WithTransactionTimeout(ctx context.Context, db TxBeginner, timeout time.Duration, fn TxFunc) (err error) {
	bounded := func(parent context.Context) (context.Context, context.CancelFunc) {
		if timeout <= 0 {
			return context.WithCancel(parent)
		}
		return context.WithTimeout(parent, timeout)
	}

	beginCtx, cancelBegin := bounded(ctx)
	tx, err := db.Begin(beginCtx)
	cancelBegin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	rollback := func() {
		rbCtx, cancel := bounded(context.WithoutCancel(ctx))
		defer cancel()
		_ = tx.Rollback(rbCtx)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		} else if err != nil {
			rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	commitCtx, cancelCommit := bounded(ctx)
	defer cancelCommit()
	if err = tx.Commit(commitCtx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
