package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:generate mockgen -source=transactions.go -destination=../../../gen/mocks/database/transactions.go -package=mocks

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"

	defaultMaxRetries   = 3
	defaultRetryBackoff = 50 * time.Millisecond
)

type TxManager interface {
	WithinTransaction(ctx context.Context, txFn TxFunc) error
}

type TxFunc func(ctx context.Context, executor QueryExecuter) error

type DelegateTxManager struct {
	txBeginner TxBeginner
	logger     logging.Logger

	maxRetries int
	backoff    time.Duration
}

func NewDelegateTxManager(txBeginner TxBeginner, logger logging.Logger) *DelegateTxManager {
	return &DelegateTxManager{
		txBeginner: txBeginner,
		logger:     logger,
		maxRetries: defaultMaxRetries,
		backoff:    defaultRetryBackoff,
	}
}

// WithinTransaction runs txFn in a read-committed transaction and commits it.
// Serialization failures and deadlocks restart the whole function.
func (tm *DelegateTxManager) WithinTransaction(ctx context.Context, txFn TxFunc) error {
	var err error

	for attempt := 0; attempt <= tm.maxRetries; attempt++ {
		err = tm.runOnce(ctx, txFn)
		if err == nil || !IsRetryable(err) {
			return err
		}

		if attempt == tm.maxRetries {
			break
		}

		wait := time.Duration(attempt+1) * tm.backoff
		tm.logger.Warn("retrying transaction", "attempt", attempt+1, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return fmt.Errorf("transaction failed after %d attempts: %w", tm.maxRetries+1, err)
}

func (tm *DelegateTxManager) runOnce(ctx context.Context, txFn TxFunc) error {
	tx, err := tm.txBeginner.BeginTx(ctx, pgx.TxOptions{
		IsoLevel: pgx.ReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	err = txFn(ctx, tx)
	if err == nil {
		err = tx.Commit(ctx)
		if err == nil {
			return nil
		}
		err = fmt.Errorf("failed to commit transaction: %w", err)
	}

	if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
		tm.logger.Error("failed to rollback transaction", "error", rollbackErr)
	}

	return err
}

// IsRetryable reports whether the error is a Postgres serialization failure or deadlock.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}
