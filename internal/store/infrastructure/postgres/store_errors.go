package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	defaultStoreTimeout = 3 * time.Second

	pgErrCodeForeignKeyViolation = "23503"
)

func bounded(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// storeError passes domain rejections through and turns every other failure into *domain.StoreUnavailableError.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}

	var unavailable *domain.StoreUnavailableError
	if errors.As(err, &unavailable) {
		return err
	}

	if domain.RejectionOf(err).Reason != domain.ReasonStoreUnavailable {
		return err
	}

	return &domain.StoreUnavailableError{Op: op, Err: err}
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeForeignKeyViolation
}
