package domain

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=ledger.go -destination=../../../gen/mocks/store/ledger.go -package=mocks

// LedgerRepository keeps one non-negative coin balance per user.
// Unseen users have a balance of zero.
type LedgerRepository interface {
	GetBalance(ctx context.Context, userID int64) (int64, error)
	Debit(ctx context.Context, userID int64, amount int64) error
	Credit(ctx context.Context, userID int64, amount int64) error
}

type Account struct {
	UserID  int64
	Balance int64
}

type WalletProfile struct {
	UserID  int64
	Balance int64
	Orders  []Order
}

// RequirePositive rejects zero and negative coin amounts and stock quantities.
func RequirePositive(what string, value int64) error {
	if value <= 0 {
		return &InvalidArgumentsError{Msg: fmt.Sprintf("%s must be positive, got %d", what, value)}
	}

	return nil
}
