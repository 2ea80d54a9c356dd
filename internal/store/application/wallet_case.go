package application

import (
	"context"

	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"golang.org/x/sync/errgroup"
)

type WalletCase struct {
	ledger domain.LedgerRepository
	orders domain.OrdersRepository
	logger logging.Logger
}

func NewWalletCase(ledger domain.LedgerRepository, orders domain.OrdersRepository, logger logging.Logger) *WalletCase {
	return &WalletCase{
		ledger: ledger,
		orders: orders,
		logger: logger,
	}
}

func (wc *WalletCase) GetBalance(ctx context.Context, userID int64) (int64, error) {
	return wc.ledger.GetBalance(ctx, userID)
}

func (wc *WalletCase) Credit(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return &domain.InvalidArgumentsError{Msg: "credit amount must be positive"}
	}

	err := wc.ledger.Credit(ctx, userID, amount)
	if err != nil {
		return err
	}

	wc.logger.Info("coins credited", "user_id", userID, "amount", amount)
	return nil
}

func (wc *WalletCase) Debit(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return &domain.InvalidArgumentsError{Msg: "debit amount must be positive"}
	}

	return wc.ledger.Debit(ctx, userID, amount)
}

func (wc *WalletCase) OrderHistory(ctx context.Context, userID int64) ([]domain.Order, error) {
	return wc.orders.FetchUserOrders(ctx, userID)
}

func (wc *WalletCase) GetProfile(ctx context.Context, userID int64) (domain.WalletProfile, error) {
	group, groupCtx := errgroup.WithContext(ctx)

	var balance int64
	var orders []domain.Order

	group.Go(func() error {
		var err error
		balance, err = wc.ledger.GetBalance(groupCtx, userID)
		return err
	})

	group.Go(func() error {
		var err error
		orders, err = wc.orders.FetchUserOrders(groupCtx, userID)
		return err
	})

	if err := group.Wait(); err != nil {
		return domain.WalletProfile{}, err
	}

	return domain.WalletProfile{
		UserID:  userID,
		Balance: balance,
		Orders:  orders,
	}, nil
}
