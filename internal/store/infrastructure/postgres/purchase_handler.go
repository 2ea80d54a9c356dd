package postgres

import (
	"context"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/pkg/database"
	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
)

// PurchaseHandler commits purchases and checkouts in one transaction each.
// Rows are locked account first, then items by ascending id.
type PurchaseHandler struct {
	txManager database.TxManager
	timeout   time.Duration
	logger    logging.Logger
}

func NewPurchaseHandler(txManager database.TxManager, timeout time.Duration, logger logging.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		txManager: txManager,
		timeout:   timeout,
		logger:    logger,
	}
}

func (ph *PurchaseHandler) CommitPurchase(ctx context.Context, commit domain.PurchaseCommit) (domain.Order, error) {
	ctx, cancel := bounded(ctx, ph.timeout)
	defer cancel()

	order := commit.Order()

	err := ph.txManager.WithinTransaction(ctx, func(ctx context.Context, tx database.QueryExecuter) error {
		balance, err := lockAccountCreating(ctx, tx, commit.UserID)
		if err != nil {
			return err
		}

		item, err := getItem(ctx, tx, commit.ItemID, true)
		if err != nil {
			return err
		}

		if item.Stock < commit.Quantity {
			return &domain.OutOfStockError{ItemID: item.ID, Available: item.Stock, Requested: commit.Quantity}
		}

		if balance < commit.Charge {
			return &domain.InsufficientFundsError{Required: commit.Charge, Balance: balance}
		}

		if err := decrementStock(ctx, tx, commit.ItemID, commit.Quantity); err != nil {
			return err
		}

		if commit.Charge > 0 {
			if err := debit(ctx, tx, commit.UserID, commit.Charge); err != nil {
				return err
			}
		}

		return insertOrder(ctx, tx, order)
	})
	if err != nil {
		return domain.Order{}, storeError("commit purchase", err)
	}

	return order, nil
}

func (ph *PurchaseHandler) CommitCheckout(ctx context.Context, commit domain.CheckoutCommit) (domain.Order, error) {
	ctx, cancel := bounded(ctx, ph.timeout)
	defer cancel()

	order := commit.Order()

	err := ph.txManager.WithinTransaction(ctx, func(ctx context.Context, tx database.QueryExecuter) error {
		balance, err := lockAccountCreating(ctx, tx, commit.UserID)
		if err != nil {
			return err
		}

		entries, err := listCart(ctx, tx, commit.UserID, true)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			return &domain.EmptyCartError{UserID: commit.UserID}
		}

		if !domain.CartMatches(entries, commit.Lines) {
			return &domain.CartChangedError{UserID: commit.UserID}
		}

		total := domain.CartTotal(entries)
		if balance < total {
			return &domain.InsufficientFundsError{Required: total, Balance: balance}
		}

		itemIDs := make([]int64, 0, len(entries))
		for _, entry := range entries {
			if err := decrementStock(ctx, tx, entry.Item.ID, entry.Quantity); err != nil {
				return err
			}
			itemIDs = append(itemIDs, entry.Item.ID)
		}

		if total > 0 {
			if err := debit(ctx, tx, commit.UserID, total); err != nil {
				return err
			}
		}

		if err := clearCart(ctx, tx, commit.UserID, itemIDs); err != nil {
			return err
		}

		return insertOrder(ctx, tx, order)
	})
	if err != nil {
		return domain.Order{}, storeError("commit checkout", err)
	}

	return order, nil
}

func lockAccountCreating(ctx context.Context, tx database.QueryExecuter, userID int64) (int64, error) {
	if err := ensureAccount(ctx, tx, userID); err != nil {
		return 0, err
	}

	return lockAccount(ctx, tx, userID)
}
