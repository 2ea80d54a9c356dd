package application

import (
	"context"

	"github.com/Lexv0lk/coin-shop/internal/pkg/clock"
	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/google/uuid"
)

type CartCase struct {
	items     domain.ItemReader
	cart      domain.CartRepository
	ledger    domain.LedgerRepository
	committer domain.PurchaseCommitter

	clock  clock.Clock
	logger logging.Logger
}

func NewCartCase(
	items domain.ItemReader,
	cart domain.CartRepository,
	ledger domain.LedgerRepository,
	committer domain.PurchaseCommitter,
	clock clock.Clock,
	logger logging.Logger,
) *CartCase {
	return &CartCase{
		items:     items,
		cart:      cart,
		ledger:    ledger,
		committer: committer,
		clock:     clock,
		logger:    logger,
	}
}

func (cc *CartCase) AddLine(ctx context.Context, userID int64, itemID int64) (domain.CartLine, error) {
	if _, err := cc.items.GetItem(ctx, itemID); err != nil {
		return domain.CartLine{}, err
	}

	return cc.cart.AddLine(ctx, userID, itemID)
}

func (cc *CartCase) ListCart(ctx context.Context, userID int64) ([]domain.CartEntry, error) {
	return cc.cart.ListCart(ctx, userID)
}

// Checkout charges the whole cart at list price. Coupons and tax are not applied here.
// Either every line is bought and the cart is cleared, or nothing changes.
func (cc *CartCase) Checkout(ctx context.Context, userID int64) ([]domain.Order, error) {
	entries, err := cc.cart.ListCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, &domain.EmptyCartError{UserID: userID}
	}

	for _, entry := range entries {
		if entry.Item.Stock < entry.Quantity {
			return nil, cc.reject(userID, &domain.OutOfStockError{
				ItemID:    entry.Item.ID,
				Available: entry.Item.Stock,
				Requested: entry.Quantity,
			})
		}
	}

	total := domain.CartTotal(entries)

	balance, err := cc.ledger.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	if balance < total {
		return nil, cc.reject(userID, &domain.InsufficientFundsError{Required: total, Balance: balance})
	}

	order, err := cc.committer.CommitCheckout(ctx, domain.CheckoutCommit{
		OrderID:   uuid.New(),
		UserID:    userID,
		Lines:     entries,
		Total:     total,
		Summary:   domain.SummarizeCart(entries),
		CreatedAt: cc.clock.Now(),
	})
	if err != nil {
		return nil, cc.reject(userID, err)
	}

	cc.logger.Info("checkout committed",
		"user_id", userID,
		"order_id", order.ID.String(),
		"lines", len(entries),
		"total", order.Total,
	)

	return []domain.Order{order}, nil
}

func (cc *CartCase) reject(userID int64, err error) error {
	cc.logger.Info("checkout rejected", "user_id", userID, "reason", domain.RejectionOf(err).Reason)
	return err
}
