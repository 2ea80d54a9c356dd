package application

import (
	"context"

	"github.com/Lexv0lk/coin-shop/internal/pkg/clock"
	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/google/uuid"
)

const purchaseQuantity = 1

type PurchaseCase struct {
	items     domain.ItemReader
	coupons   domain.CouponRepository
	ledger    domain.LedgerRepository
	committer domain.PurchaseCommitter

	clock      clock.Clock
	taxPercent int64
	logger     logging.Logger
}

func NewPurchaseCase(
	items domain.ItemReader,
	coupons domain.CouponRepository,
	ledger domain.LedgerRepository,
	committer domain.PurchaseCommitter,
	clock clock.Clock,
	taxPercent int64,
	logger logging.Logger,
) *PurchaseCase {
	return &PurchaseCase{
		items:      items,
		coupons:    coupons,
		ledger:     ledger,
		committer:  committer,
		clock:      clock,
		taxPercent: taxPercent,
		logger:     logger,
	}
}

// Quote prices one unit of the item for the user without writing anything.
func (pc *PurchaseCase) Quote(ctx context.Context, userID int64, itemID int64, couponCode string) (domain.Quote, error) {
	item, err := pc.items.GetItem(ctx, itemID)
	if err != nil {
		return domain.Quote{}, err
	}

	if !item.InStock() {
		return domain.Quote{}, &domain.OutOfStockError{ItemID: item.ID, Available: item.Stock, Requested: purchaseQuantity}
	}

	code, discountPercent, err := pc.resolveCoupon(ctx, couponCode)
	if err != nil {
		return domain.Quote{}, err
	}

	balance, err := pc.ledger.GetBalance(ctx, userID)
	if err != nil {
		return domain.Quote{}, err
	}

	return domain.Quote{
		Item:            item,
		CouponCode:      code,
		DiscountPercent: discountPercent,
		TaxPercent:      pc.taxPercent,
		FinalPrice:      domain.Price(item.Price, discountPercent, pc.taxPercent),
		Balance:         balance,
		State:           domain.StateQuoted,
	}, nil
}

// Purchase buys one unit of the item. Validation failures are returned before anything is
// written; the debit, stock decrement and order record are committed together or not at all.
func (pc *PurchaseCase) Purchase(ctx context.Context, userID int64, itemID int64, couponCode string) (domain.FulfillmentPayload, error) {
	quote, err := pc.Quote(ctx, userID, itemID, couponCode)
	if err != nil {
		pc.logRejection(userID, itemID, err)
		return domain.FulfillmentPayload{}, err
	}

	if quote.Balance < quote.FinalPrice {
		err = &domain.InsufficientFundsError{Required: quote.FinalPrice, Balance: quote.Balance}
		pc.logRejection(userID, itemID, err)
		return domain.FulfillmentPayload{}, err
	}
	quote.State = domain.StateValidated

	order, err := pc.committer.CommitPurchase(ctx, domain.PurchaseCommit{
		OrderID:    uuid.New(),
		UserID:     userID,
		ItemID:     quote.Item.ID,
		ItemName:   quote.Item.Name,
		Quantity:   purchaseQuantity,
		Charge:     quote.FinalPrice,
		CouponCode: quote.CouponCode,
		CreatedAt:  pc.clock.Now(),
	})
	if err != nil {
		pc.logRejection(userID, itemID, err)
		return domain.FulfillmentPayload{}, err
	}

	pc.logger.Info("purchase committed",
		"user_id", userID,
		"item_id", itemID,
		"order_id", order.ID.String(),
		"total", order.Total,
		"coupon", order.CouponCode,
	)

	return domain.FulfillmentPayload{
		OrderID:   order.ID,
		ItemName:  quote.Item.Name,
		Text:      quote.Item.Payload,
		PricePaid: order.Total,
	}, nil
}

func (pc *PurchaseCase) resolveCoupon(ctx context.Context, rawCode string) (string, int64, error) {
	code := domain.NormalizeCouponCode(rawCode)
	if code == "" {
		return "", 0, nil
	}

	coupon, err := pc.coupons.GetCoupon(ctx, code)
	if err != nil {
		return "", 0, err
	}

	if coupon.IsExpiredAt(pc.clock.Now()) {
		return "", 0, &domain.CouponExpiredError{Code: code}
	}

	return coupon.Code, coupon.DiscountPercent, nil
}

func (pc *PurchaseCase) logRejection(userID int64, itemID int64, err error) {
	rejection := domain.RejectionOf(err)
	if rejection.Reason == domain.ReasonStoreUnavailable {
		pc.logger.Error("purchase failed", "user_id", userID, "item_id", itemID, "error", err)
		return
	}

	pc.logger.Info("purchase rejected",
		"user_id", userID,
		"item_id", itemID,
		"state", domain.StateRejected,
		"reason", rejection.Reason,
	)
}
