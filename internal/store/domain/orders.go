package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=orders.go -destination=../../../gen/mocks/store/orders.go -package=mocks

type OrdersRepository interface {
	FetchUserOrders(ctx context.Context, userID int64) ([]Order, error)
}

// PurchaseCommitter applies the debit, the stock decrement and the order record as one unit.
// Implementations re-validate stock and balance under their own locks.
type PurchaseCommitter interface {
	CommitPurchase(ctx context.Context, commit PurchaseCommit) (Order, error)
	CommitCheckout(ctx context.Context, commit CheckoutCommit) (Order, error)
}

type Order struct {
	ID         uuid.UUID
	UserID     int64
	ItemName   string
	Total      int64
	CouponCode string
	CreatedAt  time.Time
}

type PurchaseCommit struct {
	OrderID    uuid.UUID
	UserID     int64
	ItemID     int64
	ItemName   string
	Quantity   int64
	Charge     int64
	CouponCode string
	CreatedAt  time.Time
}

func (c PurchaseCommit) Order() Order {
	return Order{
		ID:         c.OrderID,
		UserID:     c.UserID,
		ItemName:   c.ItemName,
		Total:      c.Charge,
		CouponCode: c.CouponCode,
		CreatedAt:  c.CreatedAt,
	}
}

type CheckoutCommit struct {
	OrderID   uuid.UUID
	UserID    int64
	Lines     []CartEntry
	Total     int64
	Summary   string
	CreatedAt time.Time
}

func (c CheckoutCommit) Order() Order {
	return Order{
		ID:        c.OrderID,
		UserID:    c.UserID,
		ItemName:  c.Summary,
		Total:     c.Total,
		CreatedAt: c.CreatedAt,
	}
}

// FulfillmentPayload is handed to the notifier after a committed purchase.
type FulfillmentPayload struct {
	OrderID   uuid.UUID
	ItemName  string
	Text      string
	PricePaid int64
}

type PurchaseState string

const (
	StateQuoted    PurchaseState = "quoted"
	StateValidated PurchaseState = "validated"
	StateCommitted PurchaseState = "committed"
	StateRejected  PurchaseState = "rejected"
)

// Quote is a priced, not yet committed, purchase of one unit.
type Quote struct {
	Item            Item
	CouponCode      string
	DiscountPercent int64
	TaxPercent      int64
	FinalPrice      int64
	Balance         int64
	State           PurchaseState
}
