package http

import (
	"context"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/store/application"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
)

//go:generate mockgen -source=services.go -destination=../../../../gen/mocks/http/services.go -package=mocks

type CatalogService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListItems(ctx context.Context, categoryName string) ([]domain.Item, error)
	GetItem(ctx context.Context, itemID int64) (domain.Item, error)
	AddCategory(ctx context.Context, name string) (domain.Category, error)
	AddItem(ctx context.Context, draft application.ProductDraft) (domain.Item, error)
	Restock(ctx context.Context, itemID int64, quantity int64) error
	SaveCoupon(ctx context.Context, code string, discountPercent int64, expiresAt time.Time) (domain.Coupon, error)
}

type PurchaseService interface {
	Quote(ctx context.Context, userID int64, itemID int64, couponCode string) (domain.Quote, error)
	Purchase(ctx context.Context, userID int64, itemID int64, couponCode string) (domain.FulfillmentPayload, error)
}

type Deliverer interface {
	Deliver(ctx context.Context, userID int64, payload domain.FulfillmentPayload) bool
}

type CartService interface {
	AddLine(ctx context.Context, userID int64, itemID int64) (domain.CartLine, error)
	ListCart(ctx context.Context, userID int64) ([]domain.CartEntry, error)
	Checkout(ctx context.Context, userID int64) ([]domain.Order, error)
}

type WalletService interface {
	GetProfile(ctx context.Context, userID int64) (domain.WalletProfile, error)
	OrderHistory(ctx context.Context, userID int64) ([]domain.Order, error)
	Credit(ctx context.Context, userID int64, amount int64) error
}

type DisplayService interface {
	Watch(itemID int64, ref domain.CardRef) error
	Unwatch(ref domain.CardRef) bool
	Watched() []domain.CardRef
}
