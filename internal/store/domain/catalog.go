package domain

import (
	"context"
	"strings"
	"time"
)

//go:generate mockgen -source=catalog.go -destination=../../../gen/mocks/store/catalog.go -package=mocks

type ItemReader interface {
	GetItem(ctx context.Context, itemID int64) (Item, error)
}

type CatalogRepository interface {
	ItemReader
	ListItems(ctx context.Context, categoryID *int64) ([]Item, error)
	DecrementStock(ctx context.Context, itemID int64, quantity int64) error
	Restock(ctx context.Context, itemID int64, quantity int64) error
	AddCategory(ctx context.Context, name string) (Category, error)
	GetCategoryByName(ctx context.Context, name string) (Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	AddItem(ctx context.Context, item NewItem) (Item, error)
}

type CouponRepository interface {
	GetCoupon(ctx context.Context, code string) (Coupon, error)
	SaveCoupon(ctx context.Context, coupon Coupon) error
}

type Category struct {
	ID   int64
	Name string
}

type Item struct {
	ID           int64
	Name         string
	Price        int64
	Stock        int64
	ImageRef     string
	CategoryID   int64
	CategoryName string
	Payload      string
}

func (i Item) InStock() bool {
	return i.Stock > 0
}

type NewItem struct {
	Name       string
	Price      int64
	Stock      int64
	ImageRef   string
	CategoryID int64
	Payload    string
}

type Coupon struct {
	Code            string
	DiscountPercent int64
	ExpiresAt       time.Time
}

// IsExpiredAt reports whether the coupon can no longer produce a discount at now.
func (c Coupon) IsExpiredAt(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// NormalizeCouponCode makes coupon lookups case-insensitive.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
