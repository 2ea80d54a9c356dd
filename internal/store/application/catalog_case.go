package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
)

// ProductDraft describes a new item by the name of its category.
type ProductDraft struct {
	Name         string
	Price        int64
	Stock        int64
	ImageRef     string
	CategoryName string
	Payload      string
}

type CatalogCase struct {
	catalog domain.CatalogRepository
	coupons domain.CouponRepository
	logger  logging.Logger
}

func NewCatalogCase(catalog domain.CatalogRepository, coupons domain.CouponRepository, logger logging.Logger) *CatalogCase {
	return &CatalogCase{
		catalog: catalog,
		coupons: coupons,
		logger:  logger,
	}
}

// AddCategory creates the category or returns the existing one with the same name.
func (cc *CatalogCase) AddCategory(ctx context.Context, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, &domain.InvalidArgumentsError{Msg: "category name must not be empty"}
	}

	return cc.catalog.AddCategory(ctx, name)
}

func (cc *CatalogCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return cc.catalog.ListCategories(ctx)
}

func (cc *CatalogCase) AddItem(ctx context.Context, draft ProductDraft) (domain.Item, error) {
	if err := validateDraft(draft); err != nil {
		return domain.Item{}, err
	}

	category, err := cc.catalog.GetCategoryByName(ctx, strings.TrimSpace(draft.CategoryName))
	if err != nil {
		return domain.Item{}, err
	}

	item, err := cc.catalog.AddItem(ctx, domain.NewItem{
		Name:       strings.TrimSpace(draft.Name),
		Price:      draft.Price,
		Stock:      draft.Stock,
		ImageRef:   draft.ImageRef,
		CategoryID: category.ID,
		Payload:    draft.Payload,
	})
	if err != nil {
		return domain.Item{}, err
	}

	cc.logger.Info("item added", "item_id", item.ID, "name", item.Name, "category", category.Name)

	return item, nil
}

func (cc *CatalogCase) GetItem(ctx context.Context, itemID int64) (domain.Item, error) {
	return cc.catalog.GetItem(ctx, itemID)
}

// ListItems lists every item, or only the items of the named category.
func (cc *CatalogCase) ListItems(ctx context.Context, categoryName string) ([]domain.Item, error) {
	categoryName = strings.TrimSpace(categoryName)
	if categoryName == "" {
		return cc.catalog.ListItems(ctx, nil)
	}

	category, err := cc.catalog.GetCategoryByName(ctx, categoryName)
	if err != nil {
		return nil, err
	}

	return cc.catalog.ListItems(ctx, &category.ID)
}

func (cc *CatalogCase) Restock(ctx context.Context, itemID int64, quantity int64) error {
	if quantity <= 0 {
		return &domain.InvalidArgumentsError{Msg: "restock quantity must be positive"}
	}

	return cc.catalog.Restock(ctx, itemID, quantity)
}

func (cc *CatalogCase) SaveCoupon(ctx context.Context, code string, discountPercent int64, expiresAt time.Time) (domain.Coupon, error) {
	coupon := domain.Coupon{
		Code:            domain.NormalizeCouponCode(code),
		DiscountPercent: discountPercent,
		ExpiresAt:       expiresAt,
	}

	if coupon.Code == "" {
		return domain.Coupon{}, &domain.InvalidArgumentsError{Msg: "coupon code must not be empty"}
	}
	if discountPercent < 0 || discountPercent > 100 {
		return domain.Coupon{}, &domain.InvalidArgumentsError{Msg: "discount must be between 0 and 100 percent"}
	}
	if expiresAt.IsZero() {
		return domain.Coupon{}, &domain.InvalidArgumentsError{Msg: "coupon expiry must be set"}
	}

	if err := cc.coupons.SaveCoupon(ctx, coupon); err != nil {
		return domain.Coupon{}, err
	}

	return coupon, nil
}

func validateDraft(draft ProductDraft) error {
	switch {
	case strings.TrimSpace(draft.Name) == "":
		return &domain.InvalidArgumentsError{Msg: "item name must not be empty"}
	case draft.Price <= 0:
		return &domain.InvalidArgumentsError{Msg: "item price must be positive"}
	case draft.Price > domain.MaxItemPrice:
		return &domain.InvalidArgumentsError{Msg: fmt.Sprintf("item price must not exceed %d", domain.MaxItemPrice)}
	case draft.Stock < 0:
		return &domain.InvalidArgumentsError{Msg: "item stock must not be negative"}
	case strings.TrimSpace(draft.Payload) == "":
		return &domain.InvalidArgumentsError{Msg: "item payload must not be empty"}
	case strings.TrimSpace(draft.CategoryName) == "":
		return &domain.InvalidArgumentsError{Msg: "category name must not be empty"}
	}

	return nil
}
