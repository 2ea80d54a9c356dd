package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/pkg/database"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/jackc/pgx/v5"
)

type CouponsRepository struct {
	queryExecuter database.QueryExecuter
	timeout       time.Duration
}

func NewCouponsRepository(queryExecuter database.QueryExecuter, timeout time.Duration) *CouponsRepository {
	return &CouponsRepository{
		queryExecuter: queryExecuter,
		timeout:       timeout,
	}
}

func (cr *CouponsRepository) GetCoupon(ctx context.Context, code string) (domain.Coupon, error) {
	ctx, cancel := bounded(ctx, cr.timeout)
	defer cancel()

	code = domain.NormalizeCouponCode(code)
	sql := `SELECT code, discount_percent, expires_at FROM coupons WHERE code = $1`

	var coupon domain.Coupon
	err := cr.queryExecuter.QueryRow(ctx, sql, code).Scan(&coupon.Code, &coupon.DiscountPercent, &coupon.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Coupon{}, &domain.InvalidCouponError{Code: code}
		}

		return domain.Coupon{}, storeError("get coupon", fmt.Errorf("failed to find coupon: %w", err))
	}

	return coupon, nil
}

// SaveCoupon creates the coupon or replaces the discount and expiry of an existing code.
func (cr *CouponsRepository) SaveCoupon(ctx context.Context, coupon domain.Coupon) error {
	ctx, cancel := bounded(ctx, cr.timeout)
	defer cancel()

	sql := `INSERT INTO coupons (code, discount_percent, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET discount_percent = EXCLUDED.discount_percent, expires_at = EXCLUDED.expires_at`

	_, err := cr.queryExecuter.Exec(ctx, sql, domain.NormalizeCouponCode(coupon.Code), coupon.DiscountPercent, coupon.ExpiresAt)
	if err != nil {
		return storeError("save coupon", fmt.Errorf("failed to save coupon: %w", err))
	}

	return nil
}
