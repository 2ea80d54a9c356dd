package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRejectionOf(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name string
		err  error

		expectedReason    RejectionReason
		expectedMessage   string
		expectedRetryable bool
	}

	tests := []testCase{
		{
			name:            "item not found",
			err:             &ItemNotFoundError{ItemID: 3},
			expectedReason:  ReasonItemNotFound,
			expectedMessage: "Item not found.",
		},
		{
			name:            "sold out",
			err:             &OutOfStockError{ItemID: 3, Available: 0, Requested: 1},
			expectedReason:  ReasonOutOfStock,
			expectedMessage: "Out of stock.",
		},
		{
			name:            "partial stock",
			err:             &OutOfStockError{ItemID: 3, Available: 1, Requested: 2},
			expectedReason:  ReasonOutOfStock,
			expectedMessage: "Only 1 left in stock, 2 requested.",
		},
		{
			name:            "insufficient funds carries the shortfall",
			err:             fmt.Errorf("purchase: %w", &InsufficientFundsError{Required: 80, Balance: 30}),
			expectedReason:  ReasonInsufficientFunds,
			expectedMessage: "Not enough coins: 80 required, you have 30 (50 short).",
		},
		{
			name:            "expired coupon",
			err:             &CouponExpiredError{Code: "SPRING"},
			expectedReason:  ReasonCouponExpired,
			expectedMessage: "Coupon SPRING has expired.",
		},
		{
			name:            "unknown coupon",
			err:             &InvalidCouponError{Code: "NOPE"},
			expectedReason:  ReasonInvalidCoupon,
			expectedMessage: "Coupon NOPE is not valid.",
		},
		{
			name:            "empty cart",
			err:             &EmptyCartError{UserID: 1},
			expectedReason:  ReasonEmptyCart,
			expectedMessage: "Your cart is empty.",
		},
		{
			name:              "cart changed",
			err:               &CartChangedError{UserID: 1},
			expectedReason:    ReasonCartChanged,
			expectedMessage:   "Your cart changed while checking out, please try again.",
			expectedRetryable: true,
		},
		{
			name:              "store failure hides details",
			err:               &StoreUnavailableError{Op: "commit purchase", Err: assert.AnError},
			expectedReason:    ReasonStoreUnavailable,
			expectedMessage:   "The shop is temporarily unavailable, please try again.",
			expectedRetryable: true,
		},
		{
			name:              "unknown error",
			err:               assert.AnError,
			expectedReason:    ReasonStoreUnavailable,
			expectedMessage:   "The shop is temporarily unavailable, please try again.",
			expectedRetryable: true,
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rejection := RejectionOf(tt.err)

			assert.Equal(t, tt.expectedReason, rejection.Reason)
			assert.Equal(t, tt.expectedMessage, rejection.Message)
			assert.Equal(t, tt.expectedRetryable, rejection.Retryable)
		})
	}
}

func TestErrors_IsByType(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("checkout: %w", &OutOfStockError{ItemID: 1})
	assert.ErrorIs(t, wrapped, &OutOfStockError{})
	assert.NotErrorIs(t, wrapped, &InsufficientFundsError{})

	unavailable := &StoreUnavailableError{Op: "get item", Err: assert.AnError}
	assert.ErrorIs(t, unavailable, &StoreUnavailableError{})
	assert.ErrorIs(t, unavailable, assert.AnError)
}

func TestCoupon_IsExpiredAt(t *testing.T) {
	t.Parallel()

	expiresAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	coupon := Coupon{Code: "NEWYEAR", DiscountPercent: 10, ExpiresAt: expiresAt}

	assert.False(t, coupon.IsExpiredAt(expiresAt.Add(-time.Second)))
	assert.False(t, coupon.IsExpiredAt(expiresAt))
	assert.True(t, coupon.IsExpiredAt(expiresAt.Add(time.Second)))
}

func TestNormalizeCouponCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SPRING25", NormalizeCouponCode("  spring25 "))
	assert.Equal(t, "", NormalizeCouponCode("   "))
}
