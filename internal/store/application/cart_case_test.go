package application

import (
	"context"
	"testing"

	storemocks "github.com/Lexv0lk/coin-shop/gen/mocks/store"
	"github.com/Lexv0lk/coin-shop/internal/pkg/clock"
	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartCase_Checkout(t *testing.T) {
	t.Parallel()

	type deps struct {
		items     *storemocks.MockItemReader
		cart      *storemocks.MockCartRepository
		ledger    *storemocks.MockLedgerRepository
		committer *storemocks.MockPurchaseCommitter
	}

	type testCase struct {
		name   string
		userID int64

		prepareFn func(t *testing.T, d *deps)

		expectedOrders []domain.Order
		expectedErr    error
	}

	badge := domain.Item{ID: 1, Name: "Badge", Price: 40, Stock: 5}
	frame := domain.Item{ID: 2, Name: "Frame", Price: 50, Stock: 1}

	cartOf := func() []domain.CartEntry {
		return []domain.CartEntry{
			{Item: badge, UnitPrice: 40, Quantity: 2},
			{Item: frame, UnitPrice: 50, Quantity: 1},
		}
	}

	tests := []testCase{
		{
			name:   "whole cart is bought at list price",
			userID: 5,
			prepareFn: func(t *testing.T, d *deps) {
				d.cart.EXPECT().ListCart(gomock.Any(), int64(5)).Return(cartOf(), nil)
				d.ledger.EXPECT().GetBalance(gomock.Any(), int64(5)).Return(int64(130), nil)
				d.committer.EXPECT().CommitCheckout(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, commit domain.CheckoutCommit) (domain.Order, error) {
						assert.Equal(t, int64(5), commit.UserID)
						assert.Equal(t, int64(130), commit.Total)
						assert.Equal(t, "Badge x2, Frame x1", commit.Summary)
						assert.Equal(t, cartOf(), commit.Lines)
						order := commit.Order()
						order.ID = uuid.Nil
						return order, nil
					})
			},
			expectedOrders: []domain.Order{
				{UserID: 5, ItemName: "Badge x2, Frame x1", Total: 130, CreatedAt: purchaseNow},
			},
		},
		{
			name:   "empty cart",
			userID: 5,
			prepareFn: func(t *testing.T, d *deps) {
				d.cart.EXPECT().ListCart(gomock.Any(), int64(5)).Return(nil, nil)
			},
			expectedErr: &domain.EmptyCartError{},
		},
		{
			name:   "a single short line rejects the whole checkout",
			userID: 5,
			prepareFn: func(t *testing.T, d *deps) {
				entries := cartOf()
				entries[1].Quantity = 2
				d.cart.EXPECT().ListCart(gomock.Any(), int64(5)).Return(entries, nil)
			},
			expectedErr: &domain.OutOfStockError{},
		},
		{
			name:   "aggregate total exceeds balance",
			userID: 5,
			prepareFn: func(t *testing.T, d *deps) {
				d.cart.EXPECT().ListCart(gomock.Any(), int64(5)).Return(cartOf(), nil)
				d.ledger.EXPECT().GetBalance(gomock.Any(), int64(5)).Return(int64(129), nil)
			},
			expectedErr: &domain.InsufficientFundsError{},
		},
		{
			name:   "cart changed under the lock",
			userID: 5,
			prepareFn: func(t *testing.T, d *deps) {
				d.cart.EXPECT().ListCart(gomock.Any(), int64(5)).Return(cartOf(), nil)
				d.ledger.EXPECT().GetBalance(gomock.Any(), int64(5)).Return(int64(500), nil)
				d.committer.EXPECT().CommitCheckout(gomock.Any(), gomock.Any()).
					Return(domain.Order{}, &domain.CartChangedError{UserID: 5})
			},
			expectedErr: &domain.CartChangedError{},
		},
		{
			name:   "cart listing fails",
			userID: 5,
			prepareFn: func(t *testing.T, d *deps) {
				d.cart.EXPECT().ListCart(gomock.Any(), int64(5)).Return(nil, assert.AnError)
			},
			expectedErr: assert.AnError,
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			d := &deps{
				items:     storemocks.NewMockItemReader(ctrl),
				cart:      storemocks.NewMockCartRepository(ctrl),
				ledger:    storemocks.NewMockLedgerRepository(ctrl),
				committer: storemocks.NewMockPurchaseCommitter(ctrl),
			}
			tt.prepareFn(t, d)

			cc := NewCartCase(d.items, d.cart, d.ledger, d.committer, clock.NewMockClock(purchaseNow), logging.NewNopLogger())

			orders, err := cc.Checkout(testContext(t), tt.userID)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, orders)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedOrders, orders)
		})
	}
}

// Checkout orders carry no coupon and are charged list price.
func TestCartCase_CheckoutIgnoresCouponsAndTax(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	cart := storemocks.NewMockCartRepository(ctrl)
	ledger := storemocks.NewMockLedgerRepository(ctrl)
	committer := storemocks.NewMockPurchaseCommitter(ctrl)

	cart.EXPECT().ListCart(gomock.Any(), int64(1)).
		Return([]domain.CartEntry{{Item: domain.Item{ID: 1, Name: "Role", Price: 100, Stock: 1}, UnitPrice: 100, Quantity: 1}}, nil)
	ledger.EXPECT().GetBalance(gomock.Any(), int64(1)).Return(int64(100), nil)
	committer.EXPECT().CommitCheckout(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, commit domain.CheckoutCommit) (domain.Order, error) {
			return commit.Order(), nil
		})

	cc := NewCartCase(storemocks.NewMockItemReader(ctrl), cart, ledger, committer, clock.NewMockClock(purchaseNow), logging.NewNopLogger())

	orders, err := cc.Checkout(testContext(t), 1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(100), orders[0].Total)
	assert.Empty(t, orders[0].CouponCode)
}

func TestCartCase_AddLine(t *testing.T) {
	t.Parallel()

	t.Run("unknown item is rejected", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		items := storemocks.NewMockItemReader(ctrl)
		items.EXPECT().GetItem(gomock.Any(), int64(9)).Return(domain.Item{}, &domain.ItemNotFoundError{ItemID: 9})

		cc := NewCartCase(items, storemocks.NewMockCartRepository(ctrl), storemocks.NewMockLedgerRepository(ctrl),
			storemocks.NewMockPurchaseCommitter(ctrl), clock.NewMockClock(purchaseNow), logging.NewNopLogger())

		_, err := cc.AddLine(testContext(t), 1, 9)
		assert.ErrorIs(t, err, &domain.ItemNotFoundError{})
	})

	t.Run("existing item is added", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		items := storemocks.NewMockItemReader(ctrl)
		cart := storemocks.NewMockCartRepository(ctrl)
		items.EXPECT().GetItem(gomock.Any(), int64(2)).Return(domain.Item{ID: 2, Name: "Frame", Price: 50}, nil)
		cart.EXPECT().AddLine(gomock.Any(), int64(1), int64(2)).Return(domain.CartLine{UserID: 1, ItemID: 2, Quantity: 3}, nil)

		cc := NewCartCase(items, cart, storemocks.NewMockLedgerRepository(ctrl),
			storemocks.NewMockPurchaseCommitter(ctrl), clock.NewMockClock(purchaseNow), logging.NewNopLogger())

		line, err := cc.AddLine(testContext(t), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), line.Quantity)
	})
}
