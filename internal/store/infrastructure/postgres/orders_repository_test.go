package postgres

import (
	"testing"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdersRepository_FetchUserOrders(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	orderID := uuid.MustParse("0b9e3c44-6a43-4b55-9f0e-2f4c8a9d1e01")

	type testCase struct {
		name   string
		userID int64

		prepareFn func(t *testing.T, mock pgxmock.PgxPoolIface)

		expectedOrders []domain.Order
		expectedErr    error
	}

	tests := []testCase{
		{
			name:   "orders are returned",
			userID: 1,
			prepareFn: func(t *testing.T, mock pgxmock.PgxPoolIface) {
				t.Helper()
				mock.ExpectQuery("SELECT id, user_id, item_name").
					WithArgs(int64(1)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "item_name", "total", "coupon_code", "created_at"}).
						AddRow(orderID, int64(1), "Nitro", int64(75), "SPRING25", createdAt))
			},
			expectedOrders: []domain.Order{
				{ID: orderID, UserID: 1, ItemName: "Nitro", Total: 75, CouponCode: "SPRING25", CreatedAt: createdAt},
			},
		},
		{
			name:   "no orders",
			userID: 2,
			prepareFn: func(t *testing.T, mock pgxmock.PgxPoolIface) {
				t.Helper()
				mock.ExpectQuery("SELECT id, user_id, item_name").
					WithArgs(int64(2)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "item_name", "total", "coupon_code", "created_at"}))
			},
			expectedOrders: []domain.Order{},
		},
		{
			name:   "query error",
			userID: 1,
			prepareFn: func(t *testing.T, mock pgxmock.PgxPoolIface) {
				t.Helper()
				mock.ExpectQuery("SELECT id, user_id, item_name").
					WithArgs(int64(1)).
					WillReturnError(assert.AnError)
			},
			expectedErr: &domain.StoreUnavailableError{},
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.prepareFn(t, mock)

			orders, err := NewOrdersRepository(mock, time.Second).FetchUserOrders(testContext(t), tt.userID)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedOrders, orders)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
