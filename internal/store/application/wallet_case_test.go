package application

import (
	"testing"

	storemocks "github.com/Lexv0lk/coin-shop/gen/mocks/store"
	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletCase_GetProfile(t *testing.T) {
	t.Parallel()

	type deps struct {
		ledger *storemocks.MockLedgerRepository
		orders *storemocks.MockOrdersRepository
	}

	type testCase struct {
		name   string
		userID int64

		prepareFn func(t *testing.T, d *deps)

		expectedProfile domain.WalletProfile
		expectedErr     error
	}

	history := []domain.Order{{ID: uuid.MustParse("6f1c1a56-4bb3-4c1e-9d4c-6a1b1f3a2e10"), UserID: 1, ItemName: "Nitro", Total: 80}}

	tests := []testCase{
		{
			name:   "balance and history",
			userID: 1,
			prepareFn: func(t *testing.T, d *deps) {
				d.ledger.EXPECT().GetBalance(gomock.Any(), int64(1)).Return(int64(20), nil)
				d.orders.EXPECT().FetchUserOrders(gomock.Any(), int64(1)).Return(history, nil)
			},
			expectedProfile: domain.WalletProfile{UserID: 1, Balance: 20, Orders: history},
		},
		{
			name:   "unseen user has an empty wallet",
			userID: 2,
			prepareFn: func(t *testing.T, d *deps) {
				d.ledger.EXPECT().GetBalance(gomock.Any(), int64(2)).Return(int64(0), nil)
				d.orders.EXPECT().FetchUserOrders(gomock.Any(), int64(2)).Return(nil, nil)
			},
			expectedProfile: domain.WalletProfile{UserID: 2},
		},
		{
			name:   "history fails",
			userID: 1,
			prepareFn: func(t *testing.T, d *deps) {
				d.ledger.EXPECT().GetBalance(gomock.Any(), int64(1)).Return(int64(20), nil).AnyTimes()
				d.orders.EXPECT().FetchUserOrders(gomock.Any(), int64(1)).Return(nil, assert.AnError)
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
				ledger: storemocks.NewMockLedgerRepository(ctrl),
				orders: storemocks.NewMockOrdersRepository(ctrl),
			}
			tt.prepareFn(t, d)

			wc := NewWalletCase(d.ledger, d.orders, logging.NewNopLogger())
			profile, err := wc.GetProfile(testContext(t), tt.userID)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedProfile, profile)
		})
	}
}

func TestWalletCase_CreditAndDebit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ledger := storemocks.NewMockLedgerRepository(ctrl)
	ledger.EXPECT().Credit(gomock.Any(), int64(1), int64(50)).Return(nil)
	ledger.EXPECT().Debit(gomock.Any(), int64(1), int64(70)).Return(&domain.InsufficientFundsError{Required: 70, Balance: 50})

	wc := NewWalletCase(ledger, storemocks.NewMockOrdersRepository(ctrl), logging.NewNopLogger())

	require.NoError(t, wc.Credit(testContext(t), 1, 50))
	assert.ErrorIs(t, wc.Debit(testContext(t), 1, 70), &domain.InsufficientFundsError{})
	assert.ErrorIs(t, wc.Credit(testContext(t), 1, 0), &domain.InvalidArgumentsError{})
	assert.ErrorIs(t, wc.Debit(testContext(t), 1, -5), &domain.InvalidArgumentsError{})
}
