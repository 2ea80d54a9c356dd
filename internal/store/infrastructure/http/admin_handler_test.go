package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mocks "github.com/Lexv0lk/coin-shop/gen/mocks/http"
	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/application"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

type adminMocks struct {
	catalog *mocks.MockCatalogService
	wallet  *mocks.MockWalletService
	display *mocks.MockDisplayService
}

func newAdminMocks(ctrl *gomock.Controller) adminMocks {
	return adminMocks{
		catalog: mocks.NewMockCatalogService(ctrl),
		wallet:  mocks.NewMockWalletService(ctrl),
		display: mocks.NewMockDisplayService(ctrl),
	}
}

func TestAdminHandler(t *testing.T) {
	t.Parallel()

	expiresAt := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name           string
		requestBody    any
		params         gin.Params
		expectedStatus int

		prepareFn func(m adminMocks)
		callFn    func(h *AdminHandler, c *gin.Context)
		checkFn   func(t *testing.T, recorder *httptest.ResponseRecorder)
	}

	tests := []testCase{
		{
			name:           "add item by category name",
			requestBody:    addItemRequestBody{Name: "Nitro", Price: 100, Stock: 3, Category: "Boosts", Payload: "link"},
			expectedStatus: http.StatusCreated,

			prepareFn: func(m adminMocks) {
				m.catalog.EXPECT().AddItem(gomock.Any(), application.ProductDraft{
					Name:         "Nitro",
					Price:        100,
					Stock:        3,
					CategoryName: "Boosts",
					Payload:      "link",
				}).Return(nitro, nil)
			},
			callFn: (*AdminHandler).AddItem,
		},
		{
			name:           "add item to unknown category",
			requestBody:    addItemRequestBody{Name: "Nitro", Price: 100, Category: "Hats", Payload: "link"},
			expectedStatus: http.StatusNotFound,

			prepareFn: func(m adminMocks) {
				m.catalog.EXPECT().AddItem(gomock.Any(), gomock.Any()).Return(domain.Item{}, &domain.CategoryNotFoundError{Name: "Hats"})
			},
			callFn: (*AdminHandler).AddItem,
			checkFn: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				assert.Contains(t, recorder.Body.String(), "Hats")
			},
		},
		{
			name:           "item with zero price is rejected before the catalog",
			requestBody:    map[string]any{"name": "Nitro", "price": 0, "category": "Boosts", "payload": "link"},
			expectedStatus: http.StatusBadRequest,

			prepareFn: func(m adminMocks) {},
			callFn:    (*AdminHandler).AddItem,
		},
		{
			name:           "add category",
			requestBody:    addCategoryRequestBody{Name: "Boosts"},
			expectedStatus: http.StatusOK,

			prepareFn: func(m adminMocks) {
				m.catalog.EXPECT().AddCategory(gomock.Any(), "Boosts").Return(domain.Category{ID: 1, Name: "Boosts"}, nil)
			},
			callFn: (*AdminHandler).AddCategory,
		},
		{
			name:           "restock",
			requestBody:    restockRequestBody{Quantity: 5},
			params:         gin.Params{{Key: ItemIDKey, Value: "7"}},
			expectedStatus: http.StatusOK,

			prepareFn: func(m adminMocks) {
				m.catalog.EXPECT().Restock(gomock.Any(), int64(7), int64(5)).Return(nil)
			},
			callFn: (*AdminHandler).Restock,
		},
		{
			name:           "save coupon",
			requestBody:    couponRequestBody{Code: "save20", DiscountPercent: 20, ExpiresAt: expiresAt},
			expectedStatus: http.StatusOK,

			prepareFn: func(m adminMocks) {
				m.catalog.EXPECT().SaveCoupon(gomock.Any(), "save20", int64(20), gomock.Any()).
					Return(domain.Coupon{Code: "SAVE20", DiscountPercent: 20, ExpiresAt: expiresAt}, nil)
			},
			callFn: (*AdminHandler).SaveCoupon,
			checkFn: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				assert.Contains(t, recorder.Body.String(), "SAVE20")
			},
		},
		{
			name:           "coupon over one hundred percent",
			requestBody:    couponRequestBody{Code: "x", DiscountPercent: 150, ExpiresAt: expiresAt},
			expectedStatus: http.StatusBadRequest,

			prepareFn: func(m adminMocks) {},
			callFn:    (*AdminHandler).SaveCoupon,
		},
		{
			name:           "credit coins",
			requestBody:    creditRequestBody{UserID: 42, Amount: 500},
			expectedStatus: http.StatusOK,

			prepareFn: func(m adminMocks) {
				m.wallet.EXPECT().Credit(gomock.Any(), int64(42), int64(500)).Return(nil)
			},
			callFn: (*AdminHandler).Credit,
		},
		{
			name:           "watch card",
			requestBody:    watchRequestBody{ItemID: 7, CardRef: "card-1"},
			expectedStatus: http.StatusAccepted,

			prepareFn: func(m adminMocks) {
				m.catalog.EXPECT().GetItem(gomock.Any(), int64(7)).Return(nitro, nil)
				m.display.EXPECT().Watch(int64(7), domain.CardRef("card-1")).Return(nil)
			},
			callFn: (*AdminHandler).WatchCard,
		},
		{
			name:           "watch card of unknown item",
			requestBody:    watchRequestBody{ItemID: 99, CardRef: "card-1"},
			expectedStatus: http.StatusNotFound,

			prepareFn: func(m adminMocks) {
				m.catalog.EXPECT().GetItem(gomock.Any(), int64(99)).Return(domain.Item{}, &domain.ItemNotFoundError{ItemID: 99})
			},
			callFn: (*AdminHandler).WatchCard,
		},
		{
			name:           "unwatch card",
			params:         gin.Params{{Key: CardRefKey, Value: "card-1"}},
			expectedStatus: http.StatusNoContent,

			prepareFn: func(m adminMocks) {
				m.display.EXPECT().Unwatch(domain.CardRef("card-1")).Return(true)
			},
			callFn: (*AdminHandler).UnwatchCard,
		},
		{
			name:           "unwatch unknown card",
			params:         gin.Params{{Key: CardRefKey, Value: "card-9"}},
			expectedStatus: http.StatusNotFound,

			prepareFn: func(m adminMocks) {
				m.display.EXPECT().Unwatch(domain.CardRef("card-9")).Return(false)
			},
			callFn: (*AdminHandler).UnwatchCard,
		},
	}

	gin.SetMode(gin.TestMode)

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			m := newAdminMocks(ctrl)
			tt.prepareFn(m)
			handler := NewAdminHandler(m.catalog, m.wallet, m.display, logging.NewNopLogger())

			c, writer := newTestContext(http.MethodPost, "/", tt.requestBody)
			c.Params = tt.params

			tt.callFn(handler, c)

			assert.Equal(t, tt.expectedStatus, c.Writer.Status())
			if tt.checkFn != nil {
				tt.checkFn(t, writer)
			}
		})
	}
}
