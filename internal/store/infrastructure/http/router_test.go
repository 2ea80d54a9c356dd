package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	storemocks "github.com/Lexv0lk/coin-shop/gen/mocks/store"
	"github.com/Lexv0lk/coin-shop/internal/pkg/clock"
	"github.com/Lexv0lk/coin-shop/internal/pkg/jwt"
	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/application"
	"github.com/Lexv0lk/coin-shop/internal/store/display"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/Lexv0lk/coin-shop/internal/store/fulfillment"
	"github.com/Lexv0lk/coin-shop/internal/store/infrastructure/memory"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shopServer struct {
	router *gin.Engine
	admin  string
	buyer  string
}

func newShopServer(t *testing.T, transport domain.NotificationTransport, publisher domain.CardPublisher) shopServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logging.NewNopLogger()
	store := memory.New()
	clk := clock.NewRealClock()

	notifier := fulfillment.NewNotifier(transport, 0, logger)
	registry := display.NewRegistry(store, publisher, display.NewCardRenderer(), time.Hour, logger)
	t.Cleanup(registry.Close)
	t.Cleanup(notifier.Close)

	catalogCase := application.NewCatalogCase(store, store, logger)
	purchaseCase := application.NewPurchaseCase(store, store, store, store, clk, 5, logger)
	cartCase := application.NewCartCase(store, store, store, store, clk, logger)
	walletCase := application.NewWalletCase(store, store, logger)

	router := NewRouter(Handlers{
		Shop:   NewShopHandler(catalogCase, purchaseCase, notifier, logger),
		Cart:   NewCartHandler(cartCase, logger),
		Wallet: NewWalletHandler(walletCase, logger),
		Admin:  NewAdminHandler(catalogCase, walletCase, registry, logger),
	}, NewAuthMiddleware(jwt.NewJWTTokenParser(), testSecret, logger), NewUserRateLimiter(100, 100))

	issuer := jwt.NewJWTTokenIssuer()
	admin, err := issuer.IssueToken(testSecret, 1, true, time.Hour)
	require.NoError(t, err)
	buyer, err := issuer.IssueToken(testSecret, testBuyerID, false, time.Hour)
	require.NoError(t, err)

	return shopServer{router: router, admin: admin, buyer: buyer}
}

func (s shopServer) do(t *testing.T, method string, path string, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(authHeaderName, "Bearer "+token)
	}

	writer := httptest.NewRecorder()
	s.router.ServeHTTP(writer, req)

	return writer
}

func TestRouter_PurchaseFlow(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	transport := storemocks.NewMockNotificationTransport(ctrl)
	transport.EXPECT().
		SendPrivate(gomock.Any(), testBuyerID, gomock.Any()).
		DoAndReturn(func(_ any, _ int64, text string) (domain.MessageRef, error) {
			assert.Contains(t, text, "https://example.com/redeem/abc")
			return "dm-1", nil
		})

	server := newShopServer(t, transport, storemocks.NewMockCardPublisher(ctrl))

	res := server.do(t, http.MethodPost, "/api/admin/categories", server.admin, addCategoryRequestBody{Name: "Boosts"})
	require.Equal(t, http.StatusOK, res.Code)

	res = server.do(t, http.MethodPost, "/api/admin/items", server.admin, addItemRequestBody{
		Name: "Nitro", Price: 100, Stock: 1, Category: "Boosts", Payload: "https://example.com/redeem/abc",
	})
	require.Equal(t, http.StatusCreated, res.Code)

	var item itemResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &item))

	res = server.do(t, http.MethodPost, "/api/admin/coupons", server.admin, couponRequestBody{
		Code: "save20", DiscountPercent: 20, ExpiresAt: time.Now().Add(time.Hour),
	})
	require.Equal(t, http.StatusOK, res.Code)

	itemPath := "/api/items/" + jsonNumber(item.ID)

	res = server.do(t, http.MethodPost, itemPath+"/buy", server.buyer, buyRequestBody{Coupon: "save20"})
	assert.Equal(t, http.StatusPaymentRequired, res.Code, "a new account starts with zero coins")

	res = server.do(t, http.MethodPost, "/api/admin/credit", server.admin, creditRequestBody{UserID: testBuyerID, Amount: 100})
	require.Equal(t, http.StatusOK, res.Code)

	res = server.do(t, http.MethodPost, itemPath+"/buy", server.buyer, buyRequestBody{Coupon: "save20"})
	require.Equal(t, http.StatusOK, res.Code)

	var purchase purchaseResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &purchase))
	assert.Equal(t, int64(85), purchase.PricePaid)
	assert.True(t, purchase.Delivered)

	res = server.do(t, http.MethodPost, itemPath+"/buy", server.buyer, nil)
	assert.Equal(t, http.StatusConflict, res.Code, "the only unit is sold")

	res = server.do(t, http.MethodGet, "/api/wallet", server.buyer, nil)
	require.Equal(t, http.StatusOK, res.Code)

	var wallet walletResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &wallet))
	assert.Equal(t, int64(15), wallet.Balance)
	require.Len(t, wallet.Orders, 1)
	assert.Equal(t, "SAVE20", wallet.Orders[0].CouponCode)
}

func TestRouter_CartFlow(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	server := newShopServer(t, storemocks.NewMockNotificationTransport(ctrl), storemocks.NewMockCardPublisher(ctrl))

	require.Equal(t, http.StatusOK, server.do(t, http.MethodPost, "/api/admin/categories", server.admin, addCategoryRequestBody{Name: "Roles"}).Code)
	for _, draft := range []addItemRequestBody{
		{Name: "A", Price: 50, Stock: 5, Category: "Roles", Payload: "a"},
		{Name: "B", Price: 30, Stock: 5, Category: "Roles", Payload: "b"},
	} {
		require.Equal(t, http.StatusCreated, server.do(t, http.MethodPost, "/api/admin/items", server.admin, draft).Code)
	}

	res := server.do(t, http.MethodPost, "/api/cart/checkout", server.buyer, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	for _, itemID := range []int64{1, 1, 2} {
		require.Equal(t, http.StatusOK, server.do(t, http.MethodPost, "/api/cart", server.buyer, addLineRequestBody{ItemID: itemID}).Code)
	}

	require.Equal(t, http.StatusOK, server.do(t, http.MethodPost, "/api/admin/credit", server.admin, creditRequestBody{UserID: testBuyerID, Amount: 129}).Code)

	res = server.do(t, http.MethodPost, "/api/cart/checkout", server.buyer, nil)
	assert.Equal(t, http.StatusPaymentRequired, res.Code)

	require.Equal(t, http.StatusOK, server.do(t, http.MethodPost, "/api/admin/credit", server.admin, creditRequestBody{UserID: testBuyerID, Amount: 1}).Code)

	res = server.do(t, http.MethodPost, "/api/cart/checkout", server.buyer, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"total":130`)

	res = server.do(t, http.MethodGet, "/api/cart", server.buyer, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"total":0`)
}

func TestRouter_Access(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	server := newShopServer(t, storemocks.NewMockNotificationTransport(ctrl), storemocks.NewMockCardPublisher(ctrl))

	assert.Equal(t, http.StatusUnauthorized, server.do(t, http.MethodGet, "/api/items", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, server.do(t, http.MethodGet, "/api/items", "garbage", nil).Code)
	assert.Equal(t, http.StatusOK, server.do(t, http.MethodGet, "/api/items", server.buyer, nil).Code)
	assert.Equal(t, http.StatusForbidden,
		server.do(t, http.MethodPost, "/api/admin/credit", server.buyer, creditRequestBody{UserID: testBuyerID, Amount: 1000}).Code)
}

func jsonNumber(id int64) string {
	encoded, _ := json.Marshal(id)
	return string(encoded)
}
