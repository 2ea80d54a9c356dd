package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/fulfillment"
	"github.com/gin-gonic/gin"
)

const (
	ItemIDKey = "id"

	categoryQueryKey = "category"
	couponQueryKey   = "coupon"
)

type buyRequestBody struct {
	Coupon string `json:"coupon"`
}

type ShopHandler struct {
	catalog   CatalogService
	purchases PurchaseService
	deliverer Deliverer
	logger    logging.Logger
}

func NewShopHandler(catalog CatalogService, purchases PurchaseService, deliverer Deliverer, logger logging.Logger) *ShopHandler {
	return &ShopHandler{
		catalog:   catalog,
		purchases: purchases,
		deliverer: deliverer,
		logger:    logger,
	}
}

func (h *ShopHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": toCategoryResponses(categories)})
}

func (h *ShopHandler) ListItems(c *gin.Context) {
	items, err := h.catalog.ListItems(c.Request.Context(), c.Query(categoryQueryKey))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": toItemResponses(items)})
}

func (h *ShopHandler) GetItem(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	item, err := h.catalog.GetItem(c.Request.Context(), itemID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *ShopHandler) Quote(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	quote, err := h.purchases.Quote(c.Request.Context(), userID(c), itemID, c.Query(couponQueryKey))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, quoteResponse{
		Item:            toItemResponse(quote.Item),
		CouponCode:      quote.CouponCode,
		DiscountPercent: quote.DiscountPercent,
		TaxPercent:      quote.TaxPercent,
		FinalPrice:      quote.FinalPrice,
		Balance:         quote.Balance,
		Affordable:      quote.Balance >= quote.FinalPrice,
	})
}

// Buy commits the purchase and then hands the payload to the buyer over a private message.
// A failed delivery is reported in the response but the purchase stands.
func (h *ShopHandler) Buy(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	var body buyRequestBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c)
			return
		}
	}

	buyer := userID(c)
	payload, err := h.purchases.Purchase(c.Request.Context(), buyer, itemID, body.Coupon)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	delivered := h.deliverer.Deliver(context.WithoutCancel(c.Request.Context()), buyer, payload)

	c.JSON(http.StatusOK, purchaseResponse{
		OrderID:   payload.OrderID.String(),
		ItemName:  payload.ItemName,
		PricePaid: payload.PricePaid,
		Delivered: delivered,
		Status:    fulfillment.DeliveryStatus(delivered),
	})
}

func itemIDParam(c *gin.Context) (int64, bool) {
	itemID, err := strconv.ParseInt(c.Param(ItemIDKey), 10, 64)
	if err != nil || itemID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid item id"})
		return 0, false
	}

	return itemID, true
}
