package http

import (
	"net/http"

	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/gin-gonic/gin"
)

type addLineRequestBody struct {
	ItemID int64 `json:"item_id" binding:"required,gt=0"`
}

type CartHandler struct {
	cart   CartService
	logger logging.Logger
}

func NewCartHandler(cart CartService, logger logging.Logger) *CartHandler {
	return &CartHandler{
		cart:   cart,
		logger: logger,
	}
}

func (h *CartHandler) AddLine(c *gin.Context) {
	var body addLineRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c)
		return
	}

	line, err := h.cart.AddLine(c.Request.Context(), userID(c), body.ItemID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item_id": line.ItemID, "quantity": line.Quantity})
}

func (h *CartHandler) ListCart(c *gin.Context) {
	entries, err := h.cart.ListCart(c.Request.Context(), userID(c))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(entries))
}

func (h *CartHandler) Checkout(c *gin.Context) {
	orders, err := h.cart.Checkout(c.Request.Context(), userID(c))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": toOrderResponses(orders)})
}
