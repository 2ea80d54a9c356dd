package http

import (
	"net/http"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/Lexv0lk/coin-shop/internal/store/application"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/gin-gonic/gin"
)

const CardRefKey = "ref"

type addCategoryRequestBody struct {
	Name string `json:"name" binding:"required"`
}

type addItemRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Price    int64  `json:"price" binding:"required,gt=0"`
	Stock    int64  `json:"stock" binding:"gte=0"`
	ImageRef string `json:"image_ref"`
	Category string `json:"category" binding:"required"`
	Payload  string `json:"payload" binding:"required"`
}

type restockRequestBody struct {
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
}

type couponRequestBody struct {
	Code            string    `json:"code" binding:"required"`
	DiscountPercent int64     `json:"discount_percent" binding:"gte=0,lte=100"`
	ExpiresAt       time.Time `json:"expires_at"`
}

type creditRequestBody struct {
	UserID int64 `json:"user_id" binding:"required"`
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

type watchRequestBody struct {
	ItemID  int64  `json:"item_id" binding:"required,gt=0"`
	CardRef string `json:"card_ref" binding:"required"`
}

type AdminHandler struct {
	catalog CatalogService
	wallet  WalletService
	display DisplayService
	logger  logging.Logger
}

func NewAdminHandler(catalog CatalogService, wallet WalletService, display DisplayService, logger logging.Logger) *AdminHandler {
	return &AdminHandler{
		catalog: catalog,
		wallet:  wallet,
		display: display,
		logger:  logger,
	}
}

func (h *AdminHandler) AddCategory(c *gin.Context) {
	var body addCategoryRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c)
		return
	}

	category, err := h.catalog.AddCategory(c.Request.Context(), body.Name)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, categoryResponse{ID: category.ID, Name: category.Name})
}

func (h *AdminHandler) AddItem(c *gin.Context) {
	var body addItemRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c)
		return
	}

	item, err := h.catalog.AddItem(c.Request.Context(), application.ProductDraft{
		Name:         body.Name,
		Price:        body.Price,
		Stock:        body.Stock,
		ImageRef:     body.ImageRef,
		CategoryName: body.Category,
		Payload:      body.Payload,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toItemResponse(item))
}

func (h *AdminHandler) Restock(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	var body restockRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c)
		return
	}

	if err := h.catalog.Restock(c.Request.Context(), itemID, body.Quantity); err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *AdminHandler) SaveCoupon(c *gin.Context) {
	var body couponRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c)
		return
	}

	coupon, err := h.catalog.SaveCoupon(c.Request.Context(), body.Code, body.DiscountPercent, body.ExpiresAt)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":             coupon.Code,
		"discount_percent": coupon.DiscountPercent,
		"expires_at":       coupon.ExpiresAt,
	})
}

func (h *AdminHandler) Credit(c *gin.Context) {
	var body creditRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c)
		return
	}

	if err := h.wallet.Credit(c.Request.Context(), body.UserID, body.Amount); err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *AdminHandler) WatchCard(c *gin.Context) {
	var body watchRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c)
		return
	}

	if _, err := h.catalog.GetItem(c.Request.Context(), body.ItemID); err != nil {
		handleError(c, h.logger, err)
		return
	}

	if err := h.display.Watch(body.ItemID, domain.CardRef(body.CardRef)); err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.Status(http.StatusAccepted)
}

func (h *AdminHandler) UnwatchCard(c *gin.Context) {
	if !h.display.Unwatch(domain.CardRef(c.Param(CardRefKey))) {
		c.JSON(http.StatusNotFound, gin.H{"errors": "card is not watched"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) ListCards(c *gin.Context) {
	refs := h.display.Watched()

	cards := make([]string, 0, len(refs))
	for _, ref := range refs {
		cards = append(cards, string(ref))
	}

	c.JSON(http.StatusOK, gin.H{"cards": cards})
}
