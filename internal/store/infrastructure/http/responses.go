package http

import (
	"time"

	"github.com/Lexv0lk/coin-shop/internal/store/domain"
)

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type itemResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Stock    int64  `json:"stock"`
	ImageRef string `json:"image_ref,omitempty"`
	Category string `json:"category"`
}

type quoteResponse struct {
	Item            itemResponse `json:"item"`
	CouponCode      string       `json:"coupon_code,omitempty"`
	DiscountPercent int64        `json:"discount_percent"`
	TaxPercent      int64        `json:"tax_percent"`
	FinalPrice      int64        `json:"final_price"`
	Balance         int64        `json:"balance"`
	Affordable      bool         `json:"affordable"`
}

type purchaseResponse struct {
	OrderID   string `json:"order_id"`
	ItemName  string `json:"item_name"`
	PricePaid int64  `json:"price_paid"`
	Delivered bool   `json:"delivered"`
	Status    string `json:"status"`
}

type cartEntryResponse struct {
	ItemID    int64  `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type cartResponse struct {
	Lines []cartEntryResponse `json:"lines"`
	Total int64               `json:"total"`
}

type orderResponse struct {
	ID         string    `json:"id"`
	ItemName   string    `json:"item_name"`
	Total      int64     `json:"total"`
	CouponCode string    `json:"coupon_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type walletResponse struct {
	UserID  int64           `json:"user_id"`
	Balance int64           `json:"balance"`
	Orders  []orderResponse `json:"orders"`
}

func toCategoryResponses(categories []domain.Category) []categoryResponse {
	res := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		res = append(res, categoryResponse{ID: category.ID, Name: category.Name})
	}

	return res
}

func toItemResponse(item domain.Item) itemResponse {
	return itemResponse{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Stock:    item.Stock,
		ImageRef: item.ImageRef,
		Category: item.CategoryName,
	}
}

func toItemResponses(items []domain.Item) []itemResponse {
	res := make([]itemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, toItemResponse(item))
	}

	return res
}

func toCartResponse(entries []domain.CartEntry) cartResponse {
	res := cartResponse{Lines: make([]cartEntryResponse, 0, len(entries))}
	for _, entry := range entries {
		res.Lines = append(res.Lines, cartEntryResponse{
			ItemID:    entry.Item.ID,
			Name:      entry.Item.Name,
			UnitPrice: entry.UnitPrice,
			Quantity:  entry.Quantity,
			Subtotal:  entry.Subtotal(),
		})
	}
	res.Total = domain.CartTotal(entries)

	return res
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	res := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		res = append(res, orderResponse{
			ID:         order.ID.String(),
			ItemName:   order.ItemName,
			Total:      order.Total,
			CouponCode: order.CouponCode,
			CreatedAt:  order.CreatedAt,
		})
	}

	return res
}
