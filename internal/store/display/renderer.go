package display

import (
	"fmt"

	"github.com/Lexv0lk/coin-shop/internal/store/domain"
)

type Renderer interface {
	Render(item domain.Item) domain.Card
}

// CardRenderer builds the public shop card of an item.
type CardRenderer struct{}

func NewCardRenderer() *CardRenderer {
	return &CardRenderer{}
}

func (cr *CardRenderer) Render(item domain.Item) domain.Card {
	return domain.Card{
		Title:         item.Name,
		Description:   describe(item),
		Price:         item.Price,
		Stock:         item.Stock,
		Image:         item.ImageRef,
		Footer:        fmt.Sprintf("Item ID: %d", item.ID),
		ActionEnabled: item.InStock(),
	}
}

func describe(item domain.Item) string {
	action := "Click BUY to receive your private link in DM."
	if !item.InStock() {
		action = "Sold out. Check back after a restock."
	}

	return fmt.Sprintf("Category: %s\nPrice: %d coins\nStock: %d\n\n%s",
		item.CategoryName, item.Price, item.Stock, action)
}
