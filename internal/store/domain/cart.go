package domain

import (
	"context"
	"fmt"
	"strings"
)

//go:generate mockgen -source=cart.go -destination=../../../gen/mocks/store/cart.go -package=mocks

type CartRepository interface {
	AddLine(ctx context.Context, userID int64, itemID int64) (CartLine, error)
	ListCart(ctx context.Context, userID int64) ([]CartEntry, error)
}

type CartLine struct {
	UserID   int64
	ItemID   int64
	Quantity int64
}

type CartEntry struct {
	Item      Item
	UnitPrice int64
	Quantity  int64
}

func (e CartEntry) Subtotal() int64 {
	return e.UnitPrice * e.Quantity
}

// SummarizeCart builds the item name snapshot stored on a checkout order.
func SummarizeCart(entries []CartEntry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, fmt.Sprintf("%s x%d", entry.Item.Name, entry.Quantity))
	}

	return strings.Join(parts, ", ")
}

// CartMatches reports whether the cart read under lock still holds the lines a checkout was priced from.
func CartMatches(locked []CartEntry, quoted []CartEntry) bool {
	if len(locked) != len(quoted) {
		return false
	}

	want := make(map[int64]CartEntry, len(quoted))
	for _, entry := range quoted {
		want[entry.Item.ID] = entry
	}

	for _, entry := range locked {
		q, ok := want[entry.Item.ID]
		if !ok || q.Quantity != entry.Quantity || q.UnitPrice != entry.UnitPrice {
			return false
		}
	}

	return true
}
