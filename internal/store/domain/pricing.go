package domain

// Upper bounds that keep every intermediate product in Price inside int64.
const (
	MaxItemPrice  int64 = 1_000_000_000_000
	MaxTaxPercent int64 = 1_000
)

// Price computes the charge for one unit. Discount and tax are both taken from the base
// price and both truncated toward zero.
func Price(base, discountPercent, taxPercent int64) int64 {
	discountPercent = min(max(discountPercent, 0), 100)
	taxPercent = min(max(taxPercent, 0), MaxTaxPercent)

	discountAmount := base * discountPercent / 100
	taxAmount := base * taxPercent / 100

	return base - discountAmount + taxAmount
}

// CartTotal sums price times quantity over all lines. Coupons and tax do not apply to carts.
func CartTotal(entries []CartEntry) int64 {
	var total int64
	for _, entry := range entries {
		total += entry.Subtotal()
	}

	return total
}
