package domain

import (
	"errors"
	"fmt"
)

type RejectionReason string

const (
	ReasonItemNotFound      RejectionReason = "item_not_found"
	ReasonCategoryNotFound  RejectionReason = "category_not_found"
	ReasonOutOfStock        RejectionReason = "out_of_stock"
	ReasonInsufficientFunds RejectionReason = "insufficient_funds"
	ReasonInvalidCoupon     RejectionReason = "invalid_coupon"
	ReasonCouponExpired     RejectionReason = "coupon_expired"
	ReasonEmptyCart         RejectionReason = "empty_cart"
	ReasonCartChanged       RejectionReason = "cart_changed"
	ReasonInvalidArguments  RejectionReason = "invalid_arguments"
	ReasonStoreUnavailable  RejectionReason = "store_unavailable"
)

// Rejection is what the UI layer renders for a failed purchase or checkout.
type Rejection struct {
	Reason    RejectionReason
	Message   string
	Retryable bool
}

// RejectionOf maps an error returned by the order or cart engines to a rejection.
// Errors it does not recognise are reported as an unavailable store with a generic message.
func RejectionOf(err error) Rejection {
	var (
		itemNotFound     *ItemNotFoundError
		categoryNotFound *CategoryNotFoundError
		outOfStock       *OutOfStockError
		insufficient     *InsufficientFundsError
		invalidCoupon    *InvalidCouponError
		couponExpired    *CouponExpiredError
		emptyCart        *EmptyCartError
		cartChanged      *CartChangedError
		invalidArgs      *InvalidArgumentsError
	)

	switch {
	case errors.As(err, &itemNotFound):
		return Rejection{Reason: ReasonItemNotFound, Message: "Item not found."}
	case errors.As(err, &categoryNotFound):
		return Rejection{Reason: ReasonCategoryNotFound, Message: fmt.Sprintf("Category %q not found.", categoryNotFound.Name)}
	case errors.As(err, &outOfStock):
		if outOfStock.Available <= 0 {
			return Rejection{Reason: ReasonOutOfStock, Message: "Out of stock."}
		}
		return Rejection{
			Reason:  ReasonOutOfStock,
			Message: fmt.Sprintf("Only %d left in stock, %d requested.", outOfStock.Available, outOfStock.Requested),
		}
	case errors.As(err, &insufficient):
		return Rejection{
			Reason: ReasonInsufficientFunds,
			Message: fmt.Sprintf("Not enough coins: %d required, you have %d (%d short).",
				insufficient.Required, insufficient.Balance, insufficient.Shortfall()),
		}
	case errors.As(err, &invalidCoupon):
		return Rejection{Reason: ReasonInvalidCoupon, Message: fmt.Sprintf("Coupon %s is not valid.", invalidCoupon.Code)}
	case errors.As(err, &couponExpired):
		return Rejection{Reason: ReasonCouponExpired, Message: fmt.Sprintf("Coupon %s has expired.", couponExpired.Code)}
	case errors.As(err, &emptyCart):
		return Rejection{Reason: ReasonEmptyCart, Message: "Your cart is empty."}
	case errors.As(err, &cartChanged):
		return Rejection{Reason: ReasonCartChanged, Message: "Your cart changed while checking out, please try again.", Retryable: true}
	case errors.As(err, &invalidArgs):
		return Rejection{Reason: ReasonInvalidArguments, Message: invalidArgs.Msg}
	default:
		return Rejection{Reason: ReasonStoreUnavailable, Message: "The shop is temporarily unavailable, please try again.", Retryable: true}
	}
}
