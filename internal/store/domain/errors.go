package domain

import "fmt"

//region InvalidArgumentsError

type InvalidArgumentsError struct {
	Msg string
}

func (e *InvalidArgumentsError) Error() string {
	return e.Msg
}

func (e *InvalidArgumentsError) Is(target error) bool {
	_, ok := target.(*InvalidArgumentsError)
	return ok
}

//endregion

//region ItemNotFoundError

type ItemNotFoundError struct {
	ItemID int64
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %d not found", e.ItemID)
}

func (e *ItemNotFoundError) Is(target error) bool {
	_, ok := target.(*ItemNotFoundError)
	return ok
}

//endregion

//region CategoryNotFoundError

type CategoryNotFoundError struct {
	Name string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category %q not found", e.Name)
}

func (e *CategoryNotFoundError) Is(target error) bool {
	_, ok := target.(*CategoryNotFoundError)
	return ok
}

//endregion

//region InvalidCouponError

type InvalidCouponError struct {
	Code string
}

func (e *InvalidCouponError) Error() string {
	return fmt.Sprintf("coupon %s does not exist", e.Code)
}

func (e *InvalidCouponError) Is(target error) bool {
	_, ok := target.(*InvalidCouponError)
	return ok
}

//endregion

//region CouponExpiredError

type CouponExpiredError struct {
	Code string
}

func (e *CouponExpiredError) Error() string {
	return fmt.Sprintf("coupon %s has expired", e.Code)
}

func (e *CouponExpiredError) Is(target error) bool {
	_, ok := target.(*CouponExpiredError)
	return ok
}

//endregion

//region OutOfStockError

type OutOfStockError struct {
	ItemID    int64
	Available int64
	Requested int64
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("item %d is out of stock: %d available, %d requested", e.ItemID, e.Available, e.Requested)
}

func (e *OutOfStockError) Is(target error) bool {
	_, ok := target.(*OutOfStockError)
	return ok
}

//endregion

//region InsufficientFundsError

type InsufficientFundsError struct {
	Required int64
	Balance  int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: %d coins required, balance is %d", e.Required, e.Balance)
}

func (e *InsufficientFundsError) Is(target error) bool {
	_, ok := target.(*InsufficientFundsError)
	return ok
}

// Shortfall is how many coins the buyer is missing.
func (e *InsufficientFundsError) Shortfall() int64 {
	if e.Balance >= e.Required {
		return 0
	}
	return e.Required - e.Balance
}

//endregion

//region EmptyCartError

type EmptyCartError struct {
	UserID int64
}

func (e *EmptyCartError) Error() string {
	return fmt.Sprintf("cart of user %d is empty", e.UserID)
}

func (e *EmptyCartError) Is(target error) bool {
	_, ok := target.(*EmptyCartError)
	return ok
}

//endregion

//region CartChangedError

type CartChangedError struct {
	UserID int64
}

func (e *CartChangedError) Error() string {
	return fmt.Sprintf("cart of user %d changed during checkout", e.UserID)
}

func (e *CartChangedError) Is(target error) bool {
	_, ok := target.(*CartChangedError)
	return ok
}

//endregion

//region StoreUnavailableError

type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Is(target error) bool {
	_, ok := target.(*StoreUnavailableError)
	return ok
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

//endregion

//region UndeliverableError

type UndeliverableError struct {
	UserID int64
	Err    error
}

func (e *UndeliverableError) Error() string {
	return fmt.Sprintf("message to user %d is undeliverable: %v", e.UserID, e.Err)
}

func (e *UndeliverableError) Is(target error) bool {
	_, ok := target.(*UndeliverableError)
	return ok
}

func (e *UndeliverableError) Unwrap() error {
	return e.Err
}

//endregion

//region MessageGoneError

type MessageGoneError struct {
	Ref MessageRef
}

func (e *MessageGoneError) Error() string {
	return fmt.Sprintf("message %s is already gone", e.Ref)
}

func (e *MessageGoneError) Is(target error) bool {
	_, ok := target.(*MessageGoneError)
	return ok
}

//endregion

//region TargetGoneError

type TargetGoneError struct {
	Ref CardRef
}

func (e *TargetGoneError) Error() string {
	return fmt.Sprintf("card %s is gone", e.Ref)
}

func (e *TargetGoneError) Is(target error) bool {
	_, ok := target.(*TargetGoneError)
	return ok
}

//endregion
