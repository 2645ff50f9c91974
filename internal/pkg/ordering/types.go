package ordering

import "errors"

var (
	// ErrInsufficientBalance is the distinguishable business rejection for a
	// debit that would push the balance below the provider's floor.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrOrderingClosed rejects placement at or after the meal's cutoff, or
	// for any meal not dated today.
	ErrOrderingClosed = errors.New("ordering window closed")

	// ErrCancellationLocked rejects cancellation inside the final lockout
	// window before cutoff.
	ErrCancellationLocked = errors.New("cancellation window closed")

	ErrInvalidOption     = errors.New("selected option is not offered for this meal")
	ErrNotCancelable     = errors.New("order can no longer be canceled")
	ErrInvalidTransition = errors.New("illegal order status transition")
	ErrPaymentSettled    = errors.New("payment already settled")
)

// Actor identifies who is driving an operation; some checks only apply to
// the customer path (the cancellation lockout, the same-day rule).
type Actor int

const (
	ActorCustomer Actor = iota
	ActorProvider
	ActorBatch
)

// PlaceOrderInput carries everything the atomic placement needs. The caller
// resolves the delivery address according to the provider's delivery mode
// before building this.
type PlaceOrderInput struct {
	CustomerID      uint
	ProviderID      uint
	MealID          uint
	SelectedOption  string
	DeliveryAddress string
	Amount          float64
	Notes           string
}
