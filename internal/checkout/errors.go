package checkout

import "errors"

var (
	ErrEmptyCart       = errors.New("cart is empty, nothing to checkout")
	ErrMissingFields   = errors.New("booking details are incomplete")
	ErrNoPaymentMethod = errors.New("no payment method selected")
	ErrIllegalState    = errors.New("operation not allowed in current checkout state")
)

// AbortReason identifies which validation guard refused the transition.
type AbortReason string

const (
	ReasonMissingFields   AbortReason = "MissingFields"
	ReasonNoPaymentMethod AbortReason = "NoPaymentMethod"
	ReasonEmptyCart       AbortReason = "EmptyCart"
)

// ReasonForError maps a validation error to its reason code.
func ReasonForError(err error) (AbortReason, bool) {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return ReasonEmptyCart, true
	case errors.Is(err, ErrMissingFields):
		return ReasonMissingFields, true
	case errors.Is(err, ErrNoPaymentMethod):
		return ReasonNoPaymentMethod, true
	}
	return "", false
}
