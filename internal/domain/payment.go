package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownPaymentMethod = errors.New("unknown payment method")

// PaymentMethod is one of the closed set of payment options offered at
// checkout. There is no real payment-network integration behind these.
type PaymentMethod string

const (
	PaymentPayPal     PaymentMethod = "PayPal"
	PaymentRazorpay   PaymentMethod = "Razorpay"
	PaymentCreditCard PaymentMethod = "CreditCard"
	PaymentDebitCard  PaymentMethod = "DebitCard"
	PaymentUPI        PaymentMethod = "UPI"
)

var paymentMethods = []PaymentMethod{
	PaymentPayPal,
	PaymentRazorpay,
	PaymentCreditCard,
	PaymentDebitCard,
	PaymentUPI,
}

// PaymentMethods lists the selectable methods in display order.
func PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(paymentMethods))
	copy(out, paymentMethods)
	return out
}

func (m PaymentMethod) Valid() bool {
	for _, known := range paymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

func (m PaymentMethod) String() string { return string(m) }

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, s)
	}
	return m, nil
}
