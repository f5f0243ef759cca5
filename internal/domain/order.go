package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order is the immutable record of one completed checkout. Services is a
// deep copy of the cart taken at commit time; later cart mutations never
// alter a committed order.
type Order struct {
	ID            uuid.UUID
	OrderDate     time.Time // calendar date granularity
	PaymentMethod PaymentMethod
	TotalAmount   string // canonical two-decimal amount, e.g. "250.00"
	Services      []CartItem
	TransactionID string
}

// Clone returns an independent copy of the order.
func (o Order) Clone() Order {
	c := o
	c.Services = CloneItems(o.Services)
	return c
}

// DateOnly truncates a timestamp to calendar date granularity, which is
// all an order date carries.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
