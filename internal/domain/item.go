package domain

import (
	"encoding/json"
	"strconv"
)

// Price holds a catalog price exactly as it arrived from upstream data:
// either a plain number or a string that may carry currency symbols and
// separators ("$100", "₹150"). Catalog formatting is not caller-controlled,
// so the raw value is kept until normalization.
type Price struct {
	raw   string
	num   float64
	isNum bool
}

func PriceFromNumber(v float64) Price { return Price{num: v, isNum: true} }

func PriceFromString(s string) Price { return Price{raw: s} }

// Number returns the numeric value and true when the price arrived as a
// plain number.
func (p Price) Number() (float64, bool) { return p.num, p.isNum }

// Raw returns the original string form. Empty for numeric prices.
func (p Price) Raw() string { return p.raw }

// String renders the price the way upstream supplied it.
func (p Price) String() string {
	if p.isNum {
		return strconv.FormatFloat(p.num, 'f', -1, 64)
	}
	return p.raw
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.isNum {
		return json.Marshal(p.num)
	}
	return json.Marshal(p.raw)
}

func (p *Price) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceFromString(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = PriceFromNumber(v)
	return nil
}

// CartItem is one purchasable service instance in the cart. Items are not
// deduplicated: booking the same service twice produces two entries.
type CartItem struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Price              Price    `json:"price"`
	DiscountPrice      *Price   `json:"discount_price,omitempty"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
}

// Clone returns an independent copy of the item.
func (i CartItem) Clone() CartItem {
	c := i
	if i.DiscountPrice != nil {
		v := *i.DiscountPrice
		c.DiscountPrice = &v
	}
	if i.DiscountPercentage != nil {
		v := *i.DiscountPercentage
		c.DiscountPercentage = &v
	}
	return c
}

// CloneItems deep-copies a cart sequence.
func CloneItems(items []CartItem) []CartItem {
	if items == nil {
		return nil
	}
	out := make([]CartItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
