package coupon

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Discount is the monetary effect of a coupon on a priced order.
type Discount struct {
	// Amount is subtracted from the order total. Zero for free-shipping coupons.
	Amount decimal.Decimal
	// FreeShipping forces the shipping cost to zero.
	FreeShipping bool
}

// Apply computes the discount a coupon yields against the given subtotal.
//
// percentage: subtotal * value / 100, rounded to 2 places.
// fixed_amount: the face value, NOT capped at the subtotal.
// free_shipping: no amount; the shipping cost is waived instead.
//
// An unknown discount type yields an empty discount.
func Apply(c *Coupon, subtotal decimal.Decimal) Discount {
	switch c.DiscountType {
	case DiscountPercentage:
		value := decimal.NewFromFloat(c.DiscountValue)
		return Discount{Amount: subtotal.Mul(value).Div(hundred).Round(2)}
	case DiscountFixedAmount:
		return Discount{Amount: decimal.NewFromFloat(c.DiscountValue).Round(2)}
	case DiscountFreeShipping:
		return Discount{FreeShipping: true}
	default:
		return Discount{}
	}
}
