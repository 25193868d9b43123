package order

import (
	"github.com/shopspring/decimal"

	"github.com/elyvra/commerce-api/internal/domain/coupon"
)

// Pricing rules. Shipping is evaluated against the subtotal before any
// discount; only a free-shipping coupon changes it.
var (
	taxRate           = decimal.NewFromFloat(0.10)
	shippingFlat      = decimal.NewFromFloat(10.0)
	freeShippingAbove = decimal.NewFromFloat(100.0)
)

// Pricing is the computed monetary breakdown of an order.
type Pricing struct {
	Subtotal       float64
	TaxAmount      float64
	ShippingCost   float64
	DiscountAmount float64
	TotalAmount    float64
}

// LineTotal computes a line item total as unit price times quantity,
// rounded to 2 decimal places.
func LineTotal(price float64, quantity int) float64 {
	p := decimal.NewFromFloat(price)
	q := decimal.NewFromInt(int64(quantity))
	return p.Mul(q).Round(2).InexactFloat64()
}

// ComputePricing prices an order from its line items and an optional usable
// coupon (nil when no coupon applies).
//
// subtotal = sum of line totals; tax = 10% of subtotal; shipping = 10.0 below
// a subtotal of 100.0, else free. The total is not floored at zero: a
// fixed-amount coupon larger than the order drives it negative, which is the
// storefront's long-standing behaviour.
func ComputePricing(items []Item, c *coupon.Coupon) Pricing {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(decimal.NewFromFloat(item.Total))
	}

	tax := subtotal.Mul(taxRate).Round(2)

	shipping := decimal.Zero
	if subtotal.LessThan(freeShippingAbove) {
		shipping = shippingFlat
	}

	discount := decimal.Zero
	if c != nil {
		d := coupon.Apply(c, subtotal)
		discount = d.Amount
		if d.FreeShipping {
			shipping = decimal.Zero
		}
	}

	total := subtotal.Add(tax).Add(shipping).Sub(discount).Round(2)

	return Pricing{
		Subtotal:       subtotal.Round(2).InexactFloat64(),
		TaxAmount:      tax.InexactFloat64(),
		ShippingCost:   shipping.InexactFloat64(),
		DiscountAmount: discount.InexactFloat64(),
		TotalAmount:    total.InexactFloat64(),
	}
}
