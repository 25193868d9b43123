package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/elyvra/commerce-api/internal/domain/coupon"
)

func testCoupon(t coupon.DiscountType, value float64) *coupon.Coupon {
	return &coupon.Coupon{
		Code:          "TEST",
		DiscountType:  t,
		DiscountValue: value,
		IsActive:      true,
		ValidUntil:    time.Now().Add(time.Hour),
	}
}

func TestLineTotal(t *testing.T) {
	assert.InDelta(t, 29.97, LineTotal(9.99, 3), 1e-9)
	assert.InDelta(t, 0.0, LineTotal(9.99, 0), 1e-9)
}

func TestComputePricing_NoCoupon(t *testing.T) {
	items := []Item{
		{ProductID: "p1", Price: 50, Quantity: 3, Total: 150},
	}

	p := ComputePricing(items, nil)

	assert.InDelta(t, 150.0, p.Subtotal, 1e-9)
	assert.InDelta(t, 15.0, p.TaxAmount, 1e-9)
	assert.InDelta(t, 0.0, p.ShippingCost, 1e-9, "subtotal of 100+ ships free")
	assert.InDelta(t, 0.0, p.DiscountAmount, 1e-9)
	assert.InDelta(t, 165.0, p.TotalAmount, 1e-9)
}

func TestComputePricing_ShippingBelowThreshold(t *testing.T) {
	items := []Item{
		{ProductID: "p1", Price: 25, Quantity: 2, Total: 50},
	}

	p := ComputePricing(items, nil)

	assert.InDelta(t, 50.0, p.Subtotal, 1e-9)
	assert.InDelta(t, 5.0, p.TaxAmount, 1e-9)
	assert.InDelta(t, 10.0, p.ShippingCost, 1e-9)
	assert.InDelta(t, 65.0, p.TotalAmount, 1e-9)
}

func TestComputePricing_PercentageCoupon(t *testing.T) {
	items := []Item{
		{ProductID: "p1", Price: 75, Quantity: 2, Total: 150},
	}

	p := ComputePricing(items, testCoupon(coupon.DiscountPercentage, 10))

	assert.InDelta(t, 150.0, p.Subtotal, 1e-9)
	assert.InDelta(t, 15.0, p.TaxAmount, 1e-9)
	assert.InDelta(t, 0.0, p.ShippingCost, 1e-9)
	assert.InDelta(t, 15.0, p.DiscountAmount, 1e-9)
	assert.InDelta(t, 150.0, p.TotalAmount, 1e-9)
}

func TestComputePricing_FixedCouponNotCapped(t *testing.T) {
	items := []Item{
		{ProductID: "p1", Price: 10, Quantity: 1, Total: 10},
	}

	p := ComputePricing(items, testCoupon(coupon.DiscountFixedAmount, 100))

	// 10 + 1 tax + 10 shipping - 100 discount: the total goes negative.
	assert.InDelta(t, 100.0, p.DiscountAmount, 1e-9)
	assert.InDelta(t, -79.0, p.TotalAmount, 1e-9)
}

func TestComputePricing_FreeShippingCoupon(t *testing.T) {
	items := []Item{
		{ProductID: "p1", Price: 30, Quantity: 1, Total: 30},
	}

	p := ComputePricing(items, testCoupon(coupon.DiscountFreeShipping, 0))

	assert.InDelta(t, 0.0, p.ShippingCost, 1e-9)
	assert.InDelta(t, 0.0, p.DiscountAmount, 1e-9)
	assert.InDelta(t, 33.0, p.TotalAmount, 1e-9)
}

func TestComputePricing_ShippingEvaluatedBeforeDiscount(t *testing.T) {
	// Subtotal 120 with a fixed discount of 50: shipping stays free because
	// the threshold applies to the undiscounted subtotal.
	items := []Item{
		{ProductID: "p1", Price: 120, Quantity: 1, Total: 120},
	}

	p := ComputePricing(items, testCoupon(coupon.DiscountFixedAmount, 50))

	assert.InDelta(t, 0.0, p.ShippingCost, 1e-9)
	assert.InDelta(t, 82.0, p.TotalAmount, 1e-9)
}

func TestComputePricing_Empty(t *testing.T) {
	p := ComputePricing(nil, nil)

	assert.InDelta(t, 0.0, p.Subtotal, 1e-9)
	assert.InDelta(t, 0.0, p.TaxAmount, 1e-9)
	assert.InDelta(t, 10.0, p.ShippingCost, 1e-9)
	assert.InDelta(t, 10.0, p.TotalAmount, 1e-9)
}
