package coupon

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// DiscountType enumerates the supported coupon discount strategies.
type DiscountType string

const (
	// DiscountPercentage takes a percentage off the order subtotal.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixedAmount takes a flat amount off the order. The amount is not
	// capped at the subtotal, so a large coupon can push the total negative.
	DiscountFixedAmount DiscountType = "fixed_amount"
	// DiscountFreeShipping waives the shipping cost and nothing else.
	DiscountFreeShipping DiscountType = "free_shipping"
)

// Valid reports whether t is one of the known discount types.
func (t DiscountType) Valid() bool {
	switch t {
	case DiscountPercentage, DiscountFixedAmount, DiscountFreeShipping:
		return true
	}
	return false
}

var (
	// ErrNotFound is returned when no coupon exists for a code.
	ErrNotFound = errors.New("coupon not found")
	// ErrNotUsable is returned when a coupon exists but is inactive or past
	// its valid_until instant.
	ErrNotUsable = errors.New("coupon not usable")
	// ErrCodeExists is returned when creating a coupon with a taken code.
	ErrCodeExists = errors.New("coupon code already exists")
)

// Coupon is a discount rule identified by a unique code.
//
// MinimumOrderAmount and MaxUsageCount are recorded but deliberately not
// enforced during validation, and CurrentUsageCount is never incremented;
// the storefront has always behaved this way and order history depends on it.
// See DESIGN.md before tightening any of these.
type Coupon struct {
	ID                 string       `json:"id"`
	Code               string       `json:"code"`
	Description        string       `json:"description"`
	DiscountType       DiscountType `json:"discount_type"`
	DiscountValue      float64      `json:"discount_value"`
	MinimumOrderAmount *float64     `json:"minimum_order_amount,omitempty"`
	MaxUsageCount      *int         `json:"max_usage_count,omitempty"`
	CurrentUsageCount  int          `json:"current_usage_count"`
	ValidFrom          time.Time    `json:"valid_from"`
	ValidUntil         time.Time    `json:"valid_until"`
	IsActive           bool         `json:"is_active"`
	CreatedAt          time.Time    `json:"created_at"`
}

// Usable reports whether the coupon may be applied at the given instant:
// it must be active and valid_until must be strictly in the future.
// valid_from is intentionally not checked.
func (c *Coupon) Usable(now time.Time) bool {
	return c.IsActive && c.ValidUntil.After(now)
}

// CreateInput carries the client-provided fields for a new coupon.
type CreateInput struct {
	Code               string       `json:"code"`
	Description        string       `json:"description"`
	DiscountType       DiscountType `json:"discount_type"`
	DiscountValue      float64      `json:"discount_value"`
	MinimumOrderAmount *float64     `json:"minimum_order_amount,omitempty"`
	MaxUsageCount      *int         `json:"max_usage_count,omitempty"`
	ValidFrom          time.Time    `json:"valid_from"`
	ValidUntil         time.Time    `json:"valid_until"`
	IsActive           bool         `json:"is_active"`
}

// Validate checks structural validity of the input.
func (in *CreateInput) Validate() error {
	if in.Code == "" {
		return errors.New("code is required")
	}
	if !in.DiscountType.Valid() {
		return errors.Errorf("unknown discount type %q", in.DiscountType)
	}
	if in.DiscountValue < 0 {
		return errors.New("discount_value must not be negative")
	}
	return nil
}

// New builds a Coupon from validated input.
func New(id string, in CreateInput, now time.Time) *Coupon {
	return &Coupon{
		ID:                 id,
		Code:               in.Code,
		Description:        in.Description,
		DiscountType:       in.DiscountType,
		DiscountValue:      in.DiscountValue,
		MinimumOrderAmount: in.MinimumOrderAmount,
		MaxUsageCount:      in.MaxUsageCount,
		ValidFrom:          in.ValidFrom,
		ValidUntil:         in.ValidUntil,
		IsActive:           in.IsActive,
		CreatedAt:          now,
	}
}

// Filter narrows coupon listings.
type Filter struct {
	IsActive *bool
	Limit    int64
	Skip     int64
}

// Repository provides lookup and persistence of coupons.
type Repository interface {
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	Create(ctx context.Context, c *Coupon) error
	List(ctx context.Context, f Filter) ([]Coupon, error)
}
