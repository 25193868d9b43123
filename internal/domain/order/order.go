package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/elyvra/commerce-api/internal/domain/customer"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Status labels an order's place in its lifecycle. Updates may write any
// status value; no transition graph is enforced.
type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusProcessing     Status = "processing"
	StatusConfirmed      Status = "confirmed"
	StatusShipped        Status = "shipped"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
	StatusRefunded       Status = "refunded"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPendingPayment, StatusProcessing, StatusConfirmed,
		StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// PaymentMethod enumerates the accepted payment methods.
type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "credit_card"
	PaymentPayPal         PaymentMethod = "paypal"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentPayPal, PaymentCashOnDelivery, PaymentBankTransfer:
		return true
	}
	return false
}

// Item is a line item snapshot captured at order creation. Name and price are
// copied, not referenced, so later product edits never change order history.
type Item struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}

// Order is a placed customer order with its computed pricing breakdown.
// total_amount = subtotal + tax_amount + shipping_cost - discount_amount.
type Order struct {
	ID              string           `json:"id"`
	CustomerID      string           `json:"customer_id"`
	Items           []Item           `json:"items"`
	Subtotal        float64          `json:"subtotal"`
	TaxAmount       float64          `json:"tax_amount"`
	ShippingCost    float64          `json:"shipping_cost"`
	DiscountAmount  float64          `json:"discount_amount"`
	TotalAmount     float64          `json:"total_amount"`
	Status          Status           `json:"status"`
	PaymentMethod   PaymentMethod    `json:"payment_method,omitempty"`
	ShippingAddress customer.Address `json:"shipping_address"`
	BillingAddress  customer.Address `json:"billing_address"`
	Notes           string           `json:"notes,omitempty"`
	TrackingNumber  string           `json:"tracking_number,omitempty"`
	CouponCode      string           `json:"coupon_code,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// UpdateInput carries the optional fields an order update may set. Nil fields
// are left untouched.
type UpdateInput struct {
	Status         *Status `json:"status,omitempty"`
	TrackingNumber *string `json:"tracking_number,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// Validate rejects unknown status labels.
func (in *UpdateInput) Validate() error {
	if in.Status != nil && !in.Status.Valid() {
		return errors.Errorf("unknown status %q", *in.Status)
	}
	return nil
}

// Filter narrows order listings.
type Filter struct {
	Status     *Status
	CustomerID *string
	Limit      int64
	Skip       int64
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	// List returns orders newest first.
	List(ctx context.Context, f Filter) ([]Order, error)
	// ApplyUpdate sets only the provided fields, refreshes updated_at, and
	// returns the updated order. ErrNotFound when the id does not resolve.
	ApplyUpdate(ctx context.Context, id string, in UpdateInput, now time.Time) (*Order, error)
}
