package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/elyvra/commerce-api/internal/domain/coupon"
	"github.com/elyvra/commerce-api/internal/domain/customer"
)

// Sentinel errors for order creation input.
var (
	ErrEmptyItems      = errors.New("items required")
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
)

// ItemInput is a line item as submitted by the client. The line total is
// recomputed server-side from price and quantity.
type ItemInput struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// CreateRequest holds the input for placing an order.
type CreateRequest struct {
	CustomerID      string           `json:"customer_id"`
	Items           []ItemInput      `json:"items"`
	ShippingAddress customer.Address `json:"shipping_address"`
	BillingAddress  customer.Address `json:"billing_address"`
	PaymentMethod   PaymentMethod    `json:"payment_method"`
	Notes           string           `json:"notes,omitempty"`
	CouponCode      string           `json:"coupon_code,omitempty"`
}

// Validate checks the structural invariants of the request.
func (r *CreateRequest) Validate() error {
	if r.CustomerID == "" {
		return errors.New("customer_id is required")
	}
	if len(r.Items) == 0 {
		return ErrEmptyItems
	}
	for _, item := range r.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	if r.PaymentMethod != "" && !r.PaymentMethod.Valid() {
		return errors.Errorf("unknown payment method %q", r.PaymentMethod)
	}
	return nil
}

// Service orchestrates order creation and updates.
type Service struct {
	orders    Repository
	customers customer.Repository
	coupons   coupon.Validator
	now       func() time.Time
	newID     func() string
}

// NewService creates an order Service with the required domain dependencies.
func NewService(orders Repository, customers customer.Repository, coupons coupon.Validator) *Service {
	return &Service{
		orders:    orders,
		customers: customers,
		coupons:   coupons,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Create places an order: it verifies the customer exists, snapshots the line
// items, prices the order (applying the coupon when it is usable), persists it
// with status pending_payment, and bumps the customer's running aggregates.
//
// A coupon code that does not resolve to a usable coupon is ignored rather
// than rejected; the order simply carries no discount. The customer aggregate
// update is a separate write from the order insert, so the two are not atomic.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.customers.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return nil, customer.ErrNotFound
		}
		return nil, errors.Wrap(err, "get customer")
	}

	items := make([]Item, len(req.Items))
	for i, in := range req.Items {
		items[i] = Item{
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			Price:       in.Price,
			Quantity:    in.Quantity,
			Total:       LineTotal(in.Price, in.Quantity),
		}
	}

	var applied *coupon.Coupon
	if req.CouponCode != "" {
		c, err := s.coupons.Lookup(ctx, req.CouponCode)
		switch {
		case err == nil:
			applied = c
		case errors.Is(err, coupon.ErrNotFound), errors.Is(err, coupon.ErrNotUsable):
			// No discount; the order still goes through.
		default:
			return nil, errors.Wrap(err, "lookup coupon")
		}
	}

	pricing := ComputePricing(items, applied)
	now := s.now()

	o := &Order{
		ID:              s.newID(),
		CustomerID:      req.CustomerID,
		Items:           items,
		Subtotal:        pricing.Subtotal,
		TaxAmount:       pricing.TaxAmount,
		ShippingCost:    pricing.ShippingCost,
		DiscountAmount:  pricing.DiscountAmount,
		TotalAmount:     pricing.TotalAmount,
		Status:          StatusPendingPayment,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Notes:           req.Notes,
		CouponCode:      req.CouponCode,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	if err := s.customers.IncrementStats(ctx, req.CustomerID, o.TotalAmount, now); err != nil {
		return nil, errors.Wrap(err, "increment customer stats")
	}

	return o, nil
}

// Get fetches an order by id. ErrNotFound when it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}

// List returns orders matching the filter, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]Order, error) {
	return s.orders.List(ctx, f)
}

// Update applies the provided fields to an existing order and refreshes its
// updated_at timestamp. ErrNotFound when the id does not resolve.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.orders.ApplyUpdate(ctx, id, in, s.now())
}
