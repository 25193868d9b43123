package customer

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a referenced customer does not exist.
var ErrNotFound = errors.New("customer not found")

// Segment classifies customers for reporting. It carries no business rules.
type Segment string

const (
	SegmentNew     Segment = "new"
	SegmentRegular Segment = "regular"
	SegmentVIP     Segment = "vip"
)

// Address is a postal address shared by customers and orders.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// Customer is a storefront user. TotalOrders and TotalSpent are running
// aggregates incremented on every order creation.
type Customer struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Phone             string    `json:"phone,omitempty"`
	PreferredLanguage string    `json:"preferred_language"`
	BillingAddress    *Address  `json:"billing_address,omitempty"`
	ShippingAddress   *Address  `json:"shipping_address,omitempty"`
	Segment           Segment   `json:"segment"`
	TotalOrders       int       `json:"total_orders"`
	TotalSpent        float64   `json:"total_spent"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Filter narrows customer listings.
type Filter struct {
	Segment *Segment
	Limit   int64
	Skip    int64
}

// Repository defines persistence operations for customers.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, f Filter) ([]Customer, error)
	// IncrementStats atomically adds one order and the given amount to the
	// customer's running aggregates and refreshes updated_at.
	IncrementStats(ctx context.Context, id string, amount float64, now time.Time) error
}
