package cart

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested cart does not exist.
var ErrNotFound = errors.New("cart not found")

// Item is a product line in a cart. A cart holds at most one line per
// product; adding the same product again bumps the quantity.
type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart is a storefront shopping cart.
type Cart struct {
	ID        string    `json:"id"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Abandoned reports whether the cart holds items but has not been touched
// since the cutoff instant.
func (c *Cart) Abandoned(cutoff time.Time) bool {
	return len(c.Items) > 0 && c.UpdatedAt.Before(cutoff)
}

// Filter narrows cart listings.
type Filter struct {
	// AbandonedBefore, when set, keeps only non-empty carts last updated
	// before the given instant.
	AbandonedBefore *time.Time
	Limit           int64
	Skip            int64
}

// Repository defines persistence operations for carts.
type Repository interface {
	Create(ctx context.Context, c *Cart) error
	GetByID(ctx context.Context, id string) (*Cart, error)
	List(ctx context.Context, f Filter) ([]Cart, error)
	// ReplaceItems overwrites the cart's item lines and refreshes updated_at.
	// ErrNotFound when the id does not resolve.
	ReplaceItems(ctx context.Context, id string, items []Item, now time.Time) error
	Delete(ctx context.Context, id string) error
}
