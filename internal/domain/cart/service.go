package cart

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/elyvra/commerce-api/internal/domain/product"
)

// ErrInvalidQuantity is returned when an item is added with a non-positive
// quantity.
var ErrInvalidQuantity = errors.New("quantity must be greater than 0")

// AddItemRequest is the input for adding a product to a cart.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Service implements cart operations over the cart and product stores.
type Service struct {
	carts    Repository
	products product.Repository
	now      func() time.Time
	newID    func() string
}

// NewService creates a cart Service.
func NewService(carts Repository, products product.Repository) *Service {
	return &Service{
		carts:    carts,
		products: products,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create makes a new empty cart.
func (s *Service) Create(ctx context.Context) (*Cart, error) {
	now := s.now()
	c := &Cart{
		ID:        s.newID(),
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.carts.Create(ctx, c); err != nil {
		return nil, errors.Wrap(err, "create cart")
	}
	return c, nil
}

// Get fetches a cart by id. ErrNotFound when it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*Cart, error) {
	return s.carts.GetByID(ctx, id)
}

// AddItem adds a product line to the cart. When the product is already in
// the cart its quantity is incremented, otherwise a new line is appended.
// The product must exist; stock is not checked or reserved here.
func (s *Service) AddItem(ctx context.Context, cartID string, req AddItemRequest) (*Cart, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	c, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if _, err := s.products.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrap(err, "get product")
	}

	merged := false
	for i := range c.Items {
		if c.Items[i].ProductID == req.ProductID {
			c.Items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, Item{ProductID: req.ProductID, Quantity: req.Quantity})
	}

	now := s.now()
	if err := s.carts.ReplaceItems(ctx, cartID, c.Items, now); err != nil {
		return nil, errors.Wrap(err, "update cart")
	}
	c.UpdatedAt = now
	return c, nil
}

// List returns carts matching the filter.
func (s *Service) List(ctx context.Context, f Filter) ([]Cart, error) {
	return s.carts.List(ctx, f)
}

// Delete removes a cart. ErrNotFound when it does not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.carts.Delete(ctx, id)
}
