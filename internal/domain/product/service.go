package product

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Service implements catalog operations.
type Service struct {
	products Repository
	now      func() time.Time
	newID    func() string
}

// NewService creates a product Service.
func NewService(products Repository) *Service {
	return &Service{
		products: products,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create adds a product to the catalog.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := New(s.newID(), in, s.now())
	if err := s.products.Create(ctx, p); err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	return p, nil
}

// Get fetches a product by id. ErrNotFound when it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	return s.products.GetByID(ctx, id)
}

// List returns products matching the filter.
func (s *Service) List(ctx context.Context, f Filter) ([]Product, error) {
	return s.products.List(ctx, f)
}

// ListByCategory returns all products in a category. ErrNotFound on an
// unknown category label.
func (s *Service) ListByCategory(ctx context.Context, c Category) ([]Product, error) {
	if !c.Valid() {
		return nil, ErrNotFound
	}
	return s.products.ListByCategory(ctx, c)
}

// Update replaces a product's client-writable fields, keeping its id and
// created_at. ErrNotFound when the id does not resolve.
func (s *Service) Update(ctx context.Context, id string, in CreateInput) (*Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p := New(id, in, s.now())
	p.CreatedAt = existing.CreatedAt
	if err := s.products.Replace(ctx, p); err != nil {
		return nil, errors.Wrap(err, "replace product")
	}
	return p, nil
}

// Delete removes a product. ErrNotFound when it does not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}
