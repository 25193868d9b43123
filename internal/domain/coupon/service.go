package coupon

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Service implements coupon management.
type Service struct {
	coupons Repository
	now     func() time.Time
	newID   func() string
}

// NewService creates a coupon Service.
func NewService(coupons Repository) *Service {
	return &Service{
		coupons: coupons,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Create registers a new coupon. ErrCodeExists on a duplicate code.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Coupon, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.coupons.FindByCode(ctx, in.Code); err == nil {
		return nil, ErrCodeExists
	} else if !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "check code")
	}

	c := New(s.newID(), in, s.now())
	if err := s.coupons.Create(ctx, c); err != nil {
		return nil, errors.Wrap(err, "create coupon")
	}
	return c, nil
}

// List returns coupons matching the filter.
func (s *Service) List(ctx context.Context, f Filter) ([]Coupon, error) {
	return s.coupons.List(ctx, f)
}
