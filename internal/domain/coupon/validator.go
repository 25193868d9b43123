package coupon

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// Validator resolves a coupon code to a usable coupon.
type Validator interface {
	Lookup(ctx context.Context, code string) (*Coupon, error)
}

// RepoValidator implements Validator by loading the coupon from a Repository
// and checking it against the current time.
type RepoValidator struct {
	repo Repository
	now  func() time.Time
}

// NewRepoValidator creates a RepoValidator backed by the given Repository.
func NewRepoValidator(repo Repository) *RepoValidator {
	return &RepoValidator{repo: repo, now: time.Now}
}

// Lookup returns the coupon for code when it exists and is currently usable.
// It returns ErrNotFound for an unknown code and ErrNotUsable for a coupon
// that is inactive or whose validity window has closed.
func (v *RepoValidator) Lookup(ctx context.Context, code string) (*Coupon, error) {
	c, err := v.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "lookup coupon")
	}

	if !c.Usable(v.now()) {
		return nil, ErrNotUsable
	}

	return c, nil
}
