package admin

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Default bootstrap account, matching the seed data shipped with the store.
const (
	DefaultUsername = "admin"
	DefaultEmail    = "admin@elyvra.com"
	DefaultPassword = "elyvra123"
)

// Service implements admin account operations.
type Service struct {
	admins Repository
	now    func() time.Time
	newID  func() string
}

// NewService creates an admin Service.
func NewService(admins Repository) *Service {
	return &Service{
		admins: admins,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Login authenticates by username and password. ErrInvalidCredentials on an
// unknown username or a password mismatch, ErrAccountDisabled when the
// account is deactivated.
func (s *Service) Login(ctx context.Context, username, password string) (*Admin, error) {
	a, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "find admin")
	}
	if !VerifyPassword(password, a.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !a.IsActive {
		return nil, ErrAccountDisabled
	}
	return a, nil
}

// Create registers a new admin account. ErrUsernameTaken or ErrEmailTaken
// when either identifier is already in use.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Admin, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.admins.FindByUsername(ctx, in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "check username")
	}
	if _, err := s.admins.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "check email")
	}

	perms := in.Permissions
	if perms == nil {
		perms = []string{}
	}
	a := &Admin{
		ID:           s.newID(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: HashPassword(in.Password),
		FullName:     in.FullName,
		IsActive:     true,
		Permissions:  perms,
		CreatedAt:    s.now(),
	}
	if err := s.admins.Create(ctx, a); err != nil {
		return nil, errors.Wrap(err, "create admin")
	}
	return a, nil
}

// EnsureDefaultAdmin creates the bootstrap admin account if no account with
// the default username exists yet. It reports whether an account was created.
func (s *Service) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	_, err := s.admins.FindByUsername(ctx, DefaultUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, errors.Wrap(err, "find default admin")
	}

	a := &Admin{
		ID:           s.newID(),
		Username:     DefaultUsername,
		Email:        DefaultEmail,
		PasswordHash: HashPassword(DefaultPassword),
		FullName:     "Elyvra Administrator",
		IsActive:     true,
		Permissions:  []string{"all"},
		CreatedAt:    s.now(),
	}
	if err := s.admins.Create(ctx, a); err != nil {
		return false, errors.Wrap(err, "create default admin")
	}
	return true, nil
}
