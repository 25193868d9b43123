package admin

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-faster/errors"
)

var (
	// ErrNotFound is returned when no admin matches the lookup.
	ErrNotFound = errors.New("admin not found")
	// ErrInvalidCredentials is returned on a failed login (unknown username
	// or wrong password; the two are not distinguished).
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled is returned when a deactivated admin logs in with
	// otherwise valid credentials.
	ErrAccountDisabled = errors.New("admin account is disabled")
	// ErrUsernameTaken is returned when creating an admin with a username
	// that already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when creating an admin with an email that
	// already exists.
	ErrEmailTaken = errors.New("email already taken")
)

// Admin is a back-office user account. The password hash never leaves the
// domain layer; API responses carry the Profile view instead.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	IsActive     bool      `json:"is_active"`
	Permissions  []string  `json:"permissions"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the admin view returned to API clients.
type Profile struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FullName    string   `json:"full_name"`
	Permissions []string `json:"permissions"`
}

// Profile returns the client-facing view of the account.
func (a *Admin) Profile() Profile {
	return Profile{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		FullName:    a.FullName,
		Permissions: a.Permissions,
	}
}

// HashPassword returns the hex-encoded SHA-256 digest of the password.
// Existing accounts are stored with this scheme, so it cannot change
// without a migration.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether the password matches the stored hash.
func VerifyPassword(password, hash string) bool {
	return HashPassword(password) == hash
}

// CreateInput carries the fields for a new admin account.
type CreateInput struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FullName    string   `json:"full_name"`
	Permissions []string `json:"permissions,omitempty"`
}

// Validate checks structural validity of the input.
func (in *CreateInput) Validate() error {
	if in.Username == "" {
		return errors.New("username is required")
	}
	if in.Email == "" {
		return errors.New("email is required")
	}
	if in.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// Repository defines persistence operations for admin accounts.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*Admin, error)
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	Create(ctx context.Context, a *Admin) error
}
