package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	byUsername map[string]*Admin
	byEmail    map[string]*Admin
	created    []*Admin
}

func newMockRepo(admins ...*Admin) *mockRepo {
	m := &mockRepo{
		byUsername: make(map[string]*Admin),
		byEmail:    make(map[string]*Admin),
	}
	for _, a := range admins {
		m.byUsername[a.Username] = a
		m.byEmail[a.Email] = a
	}
	return m
}

func (m *mockRepo) FindByUsername(_ context.Context, username string) (*Admin, error) {
	a, ok := m.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

func (m *mockRepo) FindByEmail(_ context.Context, email string) (*Admin, error) {
	a, ok := m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

func (m *mockRepo) Create(_ context.Context, a *Admin) error {
	m.byUsername[a.Username] = a
	m.byEmail[a.Email] = a
	m.created = append(m.created, a)
	return nil
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *mockRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return testNow }
	svc.newID = func() string { return "admin-1" }
	return svc
}

func activeAdmin(username, email, password string) *Admin {
	return &Admin{
		ID:           "a1",
		Username:     username,
		Email:        email,
		PasswordHash: HashPassword(password),
		IsActive:     true,
	}
}

func TestHashPassword(t *testing.T) {
	hash := HashPassword("elyvra123")

	assert.Len(t, hash, 64, "hex-encoded sha256")
	assert.True(t, VerifyPassword("elyvra123", hash))
	assert.False(t, VerifyPassword("elyvra124", hash))
}

func TestLogin(t *testing.T) {
	repo := newMockRepo(activeAdmin("admin", "admin@elyvra.com", "secret"))
	svc := newTestService(repo)

	a, err := svc.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", a.Username)
}

func TestLogin_UnknownUsername(t *testing.T) {
	svc := newTestService(newMockRepo())

	_, err := svc.Login(context.Background(), "ghost", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMockRepo(activeAdmin("admin", "admin@elyvra.com", "secret"))
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), "admin", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	a := activeAdmin("admin", "admin@elyvra.com", "secret")
	a.IsActive = false
	svc := newTestService(newMockRepo(a))

	_, err := svc.Login(context.Background(), "admin", "secret")
	require.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLogin_DisabledAccountWrongPassword(t *testing.T) {
	a := activeAdmin("admin", "admin@elyvra.com", "secret")
	a.IsActive = false
	svc := newTestService(newMockRepo(a))

	// The password is checked before the active flag.
	_, err := svc.Login(context.Background(), "admin", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreate(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	a, err := svc.Create(context.Background(), CreateInput{
		Username: "editor",
		Email:    "editor@elyvra.com",
		Password: "pass123",
		FullName: "Content Editor",
	})
	require.NoError(t, err)

	assert.Equal(t, "admin-1", a.ID)
	assert.True(t, a.IsActive)
	assert.NotNil(t, a.Permissions, "permissions serialize as [] rather than null")
	assert.Empty(t, a.Permissions)
	assert.True(t, VerifyPassword("pass123", a.PasswordHash))
	assert.Equal(t, testNow, a.CreatedAt)
	require.Len(t, repo.created, 1)
}

func TestCreate_UsernameTaken(t *testing.T) {
	repo := newMockRepo(activeAdmin("editor", "old@elyvra.com", "x"))
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), CreateInput{
		Username: "editor",
		Email:    "new@elyvra.com",
		Password: "pass123",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreate_EmailTaken(t *testing.T) {
	repo := newMockRepo(activeAdmin("other", "editor@elyvra.com", "x"))
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), CreateInput{
		Username: "editor",
		Email:    "editor@elyvra.com",
		Password: "pass123",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc := newTestService(newMockRepo())

	_, err := svc.Create(context.Background(), CreateInput{Username: "editor"})
	require.Error(t, err)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	created, err := svc.EnsureDefaultAdmin(context.Background())
	require.NoError(t, err)
	assert.True(t, created)

	require.Len(t, repo.created, 1)
	a := repo.created[0]
	assert.Equal(t, DefaultUsername, a.Username)
	assert.Equal(t, DefaultEmail, a.Email)
	assert.True(t, VerifyPassword(DefaultPassword, a.PasswordHash))
	assert.Equal(t, []string{"all"}, a.Permissions)

	// Second call is a no-op.
	created, err = svc.EnsureDefaultAdmin(context.Background())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.created, 1)
}

func TestProfileHidesPasswordHash(t *testing.T) {
	a := activeAdmin("admin", "admin@elyvra.com", "secret")
	a.FullName = "Elyvra Administrator"
	a.Permissions = []string{"all"}

	p := a.Profile()

	assert.Equal(t, "admin", p.Username)
	assert.Equal(t, "Elyvra Administrator", p.FullName)
	assert.Equal(t, []string{"all"}, p.Permissions)
}
