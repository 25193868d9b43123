package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elyvra/commerce-api/internal/domain/product"
)

type mockCartRepo struct {
	carts   map[string]*Cart
	deleted []string
}

func newMockCartRepo(carts ...*Cart) *mockCartRepo {
	byID := make(map[string]*Cart, len(carts))
	for _, c := range carts {
		byID[c.ID] = c
	}
	return &mockCartRepo{carts: byID}
}

func (m *mockCartRepo) Create(_ context.Context, c *Cart) error {
	m.carts[c.ID] = c
	return nil
}

func (m *mockCartRepo) GetByID(_ context.Context, id string) (*Cart, error) {
	c, ok := m.carts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (m *mockCartRepo) List(_ context.Context, _ Filter) ([]Cart, error) { return nil, nil }

func (m *mockCartRepo) ReplaceItems(_ context.Context, id string, items []Item, now time.Time) error {
	c, ok := m.carts[id]
	if !ok {
		return ErrNotFound
	}
	c.Items = items
	c.UpdatedAt = now
	return nil
}

func (m *mockCartRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.carts[id]; !ok {
		return ErrNotFound
	}
	delete(m.carts, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockProductRepo struct {
	ids map[string]bool
}

func newMockProductRepo(ids ...string) *mockProductRepo {
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return &mockProductRepo{ids: known}
}

func (m *mockProductRepo) List(_ context.Context, _ product.Filter) ([]product.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) ListByCategory(_ context.Context, _ product.Category) ([]product.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*product.Product, error) {
	if !m.ids[id] {
		return nil, product.ErrNotFound
	}
	return &product.Product{ID: id}, nil
}

func (m *mockProductRepo) Create(_ context.Context, _ *product.Product) error  { return nil }
func (m *mockProductRepo) Replace(_ context.Context, _ *product.Product) error { return nil }
func (m *mockProductRepo) Delete(_ context.Context, _ string) error            { return nil }

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(carts *mockCartRepo, products *mockProductRepo) *Service {
	svc := NewService(carts, products)
	svc.now = func() time.Time { return testNow }
	svc.newID = func() string { return "cart-1" }
	return svc
}

func TestCreate(t *testing.T) {
	repo := newMockCartRepo()
	svc := newTestService(repo, newMockProductRepo())

	c, err := svc.Create(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "cart-1", c.ID)
	assert.NotNil(t, c.Items, "items serialize as [] rather than null")
	assert.Empty(t, c.Items)
	assert.Equal(t, testNow, c.CreatedAt)
	assert.Equal(t, testNow, c.UpdatedAt)
}

func TestAddItem_NewLine(t *testing.T) {
	repo := newMockCartRepo(&Cart{ID: "cart-1", Items: []Item{}})
	svc := newTestService(repo, newMockProductRepo("p1"))

	c, err := svc.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, Item{ProductID: "p1", Quantity: 2}, c.Items[0])
	assert.Equal(t, testNow, c.UpdatedAt)
}

func TestAddItem_MergesQuantity(t *testing.T) {
	repo := newMockCartRepo(&Cart{ID: "cart-1", Items: []Item{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 4},
	}})
	svc := newTestService(repo, newMockProductRepo("p1", "p2"))

	c, err := svc.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)

	require.Len(t, c.Items, 2, "same product does not add a new line")
	assert.Equal(t, 4, c.Items[0].Quantity)
	assert.Equal(t, 4, c.Items[1].Quantity, "other lines untouched")
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	svc := newTestService(newMockCartRepo(), newMockProductRepo("p1"))

	_, err := svc.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "p1", Quantity: 0})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestAddItem_CartNotFound(t *testing.T) {
	svc := newTestService(newMockCartRepo(), newMockProductRepo("p1"))

	_, err := svc.AddItem(context.Background(), "missing", AddItemRequest{ProductID: "p1", Quantity: 1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddItem_ProductNotFound(t *testing.T) {
	repo := newMockCartRepo(&Cart{ID: "cart-1"})
	svc := newTestService(repo, newMockProductRepo())

	_, err := svc.AddItem(context.Background(), "cart-1", AddItemRequest{ProductID: "ghost", Quantity: 1})
	require.ErrorIs(t, err, product.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := newMockCartRepo(&Cart{ID: "cart-1"})
	svc := newTestService(repo, newMockProductRepo())

	require.NoError(t, svc.Delete(context.Background(), "cart-1"))
	assert.Equal(t, []string{"cart-1"}, repo.deleted)

	err := svc.Delete(context.Background(), "cart-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAbandoned(t *testing.T) {
	cutoff := testNow.Add(-7 * 24 * time.Hour)

	stale := &Cart{Items: []Item{{ProductID: "p1", Quantity: 1}}, UpdatedAt: cutoff.Add(-time.Hour)}
	assert.True(t, stale.Abandoned(cutoff))

	fresh := &Cart{Items: []Item{{ProductID: "p1", Quantity: 1}}, UpdatedAt: cutoff.Add(time.Hour)}
	assert.False(t, fresh.Abandoned(cutoff))

	empty := &Cart{UpdatedAt: cutoff.Add(-time.Hour)}
	assert.False(t, empty.Abandoned(cutoff), "empty carts are never abandoned")
}
