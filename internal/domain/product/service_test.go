package product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	products map[string]*Product
	byCat    map[Category][]Product
}

func newMockRepo(products ...*Product) *mockRepo {
	byID := make(map[string]*Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &mockRepo{products: byID, byCat: make(map[Category][]Product)}
}

func (m *mockRepo) List(_ context.Context, _ Filter) ([]Product, error) { return nil, nil }

func (m *mockRepo) ListByCategory(_ context.Context, c Category) ([]Product, error) {
	return m.byCat[c], nil
}

func (m *mockRepo) GetByID(_ context.Context, id string) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) Create(_ context.Context, p *Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockRepo) Replace(_ context.Context, p *Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return ErrNotFound
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)
	return nil
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *mockRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return testNow }
	svc.newID = func() string { return "product-1" }
	return svc
}

func validInput() CreateInput {
	return CreateInput{
		SKU:      "ELYVRA-PERF-001",
		Category: CategoryPerformance,
		Price:    89.99,
		Translations: map[string]Translation{
			"en": {Name: "Performance Blend"},
		},
		InStock:       true,
		StockQuantity: 25,
	}
}

func TestCreate(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	p, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "product-1", p.ID)
	assert.Equal(t, testNow, p.CreatedAt)
	assert.Equal(t, testNow, p.UpdatedAt)
	assert.Contains(t, repo.products, "product-1")
}

func TestCreate_Invalid(t *testing.T) {
	svc := newTestService(newMockRepo())

	cases := map[string]func(*CreateInput){
		"missing sku":          func(in *CreateInput) { in.SKU = "" },
		"unknown category":     func(in *CreateInput) { in.Category = "gadgets" },
		"negative price":       func(in *CreateInput) { in.Price = -1 },
		"no translations":      func(in *CreateInput) { in.Translations = nil },
		"negative stock count": func(in *CreateInput) { in.StockQuantity = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := svc.Create(context.Background(), in)
			require.Error(t, err)
		})
	}
}

func TestListByCategory_UnknownCategory(t *testing.T) {
	svc := newTestService(newMockRepo())

	_, err := svc.ListByCategory(context.Background(), Category("gadgets"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_KeepsCreatedAt(t *testing.T) {
	created := testNow.Add(-30 * 24 * time.Hour)
	repo := newMockRepo(&Product{ID: "product-1", SKU: "OLD", CreatedAt: created})
	svc := newTestService(repo)

	p, err := svc.Update(context.Background(), "product-1", validInput())
	require.NoError(t, err)

	assert.Equal(t, "ELYVRA-PERF-001", p.SKU)
	assert.Equal(t, created, p.CreatedAt, "created_at survives the replace")
	assert.Equal(t, testNow, p.UpdatedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo())

	_, err := svc.Update(context.Background(), "missing", validInput())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestName_Fallback(t *testing.T) {
	p := &Product{Translations: map[string]Translation{
		"en": {Name: "Vitality Formula"},
		"fr": {Name: "Formule Vitalité"},
	}}

	assert.Equal(t, "Formule Vitalité", p.Name("fr"))
	assert.Equal(t, "Vitality Formula", p.Name("ar"), "missing language falls back to English")

	empty := &Product{}
	assert.Equal(t, "", empty.Name("en"))
}
