package order

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elyvra/commerce-api/internal/domain/coupon"
	"github.com/elyvra/commerce-api/internal/domain/customer"
)

// --- Mock implementations ---

type mockOrderRepo struct {
	lastOrder *Order
	createErr error
	updated   *Order
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	m.lastOrder = o
	return m.createErr
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*Order, error) {
	if m.lastOrder != nil && m.lastOrder.ID == id {
		return m.lastOrder, nil
	}
	return nil, ErrNotFound
}

func (m *mockOrderRepo) List(_ context.Context, _ Filter) ([]Order, error) {
	return nil, nil
}

func (m *mockOrderRepo) ApplyUpdate(_ context.Context, id string, in UpdateInput, now time.Time) (*Order, error) {
	if m.updated == nil || m.updated.ID != id {
		return nil, ErrNotFound
	}
	if in.Status != nil {
		m.updated.Status = *in.Status
	}
	if in.TrackingNumber != nil {
		m.updated.TrackingNumber = *in.TrackingNumber
	}
	if in.Notes != nil {
		m.updated.Notes = *in.Notes
	}
	m.updated.UpdatedAt = now
	return m.updated, nil
}

type mockCustomerRepo struct {
	customers map[string]*customer.Customer
	getErr    error

	incrementedID     string
	incrementedAmount float64
	incrementCalls    int
}

func (m *mockCustomerRepo) GetByID(_ context.Context, id string) (*customer.Customer, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	c, ok := m.customers[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return c, nil
}

func (m *mockCustomerRepo) List(_ context.Context, _ customer.Filter) ([]customer.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepo) IncrementStats(_ context.Context, id string, amount float64, _ time.Time) error {
	m.incrementedID = id
	m.incrementedAmount = amount
	m.incrementCalls++
	return nil
}

type mockValidator struct {
	coupon *coupon.Coupon
	err    error
}

func (m *mockValidator) Lookup(_ context.Context, _ string) (*coupon.Coupon, error) {
	return m.coupon, m.err
}

// --- Helpers ---

func newCustomerRepo(ids ...string) *mockCustomerRepo {
	customers := make(map[string]*customer.Customer, len(ids))
	for _, id := range ids {
		customers[id] = &customer.Customer{ID: id, Email: id + "@example.com"}
	}
	return &mockCustomerRepo{customers: customers}
}

func newTestService(orders *mockOrderRepo, customers *mockCustomerRepo, v *mockValidator) *Service {
	svc := NewService(orders, customers, v)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "order-1" }
	return svc
}

func validRequest() CreateRequest {
	return CreateRequest{
		CustomerID: "c1",
		Items: []ItemInput{
			{ProductID: "p1", ProductName: "Collagen Complex", Price: 75, Quantity: 2},
		},
		PaymentMethod: PaymentCreditCard,
	}
}

// --- Tests ---

func TestCreate_EmptyItems(t *testing.T) {
	svc := newTestService(&mockOrderRepo{}, newCustomerRepo("c1"), &mockValidator{})

	_, err := svc.Create(context.Background(), CreateRequest{CustomerID: "c1"})
	require.ErrorIs(t, err, ErrEmptyItems)
}

func TestCreate_InvalidQuantity(t *testing.T) {
	svc := newTestService(&mockOrderRepo{}, newCustomerRepo("c1"), &mockValidator{})

	req := validRequest()
	req.Items[0].Quantity = 0
	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCreate_CustomerNotFound(t *testing.T) {
	orders := &mockOrderRepo{}
	svc := newTestService(orders, newCustomerRepo(), &mockValidator{})

	_, err := svc.Create(context.Background(), validRequest())
	require.ErrorIs(t, err, customer.ErrNotFound)
	assert.Nil(t, orders.lastOrder, "nothing should be persisted")
}

func TestCreate_NoCoupon(t *testing.T) {
	orders := &mockOrderRepo{}
	customers := newCustomerRepo("c1")
	svc := newTestService(orders, customers, &mockValidator{err: coupon.ErrNotFound})

	o, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "order-1", o.ID)
	assert.Equal(t, StatusPendingPayment, o.Status)
	assert.InDelta(t, 150.0, o.Subtotal, 1e-9)
	assert.InDelta(t, 15.0, o.TaxAmount, 1e-9)
	assert.InDelta(t, 0.0, o.ShippingCost, 1e-9)
	assert.InDelta(t, 165.0, o.TotalAmount, 1e-9)
	require.Len(t, o.Items, 1)
	assert.InDelta(t, 150.0, o.Items[0].Total, 1e-9, "line total computed server-side")
	require.NotNil(t, orders.lastOrder)
}

func TestCreate_UnusableCouponIgnored(t *testing.T) {
	orders := &mockOrderRepo{}
	svc := newTestService(orders, newCustomerRepo("c1"), &mockValidator{err: coupon.ErrNotUsable})

	req := validRequest()
	req.CouponCode = "EXPIRED"
	o, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, o.DiscountAmount, 1e-9)
	assert.Equal(t, "EXPIRED", o.CouponCode, "the submitted code is kept on the order")
}

func TestCreate_UsableCouponApplied(t *testing.T) {
	c := &coupon.Coupon{
		Code:          "SAVE10",
		DiscountType:  coupon.DiscountPercentage,
		DiscountValue: 10,
		IsActive:      true,
		ValidUntil:    time.Now().Add(time.Hour),
	}
	svc := newTestService(&mockOrderRepo{}, newCustomerRepo("c1"), &mockValidator{coupon: c})

	req := validRequest()
	req.CouponCode = "SAVE10"
	o, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.InDelta(t, 15.0, o.DiscountAmount, 1e-9)
	assert.InDelta(t, 150.0, o.TotalAmount, 1e-9)
}

func TestCreate_CouponStorageErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	svc := newTestService(&mockOrderRepo{}, newCustomerRepo("c1"), &mockValidator{err: boom})

	req := validRequest()
	req.CouponCode = "ANY"
	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, boom)
}

func TestCreate_IncrementsCustomerStats(t *testing.T) {
	customers := newCustomerRepo("c1")
	svc := newTestService(&mockOrderRepo{}, customers, &mockValidator{err: coupon.ErrNotFound})

	o, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, customers.incrementCalls)
	assert.Equal(t, "c1", customers.incrementedID)
	assert.InDelta(t, o.TotalAmount, customers.incrementedAmount, 1e-9)
}

func TestUpdate_UnknownStatusRejected(t *testing.T) {
	svc := newTestService(&mockOrderRepo{}, newCustomerRepo(), &mockValidator{})

	bad := Status("teleported")
	_, err := svc.Update(context.Background(), "o1", UpdateInput{Status: &bad})
	require.Error(t, err)
}

func TestUpdate_AppliesFields(t *testing.T) {
	orders := &mockOrderRepo{updated: &Order{ID: "o1", Status: StatusPendingPayment}}
	svc := newTestService(orders, newCustomerRepo(), &mockValidator{})

	st := StatusShipped
	tracking := "TRK-42"
	o, err := svc.Update(context.Background(), "o1", UpdateInput{Status: &st, TrackingNumber: &tracking})
	require.NoError(t, err)

	assert.Equal(t, StatusShipped, o.Status)
	assert.Equal(t, "TRK-42", o.TrackingNumber)
	assert.Equal(t, svc.now(), o.UpdatedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(&mockOrderRepo{}, newCustomerRepo(), &mockValidator{})

	st := StatusCancelled
	_, err := svc.Update(context.Background(), "missing", UpdateInput{Status: &st})
	require.ErrorIs(t, err, ErrNotFound)
}
