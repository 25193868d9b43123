package coupon

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_Percentage(t *testing.T) {
	c := &Coupon{DiscountType: DiscountPercentage, DiscountValue: 15}

	d := Apply(c, decimal.NewFromFloat(99.99))

	assert.True(t, d.Amount.Equal(decimal.NewFromFloat(15.0)), "15%% of 99.99 rounds to 15.00, got %s", d.Amount)
	assert.False(t, d.FreeShipping)
}

func TestApply_PercentageRounding(t *testing.T) {
	c := &Coupon{DiscountType: DiscountPercentage, DiscountValue: 10}

	d := Apply(c, decimal.NewFromFloat(33.33))

	assert.True(t, d.Amount.Equal(decimal.NewFromFloat(3.33)), "got %s", d.Amount)
}

func TestApply_FixedAmountNotCapped(t *testing.T) {
	c := &Coupon{DiscountType: DiscountFixedAmount, DiscountValue: 50}

	d := Apply(c, decimal.NewFromFloat(20))

	assert.True(t, d.Amount.Equal(decimal.NewFromInt(50)), "face value even above the subtotal, got %s", d.Amount)
}

func TestApply_FreeShipping(t *testing.T) {
	c := &Coupon{DiscountType: DiscountFreeShipping}

	d := Apply(c, decimal.NewFromFloat(200))

	assert.True(t, d.Amount.IsZero())
	assert.True(t, d.FreeShipping)
}

func TestApply_UnknownType(t *testing.T) {
	c := &Coupon{DiscountType: DiscountType("bogo"), DiscountValue: 1}

	d := Apply(c, decimal.NewFromFloat(100))

	assert.True(t, d.Amount.IsZero())
	assert.False(t, d.FreeShipping)
}

func TestCreateInput_Validate(t *testing.T) {
	valid := CreateInput{Code: "SAVE10", DiscountType: DiscountPercentage, DiscountValue: 10}
	require.NoError(t, valid.Validate())

	missingCode := valid
	missingCode.Code = ""
	require.Error(t, missingCode.Validate())

	badType := valid
	badType.DiscountType = "bogo"
	require.Error(t, badType.Validate())

	negative := valid
	negative.DiscountValue = -5
	require.Error(t, negative.Validate())
}

func newTestService(repo *mockRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return testNow }
	svc.newID = func() string { return "coupon-1" }
	return svc
}

func TestServiceCreate(t *testing.T) {
	svc := newTestService(&mockRepo{})

	c, err := svc.Create(context.Background(), CreateInput{
		Code:          "SAVE10",
		DiscountType:  DiscountPercentage,
		DiscountValue: 10,
		ValidUntil:    testNow.Add(time.Hour),
		IsActive:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "coupon-1", c.ID)
	assert.Equal(t, "SAVE10", c.Code)
	assert.Equal(t, testNow, c.CreatedAt)
}

func TestServiceCreate_DuplicateCode(t *testing.T) {
	repo := &mockRepo{coupons: map[string]*Coupon{
		"SAVE10": {ID: "existing", Code: "SAVE10"},
	}}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), CreateInput{
		Code:          "SAVE10",
		DiscountType:  DiscountPercentage,
		DiscountValue: 10,
	})
	require.ErrorIs(t, err, ErrCodeExists)
}

func TestServiceCreate_InvalidInput(t *testing.T) {
	svc := newTestService(&mockRepo{})

	_, err := svc.Create(context.Background(), CreateInput{Code: "", DiscountType: DiscountPercentage})
	require.Error(t, err)
}
