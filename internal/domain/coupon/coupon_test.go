//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"hotel-checkout/internal/domain/coupon"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func TestCoupon_ValidateForCheckout(t *testing.T) {
	base := coupon.ReconstructParams{
		ID:         uuid.New(),
		Code:       "summer10",
		PercentOff: decimal.NewFromInt(10),
		Active:     true,
	}

	cases := []struct {
		name   string
		mutate func(p *coupon.ReconstructParams)
		code   string
	}{
		{name: "open ended coupon", mutate: func(*coupon.ReconstructParams) {}},
		{name: "inactive", mutate: func(p *coupon.ReconstructParams) { p.Active = false }, code: "coupon_inactive"},
		{name: "expired", mutate: func(p *coupon.ReconstructParams) { p.ValidTo = ptr.Of(now.Add(-time.Second)) }, code: "coupon_expired"},
		{name: "not yet valid", mutate: func(p *coupon.ReconstructParams) { p.ValidFrom = ptr.Of(now.Add(time.Hour)) }, code: "coupon_not_yet_valid"},
		{
			name: "usage limit reached",
			mutate: func(p *coupon.ReconstructParams) {
				p.MaxOrders = ptr.Of(int32(3))
				p.SuccessfulOrders = 3
			},
			code: "coupon_exhausted",
		},
		{
			name: "usage limit not reached",
			mutate: func(p *coupon.ReconstructParams) {
				p.MaxOrders = ptr.Of(int32(3))
				p.SuccessfulOrders = 2
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			tc.mutate(&p)
			c, err := coupon.Reconstruct(p)
			require.NoError(t, err)

			err = c.ValidateForCheckout(now)
			if tc.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.code, errs.CodeOf(err))
		})
	}
}

func TestReconstruct_NormalizesCode(t *testing.T) {
	c, err := coupon.Reconstruct(coupon.ReconstructParams{Code: " summer10 ", PercentOff: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.Equal(t, coupon.Code("SUMMER10"), c.Code())

	_, err = coupon.Reconstruct(coupon.ReconstructParams{Code: "x", PercentOff: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, coupon.ErrInvalidCouponCode)
}

func TestApplyPercentDiscount(t *testing.T) {
	cases := []struct {
		amount, percent  string
		discount, result string
	}{
		{"10000", "10", "1000", "9000"},
		{"99.99", "15", "15", "84.99"},
		{"100", "0", "0", "100"},
		{"100", "100", "100", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.amount+"-"+tc.percent, func(t *testing.T) {
			got, err := coupon.ApplyPercentDiscount(decimal.RequireFromString(tc.amount), decimal.RequireFromString(tc.percent))
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tc.discount).Equal(got.DiscountAmount), got.DiscountAmount.String())
			assert.True(t, decimal.RequireFromString(tc.result).Equal(got.DiscountedAmount), got.DiscountedAmount.String())
		})
	}

	_, err := coupon.ApplyPercentDiscount(decimal.NewFromInt(1), decimal.NewFromInt(101))
	assert.ErrorIs(t, err, coupon.ErrInvalidDiscountPercent)
}
