//go:build unit

package money_test

import (
	"testing"

	"hotel-checkout/internal/pkg/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCurrency(t *testing.T) {
	cases := map[string]string{
		"051": "AMD",
		"AMD": "AMD",
		"amd": "AMD",
		"֏":   "AMD",
		"978": "EUR",
		"usd": "USD",
	}
	for in, want := range cases {
		assert.Equal(t, want, money.NormalizeCurrency(in), in)
	}
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1000000), money.ToMinor(decimal.NewFromInt(10000)))
	assert.Equal(t, int64(1001), money.ToMinor(decimal.RequireFromString("10.005")))
	assert.True(t, decimal.RequireFromString("10000.00").Equal(money.FromMinor(1000000)))
}
