// Package money holds currency code tables and minor-unit conversion shared by
// the gateway adapters.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MinorUnitExponent is used for every settlement currency the gateways accept.
const MinorUnitExponent = 2

var numericToAlpha = map[string]string{
	"051": "AMD",
	"840": "USD",
	"978": "EUR",
	"643": "RUB",
	"826": "GBP",
	"981": "GEL",
}

var alphaToNumeric = func() map[string]string {
	m := make(map[string]string, len(numericToAlpha))
	for num, alpha := range numericToAlpha {
		m[alpha] = num
	}
	return m
}()

// AlphaFromNumeric maps an ISO-4217 numeric code ("051") to its alphabetic form ("AMD").
func AlphaFromNumeric(code string) (string, bool) {
	alpha, ok := numericToAlpha[strings.TrimSpace(code)]
	return alpha, ok
}

func NumericFromAlpha(code string) (string, bool) {
	num, ok := alphaToNumeric[strings.ToUpper(strings.TrimSpace(code))]
	return num, ok
}

// NormalizeCurrency accepts either representation and returns the alphabetic code.
func NormalizeCurrency(code string) string {
	code = strings.TrimSpace(code)
	if alpha, ok := AlphaFromNumeric(code); ok {
		return alpha
	}
	if code == "֏" {
		return "AMD"
	}
	return strings.ToUpper(code)
}

func ToMinor(amount decimal.Decimal) int64 {
	return amount.Shift(MinorUnitExponent).Round(0).IntPart()
}

func FromMinor(minor int64) decimal.Decimal {
	return decimal.New(minor, -MinorUnitExponent)
}

// Round2 rounds half away from zero to the settlement precision.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MinorUnitExponent)
}
