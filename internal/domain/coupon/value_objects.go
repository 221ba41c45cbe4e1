package coupon

import (
	"errors"
	"regexp"
	"strings"

	"hotel-checkout/internal/pkg/money"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCouponCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

var hundred = decimal.NewFromInt(100)

type Discount struct {
	percentOff decimal.Decimal
}

func NewPercentageDiscount(percentOff decimal.Decimal) (Discount, error) {
	if percentOff.IsNegative() || percentOff.GreaterThan(hundred) {
		return Discount{}, ErrInvalidDiscountPercent
	}
	return Discount{percentOff: percentOff}, nil
}

func (d Discount) PercentOff() decimal.Decimal {
	return d.percentOff
}

// Applied is the outcome of a discount on a charge.
type Applied struct {
	DiscountAmount   decimal.Decimal
	DiscountedAmount decimal.Decimal
}

// Apply rounds the discount to two decimals; the customer is never charged
// less than zero.
func (d Discount) Apply(amount decimal.Decimal) Applied {
	off := money.Round2(amount.Mul(d.percentOff).Div(hundred))
	if off.GreaterThan(amount) {
		off = amount
	}
	return Applied{DiscountAmount: off, DiscountedAmount: amount.Sub(off)}
}

// ApplyPercentDiscount is Apply for a bare percentage.
func ApplyPercentDiscount(amount, percent decimal.Decimal) (Applied, error) {
	d, err := NewPercentageDiscount(percent)
	if err != nil {
		return Applied{}, err
	}
	return d.Apply(amount), nil
}
