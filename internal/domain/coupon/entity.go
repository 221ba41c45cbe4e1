package coupon

import (
	"time"

	"hotel-checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCouponNotFound    = errs.NewCoded(errs.ErrValidation, "coupon_not_found", "Coupon code is not valid")
	ErrCouponExpired     = errs.NewCoded(errs.ErrValidation, "coupon_expired", "Coupon has expired")
	ErrCouponNotYetValid = errs.NewCoded(errs.ErrValidation, "coupon_not_yet_valid", "Coupon is not active yet")
	ErrCouponInactive    = errs.NewCoded(errs.ErrValidation, "coupon_inactive", "Coupon is no longer available")
	ErrCouponExhausted   = errs.NewCoded(errs.ErrValidation, "coupon_exhausted", "Coupon usage limit reached")
)

type Coupon struct {
	id               uuid.UUID
	code             Code
	discount         Discount
	validFrom        *time.Time
	validTo          *time.Time
	maxOrders        *int32
	successfulOrders int32
	active           bool
	createdAt        time.Time
	updatedAt        time.Time
}

type ReconstructParams struct {
	ID               uuid.UUID
	Code             string
	PercentOff       decimal.Decimal
	ValidFrom        *time.Time
	ValidTo          *time.Time
	MaxOrders        *int32
	SuccessfulOrders int32
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func Reconstruct(p ReconstructParams) (*Coupon, error) {
	code, err := NewCouponCode(p.Code)
	if err != nil {
		return nil, err
	}
	discount, err := NewPercentageDiscount(p.PercentOff)
	if err != nil {
		return nil, err
	}

	return &Coupon{
		id:               p.ID,
		code:             code,
		discount:         discount,
		validFrom:        p.ValidFrom,
		validTo:          p.ValidTo,
		maxOrders:        p.MaxOrders,
		successfulOrders: p.SuccessfulOrders,
		active:           p.Active,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}, nil
}

func (c *Coupon) IsValidAt(t time.Time) bool {
	if c.validFrom != nil && t.Before(*c.validFrom) {
		return false
	}
	if c.validTo != nil && t.After(*c.validTo) {
		return false
	}
	return true
}

// ValidateForCheckout reports why the coupon cannot be applied at t, if at all.
func (c *Coupon) ValidateForCheckout(t time.Time) error {
	if !c.active {
		return ErrCouponInactive
	}
	if !c.IsValidAt(t) {
		if c.validFrom != nil && t.Before(*c.validFrom) {
			return ErrCouponNotYetValid
		}
		return ErrCouponExpired
	}
	if c.maxOrders != nil && c.successfulOrders >= *c.maxOrders {
		return ErrCouponExhausted
	}
	return nil
}

func (c *Coupon) Apply(amount decimal.Decimal) Applied {
	return c.discount.Apply(amount)
}

func (c *Coupon) ID() uuid.UUID           { return c.id }
func (c *Coupon) Code() Code              { return c.code }
func (c *Coupon) Discount() Discount      { return c.discount }
func (c *Coupon) ValidFrom() *time.Time   { return c.validFrom }
func (c *Coupon) ValidTo() *time.Time     { return c.validTo }
func (c *Coupon) MaxOrders() *int32       { return c.maxOrders }
func (c *Coupon) SuccessfulOrders() int32 { return c.successfulOrders }
func (c *Coupon) Active() bool            { return c.active }
func (c *Coupon) CreatedAt() time.Time    { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time    { return c.updatedAt }
