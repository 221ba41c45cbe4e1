package payment

import (
	"encoding/json"
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/domain/bookingrecord"
	"hotel-checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAmountMismatch   = errs.New("gateway amount does not match attempt")
	ErrCurrencyMismatch = errs.New("gateway currency does not match attempt")
	ErrInvalidAmount    = errs.New("attempt amount must be positive")
	ErrMissingOrderID   = errs.New("gateway order id is required")
)

// Coupon is the discount applied when the attempt was created.
type Coupon struct {
	Code     string          `json:"code"`
	Percent  decimal.Decimal `json:"percent"`
	Discount decimal.Decimal `json:"discount"`
	// OrderCounted flips once the coupon usage has been incremented.
	OrderCounted bool `json:"orderCounted"`
}

// SideEffectErrors are recorded on the attempt but never fail a booking.
type SideEffectErrors struct {
	Insurance *string
	Email     *string
	Coupon    *string
}

type Attempt struct {
	id              uuid.UUID
	gateway         string
	orderID         string
	purpose         Purpose
	status          Status
	fingerprint     *string
	sessionID       string
	hotelCode       string
	groupCode       string
	amount          decimal.Decimal
	currency        string
	payload         booking.Payload
	coupon          *Coupon
	ownerID         *uuid.UUID
	targetBookingID *uuid.UUID
	serviceKeys     []string
	createdAt       time.Time
	updatedAt       time.Time
	paidAt          *time.Time
	gatewayResponse json.RawMessage
	bookingID       *uuid.UUID
	bookingError    *string
	failureReason   *string
	sideEffects     SideEffectErrors

	// supplierConfirmation survives a failed booking-row write so a
	// recovered lock can finish without booking the stay twice.
	supplierConfirmation *bookingrecord.Confirmation
}

type NewBookingAttemptParams struct {
	Gateway  string
	OrderID  string
	Amount   decimal.Decimal
	Currency string
	Payload  booking.Payload
	Coupon   *Coupon
	OwnerID  *uuid.UUID
	Now      time.Time
}

// NewBookingAttempt starts a checkout for a fresh stay.
func NewBookingAttempt(p NewBookingAttemptParams) (*Attempt, error) {
	if err := validateNew(p.OrderID, p.Amount); err != nil {
		return nil, err
	}
	fp := booking.Fingerprint(&p.Payload)

	return &Attempt{
		id:          uuid.New(),
		gateway:     p.Gateway,
		orderID:     p.OrderID,
		purpose:     PurposeBooking,
		status:      StatusCreated,
		fingerprint: &fp,
		sessionID:   p.Payload.SessionID,
		hotelCode:   p.Payload.HotelCode,
		groupCode:   p.Payload.GroupCode,
		amount:      p.Amount,
		currency:    p.Currency,
		payload:     p.Payload,
		coupon:      p.Coupon,
		ownerID:     p.OwnerID,
		createdAt:   p.Now,
		updatedAt:   p.Now,
	}, nil
}

type NewAddonAttemptParams struct {
	Gateway         string
	OrderID         string
	Amount          decimal.Decimal
	Currency        string
	TargetBookingID uuid.UUID
	Addons          booking.Addons
	OwnerID         *uuid.UUID
	Now             time.Time
}

// NewAddonAttempt starts a checkout for services attached to an existing booking.
// The payload snapshot only carries the requested add-ons.
func NewAddonAttempt(p NewAddonAttemptParams) (*Attempt, error) {
	if err := validateNew(p.OrderID, p.Amount); err != nil {
		return nil, err
	}
	target := p.TargetBookingID

	return &Attempt{
		id:              uuid.New(),
		gateway:         p.Gateway,
		orderID:         p.OrderID,
		purpose:         PurposeAddon,
		status:          StatusCreated,
		amount:          p.Amount,
		currency:        p.Currency,
		payload:         booking.Payload{Addons: p.Addons},
		ownerID:         p.OwnerID,
		targetBookingID: &target,
		serviceKeys:     p.Addons.ServiceKeys(),
		createdAt:       p.Now,
		updatedAt:       p.Now,
	}, nil
}

func validateNew(orderID string, amount decimal.Decimal) error {
	if orderID == "" {
		return ErrMissingOrderID
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

type ReconstructParams struct {
	ID              uuid.UUID
	Gateway         string
	OrderID         string
	Purpose         Purpose
	Status          Status
	Fingerprint     *string
	SessionID       string
	HotelCode       string
	GroupCode       string
	Amount          decimal.Decimal
	Currency        string
	Payload         booking.Payload
	Coupon          *Coupon
	OwnerID         *uuid.UUID
	TargetBookingID *uuid.UUID
	ServiceKeys     []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PaidAt          *time.Time
	GatewayResponse json.RawMessage
	BookingID       *uuid.UUID
	BookingError    *string
	FailureReason   *string
	SideEffects     SideEffectErrors

	SupplierConfirmation *bookingrecord.Confirmation
}

func Reconstruct(p ReconstructParams) *Attempt {
	return &Attempt{
		id:              p.ID,
		gateway:         p.Gateway,
		orderID:         p.OrderID,
		purpose:         p.Purpose,
		status:          p.Status,
		fingerprint:     p.Fingerprint,
		sessionID:       p.SessionID,
		hotelCode:       p.HotelCode,
		groupCode:       p.GroupCode,
		amount:          p.Amount,
		currency:        p.Currency,
		payload:         p.Payload,
		coupon:          p.Coupon,
		ownerID:         p.OwnerID,
		targetBookingID: p.TargetBookingID,
		serviceKeys:     p.ServiceKeys,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
		paidAt:          p.PaidAt,
		gatewayResponse: p.GatewayResponse,
		bookingID:       p.BookingID,
		bookingError:    p.BookingError,
		failureReason:   p.FailureReason,
		sideEffects:     p.SideEffects,

		supplierConfirmation: p.SupplierConfirmation,
	}
}

// VerifyPaid checks the gateway-reported charge against what the attempt
// recorded at creation. Any nonzero delta is a mismatch.
func (a *Attempt) VerifyPaid(amount decimal.Decimal, currency string) error {
	if !amount.Equal(a.amount) {
		return errs.Wrapf(ErrAmountMismatch, "expected %s got %s", a.amount.String(), amount.String())
	}
	if currency != a.currency {
		return errs.Wrapf(ErrCurrencyMismatch, "expected %s got %s", a.currency, currency)
	}
	return nil
}

// IsStale reports whether an in-progress lock has outlived threshold.
func (a *Attempt) IsStale(now time.Time, threshold time.Duration) bool {
	return a.status == StatusBookingInProgress && now.Sub(a.updatedAt) > threshold
}

func (a *Attempt) IsFresh(now time.Time, window time.Duration) bool {
	return now.Sub(a.createdAt) <= window
}

func (a *Attempt) ID() uuid.UUID                    { return a.id }
func (a *Attempt) Gateway() string                  { return a.gateway }
func (a *Attempt) OrderID() string                  { return a.orderID }
func (a *Attempt) Purpose() Purpose                 { return a.purpose }
func (a *Attempt) Status() Status                   { return a.status }
func (a *Attempt) Fingerprint() *string             { return a.fingerprint }
func (a *Attempt) SessionID() string                { return a.sessionID }
func (a *Attempt) HotelCode() string                { return a.hotelCode }
func (a *Attempt) GroupCode() string                { return a.groupCode }
func (a *Attempt) Amount() decimal.Decimal          { return a.amount }
func (a *Attempt) Currency() string                 { return a.currency }
func (a *Attempt) Payload() booking.Payload         { return a.payload }
func (a *Attempt) Coupon() *Coupon                  { return a.coupon }
func (a *Attempt) OwnerID() *uuid.UUID              { return a.ownerID }
func (a *Attempt) TargetBookingID() *uuid.UUID      { return a.targetBookingID }
func (a *Attempt) ServiceKeys() []string            { return a.serviceKeys }
func (a *Attempt) CreatedAt() time.Time             { return a.createdAt }
func (a *Attempt) UpdatedAt() time.Time             { return a.updatedAt }
func (a *Attempt) PaidAt() *time.Time               { return a.paidAt }
func (a *Attempt) GatewayResponse() json.RawMessage { return a.gatewayResponse }
func (a *Attempt) BookingID() *uuid.UUID            { return a.bookingID }
func (a *Attempt) BookingError() *string            { return a.bookingError }
func (a *Attempt) FailureReason() *string           { return a.failureReason }
func (a *Attempt) SideEffects() SideEffectErrors    { return a.sideEffects }

func (a *Attempt) SupplierConfirmation() *bookingrecord.Confirmation {
	return a.supplierConfirmation
}
