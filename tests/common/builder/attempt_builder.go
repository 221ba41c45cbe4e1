//go:build unit || e2e

package builder

import (
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/domain/bookingrecord"
	"hotel-checkout/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var DefaultNow = time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

type AttemptBuilder struct {
	ID              uuid.UUID
	Gateway         string
	OrderID         string
	Purpose         payment.Purpose
	Status          payment.Status
	Payload         booking.Payload
	Amount          decimal.Decimal
	Currency        string
	Coupon          *payment.Coupon
	OwnerID         *uuid.UUID
	TargetBookingID *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
	BookingID       *uuid.UUID
	FailureReason   *string

	SupplierConfirmation *bookingrecord.Confirmation
}

func NewAttemptBuilder() *AttemptBuilder {
	return &AttemptBuilder{
		ID:        uuid.New(),
		Gateway:   "vpos",
		OrderID:   "ord-1",
		Purpose:   payment.PurposeBooking,
		Status:    payment.StatusCreated,
		Payload:   *NewPayloadBuilder().BuildDomain(),
		Amount:    decimal.NewFromInt(10000),
		Currency:  "AMD",
		CreatedAt: DefaultNow,
		UpdatedAt: DefaultNow,
	}
}

func (b *AttemptBuilder) With(mutate func(*AttemptBuilder)) *AttemptBuilder {
	mutate(b)
	return b
}

// ForAddons turns the attempt into an add-on purchase for bookingID.
func (b *AttemptBuilder) ForAddons(bookingID uuid.UUID, addons booking.Addons) *AttemptBuilder {
	b.Purpose = payment.PurposeAddon
	b.TargetBookingID = &bookingID
	b.Payload = booking.Payload{Addons: addons}
	return b
}

func (b *AttemptBuilder) BuildDomain() *payment.Attempt {
	p := payment.ReconstructParams{
		ID:              b.ID,
		Gateway:         b.Gateway,
		OrderID:         b.OrderID,
		Purpose:         b.Purpose,
		Status:          b.Status,
		Amount:          b.Amount,
		Currency:        b.Currency,
		Payload:         b.Payload,
		Coupon:          b.Coupon,
		OwnerID:         b.OwnerID,
		TargetBookingID: b.TargetBookingID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		BookingID:       b.BookingID,
		FailureReason:   b.FailureReason,

		SupplierConfirmation: b.SupplierConfirmation,
	}
	if b.Purpose == payment.PurposeBooking {
		fp := booking.Fingerprint(&b.Payload)
		p.Fingerprint = &fp
		p.SessionID = b.Payload.SessionID
		p.HotelCode = b.Payload.HotelCode
		p.GroupCode = b.Payload.GroupCode
	} else {
		p.ServiceKeys = b.Payload.Addons.ServiceKeys()
	}
	return payment.Reconstruct(p)
}

type BookingRecordBuilder struct {
	ID           uuid.UUID
	AttemptID    uuid.UUID
	OwnerID      *uuid.UUID
	Status       bookingrecord.Status
	Payload      booking.Payload
	Confirmation bookingrecord.Confirmation
	Version      int32
	CreatedAt    time.Time
}

func NewBookingRecordBuilder() *BookingRecordBuilder {
	return &BookingRecordBuilder{
		ID:           uuid.New(),
		AttemptID:    uuid.New(),
		Status:       bookingrecord.StatusConfirmed,
		Payload:      *NewPayloadBuilder().BuildDomain(),
		Confirmation: bookingrecord.Confirmation{Code: "CONF-1", Reference: "REF-1", Status: "confirmed"},
		Version:      1,
		CreatedAt:    DefaultNow,
	}
}

func (b *BookingRecordBuilder) With(mutate func(*BookingRecordBuilder)) *BookingRecordBuilder {
	mutate(b)
	return b
}

func (b *BookingRecordBuilder) BuildDomain() *bookingrecord.Record {
	return bookingrecord.Reconstruct(bookingrecord.ReconstructParams{
		ID:           b.ID,
		AttemptID:    b.AttemptID,
		OwnerID:      b.OwnerID,
		Status:       b.Status,
		Payload:      b.Payload,
		Confirmation: b.Confirmation,
		Version:      b.Version,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.CreatedAt,
	})
}
