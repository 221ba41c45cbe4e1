package commands

import (
	"context"
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/domain/bookingrecord"
	"hotel-checkout/internal/domain/prebook"
	"hotel-checkout/internal/pkg/ratetoken"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supplier is the hotel inventory provider.
type Supplier interface {
	Prebook(ctx context.Context, req SupplierPrebookRequest) (*SupplierQuote, error)
	Book(ctx context.Context, p booking.Payload) (*SupplierBookingResult, error)
}

type SupplierRoomRef struct {
	RoomID  string
	RateKey string
}

type SupplierPrebookRequest struct {
	SessionID string
	HotelCode string
	GroupCode string
	CheckIn   string
	CheckOut  string
	Rooms     []SupplierRoomRef
}

type QuotedRoom struct {
	RoomID  string
	RateKey string
	Price   booking.Price
}

type SupplierQuote struct {
	Bookable     bool
	PriceChanged bool
	Currency     string
	Rooms        []QuotedRoom
}

type SupplierBookingResult struct {
	Confirmation bookingrecord.Confirmation
}

type InsuranceIssuer interface {
	IssuePolicies(ctx context.Context, p booking.Payload) ([]bookingrecord.Policy, error)
}

type Mailer interface {
	SendBookingConfirmation(ctx context.Context, m BookingConfirmation) error
}

// BookingConfirmation is the event handed to the mail pipeline.
type BookingConfirmation struct {
	BookingID        uuid.UUID       `json:"bookingId"`
	AttemptID        uuid.UUID       `json:"attemptId"`
	Purpose          string          `json:"purpose"`
	Email            string          `json:"email"`
	GuestName        string          `json:"guestName"`
	HotelCode        string          `json:"hotelCode"`
	HotelName        string          `json:"hotelName,omitempty"`
	CheckIn          string          `json:"checkIn"`
	CheckOut         string          `json:"checkOut"`
	ConfirmationCode string          `json:"confirmationCode"`
	ServiceKeys      []string        `json:"serviceKeys,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
}

// CurrencyConverter reports ok=false when no rate is known for currency.
type CurrencyConverter interface {
	ConvertToSettlement(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, bool, error)
}

// PrebookStore returns a nil binding without error when none is stored.
type PrebookStore interface {
	Save(ctx context.Context, b *prebook.Binding, ttl time.Duration) error
	Get(ctx context.Context, sessionID, hotelCode, groupCode string) (*prebook.Binding, error)
}

type RateTokenSigner interface {
	Sign(claims ratetoken.Claims, ttl time.Duration) (string, error)
}
