package queries

import (
	"time"

	"hotel-checkout/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	FullName string    `json:"full_name"`
	IsActive bool      `json:"is_active"`
}

// AttemptView is what a client polling after a 409 needs to know.
type AttemptView struct {
	ID              uuid.UUID       `json:"id"`
	Gateway         string          `json:"gateway"`
	OrderID         string          `json:"order_id"`
	Purpose         string          `json:"purpose"`
	Status          string          `json:"status"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	OwnerID         *uuid.UUID      `json:"-"`
	BookingID       *uuid.UUID      `json:"booking_id,omitempty"`
	TargetBookingID *uuid.UUID      `json:"target_booking_id,omitempty"`
	BookingError    *string         `json:"booking_error,omitempty"`
	FailureReason   *string         `json:"failure_reason,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ConfirmationView struct {
	Code      string `json:"code"`
	Reference string `json:"reference,omitempty"`
	Status    string `json:"status,omitempty"`
}

type PolicyView struct {
	Number   string          `json:"number"`
	Provider string          `json:"provider,omitempty"`
	Premium  decimal.Decimal `json:"premium"`
	Currency string          `json:"currency"`
	IssuedAt time.Time       `json:"issued_at"`
}

type SupportEntryView struct {
	At      time.Time      `json:"at"`
	ActorID uuid.UUID      `json:"actorId"`
	Action  string         `json:"action"`
	Changes map[string]any `json:"changes,omitempty"`
	Reason  string         `json:"reason,omitempty"`
}

type BookingView struct {
	ID             uuid.UUID          `json:"id"`
	AttemptID      uuid.UUID          `json:"attempt_id"`
	OwnerID        *uuid.UUID         `json:"-"`
	Status         string             `json:"status"`
	Payload        booking.Payload    `json:"payload"`
	Confirmation   ConfirmationView   `json:"confirmation"`
	Policies       []PolicyView       `json:"policies"`
	SupportHistory []SupportEntryView `json:"support_history"`
	Version        int32              `json:"version"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

type BookingListItem struct {
	ID               uuid.UUID `json:"id"`
	Status           string    `json:"status"`
	HotelCode        string    `json:"hotel_code"`
	HotelName        string    `json:"hotel_name,omitempty"`
	CheckIn          string    `json:"check_in"`
	CheckOut         string    `json:"check_out"`
	ConfirmationCode string    `json:"confirmation_code"`
	CreatedAt        time.Time `json:"created_at"`
}
