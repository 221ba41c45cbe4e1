package response

import (
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

// Amounts leave the API as fixed two-decimal strings.
var copyOption = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(decimal.Decimal).StringFixed(2), nil
			},
		},
	},
}

type AttemptResponse struct {
	ID              uuid.UUID  `json:"id"`
	Gateway         string     `json:"gateway"`
	OrderID         string     `json:"orderId"`
	Purpose         string     `json:"purpose"`
	Status          string     `json:"status"`
	Amount          string     `json:"amount"`
	Currency        string     `json:"currency"`
	BookingID       *uuid.UUID `json:"bookingId,omitempty"`
	TargetBookingID *uuid.UUID `json:"targetBookingId,omitempty"`
	BookingError    *string    `json:"bookingError,omitempty"`
	FailureReason   *string    `json:"failureReason,omitempty"`
	PaidAt          *time.Time `json:"paidAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func FromAttemptView(v *queries.AttemptView) (*AttemptResponse, error) {
	var res AttemptResponse
	if err := copier.CopyWithOption(&res, v, copyOption); err != nil {
		return nil, err
	}
	return &res, nil
}

type ConfirmationResponse struct {
	Code      string `json:"code"`
	Reference string `json:"reference,omitempty"`
	Status    string `json:"status,omitempty"`
}

type PolicyResponse struct {
	Number   string    `json:"number"`
	Provider string    `json:"provider,omitempty"`
	Premium  string    `json:"premium"`
	Currency string    `json:"currency"`
	IssuedAt time.Time `json:"issuedAt"`
}

type SupportEntryResponse struct {
	At      time.Time      `json:"at"`
	ActorID uuid.UUID      `json:"actorId"`
	Action  string         `json:"action"`
	Changes map[string]any `json:"changes,omitempty"`
	Reason  string         `json:"reason,omitempty"`
}

type BookingResponse struct {
	ID             uuid.UUID              `json:"id"`
	AttemptID      uuid.UUID              `json:"attemptId"`
	Status         string                 `json:"status"`
	Payload        booking.Payload        `json:"payload" copier:"-"`
	Confirmation   ConfirmationResponse   `json:"confirmation"`
	Policies       []PolicyResponse       `json:"policies"`
	SupportHistory []SupportEntryResponse `json:"supportHistory"`
	Version        int32                  `json:"version"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var res BookingResponse
	if err := copier.CopyWithOption(&res, v, copyOption); err != nil {
		return nil, err
	}
	res.Payload = v.Payload
	if res.Policies == nil {
		res.Policies = []PolicyResponse{}
	}
	if res.SupportHistory == nil {
		res.SupportHistory = []SupportEntryResponse{}
	}
	return &res, nil
}

type BookingListItemResponse struct {
	ID               uuid.UUID `json:"id"`
	Status           string    `json:"status"`
	HotelCode        string    `json:"hotelCode"`
	HotelName        string    `json:"hotelName,omitempty"`
	CheckIn          string    `json:"checkIn"`
	CheckOut         string    `json:"checkOut"`
	ConfirmationCode string    `json:"confirmationCode"`
	CreatedAt        time.Time `json:"createdAt"`
}

func FromBookingList(items []*queries.BookingListItem) ([]*BookingListItemResponse, error) {
	res := make([]*BookingListItemResponse, 0, len(items))
	if err := copier.Copy(&res, items); err != nil {
		return nil, err
	}
	return res, nil
}
