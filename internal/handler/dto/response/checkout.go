package response

import (
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/gateway"
	"hotel-checkout/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PrebookRoomResponse struct {
	RoomID    string        `json:"roomId"`
	RateToken string        `json:"rateToken"`
	Price     booking.Price `json:"price"`
}

type PrebookResponse struct {
	SessionID    string                `json:"sessionId"`
	HotelCode    string                `json:"hotelCode"`
	GroupCode    string                `json:"groupCode"`
	Bookable     bool                  `json:"bookable"`
	PriceChanged bool                  `json:"priceChanged"`
	Currency     string                `json:"currency"`
	ExpiresAt    time.Time             `json:"expiresAt"`
	Rooms        []PrebookRoomResponse `json:"rooms"`
}

func FromPrebookResult(r *commands.PrebookResult) *PrebookResponse {
	res := &PrebookResponse{
		SessionID:    r.SessionID,
		HotelCode:    r.HotelCode,
		GroupCode:    r.GroupCode,
		Bookable:     r.Bookable,
		PriceChanged: r.PriceChanged,
		Currency:     r.Currency,
		ExpiresAt:    r.ExpiresAt,
		Rooms:        make([]PrebookRoomResponse, len(r.Rooms)),
	}
	for i, room := range r.Rooms {
		res.Rooms[i] = PrebookRoomResponse{RoomID: room.RoomID, RateToken: room.RateToken, Price: room.Price}
	}
	return res
}

// CheckoutResponse carries the form the browser posts to the payment page.
type CheckoutResponse struct {
	AttemptID uuid.UUID        `json:"attemptId"`
	Gateway   string           `json:"gateway"`
	OrderID   string           `json:"orderId"`
	Amount    decimal.Decimal  `json:"amount"`
	Currency  string           `json:"currency"`
	Discount  *decimal.Decimal `json:"discount,omitempty"`
	Redirect  gateway.Redirect `json:"redirect"`
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	res := &CheckoutResponse{
		AttemptID: r.AttemptID,
		Gateway:   r.Gateway,
		OrderID:   r.OrderID,
		Amount:    r.Amount,
		Currency:  r.Currency,
		Redirect:  r.Redirect,
	}
	if r.Discount.IsPositive() {
		d := r.Discount
		res.Discount = &d
	}
	return res
}
