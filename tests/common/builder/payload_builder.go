//go:build unit || e2e

package builder

import (
	"hotel-checkout/internal/domain/booking"
	reqdto "hotel-checkout/internal/handler/dto/request"

	"github.com/shopspring/decimal"
)

// PayloadBuilder produces the canonical scenario used across tests:
// session S, hotel H, group 7, two rooms with rate keys a and b, 10000 AMD.
type PayloadBuilder struct {
	SessionID       string
	HotelCode       string
	DestinationCode string
	GroupCode       string
	Currency        string
	CheckIn         string
	CheckOut        string
	RateKeys        []string
	RoomPrice       decimal.Decimal
	Addons          booking.Addons
	Acknowledged    bool
}

func NewPayloadBuilder() *PayloadBuilder {
	return &PayloadBuilder{
		SessionID:       "S",
		HotelCode:       "H",
		DestinationCode: "EVN",
		GroupCode:       "7",
		Currency:        "AMD",
		CheckIn:         "2026-07-01",
		CheckOut:        "2026-07-05",
		RateKeys:        []string{"a", "b"},
		RoomPrice:       decimal.NewFromInt(5000),
	}
}

func (b *PayloadBuilder) With(mutate func(*PayloadBuilder)) *PayloadBuilder {
	mutate(b)
	return b
}

func (b *PayloadBuilder) WithRateKeys(keys ...string) *PayloadBuilder {
	b.RateKeys = keys
	return b
}

func (b *PayloadBuilder) WithAddons(addons booking.Addons) *PayloadBuilder {
	b.Addons = addons
	return b
}

func (b *PayloadBuilder) BuildDomain() *booking.Payload {
	p := &booking.Payload{
		SessionID:               b.SessionID,
		HotelCode:               b.HotelCode,
		DestinationCode:         b.DestinationCode,
		GroupCode:               b.GroupCode,
		Currency:                b.Currency,
		CheckIn:                 b.CheckIn,
		CheckOut:                b.CheckOut,
		Addons:                  b.Addons,
		Contact:                 booking.Contact{Email: "guest@example.com"},
		PriceChangeAcknowledged: b.Acknowledged,
	}
	for i, key := range b.RateKeys {
		p.Rooms = append(p.Rooms, booking.Room{
			RoomID:  "room-" + string(rune('1'+i)),
			Adults:  1,
			RateKey: key,
			Price:   booking.Price{Gross: b.RoomPrice, Net: b.RoomPrice, Tax: decimal.Zero},
			Guests: []booking.Guest{
				{FirstName: "Ani", LastName: "Guest", Type: booking.GuestAdult, Lead: i == 0},
			},
		})
	}
	return p
}

// BuildRequest returns the HTTP form of the payload with raw rate keys.
func (b *PayloadBuilder) BuildRequest() reqdto.BookingRequest {
	req := reqdto.BookingRequest{
		HotelCode:               b.HotelCode,
		DestinationCode:         b.DestinationCode,
		GroupCode:               b.GroupCode,
		Currency:                b.Currency,
		CheckIn:                 b.CheckIn,
		CheckOut:                b.CheckOut,
		Contact:                 reqdto.ContactRequest{Email: "guest@example.com"},
		PriceChangeAcknowledged: b.Acknowledged,
	}
	for _, key := range b.RateKeys {
		req.Rooms = append(req.Rooms, reqdto.RoomRequest{
			RoomID:  "room",
			Adults:  1,
			RateKey: key,
			Price:   reqdto.PriceRequest{Gross: b.RoomPrice.String(), Net: b.RoomPrice.String(), Tax: "0"},
			Guests: []reqdto.GuestRequest{
				{FirstName: "Ani", LastName: "Guest", Type: "adult"},
			},
		})
	}
	return req
}
