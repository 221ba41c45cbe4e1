// Package supplier talks to the hotel inventory provider.
package supplier

import (
	"context"
	"log/slog"
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/domain/bookingrecord"
	"hotel-checkout/internal/infra/httpx"
	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/usecase/commands"
)

var ErrRejected = errs.New("supplier rejected the booking")

type roomRef struct {
	RoomID  string `json:"roomId"`
	RateKey string `json:"rateKey"`
}

type prebookRequest struct {
	SessionID string    `json:"sessionId"`
	HotelCode string    `json:"hotelCode"`
	GroupCode string    `json:"groupCode"`
	CheckIn   string    `json:"checkIn"`
	CheckOut  string    `json:"checkOut"`
	Rooms     []roomRef `json:"rooms"`
}

type quotedRoom struct {
	RoomID  string        `json:"roomId"`
	RateKey string        `json:"rateKey"`
	Price   booking.Price `json:"price"`
}

type prebookResponse struct {
	Bookable     bool         `json:"bookable"`
	PriceChanged bool         `json:"priceChanged"`
	Currency     string       `json:"currency"`
	Rooms        []quotedRoom `json:"rooms"`
}

type bookResponse struct {
	Success      bool                       `json:"success"`
	Confirmation bookingrecord.Confirmation `json:"confirmation"`
	Error        *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type Client struct {
	http *httpx.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{http: httpx.NewClient(cfg.Supplier.BaseURL, cfg.Supplier.APIKey, cfg.Supplier.Timeout)}
}

func (c *Client) Prebook(ctx context.Context, req commands.SupplierPrebookRequest) (*commands.SupplierQuote, error) {
	body := prebookRequest{
		SessionID: req.SessionID,
		HotelCode: req.HotelCode,
		GroupCode: req.GroupCode,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
	}
	for _, r := range req.Rooms {
		body.Rooms = append(body.Rooms, roomRef{RoomID: r.RoomID, RateKey: r.RateKey})
	}

	var resp prebookResponse
	if err := c.http.PostJSON(ctx, "/prebook", body, &resp); err != nil {
		return nil, err
	}

	quote := &commands.SupplierQuote{
		Bookable:     resp.Bookable,
		PriceChanged: resp.PriceChanged,
		Currency:     resp.Currency,
	}
	for _, r := range resp.Rooms {
		quote.Rooms = append(quote.Rooms, commands.QuotedRoom{RoomID: r.RoomID, RateKey: r.RateKey, Price: r.Price})
	}
	return quote, nil
}

// Book places the reservation. A declined booking is an error carrying the
// supplier's own message.
func (c *Client) Book(ctx context.Context, p booking.Payload) (*commands.SupplierBookingResult, error) {
	start := time.Now()
	var resp bookResponse
	if err := c.http.PostJSON(ctx, "/book", p, &resp); err != nil {
		return nil, err
	}
	slog.Info("supplier book answered",
		"hotel_code", p.HotelCode,
		"success", resp.Success,
		"duration", time.Since(start),
	)

	if !resp.Success || resp.Confirmation.Code == "" {
		msg := "no confirmation code"
		if resp.Error != nil {
			msg = resp.Error.Code + ": " + resp.Error.Message
		}
		return nil, errs.Wrap(ErrRejected, msg)
	}
	return &commands.SupplierBookingResult{Confirmation: resp.Confirmation}, nil
}
