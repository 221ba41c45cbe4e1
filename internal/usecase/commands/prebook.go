package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/domain/prebook"
	reqdto "hotel-checkout/internal/handler/dto/request"
	"hotel-checkout/internal/pkg/clock"
	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/pkg/ratetoken"
	"hotel-checkout/internal/usecase/payload"
	"hotel-checkout/internal/usecase/shared"
)

var (
	ErrSupplierUnavailable = errs.NewCoded(errs.ErrUnavailable, "supplier_unavailable", "Hotel provider is not responding, please try again")
	ErrQuoteIncomplete     = errs.NewCoded(errs.ErrUnavailable, "quote_incomplete", "Hotel provider did not confirm every room, please search again")
)

type PrebookResult struct {
	SessionID    string
	HotelCode    string
	GroupCode    string
	Bookable     bool
	PriceChanged bool
	Currency     string
	ExpiresAt    time.Time
	Rooms        []PrebookRoom
}

type PrebookRoom struct {
	RoomID    string
	RateToken string
	Price     booking.Price
}

type PrebookCommands interface {
	Prebook(ctx context.Context, actor *shared.Actor, req reqdto.PrebookRequest, sessionID string) (*PrebookResult, error)
}

type prebookCommandsImpl struct {
	supplier Supplier
	store    PrebookStore
	signer   RateTokenSigner
	window   time.Duration
	clock    clock.Clock
}

func NewPrebookCommands(supplier Supplier, store PrebookStore, signer RateTokenSigner, cfg config.Config, clk clock.Clock) PrebookCommands {
	window := cfg.Checkout.QuoteWindow
	if window <= 0 {
		window = prebook.DefaultValidityWindow
	}
	return &prebookCommandsImpl{
		supplier: supplier,
		store:    store,
		signer:   signer,
		window:   window,
		clock:    clk,
	}
}

// Prebook asks the supplier to confirm the selected rates, remembers what it
// confirmed and hands back a signed token per room for checkout.
func (p *prebookCommandsImpl) Prebook(ctx context.Context, actor *shared.Actor, req reqdto.PrebookRequest, sessionID string) (*PrebookResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = strings.TrimSpace(req.SessionID)
	}
	if sessionID == "" {
		return nil, payload.ErrSessionRequired
	}

	supplierReq := SupplierPrebookRequest{
		SessionID: sessionID,
		HotelCode: strings.TrimSpace(req.HotelCode),
		GroupCode: strings.TrimSpace(req.GroupCode),
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
	}
	for _, r := range req.Rooms {
		supplierReq.Rooms = append(supplierReq.Rooms, SupplierRoomRef{RoomID: r.RoomID, RateKey: r.RateKey})
	}

	quote, err := p.supplier.Prebook(ctx, supplierReq)
	if err != nil {
		slog.Warn("supplier prebook failed", "hotel_code", supplierReq.HotelCode, "session_id", sessionID, "error", err.Error())
		return nil, errs.Wrap(ErrSupplierUnavailable, err.Error())
	}
	if len(quote.Rooms) != len(req.Rooms) {
		return nil, ErrQuoteIncomplete
	}

	now := p.clock.Now()
	rateKeys := make([]string, 0, len(quote.Rooms))
	for _, r := range quote.Rooms {
		rateKeys = append(rateKeys, r.RateKey)
	}
	binding := prebook.NewBinding(sessionID, supplierReq.HotelCode, supplierReq.GroupCode, rateKeys, quote.Bookable, quote.PriceChanged, now)

	// Redis evicts later than the window so Verify, not a missing key, reports expiry.
	if err := p.store.Save(ctx, binding, 2*p.window); err != nil {
		return nil, errs.Wrap(err, "save prebook binding")
	}

	result := &PrebookResult{
		SessionID:    sessionID,
		HotelCode:    binding.HotelCode,
		GroupCode:    binding.GroupCode,
		Bookable:     quote.Bookable,
		PriceChanged: quote.PriceChanged,
		Currency:     quote.Currency,
		ExpiresAt:    binding.ExpiresAt(p.window),
	}
	for _, r := range quote.Rooms {
		token, err := p.signer.Sign(ratetoken.Claims{
			RateKey:   r.RateKey,
			SessionID: sessionID,
			HotelCode: binding.HotelCode,
			GroupCode: binding.GroupCode,
		}, p.window)
		if err != nil {
			return nil, errs.Wrap(err, "sign rate token")
		}
		result.Rooms = append(result.Rooms, PrebookRoom{RoomID: r.RoomID, RateToken: token, Price: r.Price})
	}

	slog.Info("prebook stored",
		"session_id", sessionID,
		"hotel_code", binding.HotelCode,
		"group_code", binding.GroupCode,
		"rooms", len(result.Rooms),
		"bookable", quote.Bookable,
		"price_changed", quote.PriceChanged,
		"user_id", actor.IDPtr(),
	)
	return result, nil
}
