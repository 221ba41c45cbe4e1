// Package payload turns an untrusted booking request into a canonical
// booking.Payload.
package payload

import (
	"context"
	"reflect"
	"strings"
	"time"

	"hotel-checkout/internal/domain/booking"
	reqdto "hotel-checkout/internal/handler/dto/request"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/pkg/money"
	"hotel-checkout/internal/pkg/ratetoken"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const requote = "Your rate selection is no longer valid, please re-quote"

var (
	ErrInvalidPayload       = errs.NewCoded(errs.ErrValidation, "invalid_payload", "Booking details are incomplete or invalid")
	ErrSessionRequired      = errs.NewCoded(errs.ErrValidation, "session_required", "Search session is missing, please search again")
	ErrGroupRequired        = errs.NewCoded(errs.ErrValidation, "group_required", "Rate group is missing, please re-quote")
	ErrInvalidStayDates     = errs.NewCoded(errs.ErrValidation, "invalid_stay_dates", "Check-out must be after check-in")
	ErrOccupancyExceeded    = errs.NewCoded(errs.ErrValidation, "occupancy_exceeded", "A room lists more guests than it sleeps")
	ErrInvalidPrice         = errs.NewCoded(errs.ErrValidation, "invalid_price", "Room or service price is invalid")
	ErrRateTokenInvalid     = errs.NewCoded(errs.ErrValidation, "rate_token_invalid", requote)
	ErrRateTokenMismatch    = errs.NewCoded(errs.ErrValidation, "rate_token_mismatch", requote)
	ErrMixedRateKeys        = errs.NewCoded(errs.ErrValidation, "mixed_rate_keys", requote)
	ErrRateSelectionChanged = errs.NewCoded(errs.ErrValidation, "rate_selection_changed", "Rate selection changed, please re-quote")
)

type TokenParser interface {
	Parse(token string) (*ratetoken.Claims, error)
}

type Validator struct {
	validate *validator.Validate
	tokens   TokenParser
}

func NewValidator(tokens TokenParser) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v, tokens: tokens}
}

// Parse validates req and resolves every rate key. externalSessionID, when
// set, takes precedence over the session id carried in the body.
func (v *Validator) Parse(_ context.Context, req reqdto.BookingRequest, externalSessionID string) (*booking.Payload, error) {
	if err := v.validate.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}

	sessionID := strings.TrimSpace(externalSessionID)
	if sessionID == "" {
		sessionID = strings.TrimSpace(req.SessionID)
	}
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	if err := checkStay(req.CheckIn, req.CheckOut); err != nil {
		return nil, err
	}

	resolved, groupCode, err := v.resolveRateKeys(req, sessionID)
	if err != nil {
		return nil, err
	}

	p := &booking.Payload{
		SessionID:               sessionID,
		HotelCode:               strings.TrimSpace(req.HotelCode),
		HotelName:               strings.TrimSpace(req.HotelName),
		DestinationCode:         strings.TrimSpace(req.DestinationCode),
		GroupCode:               groupCode,
		Currency:                money.NormalizeCurrency(req.Currency),
		CheckIn:                 req.CheckIn,
		CheckOut:                req.CheckOut,
		Contact:                 booking.Contact{Email: strings.TrimSpace(req.Contact.Email), Phone: strings.TrimSpace(req.Contact.Phone)},
		PriceChangeAcknowledged: req.PriceChangeAcknowledged,
		Note:                    strings.TrimSpace(req.Note),
	}

	for i, rr := range req.Rooms {
		room, err := toRoom(rr, resolved[i])
		if err != nil {
			return nil, err
		}
		p.Rooms = append(p.Rooms, room)
	}

	addons, err := v.toAddons(req.Addons)
	if err != nil {
		return nil, err
	}
	p.Addons = addons

	p.AssignLeadGuest()
	return p, nil
}

// ParseAddons validates an add-on selection on its own, for add-on checkout.
func (v *Validator) ParseAddons(req reqdto.AddonsRequest) (booking.Addons, error) {
	if err := v.validate.Struct(req); err != nil {
		return booking.Addons{}, invalidPayload(err)
	}
	return v.toAddons(req)
}

// resolveRateKeys returns the supplier rate key of every room and the group
// code the payload belongs to. Rooms either all carry raw keys or all carry
// tokens quoted for this session and hotel.
func (v *Validator) resolveRateKeys(req reqdto.BookingRequest, sessionID string) ([]string, string, error) {
	tokenCount := 0
	for _, r := range req.Rooms {
		if ratetoken.IsToken(r.RateKey) {
			tokenCount++
		}
	}

	groupCode := strings.TrimSpace(req.GroupCode)
	keys := make([]string, len(req.Rooms))

	switch {
	case tokenCount == 0:
		if groupCode == "" {
			return nil, "", ErrGroupRequired
		}
		for i, r := range req.Rooms {
			keys[i] = strings.TrimSpace(r.RateKey)
		}
		return keys, groupCode, nil
	case tokenCount != len(req.Rooms):
		return nil, "", ErrMixedRateKeys
	}

	var first *ratetoken.Claims
	for i, r := range req.Rooms {
		claims, err := v.tokens.Parse(r.RateKey)
		if err != nil {
			return nil, "", ErrRateTokenInvalid
		}
		if claims.SessionID != sessionID || claims.HotelCode != strings.TrimSpace(req.HotelCode) {
			return nil, "", ErrRateTokenMismatch
		}
		if first == nil {
			first = claims
		} else if claims.GroupCode != first.GroupCode || claims.SessionID != first.SessionID {
			return nil, "", ErrRateSelectionChanged
		}
		keys[i] = claims.RateKey
	}

	if groupCode != "" && groupCode != first.GroupCode {
		return nil, "", ErrRateSelectionChanged
	}
	return keys, first.GroupCode, nil
}

func checkStay(checkIn, checkOut string) error {
	in, err := time.Parse(time.DateOnly, checkIn)
	if err != nil {
		return ErrInvalidStayDates
	}
	out, err := time.Parse(time.DateOnly, checkOut)
	if err != nil {
		return ErrInvalidStayDates
	}
	if !out.After(in) {
		return ErrInvalidStayDates
	}
	return nil
}

func toRoom(rr reqdto.RoomRequest, rateKey string) (booking.Room, error) {
	if len(rr.Guests) > rr.Adults+len(rr.ChildrenAges) {
		return booking.Room{}, ErrOccupancyExceeded
	}

	price, err := toPrice(rr.Price)
	if err != nil {
		return booking.Room{}, err
	}

	room := booking.Room{
		RoomID:       strings.TrimSpace(rr.RoomID),
		Adults:       rr.Adults,
		ChildrenAges: rr.ChildrenAges,
		RateKey:      rateKey,
		Price:        price,
	}
	for _, g := range rr.Guests {
		room.Guests = append(room.Guests, booking.Guest{
			FirstName: strings.TrimSpace(g.FirstName),
			LastName:  strings.TrimSpace(g.LastName),
			Type:      guestType(g),
			Age:       g.Age,
			Lead:      g.Lead,
		})
	}
	return room, nil
}

func guestType(g reqdto.GuestRequest) booking.GuestType {
	switch booking.GuestType(g.Type) {
	case booking.GuestAdult, booking.GuestChild:
		return booking.GuestType(g.Type)
	}
	if g.Age != nil && *g.Age < 18 {
		return booking.GuestChild
	}
	return booking.GuestAdult
}

func toPrice(pr reqdto.PriceRequest) (booking.Price, error) {
	gross, err := nonNegative(pr.Gross)
	if err != nil {
		return booking.Price{}, err
	}
	net, err := nonNegative(pr.Net)
	if err != nil {
		return booking.Price{}, err
	}
	tax, err := nonNegative(pr.Tax)
	if err != nil {
		return booking.Price{}, err
	}
	return booking.Price{Gross: gross, Net: net, Tax: tax}, nil
}

func nonNegative(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return d, nil
}

func (v *Validator) toAddons(req reqdto.AddonsRequest) (booking.Addons, error) {
	var out booking.Addons
	var err error

	if req.Transfer != nil {
		if out.Transfer, err = toServicePtr(*req.Transfer); err != nil {
			return booking.Addons{}, err
		}
	}
	if req.Insurance != nil {
		if out.Insurance, err = toServicePtr(*req.Insurance); err != nil {
			return booking.Addons{}, err
		}
	}
	for _, s := range req.Excursions {
		svc, err := toService(s)
		if err != nil {
			return booking.Addons{}, err
		}
		out.Excursions = append(out.Excursions, svc)
	}
	for _, s := range req.Flights {
		svc, err := toService(s)
		if err != nil {
			return booking.Addons{}, err
		}
		out.Flights = append(out.Flights, svc)
	}
	return out, nil
}

func toService(s reqdto.ServiceRequest) (booking.Service, error) {
	price, err := nonNegative(s.Price)
	if err != nil {
		return booking.Service{}, err
	}
	return booking.Service{
		Key:      strings.TrimSpace(s.Key),
		Name:     strings.TrimSpace(s.Name),
		Price:    price,
		Currency: money.NormalizeCurrency(s.Currency),
	}, nil
}

func toServicePtr(s reqdto.ServiceRequest) (*booking.Service, error) {
	svc, err := toService(s)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func invalidPayload(err error) error {
	var verrs validator.ValidationErrors
	if !errs.As(err, &verrs) || len(verrs) == 0 {
		return ErrInvalidPayload
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = fe.Tag()
	}
	first := verrs[0]
	return ErrInvalidPayload.
		WithMessage(fieldPath(first) + " is " + describe(first)).
		WithDetail(map[string]any{"fields": fields})
}

// fieldPath drops the root struct name: "BookingRequest.rooms[0].guests" -> "rooms[0].guests".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return "below the minimum of " + fe.Param()
	case "max":
		return "above the maximum of " + fe.Param()
	case "email":
		return "not a valid email"
	case "datetime":
		return "not a date in YYYY-MM-DD format"
	case "oneof":
		return "not one of " + fe.Param()
	default:
		return "invalid"
	}
}
