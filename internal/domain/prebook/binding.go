package prebook

import (
	"sort"
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/pkg/errs"
)

// DefaultValidityWindow is how long a quote may be used for checkout.
const DefaultValidityWindow = 10 * time.Minute

const requoteMessage = "Your rate selection expired or changed, please re-quote"

var (
	ErrMissing                   = errs.NewCoded(errs.ErrValidation, "prebook_missing", requoteMessage)
	ErrExpired                   = errs.NewCoded(errs.ErrValidation, "prebook_expired", requoteMessage)
	ErrMismatch                  = errs.NewCoded(errs.ErrValidation, "prebook_mismatch", requoteMessage)
	ErrNotBookable               = errs.NewCoded(errs.ErrValidation, "rate_not_bookable", "The selected rate is no longer bookable, please re-quote")
	ErrPriceChangeUnacknowledged = errs.NewCoded(errs.ErrValidation, "price_change_unacknowledged", "The price changed since your quote, please confirm the new price")
)

// Binding records what the supplier confirmed at quote time. It only stores
// fingerprints of rate keys.
type Binding struct {
	SessionID        string    `json:"sessionId"`
	HotelCode        string    `json:"hotelCode"`
	GroupCode        string    `json:"groupCode"`
	RateFingerprints []string  `json:"rateFingerprints"`
	Bookable         bool      `json:"bookable"`
	PriceChanged     bool      `json:"priceChanged"`
	CreatedAt        time.Time `json:"createdAt"`
}

func NewBinding(sessionID, hotelCode, groupCode string, rateKeys []string, bookable, priceChanged bool, now time.Time) *Binding {
	fps := make([]string, 0, len(rateKeys))
	for _, k := range rateKeys {
		fps = append(fps, booking.RateFingerprint(k))
	}
	sort.Strings(fps)

	return &Binding{
		SessionID:        sessionID,
		HotelCode:        hotelCode,
		GroupCode:        groupCode,
		RateFingerprints: fps,
		Bookable:         bookable,
		PriceChanged:     priceChanged,
		CreatedAt:        now,
	}
}

func (b *Binding) ExpiresAt(window time.Duration) time.Time {
	return b.CreatedAt.Add(window)
}

func (b *Binding) IsExpired(now time.Time, window time.Duration) bool {
	return now.Sub(b.CreatedAt) > window
}

// Verify checks that p is exactly what was quoted and the quote is still usable.
func (b *Binding) Verify(p *booking.Payload, now time.Time, window time.Duration) error {
	if b == nil {
		return ErrMissing
	}
	if b.IsExpired(now, window) {
		return ErrExpired
	}
	if b.SessionID != p.SessionID || b.HotelCode != p.HotelCode || b.GroupCode != p.GroupCode {
		return ErrMismatch
	}
	if !sameSet(b.RateFingerprints, p.RateFingerprints()) {
		return ErrMismatch
	}
	if !b.Bookable {
		return ErrNotBookable
	}
	if b.PriceChanged && !p.PriceChangeAcknowledged {
		return ErrPriceChangeUnacknowledged
	}
	return nil
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[s]++
	}
	for _, s := range b {
		counts[s]--
		if counts[s] < 0 {
			return false
		}
	}
	return true
}
