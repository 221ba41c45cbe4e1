package booking

import (
	"sort"

	"github.com/shopspring/decimal"
)

type GuestType string

const (
	GuestAdult GuestType = "adult"
	GuestChild GuestType = "child"
)

type Guest struct {
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Type      GuestType `json:"type"`
	Age       *int      `json:"age,omitempty"`
	Lead      bool      `json:"lead"`
}

type Price struct {
	Gross decimal.Decimal `json:"gross"`
	Net   decimal.Decimal `json:"net"`
	Tax   decimal.Decimal `json:"tax"`
}

type Room struct {
	RoomID       string  `json:"roomId"`
	Adults       int     `json:"adults"`
	ChildrenAges []int   `json:"childrenAges,omitempty"`
	RateKey      string  `json:"rateKey"`
	Price        Price   `json:"price"`
	Guests       []Guest `json:"guests"`
}

type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Payload is the validated booking request. It is also the snapshot persisted
// on the payment attempt and later on the booking record.
type Payload struct {
	SessionID               string  `json:"sessionId"`
	HotelCode               string  `json:"hotelCode"`
	HotelName               string  `json:"hotelName,omitempty"`
	DestinationCode         string  `json:"destinationCode"`
	GroupCode               string  `json:"groupCode"`
	Currency                string  `json:"currency"`
	CheckIn                 string  `json:"checkIn"`
	CheckOut                string  `json:"checkOut"`
	Rooms                   []Room  `json:"rooms"`
	Addons                  Addons  `json:"addons"`
	Contact                 Contact `json:"contact"`
	PriceChangeAcknowledged bool    `json:"priceChangeAcknowledged"`
	Note                    string  `json:"note,omitempty"`
}

func (p *Payload) RateKeys() []string {
	keys := make([]string, 0, len(p.Rooms))
	for _, r := range p.Rooms {
		keys = append(keys, r.RateKey)
	}
	return keys
}

// RateFingerprints returns the sorted fingerprints of every room's rate key.
func (p *Payload) RateFingerprints() []string {
	fps := make([]string, 0, len(p.Rooms))
	for _, r := range p.Rooms {
		fps = append(fps, RateFingerprint(r.RateKey))
	}
	sort.Strings(fps)
	return fps
}

func (p *Payload) RoomsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, r := range p.Rooms {
		total = total.Add(r.Price.Gross)
	}
	return total
}

// TotalsByCurrency is the amount due per pricing currency: rooms in
// Currency, every add-on in its own. Amounts in different currencies are
// never added together before conversion.
func (p *Payload) TotalsByCurrency() map[string]decimal.Decimal {
	totals := p.Addons.TotalsByCurrency(p.Currency)
	totals[p.Currency] = totals[p.Currency].Add(p.RoomsTotal())
	return totals
}

func (p *Payload) GuestCount() int {
	n := 0
	for _, r := range p.Rooms {
		n += len(r.Guests)
	}
	return n
}

// LeadGuest returns the guest flagged as lead, if any.
func (p *Payload) LeadGuest() (Guest, bool) {
	for _, r := range p.Rooms {
		for _, g := range r.Guests {
			if g.Lead {
				return g, true
			}
		}
	}
	return Guest{}, false
}

// AssignLeadGuest leaves exactly one lead guest across all rooms: the first
// explicitly flagged guest, else the first adult, else the very first guest.
func (p *Payload) AssignLeadGuest() {
	roomIdx, guestIdx := -1, -1

	find := func(match func(Guest) bool) bool {
		for ri, r := range p.Rooms {
			for gi, g := range r.Guests {
				if match(g) {
					roomIdx, guestIdx = ri, gi
					return true
				}
			}
		}
		return false
	}

	if !find(func(g Guest) bool { return g.Lead }) &&
		!find(func(g Guest) bool { return g.Type == GuestAdult }) &&
		!find(func(Guest) bool { return true }) {
		return
	}

	for ri := range p.Rooms {
		for gi := range p.Rooms[ri].Guests {
			p.Rooms[ri].Guests[gi].Lead = ri == roomIdx && gi == guestIdx
		}
	}
}
