package request

import "strings"

// Booking requests are decoded by the handler and validated by the payload
// validator, so their rules live under the `validate` tag.

type GuestRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Type      string `json:"type" validate:"omitempty,oneof=adult child"`
	Age       *int   `json:"age,omitempty" validate:"omitempty,min=0,max=120"`
	Lead      bool   `json:"lead"`
}

type PriceRequest struct {
	Gross string `json:"gross" validate:"required,numeric"`
	Net   string `json:"net" validate:"omitempty,numeric"`
	Tax   string `json:"tax" validate:"omitempty,numeric"`
}

type RoomRequest struct {
	RoomID       string         `json:"roomId" validate:"required,max=100"`
	Adults       int            `json:"adults" validate:"min=1,max=10"`
	ChildrenAges []int          `json:"childrenAges,omitempty" validate:"dive,min=0,max=17"`
	RateKey      string         `json:"rateKey" validate:"required"`
	Price        PriceRequest   `json:"price"`
	Guests       []GuestRequest `json:"guests" validate:"required,min=1,dive"`
}

type ServiceRequest struct {
	Key      string `json:"key" validate:"required,max=200"`
	Name     string `json:"name,omitempty" validate:"max=200"`
	Price    string `json:"price" validate:"required,numeric"`
	Currency string `json:"currency" validate:"required"`
}

type AddonsRequest struct {
	Transfer   *ServiceRequest  `json:"transfer,omitempty"`
	Excursions []ServiceRequest `json:"excursions,omitempty" validate:"dive"`
	Insurance  *ServiceRequest  `json:"insurance,omitempty"`
	Flights    []ServiceRequest `json:"flights,omitempty" validate:"dive"`
}

func (a AddonsRequest) IsEmpty() bool {
	return a.Transfer == nil && a.Insurance == nil && len(a.Excursions) == 0 && len(a.Flights) == 0
}

type ContactRequest struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

type BookingRequest struct {
	SessionID               string         `json:"sessionId,omitempty"`
	HotelCode               string         `json:"hotelCode" validate:"required,max=50"`
	HotelName               string         `json:"hotelName,omitempty" validate:"max=200"`
	DestinationCode         string         `json:"destinationCode" validate:"required,max=50"`
	GroupCode               string         `json:"groupCode,omitempty" validate:"max=50"`
	Currency                string         `json:"currency" validate:"required"`
	CheckIn                 string         `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut                string         `json:"checkOut" validate:"required,datetime=2006-01-02"`
	Rooms                   []RoomRequest  `json:"rooms" validate:"required,min=1,max=9,dive"`
	Addons                  AddonsRequest  `json:"addons"`
	Contact                 ContactRequest `json:"contact"`
	PriceChangeAcknowledged bool           `json:"priceChangeAcknowledged"`
	Note                    string         `json:"note,omitempty" validate:"max=1000"`
}

// CheckoutRequest is a booking plus the gateway to pay through.
type CheckoutRequest struct {
	BookingRequest
	Gateway    string  `json:"gateway" binding:"required,oneof=vpos ameria telcell"`
	CouponCode *string `json:"couponCode,omitempty"`
}

func (r CheckoutRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type AddonCheckoutRequest struct {
	Gateway string        `json:"gateway" binding:"required,oneof=vpos ameria telcell"`
	Addons  AddonsRequest `json:"addons"`
}
