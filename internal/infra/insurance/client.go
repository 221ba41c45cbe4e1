// Package insurance issues travel policies for bookings with an insurance add-on.
package insurance

import (
	"context"
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/domain/bookingrecord"
	"hotel-checkout/internal/infra/httpx"
	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type insured struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       *int   `json:"age,omitempty"`
}

type policyRequest struct {
	ProductKey      string    `json:"productKey"`
	DestinationCode string    `json:"destinationCode"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	Insured         []insured `json:"insured"`
	Email           string    `json:"email"`
}

type policyResponse struct {
	Policies []struct {
		Number   string          `json:"number"`
		Provider string          `json:"provider"`
		Premium  decimal.Decimal `json:"premium"`
		Currency string          `json:"currency"`
	} `json:"policies"`
}

type Client struct {
	http *httpx.Client
	now  func() time.Time
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		http: httpx.NewClient(cfg.Insurance.BaseURL, cfg.Insurance.APIKey, cfg.Insurance.Timeout),
		now:  time.Now,
	}
}

// IssuePolicies issues one policy per guest for the stay.
func (c *Client) IssuePolicies(ctx context.Context, p booking.Payload) ([]bookingrecord.Policy, error) {
	if p.Addons.Insurance == nil {
		return nil, nil
	}

	req := policyRequest{
		ProductKey:      p.Addons.Insurance.Key,
		DestinationCode: p.DestinationCode,
		StartDate:       p.CheckIn,
		EndDate:         p.CheckOut,
		Email:           p.Contact.Email,
	}
	for _, r := range p.Rooms {
		for _, g := range r.Guests {
			req.Insured = append(req.Insured, insured{FirstName: g.FirstName, LastName: g.LastName, Age: g.Age})
		}
	}

	var resp policyResponse
	if err := c.http.PostJSON(ctx, "/policies", req, &resp); err != nil {
		return nil, errs.Wrap(err, "issue insurance policies")
	}
	if len(resp.Policies) == 0 {
		return nil, errs.New("insurer returned no policies")
	}

	issuedAt := c.now().UTC()
	policies := make([]bookingrecord.Policy, 0, len(resp.Policies))
	for _, pol := range resp.Policies {
		policies = append(policies, bookingrecord.Policy{
			Number:   pol.Number,
			Provider: pol.Provider,
			Premium:  pol.Premium,
			Currency: pol.Currency,
			IssuedAt: issuedAt,
		})
	}
	return policies, nil
}
