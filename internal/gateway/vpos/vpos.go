// Package vpos talks to the ArCa virtual POS REST interface.
package vpos

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"hotel-checkout/internal/gateway"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/pkg/money"
)

const (
	Name = "vpos"

	registerPath = "/register.do"
	statusPath   = "/getOrderStatusExtended.do"

	// orderStatusDeposited is a completed charge.
	orderStatusDeposited = 2
)

type Credentials struct {
	Username string
	Password string
}

type Adapter struct {
	client *gateway.Client
	creds  Credentials
}

func New(client *gateway.Client, creds Credentials) *Adapter {
	return &Adapter{client: client, creds: creds}
}

func (a *Adapter) Name() string { return Name }

type registerResponse struct {
	OrderID      string             `json:"orderId"`
	FormURL      string             `json:"formUrl"`
	ErrorCode    gateway.FlexString `json:"errorCode"`
	ErrorMessage string             `json:"errorMessage"`
}

func (a *Adapter) CreateOrder(ctx context.Context, req gateway.OrderRequest) (*gateway.Order, error) {
	currency, ok := money.NumericFromAlpha(req.Currency)
	if !ok {
		return nil, errs.Wrapf(gateway.ErrOrderRejected, "vpos: unsupported currency %s", req.Currency)
	}

	form := a.auth()
	form.Set("orderNumber", req.BillNumber)
	form.Set("amount", strconv.FormatInt(money.ToMinor(req.Amount), 10))
	form.Set("currency", currency)
	form.Set("returnUrl", req.ReturnURL)
	form.Set("description", req.Description)
	if req.Language != "" {
		form.Set("language", req.Language)
	}

	var resp registerResponse
	if _, err := a.client.PostForm(ctx, registerPath, form, &resp); err != nil {
		return nil, err
	}
	if !isOK(resp.ErrorCode) || resp.OrderID == "" || resp.FormURL == "" {
		return nil, errs.Wrapf(gateway.ErrOrderRejected, "vpos register: code=%s %s", resp.ErrorCode, resp.ErrorMessage)
	}

	redirect, err := splitFormURL(resp.FormURL)
	if err != nil {
		return nil, errs.Wrapf(gateway.ErrOrderRejected, "vpos formUrl: %v", err)
	}
	return &gateway.Order{OrderID: resp.OrderID, Redirect: redirect}, nil
}

type statusResponse struct {
	OrderStatus           *int               `json:"orderStatus"`
	ErrorCode             gateway.FlexString `json:"errorCode"`
	ErrorMessage          string             `json:"errorMessage"`
	OrderNumber           string             `json:"orderNumber"`
	Amount                int64              `json:"amount"`
	Currency              gateway.FlexString `json:"currency"`
	ActionCodeDescription string             `json:"actionCodeDescription"`
}

func (a *Adapter) QueryStatus(ctx context.Context, orderID string) (*gateway.Status, error) {
	form := a.auth()
	form.Set("orderId", orderID)

	var resp statusResponse
	raw, err := a.client.PostForm(ctx, statusPath, form, &resp)
	if err != nil {
		return nil, err
	}

	currency, ok := money.AlphaFromNumeric(resp.Currency.String())
	if !ok {
		// Unknown codes can never match an attempt, so verification fails closed.
		currency = resp.Currency.String()
	}

	st := &gateway.Status{
		Amount:   money.FromMinor(resp.Amount),
		Currency: currency,
		Success:  isOK(resp.ErrorCode) && resp.OrderStatus != nil && *resp.OrderStatus == orderStatusDeposited,
		Raw:      raw,
	}
	if !st.Success {
		st.FailureReason = firstNonEmpty(resp.ActionCodeDescription, resp.ErrorMessage, "order not deposited")
	}
	return st, nil
}

func (a *Adapter) CallbackOrderID(query url.Values) (string, error) {
	id := strings.TrimSpace(query.Get("orderId"))
	if id == "" {
		return "", gateway.ErrMissingOrderID
	}
	return id, nil
}

func (a *Adapter) auth() url.Values {
	form := url.Values{}
	form.Set("userName", a.creds.Username)
	form.Set("password", a.creds.Password)
	return form
}

func isOK(code gateway.FlexString) bool {
	return code == "" || code == "0"
}

// splitFormURL moves the query of the payment page URL into form fields so
// the browser can submit it with GET.
func splitFormURL(formURL string) (gateway.Redirect, error) {
	u, err := url.Parse(formURL)
	if err != nil {
		return gateway.Redirect{}, err
	}
	fields := map[string]string{}
	for k, v := range u.Query() {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	u.RawQuery = ""
	return gateway.Redirect{Action: u.String(), Method: "GET", Fields: fields}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
