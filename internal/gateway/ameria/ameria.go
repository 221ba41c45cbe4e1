// Package ameria talks to the Ameriabank vPOS 3.1 JSON API.
package ameria

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"hotel-checkout/internal/gateway"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/pkg/money"

	"github.com/shopspring/decimal"
)

const (
	Name = "ameria"

	initPath    = "/api/VPOS/InitPayment"
	detailsPath = "/api/VPOS/GetPaymentDetails"
	payPath     = "/Payments/Pay"

	initOK          = 1
	detailsOK       = "00"
	statusDeposited = 2
)

type Credentials struct {
	ClientID string
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

type initRequest struct {
	ClientID    string  `json:"ClientID"`
	Username    string  `json:"Username"`
	Password    string  `json:"Password"`
	Amount      float64 `json:"Amount"`
	OrderID     int64   `json:"OrderID"`
	Description string  `json:"Description"`
	BackURL     string  `json:"BackURL"`
	Currency    string  `json:"Currency"`
}

type initResponse struct {
	PaymentID       string `json:"PaymentID"`
	ResponseCode    int    `json:"ResponseCode"`
	ResponseMessage string `json:"ResponseMessage"`
}

func (a *Adapter) CreateOrder(ctx context.Context, req gateway.OrderRequest) (*gateway.Order, error) {
	orderID, err := strconv.ParseInt(req.BillNumber, 10, 64)
	if err != nil {
		return nil, errs.Wrapf(gateway.ErrOrderRejected, "ameria: bill number %q is not numeric", req.BillNumber)
	}
	currency, ok := money.NumericFromAlpha(req.Currency)
	if !ok {
		return nil, errs.Wrapf(gateway.ErrOrderRejected, "ameria: unsupported currency %s", req.Currency)
	}

	var resp initResponse
	_, err = a.client.PostJSON(ctx, initPath, initRequest{
		ClientID:    a.creds.ClientID,
		Username:    a.creds.Username,
		Password:    a.creds.Password,
		Amount:      money.Round2(req.Amount).InexactFloat64(),
		OrderID:     orderID,
		Description: req.Description,
		BackURL:     req.ReturnURL,
		Currency:    currency,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.ResponseCode != initOK || resp.PaymentID == "" {
		return nil, errs.Wrapf(gateway.ErrOrderRejected, "ameria init: code=%d %s", resp.ResponseCode, resp.ResponseMessage)
	}

	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	return &gateway.Order{
		OrderID: resp.PaymentID,
		Redirect: gateway.Redirect{
			Action: a.client.BaseURL() + payPath,
			Method: "GET",
			Fields: map[string]string{"id": resp.PaymentID, "lang": lang},
		},
	}, nil
}

type detailsRequest struct {
	PaymentID string `json:"PaymentID"`
	Username  string `json:"Username"`
	Password  string `json:"Password"`
}

type detailsResponse struct {
	Amount          decimal.Decimal    `json:"Amount"`
	ApprovedAmount  decimal.Decimal    `json:"ApprovedAmount"`
	Currency        gateway.FlexString `json:"Currency"`
	ResponseCode    gateway.FlexString `json:"ResponseCode"`
	OrderStatus     int                `json:"OrderStatus"`
	PaymentState    string             `json:"PaymentState"`
	Description     string             `json:"Description"`
	TrxnDescription string             `json:"TrxnDescription"`
}

func (a *Adapter) QueryStatus(ctx context.Context, orderID string) (*gateway.Status, error) {
	var resp detailsResponse
	raw, err := a.client.PostJSON(ctx, detailsPath, detailsRequest{
		PaymentID: orderID,
		Username:  a.creds.Username,
		Password:  a.creds.Password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	currency, ok := money.AlphaFromNumeric(resp.Currency.String())
	if !ok {
		currency = money.NormalizeCurrency(resp.Currency.String())
	}
	amount := resp.ApprovedAmount
	if amount.IsZero() {
		amount = resp.Amount
	}

	st := &gateway.Status{
		Amount:   amount,
		Currency: currency,
		Success:  resp.ResponseCode.String() == detailsOK && resp.OrderStatus == statusDeposited,
		Raw:      raw,
	}
	if !st.Success {
		st.FailureReason = strings.TrimSpace(resp.TrxnDescription)
		if st.FailureReason == "" {
			st.FailureReason = "payment state " + resp.PaymentState
		}
	}
	return st, nil
}

func (a *Adapter) CallbackOrderID(query url.Values) (string, error) {
	id := strings.TrimSpace(query.Get("paymentID"))
	if id == "" {
		return "", gateway.ErrMissingOrderID
	}
	return id, nil
}
