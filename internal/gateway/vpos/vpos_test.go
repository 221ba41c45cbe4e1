//go:build unit

package vpos_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"hotel-checkout/internal/gateway"
	"hotel-checkout/internal/gateway/vpos"
	"hotel-checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapter(t *testing.T, h http.HandlerFunc) *vpos.Adapter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client := gateway.NewClient(srv.URL, time.Second, 100, 10)
	return vpos.New(client, vpos.Credentials{Username: "merchant", Password: "secret"})
}

func TestQueryStatus(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantSuccess  bool
		wantAmount   string
		wantCurrency string
	}{
		{
			name:         "deposited order",
			body:         `{"orderStatus":2,"errorCode":"0","amount":1000000,"currency":"051","orderNumber":"100"}`,
			wantSuccess:  true,
			wantAmount:   "10000",
			wantCurrency: "AMD",
		},
		{
			name:         "numeric error code is tolerated",
			body:         `{"orderStatus":2,"errorCode":0,"amount":1550,"currency":"840"}`,
			wantSuccess:  true,
			wantAmount:   "15.5",
			wantCurrency: "USD",
		},
		{
			name:         "declined order",
			body:         `{"orderStatus":6,"errorCode":"0","amount":1000000,"currency":"051","actionCodeDescription":"Card declined"}`,
			wantSuccess:  false,
			wantAmount:   "10000",
			wantCurrency: "AMD",
		},
		{
			name:         "gateway error code",
			body:         `{"orderStatus":2,"errorCode":"5","errorMessage":"Access denied","amount":1000000,"currency":"051"}`,
			wantSuccess:  false,
			wantAmount:   "10000",
			wantCurrency: "AMD",
		},
		{
			name:         "unknown currency code passes through",
			body:         `{"orderStatus":2,"errorCode":"0","amount":1000000,"currency":"999"}`,
			wantSuccess:  true,
			wantAmount:   "10000",
			wantCurrency: "999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "/getOrderStatusExtended.do", r.URL.Path)
				assert.Equal(t, "merchant", r.PostForm.Get("userName"))
				assert.Equal(t, "ord-1", r.PostForm.Get("orderId"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			st, err := a.QueryStatus(context.Background(), "ord-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, st.Success)
			assert.True(t, decimal.RequireFromString(tt.wantAmount).Equal(st.Amount), "amount %s", st.Amount)
			assert.Equal(t, tt.wantCurrency, st.Currency)
			assert.JSONEq(t, tt.body, string(st.Raw))
			if !tt.wantSuccess {
				assert.NotEmpty(t, st.FailureReason)
			}
		})
	}

	t.Run("non-2xx is retryable", func(t *testing.T) {
		a := newAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := a.QueryStatus(context.Background(), "ord-1")
		require.Error(t, err)
		assert.Equal(t, "gateway_unreachable", errs.CodeOf(err))
		assert.True(t, errs.Is(err, errs.ErrUnavailable))
	})

	t.Run("malformed body is retryable", func(t *testing.T) {
		a := newAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		})

		_, err := a.QueryStatus(context.Background(), "ord-1")
		assert.Equal(t, "gateway_unreachable", errs.CodeOf(err))
	})
}

func TestCreateOrder(t *testing.T) {
	t.Run("registers the order in minor units", func(t *testing.T) {
		a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "/register.do", r.URL.Path)
			assert.Equal(t, "100000000001", r.PostForm.Get("orderNumber"))
			assert.Equal(t, "1000000", r.PostForm.Get("amount"))
			assert.Equal(t, "051", r.PostForm.Get("currency"))
			_, _ = w.Write([]byte(`{"orderId":"gw-77","formUrl":"https://pay.example/payment/merchants/x/payment_en.html?mdOrder=gw-77"}`))
		})

		order, err := a.CreateOrder(context.Background(), gateway.OrderRequest{
			BillNumber: "100000000001",
			Amount:     decimal.NewFromInt(10000),
			Currency:   "AMD",
			ReturnURL:  "https://api.example/payments/vpos/callback",
		})
		require.NoError(t, err)
		assert.Equal(t, "gw-77", order.OrderID)
		assert.Equal(t, "https://pay.example/payment/merchants/x/payment_en.html", order.Redirect.Action)
		assert.Equal(t, "GET", order.Redirect.Method)
		assert.Equal(t, map[string]string{"mdOrder": "gw-77"}, order.Redirect.Fields)
	})

	t.Run("register error is reported as rejection", func(t *testing.T) {
		a := newAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"errorCode":"1","errorMessage":"Order number is duplicated"}`))
		})

		_, err := a.CreateOrder(context.Background(), gateway.OrderRequest{
			BillNumber: "1", Amount: decimal.NewFromInt(1), Currency: "AMD",
		})
		assert.Equal(t, "gateway_order_rejected", errs.CodeOf(err))
	})
}

func TestCallbackOrderID(t *testing.T) {
	a := vpos.New(gateway.NewClient("http://unused", time.Second, 1, 1), vpos.Credentials{})

	id, err := a.CallbackOrderID(url.Values{"orderId": {"gw-77"}})
	require.NoError(t, err)
	assert.Equal(t, "gw-77", id)

	_, err = a.CallbackOrderID(url.Values{})
	assert.ErrorIs(t, err, gateway.ErrMissingOrderID)
}
