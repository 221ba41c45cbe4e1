//go:build unit

package ameria_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"hotel-checkout/internal/gateway"
	"hotel-checkout/internal/gateway/ameria"
	"hotel-checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapter(t *testing.T, h http.HandlerFunc) (*ameria.Adapter, string) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client := gateway.NewClient(srv.URL, time.Second, 100, 10)
	return ameria.New(client, ameria.Credentials{ClientID: "cid", Username: "u", Password: "p"}), srv.URL
}

func TestQueryStatus(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantSuccess bool
		wantAmount  string
	}{
		{"approved and deposited", `{"Amount":10000,"ApprovedAmount":10000,"Currency":"051","ResponseCode":"00","OrderStatus":2}`, true, "10000"},
		{"approved but only authorized", `{"Amount":10000,"ApprovedAmount":10000,"Currency":"051","ResponseCode":"00","OrderStatus":1,"PaymentState":"payment_approved"}`, false, "10000"},
		{"declined", `{"Amount":10000,"ApprovedAmount":0,"Currency":"051","ResponseCode":"0116","OrderStatus":6,"TrxnDescription":"Insufficient funds"}`, false, "10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/VPOS/GetPaymentDetails", r.URL.Path)
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "pay-1", body["PaymentID"])
				_, _ = w.Write([]byte(tt.body))
			})

			st, err := a.QueryStatus(context.Background(), "pay-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, st.Success)
			assert.True(t, decimal.RequireFromString(tt.wantAmount).Equal(st.Amount))
			assert.Equal(t, "AMD", st.Currency)
		})
	}

	t.Run("transport failure is retryable", func(t *testing.T) {
		a, _ := newAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := a.QueryStatus(context.Background(), "pay-1")
		assert.Equal(t, "gateway_unreachable", errs.CodeOf(err))
	})
}

func TestCreateOrder(t *testing.T) {
	a, base := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 100000000001, body["OrderID"])
		assert.EqualValues(t, 10000.5, body["Amount"])
		assert.Equal(t, "051", body["Currency"])
		_, _ = w.Write([]byte(`{"PaymentID":"pay-1","ResponseCode":1,"ResponseMessage":"OK"}`))
	})

	order, err := a.CreateOrder(context.Background(), gateway.OrderRequest{
		BillNumber: "100000000001",
		Amount:     decimal.RequireFromString("10000.50"),
		Currency:   "AMD",
	})
	require.NoError(t, err)
	assert.Equal(t, "pay-1", order.OrderID)
	assert.Equal(t, base+"/Payments/Pay", order.Redirect.Action)
	assert.Equal(t, "pay-1", order.Redirect.Fields["id"])

	_, err = a.CreateOrder(context.Background(), gateway.OrderRequest{BillNumber: "abc", Amount: decimal.NewFromInt(1), Currency: "AMD"})
	assert.Equal(t, "gateway_order_rejected", errs.CodeOf(err))
}

func TestCallbackOrderID(t *testing.T) {
	a := ameria.New(gateway.NewClient("http://unused", time.Second, 1, 1), ameria.Credentials{})

	id, err := a.CallbackOrderID(url.Values{"paymentID": {"pay-1"}, "orderID": {"100"}})
	require.NoError(t, err)
	assert.Equal(t, "pay-1", id)
}
