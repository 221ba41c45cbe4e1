//go:build unit

package supplier_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-checkout/internal/infra/supplier"
	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/usecase/commands"
	"hotel-checkout/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *supplier.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.NewTestConfig()
	cfg.Supplier.BaseURL = srv.URL
	cfg.Supplier.APIKey = "key-1"
	cfg.Supplier.Timeout = time.Second
	return supplier.NewClient(cfg)
}

func TestClient_Prebook(t *testing.T) {
	t.Run("maps the quote", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/prebook", r.URL.Path)
			assert.Equal(t, "key-1", r.Header.Get("X-API-Key"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "S", body["sessionId"])

			_, _ = io.WriteString(w, `{"bookable":true,"priceChanged":true,"currency":"USD",
				"rooms":[{"roomId":"room-1","rateKey":"a","price":{"gross":"120.50","net":"100","tax":"20.50"}}]}`)
		})

		quote, err := c.Prebook(context.Background(), commands.SupplierPrebookRequest{
			SessionID: "S",
			HotelCode: "H",
			GroupCode: "7",
			Rooms:     []commands.SupplierRoomRef{{RoomID: "room-1", RateKey: "a"}},
		})
		require.NoError(t, err)
		assert.True(t, quote.Bookable)
		assert.True(t, quote.PriceChanged)
		require.Len(t, quote.Rooms, 1)
		assert.Equal(t, "120.5", quote.Rooms[0].Price.Gross.String())
	})

	t.Run("non 2xx is an error", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := c.Prebook(context.Background(), commands.SupplierPrebookRequest{})
		assert.ErrorContains(t, err, "502")
	})
}

func TestClient_Book(t *testing.T) {
	payload := *builder.NewPayloadBuilder().BuildDomain()

	t.Run("confirmation is returned", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/book", r.URL.Path)
			_, _ = io.WriteString(w, `{"success":true,"confirmation":{"code":"CNF-1","reference":"R-9","status":"confirmed"}}`)
		})

		res, err := c.Book(context.Background(), payload)
		require.NoError(t, err)
		assert.Equal(t, "CNF-1", res.Confirmation.Code)
	})

	t.Run("declined booking carries the supplier message", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"success":false,"error":{"code":"SOLD_OUT","message":"room sold out"}}`)
		})

		_, err := c.Book(context.Background(), payload)
		require.Error(t, err)
		assert.True(t, errs.Is(err, supplier.ErrRejected))
		assert.Contains(t, err.Error(), "SOLD_OUT: room sold out")
	})
}
