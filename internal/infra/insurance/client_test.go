//go:build unit

package insurance_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/infra/insurance"
	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/tests/common/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *insurance.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.NewTestConfig()
	cfg.Insurance.BaseURL = srv.URL
	cfg.Insurance.Timeout = time.Second
	return insurance.NewClient(cfg)
}

func TestClient_IssuePolicies(t *testing.T) {
	withInsurance := *builder.NewPayloadBuilder().
		WithAddons(booking.Addons{Insurance: &booking.Service{Key: "basic", Price: decimal.NewFromInt(3000)}}).
		BuildDomain()

	t.Run("one request insures every guest", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				ProductKey string           `json:"productKey"`
				Insured    []map[string]any `json:"insured"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "basic", body.ProductKey)
			assert.Len(t, body.Insured, withInsurance.GuestCount())

			_, _ = io.WriteString(w, `{"policies":[{"number":"P-1","provider":"Ingo","premium":"3000","currency":"AMD"}]}`)
		})

		policies, err := c.IssuePolicies(context.Background(), withInsurance)
		require.NoError(t, err)
		require.Len(t, policies, 1)
		assert.Equal(t, "P-1", policies[0].Number)
		assert.False(t, policies[0].IssuedAt.IsZero())
	})

	t.Run("no insurance add-on issues nothing", func(t *testing.T) {
		c := newClient(t, func(http.ResponseWriter, *http.Request) {
			t.Fatal("insurer must not be called")
		})

		policies, err := c.IssuePolicies(context.Background(), *builder.NewPayloadBuilder().BuildDomain())
		require.NoError(t, err)
		assert.Empty(t, policies)
	})

	t.Run("empty answer is an error", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"policies":[]}`)
		})

		_, err := c.IssuePolicies(context.Background(), withInsurance)
		assert.Error(t, err)
	})
}
