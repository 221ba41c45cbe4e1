//go:build unit

package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hotel-checkout/internal/gateway"
	"hotel-checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedAdapter struct {
	gateway.Adapter
	name string
}

func (n namedAdapter) Name() string { return n.name }

func TestRegistry(t *testing.T) {
	r := gateway.NewRegistry(namedAdapter{name: "vpos"}, namedAdapter{name: "ameria"})

	a, err := r.Get("vpos")
	require.NoError(t, err)
	assert.Equal(t, "vpos", a.Name())
	assert.Equal(t, []string{"ameria", "vpos"}, r.Names())

	_, err = r.Get("paypal")
	assert.Equal(t, "unknown_gateway", errs.CodeOf(err))
	assert.True(t, errs.Is(err, errs.ErrValidation))
}

func TestBillNumber(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		n := gateway.BillNumber(now)
		assert.Len(t, n, 12)
		assert.Regexp(t, `^[0-9]+$`, n)
		seen[n] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestClientRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	// one token, refilled far in the future
	c := gateway.NewClient(srv.URL, time.Second, 0.001, 1)

	_, err := c.PostJSON(context.Background(), "/", map[string]string{}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.PostJSON(ctx, "/", map[string]string{}, nil)
	assert.Equal(t, "gateway_unreachable", errs.CodeOf(err))
	assert.Equal(t, int32(1), calls.Load())
}
