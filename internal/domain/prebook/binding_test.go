//go:build unit

package prebook_test

import (
	"testing"
	"time"

	"hotel-checkout/internal/domain/prebook"
	"hotel-checkout/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quotedAt = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func TestBinding_Verify(t *testing.T) {
	window := prebook.DefaultValidityWindow

	cases := []struct {
		name    string
		binding func() *prebook.Binding
		payload func(*builder.PayloadBuilder)
		at      time.Duration
		errIs   error
	}{
		{
			name:    "exact match within window",
			binding: func() *prebook.Binding { return prebook.NewBinding("S", "H", "7", []string{"a", "b"}, true, false, quotedAt) },
			at:      5 * time.Minute,
		},
		{
			name:    "room order is irrelevant",
			binding: func() *prebook.Binding { return prebook.NewBinding("S", "H", "7", []string{"b", "a"}, true, false, quotedAt) },
			at:      time.Minute,
		},
		{
			name:    "missing binding",
			binding: func() *prebook.Binding { return nil },
			errIs:   prebook.ErrMissing,
		},
		{
			name:    "expired after 11 minutes",
			binding: func() *prebook.Binding { return prebook.NewBinding("S", "H", "7", []string{"a", "b"}, true, false, quotedAt) },
			at:      11 * time.Minute,
			errIs:   prebook.ErrExpired,
		},
		{
			name:    "different session",
			binding: func() *prebook.Binding { return prebook.NewBinding("S", "H", "7", []string{"a", "b"}, true, false, quotedAt) },
			payload: func(b *builder.PayloadBuilder) { b.SessionID = "S2" },
			errIs:   prebook.ErrMismatch,
		},
		{
			name:    "different group",
			binding: func() *prebook.Binding { return prebook.NewBinding("S", "H", "7", []string{"a", "b"}, true, false, quotedAt) },
			payload: func(b *builder.PayloadBuilder) { b.GroupCode = "8" },
			errIs:   prebook.ErrMismatch,
		},
		{
			name:    "substituted rate key",
			binding: func() *prebook.Binding { return prebook.NewBinding("S", "H", "7", []string{"a", "b"}, true, false, quotedAt) },
			payload: func(b *builder.PayloadBuilder) { b.RateKeys = []string{"a", "c"} },
			errIs:   prebook.ErrMismatch,
		},
		{
			name:    "extra room",
			binding: func() *prebook.Binding { return prebook.NewBinding("S", "H", "7", []string{"a", "b"}, true, false, quotedAt) },
			payload: func(b *builder.PayloadBuilder) { b.RateKeys = []string{"a", "b", "b"} },
			errIs:   prebook.ErrMismatch,
		},
		{
			name:    "not bookable",
			binding: func() *prebook.Binding { return prebook.NewBinding("S", "H", "7", []string{"a", "b"}, false, false, quotedAt) },
			errIs:   prebook.ErrNotBookable,
		},
		{
			name:    "price change not acknowledged",
			binding: func() *prebook.Binding { return prebook.NewBinding("S", "H", "7", []string{"a", "b"}, true, true, quotedAt) },
			errIs:   prebook.ErrPriceChangeUnacknowledged,
		},
		{
			name:    "price change acknowledged",
			binding: func() *prebook.Binding { return prebook.NewBinding("S", "H", "7", []string{"a", "b"}, true, true, quotedAt) },
			payload: func(b *builder.PayloadBuilder) { b.Acknowledged = true },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewPayloadBuilder()
			if tc.payload != nil {
				b.With(tc.payload)
			}

			err := tc.binding().Verify(b.BuildDomain(), quotedAt.Add(tc.at), window)

			if tc.errIs == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestNewBinding_StoresFingerprintsOnly(t *testing.T) {
	b := prebook.NewBinding("S", "H", "7", []string{"RAW-KEY"}, true, false, quotedAt)
	require.Len(t, b.RateFingerprints, 1)
	assert.NotEqual(t, "RAW-KEY", b.RateFingerprints[0])
	assert.Equal(t, quotedAt.Add(10*time.Minute), b.ExpiresAt(prebook.DefaultValidityWindow))
}
