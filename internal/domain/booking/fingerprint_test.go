//go:build unit

package booking_test

import (
	"strings"
	"testing"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/tests/common/builder"

	"github.com/stretchr/testify/assert"
)

func TestRateFingerprint(t *testing.T) {
	fp := booking.RateFingerprint("a")
	assert.Len(t, fp, 64)
	assert.NotContains(t, fp, "a|")
	assert.Equal(t, fp, booking.RateFingerprint("a"))
	assert.NotEqual(t, fp, booking.RateFingerprint("b"))
}

func TestFingerprint(t *testing.T) {
	base := booking.Fingerprint(builder.NewPayloadBuilder().BuildDomain())

	t.Run("room order does not matter", func(t *testing.T) {
		swapped := builder.NewPayloadBuilder().WithRateKeys("b", "a").BuildDomain()
		assert.Equal(t, base, booking.Fingerprint(swapped))
	})

	t.Run("guest details do not matter", func(t *testing.T) {
		p := builder.NewPayloadBuilder().BuildDomain()
		p.Rooms[0].Guests[0].FirstName = "Someone"
		p.Contact.Email = "other@example.com"
		assert.Equal(t, base, booking.Fingerprint(p))
	})

	changes := map[string]func(*builder.PayloadBuilder){
		"session":   func(b *builder.PayloadBuilder) { b.SessionID = "S2" },
		"hotel":     func(b *builder.PayloadBuilder) { b.HotelCode = "H2" },
		"group":     func(b *builder.PayloadBuilder) { b.GroupCode = "8" },
		"check-in":  func(b *builder.PayloadBuilder) { b.CheckIn = "2026-07-02" },
		"check-out": func(b *builder.PayloadBuilder) { b.CheckOut = "2026-07-06" },
		"rate set":  func(b *builder.PayloadBuilder) { b.RateKeys = []string{"a", "c"} },
	}
	for name, mutate := range changes {
		t.Run(name+" changes the fingerprint", func(t *testing.T) {
			p := builder.NewPayloadBuilder().With(mutate).BuildDomain()
			assert.NotEqual(t, base, booking.Fingerprint(p))
		})
	}

	t.Run("raw keys never appear", func(t *testing.T) {
		p := builder.NewPayloadBuilder().WithRateKeys("SECRET-RATE-KEY").BuildDomain()
		assert.False(t, strings.Contains(booking.Fingerprint(p), "SECRET"))
	})
}
