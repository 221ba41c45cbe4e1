//go:build unit

package payment_test

import (
	"testing"
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/domain/payment"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func newAttempt(t *testing.T) *payment.Attempt {
	t.Helper()
	a, err := payment.NewBookingAttempt(payment.NewBookingAttemptParams{
		Gateway:  "vpos",
		OrderID:  "1001",
		Amount:   decimal.NewFromInt(10000),
		Currency: "AMD",
		Payload:  *builder.NewPayloadBuilder().BuildDomain(),
		Now:      now,
	})
	require.NoError(t, err)
	return a
}

func TestNewBookingAttempt(t *testing.T) {
	a := newAttempt(t)

	assert.Equal(t, payment.StatusCreated, a.Status())
	assert.Equal(t, payment.PurposeBooking, a.Purpose())
	require.NotNil(t, a.Fingerprint())
	payload := a.Payload()
	assert.Equal(t, booking.Fingerprint(&payload), *a.Fingerprint())
	assert.Equal(t, "S", a.SessionID())
	assert.Equal(t, "H", a.HotelCode())
	assert.Equal(t, "7", a.GroupCode())

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := payment.NewBookingAttempt(payment.NewBookingAttemptParams{OrderID: "1", Amount: decimal.Zero})
		assert.ErrorIs(t, err, payment.ErrInvalidAmount)
	})

	t.Run("rejects missing order id", func(t *testing.T) {
		_, err := payment.NewBookingAttempt(payment.NewBookingAttemptParams{Amount: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, payment.ErrMissingOrderID)
	})
}

func TestNewAddonAttempt(t *testing.T) {
	target := uuid.New()
	a, err := payment.NewAddonAttempt(payment.NewAddonAttemptParams{
		Gateway:         "ameria",
		OrderID:         "A-1",
		Amount:          decimal.NewFromInt(3000),
		Currency:        "AMD",
		TargetBookingID: target,
		Addons: booking.Addons{
			Transfer:   &booking.Service{Key: "T1", Price: decimal.NewFromInt(1000), Currency: "AMD"},
			Excursions: []booking.Service{{Key: "E1", Price: decimal.NewFromInt(2000), Currency: "AMD"}},
		},
		Now: now,
	})
	require.NoError(t, err)

	assert.Equal(t, payment.PurposeAddon, a.Purpose())
	assert.Nil(t, a.Fingerprint())
	require.NotNil(t, a.TargetBookingID())
	assert.Equal(t, target, *a.TargetBookingID())
	assert.Equal(t, []string{"excursion:E1", "transfer:T1"}, a.ServiceKeys())
}

func TestAttempt_VerifyPaid(t *testing.T) {
	a := newAttempt(t)

	cases := []struct {
		name     string
		amount   decimal.Decimal
		currency string
		errIs    error
	}{
		{name: "exact match", amount: decimal.RequireFromString("10000.00"), currency: "AMD"},
		{name: "one dram short", amount: decimal.NewFromInt(9999), currency: "AMD", errIs: payment.ErrAmountMismatch},
		{name: "fraction over", amount: decimal.RequireFromString("10000.01"), currency: "AMD", errIs: payment.ErrAmountMismatch},
		{name: "same number in another currency", amount: decimal.NewFromInt(10000), currency: "USD", errIs: payment.ErrCurrencyMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := a.VerifyPaid(tc.amount, tc.currency)
			if tc.errIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errs.Is(err, tc.errIs))
		})
	}
}

func TestAttempt_IsStale(t *testing.T) {
	a := payment.Reconstruct(payment.ReconstructParams{
		ID:        uuid.New(),
		Status:    payment.StatusBookingInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	})

	assert.False(t, a.IsStale(now.Add(4*time.Minute), 5*time.Minute))
	assert.True(t, a.IsStale(now.Add(6*time.Minute), 5*time.Minute))

	done := payment.Reconstruct(payment.ReconstructParams{Status: payment.StatusBookingComplete, UpdatedAt: now})
	assert.False(t, done.IsStale(now.Add(time.Hour), 5*time.Minute))
}

func TestStatus_IsLockable(t *testing.T) {
	lockable := []payment.Status{payment.StatusCreated, payment.StatusPrechecked, payment.StatusPaymentSuccess}
	for _, s := range lockable {
		assert.True(t, s.IsLockable(), s)
	}
	for _, s := range payment.LockExcludedStatuses() {
		assert.False(t, s.IsLockable(), s)
	}
}
