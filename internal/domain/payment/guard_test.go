//go:build unit

package payment_test

import (
	"testing"
	"time"

	"hotel-checkout/internal/domain/payment"
	"hotel-checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attemptWith(status payment.Status, createdAt time.Time) *payment.Attempt {
	return payment.Reconstruct(payment.ReconstructParams{
		ID:        uuid.New(),
		OrderID:   "order-" + string(status),
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
}

func TestFindBlocking(t *testing.T) {
	freshness := 15 * time.Minute

	cases := []struct {
		name       string
		candidates []*payment.Attempt
		wantReason payment.BlockReason
		wantNil    bool
	}{
		{
			name:    "no candidates",
			wantNil: true,
		},
		{
			name:       "fresh created attempt blocks",
			candidates: []*payment.Attempt{attemptWith(payment.StatusCreated, now.Add(-time.Minute))},
			wantReason: payment.BlockPaymentPending,
		},
		{
			name:       "expired created attempt does not block",
			candidates: []*payment.Attempt{attemptWith(payment.StatusCreated, now.Add(-16*time.Minute))},
			wantNil:    true,
		},
		{
			name:       "in progress blocks regardless of age",
			candidates: []*payment.Attempt{attemptWith(payment.StatusBookingInProgress, now.Add(-2*time.Hour))},
			wantReason: payment.BlockFinalizationInProgress,
		},
		{
			name:       "payment success blocks",
			candidates: []*payment.Attempt{attemptWith(payment.StatusPaymentSuccess, now.Add(-2*time.Hour))},
			wantReason: payment.BlockFinalizationInProgress,
		},
		{
			name: "complete wins over everything",
			candidates: []*payment.Attempt{
				attemptWith(payment.StatusCreated, now),
				attemptWith(payment.StatusBookingInProgress, now),
				attemptWith(payment.StatusBookingComplete, now.Add(-time.Hour)),
			},
			wantReason: payment.BlockBookingComplete,
		},
		{
			name: "failed attempts never block",
			candidates: []*payment.Attempt{
				attemptWith(payment.StatusPaymentFailed, now),
				attemptWith(payment.StatusPaymentMismatch, now),
				attemptWith(payment.StatusBookingFailed, now),
			},
			wantNil: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := payment.FindBlocking(tc.candidates, now, freshness)
			if tc.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.wantReason, got.Reason)
		})
	}
}

func TestBlocking_Error(t *testing.T) {
	a := attemptWith(payment.StatusBookingInProgress, now)
	b := &payment.Blocking{Attempt: a, Reason: payment.BlockFinalizationInProgress}

	err := b.Error()

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrConflict))
	assert.Equal(t, "duplicate_payment_attempt", errs.CodeOf(err))

	var coded *errs.CodedError
	require.True(t, errs.As(err, &coded))
	assert.Equal(t, a.ID().String(), coded.Detail["attemptId"])
	assert.Equal(t, a.OrderID(), coded.Detail["orderId"])
	assert.Equal(t, "booking_in_progress", coded.Detail["status"])
	assert.Equal(t, "finalization_in_progress", coded.Detail["reason"])

	// The shared sentinel is never mutated.
	assert.Nil(t, payment.ErrDuplicateAttempt.Detail)
}
