package payment

import (
	"time"

	"hotel-checkout/internal/pkg/errs"
)

type BlockReason string

const (
	BlockBookingComplete        BlockReason = "booking_complete"
	BlockFinalizationInProgress BlockReason = "finalization_in_progress"
	BlockPaymentPending         BlockReason = "payment_pending"
)

var ErrDuplicateAttempt = errs.NewCoded(
	errs.ErrConflict,
	"duplicate_payment_attempt",
	"A payment for this booking is already in progress",
)

// Blocking is the attempt that prevents a new checkout and why.
type Blocking struct {
	Attempt *Attempt
	Reason  BlockReason
}

func (b *Blocking) Error() error {
	msg := ErrDuplicateAttempt.Message
	if b.Reason == BlockBookingComplete {
		msg = "This booking has already been completed"
	}
	return ErrDuplicateAttempt.WithMessage(msg).WithDetail(map[string]any{
		"attemptId": b.Attempt.ID().String(),
		"orderId":   b.Attempt.OrderID(),
		"status":    b.Attempt.Status().String(),
		"reason":    string(b.Reason),
	})
}

// FindBlocking picks the attempt that blocks a new checkout for the same
// intent. A completed booking wins over a running finalization, which wins
// over a fresh pre-payment attempt. Expired pre-payment attempts never block.
func FindBlocking(candidates []*Attempt, now time.Time, freshness time.Duration) *Blocking {
	var inProgress, pending *Attempt

	for _, a := range candidates {
		switch {
		case a.Status() == StatusBookingComplete:
			return &Blocking{Attempt: a, Reason: BlockBookingComplete}
		case a.Status() == StatusPaymentSuccess || a.Status() == StatusBookingInProgress:
			if inProgress == nil {
				inProgress = a
			}
		case a.Status().IsPrePayment() && a.IsFresh(now, freshness):
			if pending == nil || a.CreatedAt().After(pending.CreatedAt()) {
				pending = a
			}
		}
	}

	if inProgress != nil {
		return &Blocking{Attempt: inProgress, Reason: BlockFinalizationInProgress}
	}
	if pending != nil {
		return &Blocking{Attempt: pending, Reason: BlockPaymentPending}
	}
	return nil
}
