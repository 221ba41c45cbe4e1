package commands

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"hotel-checkout/internal/domain/bookingrecord"
	"hotel-checkout/internal/domain/payment"
	"hotel-checkout/internal/gateway"
	"hotel-checkout/internal/infra"
	"hotel-checkout/internal/pkg/clock"
	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/pkg/money"
	"hotel-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxAddonMergeRetries = 3

var (
	ErrPaymentOrderNotFound = errs.NewCoded(errs.ErrNotFound, "payment_attempt_not_found", "Payment attempt not found")

	errBookingLockLost = errs.New("booking lock no longer held")
	errVersionConflict = errs.New("booking changed concurrently")
)

// FinalizeResult is where a callback left the attempt. Pending means another
// request still holds the booking lock and the caller is answered optimistically.
type FinalizeResult struct {
	AttemptID uuid.UUID
	Purpose   payment.Purpose
	Status    payment.Status
	BookingID *uuid.UUID
	Pending   bool
	Reason    string
}

func (r *FinalizeResult) Succeeded() bool {
	return r.Pending || r.Status.IsSuccess()
}

type FinalizeCommands interface {
	Finalize(ctx context.Context, gatewayName string, callback url.Values) (*FinalizeResult, error)
}

type finalizeCommandsImpl struct {
	uow       shared.UnitOfWork
	gateways  GatewayRegistry
	supplier  Supplier
	insurance InsuranceIssuer
	mailer    Mailer
	cfg       config.CheckoutConfig
	clock     clock.Clock
}

func NewFinalizeCommands(
	uow shared.UnitOfWork,
	gateways GatewayRegistry,
	supplier Supplier,
	insurance InsuranceIssuer,
	mailer Mailer,
	cfg config.Config,
	clk clock.Clock,
) FinalizeCommands {
	return &finalizeCommandsImpl{
		uow:       uow,
		gateways:  gateways,
		supplier:  supplier,
		insurance: insurance,
		mailer:    mailer,
		cfg:       cfg.Checkout,
		clock:     clk,
	}
}

// Finalize handles a gateway return. It is safe to call any number of times
// for the same order: payment is resolved once, the booking lock is taken
// once, and a terminal attempt is reported as it stands.
func (f *finalizeCommandsImpl) Finalize(ctx context.Context, gatewayName string, callback url.Values) (*FinalizeResult, error) {
	adapter, err := f.gateways.Get(gatewayName)
	if err != nil {
		return nil, err
	}
	orderID, err := adapter.CallbackOrderID(callback)
	if err != nil {
		return nil, err
	}

	attempts := f.uow.Repos().Attempts()
	attempt, err := attempts.FindByOrder(ctx, adapter.Name(), orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("callback for unknown order", "gateway", adapter.Name(), "order_id", orderID)
			return nil, ErrPaymentOrderNotFound
		}
		return nil, err
	}

	if attempt.Status().IsTerminal() {
		return resultFromAttempt(attempt), nil
	}

	if attempt.Status().IsPrePayment() {
		if err := f.reconcile(ctx, adapter, attempt); err != nil {
			return nil, err
		}
		if attempt, err = f.reload(ctx, attempt.ID()); err != nil {
			return nil, err
		}
	}

	switch attempt.Status() {
	case payment.StatusPaymentSuccess:
		won, err := attempts.AcquireBookingLock(ctx, attempt.ID(), f.clock.Now())
		if err != nil {
			return nil, err
		}
		if won {
			return f.book(ctx, attempt)
		}
		if attempt, err = f.reload(ctx, attempt.ID()); err != nil {
			return nil, err
		}
		return f.await(ctx, attempt)
	case payment.StatusBookingInProgress:
		return f.await(ctx, attempt)
	default:
		return resultFromAttempt(attempt), nil
	}
}

// reconcile asks the gateway what happened and moves a pre-payment attempt to
// the matching payment outcome. Gateway errors leave the attempt untouched so
// the next callback can retry.
func (f *finalizeCommandsImpl) reconcile(ctx context.Context, adapter gateway.Adapter, a *payment.Attempt) error {
	st, err := adapter.QueryStatus(ctx, a.OrderID())
	if err != nil {
		slog.Warn("gateway status query failed",
			"gateway", a.Gateway(), "order_id", a.OrderID(), "attempt_id", a.ID(), "error", err.Error())
		return err
	}

	now := f.clock.Now()
	res := shared.PaymentResolution{GatewayResponse: st.Raw, Now: now}

	if !st.Success {
		reason := st.FailureReason
		if reason == "" {
			reason = "payment_declined"
		}
		res.Status = payment.StatusPaymentFailed
		res.FailureReason = &reason
		slog.Info("payment not completed", "attempt_id", a.ID(), "order_id", a.OrderID(), "reason", reason)
	} else if err := a.VerifyPaid(st.Amount, money.NormalizeCurrency(st.Currency)); err != nil {
		reason := err.Error()
		res.Status = payment.StatusPaymentMismatch
		res.FailureReason = &reason
		slog.Error("gateway charge does not match attempt",
			"attempt_id", a.ID(),
			"order_id", a.OrderID(),
			"expected_amount", a.Amount().String(),
			"expected_currency", a.Currency(),
			"paid_amount", st.Amount.String(),
			"paid_currency", st.Currency,
		)
	} else {
		res.Status = payment.StatusPaymentSuccess
		res.PaidAt = &now
	}

	won, err := f.uow.Repos().Attempts().ResolvePayment(ctx, a.ID(), res)
	if err != nil {
		return err
	}
	if !won {
		slog.Info("payment already resolved by a concurrent callback", "attempt_id", a.ID())
	}
	return nil
}

// await waits for the lock holder to finish. A lock older than the stale
// threshold is taken over so a crashed finalizer cannot strand the attempt.
func (f *finalizeCommandsImpl) await(ctx context.Context, a *payment.Attempt) (*FinalizeResult, error) {
	attempts := f.uow.Repos().Attempts()

	for i := 0; ; i++ {
		if a.Status().IsTerminal() {
			return resultFromAttempt(a), nil
		}

		if a.IsStale(f.clock.Now(), f.cfg.StaleLockAfter) {
			won, err := attempts.RecoverStaleLock(ctx, a.ID(), a.UpdatedAt(), f.clock.Now())
			if err != nil {
				return nil, err
			}
			if won {
				slog.Warn("recovered stale booking lock", "attempt_id", a.ID(), "locked_since", a.UpdatedAt())
				return f.book(ctx, a)
			}
		}

		if i >= f.cfg.PollAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-f.clock.After(f.cfg.PollInterval):
		}

		var err error
		if a, err = f.reload(ctx, a.ID()); err != nil {
			return nil, err
		}
	}

	slog.Info("booking still in progress, answering optimistically", "attempt_id", a.ID())
	res := resultFromAttempt(a)
	res.Pending = true
	return res, nil
}

func (f *finalizeCommandsImpl) book(ctx context.Context, a *payment.Attempt) (*FinalizeResult, error) {
	if a.Purpose() == payment.PurposeAddon {
		return f.bookAddons(ctx, a)
	}

	p := a.Payload()
	confirmation := a.SupplierConfirmation()
	if confirmation != nil {
		slog.Warn("reusing supplier confirmation from an interrupted finalize",
			"attempt_id", a.ID(), "confirmation_code", confirmation.Code)
	} else {
		confirmed, err := f.supplier.Book(ctx, p)
		if err != nil {
			return f.failBooking(ctx, a, "supplier_booking_failed: "+err.Error())
		}
		confirmation = &confirmed.Confirmation
		if err := f.keepConfirmation(ctx, a, *confirmation); err != nil {
			return nil, err
		}
	}

	now := f.clock.Now()
	rec := bookingrecord.NewRecord(a.ID(), a.OwnerID(), p, *confirmation, now)
	err := f.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().Create(ctx, rec); err != nil {
			return err
		}
		done, err := tx.Attempts().CompleteBooking(ctx, a.ID(), rec.ID(), now)
		if err != nil {
			return err
		}
		if !done {
			return errBookingLockLost
		}
		if rec.OwnerID() != nil {
			return tx.Bookings().AppendOwnerHistory(ctx, rec)
		}
		return nil
	})
	if err != nil {
		slog.Error("supplier booking confirmed but not recorded",
			"attempt_id", a.ID(), "confirmation_code", rec.Confirmation().Code, "error", err.Error())
		return nil, err
	}

	slog.Info("booking completed",
		"attempt_id", a.ID(), "booking_id", rec.ID(), "confirmation_code", rec.Confirmation().Code)

	f.runSideEffects(ctx, a, rec)

	id := rec.ID()
	return &FinalizeResult{AttemptID: a.ID(), Purpose: a.Purpose(), Status: payment.StatusBookingComplete, BookingID: &id}, nil
}

// keepConfirmation stores what the supplier returned before the booking row
// is written. A lock recovered after a failed write books from it instead of
// calling the supplier again.
func (f *finalizeCommandsImpl) keepConfirmation(ctx context.Context, a *payment.Attempt, c bookingrecord.Confirmation) error {
	kept, err := f.uow.Repos().Attempts().RecordSupplierConfirmation(ctx, a.ID(), c, f.clock.Now())
	if err != nil {
		slog.Error("supplier booking confirmed but not stored on the attempt",
			"attempt_id", a.ID(), "confirmation_code", c.Code, "error", err.Error())
		return err
	}
	if !kept {
		slog.Error("supplier booking confirmed after the lock moved on",
			"attempt_id", a.ID(), "confirmation_code", c.Code)
		return errBookingLockLost
	}
	return nil
}

// bookAddons merges paid services into the target booking. The merge is a
// version-checked write, retried when another merge lands first.
func (f *finalizeCommandsImpl) bookAddons(ctx context.Context, a *payment.Attempt) (*FinalizeResult, error) {
	target := a.TargetBookingID()
	if target == nil {
		return f.failBooking(ctx, a, "addon attempt has no target booking")
	}

	var rec *bookingrecord.Record
	for try := 1; ; try++ {
		now := f.clock.Now()
		err := f.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			if rec, err = tx.Bookings().FindByID(ctx, *target); err != nil {
				return err
			}
			if err := rec.MergeAddons(a.Payload().Addons, now); err != nil {
				return err
			}
			saved, err := tx.Bookings().UpdateAddons(ctx, rec)
			if err != nil {
				return err
			}
			if !saved {
				return errVersionConflict
			}
			done, err := tx.Attempts().CompleteBooking(ctx, a.ID(), rec.ID(), now)
			if err != nil {
				return err
			}
			if !done {
				return errBookingLockLost
			}
			return nil
		})
		if err == nil {
			break
		}
		if errs.Is(err, errVersionConflict) && try < maxAddonMergeRetries {
			continue
		}
		if code := errs.CodeOf(err); code != "" {
			return f.failBooking(ctx, a, code)
		}
		if infra.IsKind(err, infra.KindNotFound) {
			return f.failBooking(ctx, a, "target booking not found")
		}
		return nil, err
	}

	slog.Info("addons merged into booking",
		"attempt_id", a.ID(), "booking_id", rec.ID(), "service_keys", a.ServiceKeys())

	f.runSideEffects(ctx, a, rec)

	id := rec.ID()
	return &FinalizeResult{AttemptID: a.ID(), Purpose: a.Purpose(), Status: payment.StatusBookingComplete, BookingID: &id}, nil
}

func (f *finalizeCommandsImpl) failBooking(ctx context.Context, a *payment.Attempt, reason string) (*FinalizeResult, error) {
	slog.Error("booking failed after payment",
		"attempt_id", a.ID(), "order_id", a.OrderID(), "amount", a.Amount().String(), "reason", reason)

	if _, err := f.uow.Repos().Attempts().FailBooking(ctx, a.ID(), reason, f.clock.Now()); err != nil {
		return nil, err
	}
	return &FinalizeResult{AttemptID: a.ID(), Purpose: a.Purpose(), Status: payment.StatusBookingFailed, Reason: reason}, nil
}

// runSideEffects never fails the booking. Every error is logged and recorded
// on the attempt for operators.
func (f *finalizeCommandsImpl) runSideEffects(ctx context.Context, a *payment.Attempt, rec *bookingrecord.Record) {
	ctx = context.WithoutCancel(ctx)
	repos := f.uow.Repos()
	var se payment.SideEffectErrors

	if a.Payload().Addons.Insurance != nil {
		if msg := f.issueInsurance(ctx, repos, rec); msg != "" {
			se.Insurance = &msg
		}
	}

	if err := f.mailer.SendBookingConfirmation(ctx, confirmationOf(a, rec)); err != nil {
		slog.Warn("booking confirmation mail failed", "attempt_id", a.ID(), "booking_id", rec.ID(), "error", err.Error())
		msg := err.Error()
		se.Email = &msg
	}

	if a.Purpose() == payment.PurposeBooking && a.Coupon() != nil && !a.Coupon().OrderCounted {
		if msg := f.countCoupon(ctx, repos, a); msg != "" {
			se.Coupon = &msg
		}
	}

	if se.Insurance == nil && se.Email == nil && se.Coupon == nil {
		return
	}
	if err := repos.Attempts().RecordSideEffects(ctx, a.ID(), se); err != nil {
		slog.Warn("failed to record side effect errors", "attempt_id", a.ID(), "error", err.Error())
	}
}

func (f *finalizeCommandsImpl) issueInsurance(ctx context.Context, repos shared.Repositories, rec *bookingrecord.Record) string {
	policies, err := f.insurance.IssuePolicies(ctx, rec.Payload())
	if err != nil {
		slog.Warn("insurance issuance failed", "booking_id", rec.ID(), "error", err.Error())
		return err.Error()
	}
	rec.AddPolicies(policies)
	if err := repos.Bookings().SetPolicies(ctx, rec); err != nil {
		slog.Warn("failed to store insurance policies", "booking_id", rec.ID(), "error", err.Error())
		return err.Error()
	}
	return ""
}

// countCoupon claims the attempt's coupon flag before incrementing so a
// coupon is counted at most once per attempt.
func (f *finalizeCommandsImpl) countCoupon(ctx context.Context, repos shared.Repositories, a *payment.Attempt) string {
	claimed, err := repos.Attempts().ClaimCouponCount(ctx, a.ID())
	if err != nil {
		slog.Warn("failed to claim coupon count", "attempt_id", a.ID(), "error", err.Error())
		return err.Error()
	}
	if !claimed {
		return ""
	}
	counted, err := repos.Coupons().IncrementSuccessfulOrders(ctx, a.Coupon().Code)
	if err != nil {
		slog.Warn("failed to count coupon order", "attempt_id", a.ID(), "coupon", a.Coupon().Code, "error", err.Error())
		return err.Error()
	}
	if !counted {
		slog.Warn("coupon limit reached after payment", "attempt_id", a.ID(), "coupon", a.Coupon().Code)
		return "coupon usage limit reached"
	}
	return ""
}

func (f *finalizeCommandsImpl) reload(ctx context.Context, id uuid.UUID) (*payment.Attempt, error) {
	return f.uow.Repos().Attempts().FindByID(ctx, id)
}

func confirmationOf(a *payment.Attempt, rec *bookingrecord.Record) BookingConfirmation {
	p := rec.Payload()
	m := BookingConfirmation{
		BookingID:        rec.ID(),
		AttemptID:        a.ID(),
		Purpose:          string(a.Purpose()),
		Email:            p.Contact.Email,
		HotelCode:        p.HotelCode,
		HotelName:        p.HotelName,
		CheckIn:          p.CheckIn,
		CheckOut:         p.CheckOut,
		ConfirmationCode: rec.Confirmation().Code,
		Amount:           a.Amount(),
		Currency:         a.Currency(),
	}
	if lead, ok := p.LeadGuest(); ok {
		m.GuestName = strings.TrimSpace(lead.FirstName + " " + lead.LastName)
	}
	if a.Purpose() == payment.PurposeAddon {
		m.ServiceKeys = a.ServiceKeys()
	}
	return m
}

func resultFromAttempt(a *payment.Attempt) *FinalizeResult {
	res := &FinalizeResult{
		AttemptID: a.ID(),
		Purpose:   a.Purpose(),
		Status:    a.Status(),
		BookingID: a.BookingID(),
	}
	switch {
	case a.BookingError() != nil:
		res.Reason = *a.BookingError()
	case a.FailureReason() != nil:
		res.Reason = *a.FailureReason()
	}
	return res
}
