package repository

import (
	"context"
	"encoding/json"
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/domain/bookingrecord"
	"hotel-checkout/internal/domain/payment"
	"hotel-checkout/internal/infra"
	sqlc "hotel-checkout/internal/infra/sqlc/generated"
	"hotel-checkout/internal/pkg/pgconv"
	"hotel-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type AttemptQueries interface {
	CreatePaymentAttempt(ctx context.Context, db sqlc.DBTX, arg sqlc.CreatePaymentAttemptParams) error
	GetPaymentAttemptByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.PaymentAttempts, error)
	GetPaymentAttemptByOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.GetPaymentAttemptByOrderParams) (sqlc.PaymentAttempts, error)
	ListActiveAttemptsByFingerprint(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveAttemptsByFingerprintParams) ([]sqlc.PaymentAttempts, error)
	ListActiveAttemptsByAddon(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveAttemptsByAddonParams) ([]sqlc.PaymentAttempts, error)
	ResolveAttemptPayment(ctx context.Context, db sqlc.DBTX, arg sqlc.ResolveAttemptPaymentParams) (int64, error)
	AcquireAttemptBookingLock(ctx context.Context, db sqlc.DBTX, arg sqlc.AcquireAttemptBookingLockParams) (int64, error)
	RecoverStaleAttemptLock(ctx context.Context, db sqlc.DBTX, arg sqlc.RecoverStaleAttemptLockParams) (int64, error)
	RecordAttemptSupplierConfirmation(ctx context.Context, db sqlc.DBTX, arg sqlc.RecordAttemptSupplierConfirmationParams) (int64, error)
	CompleteAttemptBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CompleteAttemptBookingParams) (int64, error)
	FailAttemptBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.FailAttemptBookingParams) (int64, error)
	SetAttemptSideEffectErrors(ctx context.Context, db sqlc.DBTX, arg sqlc.SetAttemptSideEffectErrorsParams) error
	ClaimAttemptCouponCount(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	LockPaymentIntent(ctx context.Context, db sqlc.DBTX, intentKey string) error
}

type AttemptRepository struct {
	queries AttemptQueries
	db      sqlc.DBTX
}

func NewAttemptRepository(queries AttemptQueries, db sqlc.DBTX) *AttemptRepository {
	return &AttemptRepository{
		queries: queries,
		db:      db,
	}
}

func (r *AttemptRepository) Create(ctx context.Context, a *payment.Attempt) error {
	payload, err := json.Marshal(a.Payload())
	if err != nil {
		return infra.WrapRepoErr("failed to encode attempt payload", err)
	}

	var couponJSON []byte
	if c := a.Coupon(); c != nil {
		if couponJSON, err = json.Marshal(c); err != nil {
			return infra.WrapRepoErr("failed to encode attempt coupon", err)
		}
	}

	serviceKeys := a.ServiceKeys()
	if serviceKeys == nil {
		serviceKeys = []string{}
	}

	err = r.queries.CreatePaymentAttempt(ctx, r.db, sqlc.CreatePaymentAttemptParams{
		ID:                 a.ID(),
		Gateway:            a.Gateway(),
		OrderID:            a.OrderID(),
		Purpose:            string(a.Purpose()),
		Status:             a.Status().String(),
		BookingFingerprint: pgconv.StringPtrToPgtype(a.Fingerprint()),
		SessionID:          a.SessionID(),
		HotelCode:          a.HotelCode(),
		GroupCode:          a.GroupCode(),
		Amount:             pgconv.NumericFromDecimal(a.Amount()),
		Currency:           a.Currency(),
		Payload:            payload,
		Coupon:             couponJSON,
		OwnerID:            pgconv.UUIDPtrToPgtype(a.OwnerID()),
		TargetBookingID:    pgconv.UUIDPtrToPgtype(a.TargetBookingID()),
		ServiceKeys:        serviceKeys,
		CreatedAt:          pgconv.TimeToPgtype(a.CreatedAt()),
		UpdatedAt:          pgconv.TimeToPgtype(a.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to create payment attempt", err)
	}
	return nil
}

func (r *AttemptRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Attempt, error) {
	row, err := r.queries.GetPaymentAttemptByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment attempt not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment attempt", err)
	}
	return toAttempt(row)
}

func (r *AttemptRepository) FindByOrder(ctx context.Context, gateway, orderID string) (*payment.Attempt, error) {
	row, err := r.queries.GetPaymentAttemptByOrder(ctx, r.db, sqlc.GetPaymentAttemptByOrderParams{
		Gateway: gateway,
		OrderID: orderID,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment attempt not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment attempt by order", err)
	}
	return toAttempt(row)
}

func (r *AttemptRepository) ListActiveByFingerprint(ctx context.Context, q shared.FingerprintQuery) ([]*payment.Attempt, error) {
	rows, err := r.queries.ListActiveAttemptsByFingerprint(ctx, r.db, sqlc.ListActiveAttemptsByFingerprintParams{
		ExcludedStatuses:   statusStrings(payment.NonBlockingStatuses()),
		BookingFingerprint: pgconv.StringToPgtype(q.Fingerprint),
		SessionID:          q.SessionID,
		HotelCode:          q.HotelCode,
		GroupCode:          q.GroupCode,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list attempts by fingerprint", err)
	}
	return toAttempts(rows)
}

func (r *AttemptRepository) ListActiveByAddon(ctx context.Context, bookingID uuid.UUID, serviceKeys []string) ([]*payment.Attempt, error) {
	rows, err := r.queries.ListActiveAttemptsByAddon(ctx, r.db, sqlc.ListActiveAttemptsByAddonParams{
		TargetBookingID:  pgconv.UUIDToPgtype(bookingID),
		ServiceKeys:      serviceKeys,
		ExcludedStatuses: statusStrings(payment.NonBlockingStatuses()),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list attempts by addon", err)
	}
	return toAttempts(rows)
}

func (r *AttemptRepository) ResolvePayment(ctx context.Context, id uuid.UUID, res shared.PaymentResolution) (bool, error) {
	n, err := r.queries.ResolveAttemptPayment(ctx, r.db, sqlc.ResolveAttemptPaymentParams{
		Status:          res.Status.String(),
		GatewayResponse: []byte(res.GatewayResponse),
		FailureReason:   pgconv.StringPtrToPgtype(res.FailureReason),
		PaidAt:          pgconv.TimePtrToPgtype(res.PaidAt),
		UpdatedAt:       pgconv.TimeToPgtype(res.Now),
		ID:              id,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to resolve attempt payment", err)
	}
	return n == 1, nil
}

func (r *AttemptRepository) AcquireBookingLock(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	n, err := r.queries.AcquireAttemptBookingLock(ctx, r.db, sqlc.AcquireAttemptBookingLockParams{
		UpdatedAt: pgconv.TimeToPgtype(now),
		ID:        id,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to acquire booking lock", err)
	}
	return n == 1, nil
}

func (r *AttemptRepository) RecoverStaleLock(ctx context.Context, id uuid.UUID, observedUpdatedAt, now time.Time) (bool, error) {
	n, err := r.queries.RecoverStaleAttemptLock(ctx, r.db, sqlc.RecoverStaleAttemptLockParams{
		UpdatedAt:         pgconv.TimeToPgtype(now),
		ID:                id,
		ObservedUpdatedAt: pgconv.TimeToPgtype(observedUpdatedAt),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to recover stale booking lock", err)
	}
	return n == 1, nil
}

func (r *AttemptRepository) RecordSupplierConfirmation(ctx context.Context, id uuid.UUID, c bookingrecord.Confirmation, now time.Time) (bool, error) {
	doc, err := json.Marshal(c)
	if err != nil {
		return false, infra.WrapRepoErr("failed to encode supplier confirmation", err)
	}
	n, err := r.queries.RecordAttemptSupplierConfirmation(ctx, r.db, sqlc.RecordAttemptSupplierConfirmationParams{
		SupplierConfirmation: doc,
		UpdatedAt:            pgconv.TimeToPgtype(now),
		ID:                   id,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to record supplier confirmation", err)
	}
	return n == 1, nil
}

func (r *AttemptRepository) CompleteBooking(ctx context.Context, id, bookingID uuid.UUID, now time.Time) (bool, error) {
	n, err := r.queries.CompleteAttemptBooking(ctx, r.db, sqlc.CompleteAttemptBookingParams{
		BookingID: pgconv.UUIDToPgtype(bookingID),
		UpdatedAt: pgconv.TimeToPgtype(now),
		ID:        id,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to complete attempt booking", err)
	}
	return n == 1, nil
}

func (r *AttemptRepository) FailBooking(ctx context.Context, id uuid.UUID, reason string, now time.Time) (bool, error) {
	n, err := r.queries.FailAttemptBooking(ctx, r.db, sqlc.FailAttemptBookingParams{
		BookingError: pgconv.StringToPgtype(reason),
		UpdatedAt:    pgconv.TimeToPgtype(now),
		ID:           id,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark attempt booking failed", err)
	}
	return n == 1, nil
}

func (r *AttemptRepository) RecordSideEffects(ctx context.Context, id uuid.UUID, se payment.SideEffectErrors) error {
	err := r.queries.SetAttemptSideEffectErrors(ctx, r.db, sqlc.SetAttemptSideEffectErrorsParams{
		InsuranceError: pgconv.StringPtrToPgtype(se.Insurance),
		EmailError:     pgconv.StringPtrToPgtype(se.Email),
		CouponError:    pgconv.StringPtrToPgtype(se.Coupon),
		ID:             id,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to record side effect errors", err)
	}
	return nil
}

func (r *AttemptRepository) ClaimCouponCount(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.queries.ClaimAttemptCouponCount(ctx, r.db, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim coupon count", err)
	}
	return n == 1, nil
}

// LockIntent takes a transaction-scoped advisory lock on key. It blocks until
// any other transaction holding the same key commits or rolls back.
func (r *AttemptRepository) LockIntent(ctx context.Context, key string) error {
	if err := r.queries.LockPaymentIntent(ctx, r.db, key); err != nil {
		return infra.WrapRepoErr("failed to lock checkout intent", err)
	}
	return nil
}

func statusStrings(statuses []payment.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}

func toAttempts(rows []sqlc.PaymentAttempts) ([]*payment.Attempt, error) {
	out := make([]*payment.Attempt, 0, len(rows))
	for _, row := range rows {
		a, err := toAttempt(row)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func toAttempt(row sqlc.PaymentAttempts) (*payment.Attempt, error) {
	amount, err := pgconv.DecimalFromNumeric(row.Amount)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode attempt amount", err)
	}

	var payload booking.Payload
	if len(row.Payload) > 0 {
		if err := json.Unmarshal(row.Payload, &payload); err != nil {
			return nil, infra.WrapRepoErr("failed to decode attempt payload", err)
		}
	}

	var c *payment.Coupon
	if len(row.Coupon) > 0 {
		c = &payment.Coupon{}
		if err := json.Unmarshal(row.Coupon, c); err != nil {
			return nil, infra.WrapRepoErr("failed to decode attempt coupon", err)
		}
		c.OrderCounted = row.CouponOrderCounted
	}

	var confirmation *bookingrecord.Confirmation
	if len(row.SupplierConfirmation) > 0 {
		confirmation = &bookingrecord.Confirmation{}
		if err := json.Unmarshal(row.SupplierConfirmation, confirmation); err != nil {
			return nil, infra.WrapRepoErr("failed to decode supplier confirmation", err)
		}
	}

	return payment.Reconstruct(payment.ReconstructParams{
		ID:              row.ID,
		Gateway:         row.Gateway,
		OrderID:         row.OrderID,
		Purpose:         payment.Purpose(row.Purpose),
		Status:          payment.Status(row.Status),
		Fingerprint:     pgconv.StringPtrFromPgtype(row.BookingFingerprint),
		SessionID:       row.SessionID,
		HotelCode:       row.HotelCode,
		GroupCode:       row.GroupCode,
		Amount:          amount,
		Currency:        row.Currency,
		Payload:         payload,
		Coupon:          c,
		OwnerID:         pgconv.UUIDPtrFromPgtype(row.OwnerID),
		TargetBookingID: pgconv.UUIDPtrFromPgtype(row.TargetBookingID),
		ServiceKeys:     row.ServiceKeys,
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
		PaidAt:          pgconv.TimePtrFromPgtype(row.PaidAt),
		GatewayResponse: json.RawMessage(row.GatewayResponse),
		BookingID:       pgconv.UUIDPtrFromPgtype(row.BookingID),
		BookingError:    pgconv.StringPtrFromPgtype(row.BookingError),
		FailureReason:   pgconv.StringPtrFromPgtype(row.FailureReason),
		SideEffects: payment.SideEffectErrors{
			Insurance: pgconv.StringPtrFromPgtype(row.InsuranceError),
			Email:     pgconv.StringPtrFromPgtype(row.EmailError),
			Coupon:    pgconv.StringPtrFromPgtype(row.CouponError),
		},
		SupplierConfirmation: confirmation,
	}), nil
}
