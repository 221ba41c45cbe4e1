package shared

import (
	"context"
	"encoding/json"
	"time"

	"hotel-checkout/internal/domain/bookingrecord"
	"hotel-checkout/internal/domain/coupon"
	"hotel-checkout/internal/domain/payment"
	"hotel-checkout/internal/domain/user"
	sqlc "hotel-checkout/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// Repos: pool-backed repositories for single statements outside a transaction.
	// Every conditional update is a single statement, so this is safe for them too.
	Repos() Repositories
}

type Repositories interface {
	Attempts() AttemptRepository
	Bookings() BookingRepository
	Coupons() CouponRepository
	Users() UserRepository
}

type Tx interface {
	Repositories
	DB() sqlc.DBTX
}

// AttemptRepository persists the payment attempt ledger. Methods returning a
// bool report whether the conditional update matched a row.
type AttemptRepository interface {
	Create(ctx context.Context, a *payment.Attempt) error
	FindByID(ctx context.Context, id uuid.UUID) (*payment.Attempt, error)
	FindByOrder(ctx context.Context, gateway, orderID string) (*payment.Attempt, error)
	ListActiveByFingerprint(ctx context.Context, q FingerprintQuery) ([]*payment.Attempt, error)
	ListActiveByAddon(ctx context.Context, bookingID uuid.UUID, serviceKeys []string) ([]*payment.Attempt, error)
	// LockIntent serializes checkouts sharing key until the transaction ends.
	LockIntent(ctx context.Context, key string) error

	ResolvePayment(ctx context.Context, id uuid.UUID, res PaymentResolution) (bool, error)
	AcquireBookingLock(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
	RecoverStaleLock(ctx context.Context, id uuid.UUID, observedUpdatedAt, now time.Time) (bool, error)
	RecordSupplierConfirmation(ctx context.Context, id uuid.UUID, c bookingrecord.Confirmation, now time.Time) (bool, error)
	CompleteBooking(ctx context.Context, id, bookingID uuid.UUID, now time.Time) (bool, error)
	FailBooking(ctx context.Context, id uuid.UUID, reason string, now time.Time) (bool, error)
	RecordSideEffects(ctx context.Context, id uuid.UUID, se payment.SideEffectErrors) error
	ClaimCouponCount(ctx context.Context, id uuid.UUID) (bool, error)
}

type FingerprintQuery struct {
	Fingerprint string
	SessionID   string
	HotelCode   string
	GroupCode   string
}

// PaymentResolution moves a pre-payment attempt to one of the payment outcomes.
type PaymentResolution struct {
	Status          payment.Status
	GatewayResponse json.RawMessage
	FailureReason   *string
	PaidAt          *time.Time
	Now             time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, r *bookingrecord.Record) error
	FindByID(ctx context.Context, id uuid.UUID) (*bookingrecord.Record, error)
	FindByAttemptID(ctx context.Context, attemptID uuid.UUID) (*bookingrecord.Record, error)
	// UpdateAddons saves the merged payload if the stored version still equals r.Version().
	UpdateAddons(ctx context.Context, r *bookingrecord.Record) (bool, error)
	SetPolicies(ctx context.Context, r *bookingrecord.Record) error
	AcquireSupportLock(ctx context.Context, id uuid.UUID, lock bookingrecord.SupportLock, now time.Time) (bool, error)
	ReleaseSupportLock(ctx context.Context, id, token uuid.UUID) error
	UpdateBySupport(ctx context.Context, r *bookingrecord.Record, token uuid.UUID) (bool, error)
	AppendOwnerHistory(ctx context.Context, r *bookingrecord.Record) error
}

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*coupon.Coupon, error)
	IncrementSuccessfulOrders(ctx context.Context, code string) (bool, error)
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
	Create(ctx context.Context, u *user.User) (uuid.UUID, error)
}
