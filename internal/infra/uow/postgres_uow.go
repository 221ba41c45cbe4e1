package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"hotel-checkout/internal/infra/repository"
	sqlc "hotel-checkout/internal/infra/sqlc/generated"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// Two finalizers racing on the same attempt or coupon counter surface as
// one of these; the loser retries and then sees the winner's row.
var retryableCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"55P03": true, // lock_not_available
}

type retryPolicy struct {
	maxRetries int
	base       time.Duration
}

var defaultRetry = retryPolicy{maxRetries: 3, base: 100 * time.Millisecond}

type PostgresUoW struct {
	pool  *pgxpool.Pool
	q     *sqlc.Queries
	retry retryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries) shared.UnitOfWork {
	return &PostgresUoW{pool: pool, q: q, retry: defaultRetry}
}

// Within runs fn in a read-committed transaction; the checkout's conditional
// updates carry their own WHERE guards.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	for attempt := 0; ; attempt++ {
		err := u.once(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		if attempt == u.retry.maxRetries {
			slog.ErrorContext(ctx, "transaction failed after max retries", "attempts", attempt+1, "error", err)
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		wait := backoff(attempt, u.retry.base)
		slog.WarnContext(ctx, "retrying transaction", "attempt", attempt+1, "wait_ms", wait.Milliseconds(), "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (u *PostgresUoW) once(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	err = fn(ctx, &pgTx{repos: repos{q: u.q, dbtx: pgxTx}})
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}
	rollback(ctx, pgxTx)
	return err
}

// WithinReadOnly gives booking detail reads a repeatable snapshot across the
// booking row and its payment attempts.
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer rollback(ctx, pgxTx)

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}
	return pgxTx.Commit(ctx)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, u.pool)
}

// Repos are bound to the pool; each call runs in its own implicit transaction.
func (u *PostgresUoW) Repos() shared.Repositories {
	return &repos{q: u.q, dbtx: u.pool}
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.WarnContext(ctx, "rollback failed", "error", err)
	}
}

// backoff doubles per attempt with up to 20% jitter.
func backoff(attempt int, base time.Duration) time.Duration {
	wait := base << attempt
	if jitter := int64(wait / 5); jitter > 0 {
		wait += time.Duration(rand.Int64N(jitter))
	}
	return wait
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && retryableCodes[pgErr.Code]
}

type repos struct {
	q    *sqlc.Queries
	dbtx sqlc.DBTX

	attempts shared.AttemptRepository
	bookings shared.BookingRepository
	coupons  shared.CouponRepository
	users    shared.UserRepository
}

func (r *repos) Attempts() shared.AttemptRepository {
	if r.attempts == nil {
		r.attempts = repository.NewAttemptRepository(r.q, r.dbtx)
	}
	return r.attempts
}

func (r *repos) Bookings() shared.BookingRepository {
	if r.bookings == nil {
		r.bookings = repository.NewBookingRepository(r.q, r.dbtx)
	}
	return r.bookings
}

func (r *repos) Coupons() shared.CouponRepository {
	if r.coupons == nil {
		r.coupons = repository.NewCouponRepository(r.q, r.dbtx)
	}
	return r.coupons
}

func (r *repos) Users() shared.UserRepository {
	if r.users == nil {
		r.users = repository.NewUserRepository(r.q, r.dbtx)
	}
	return r.users
}

type pgTx struct {
	repos
}

func (t *pgTx) DB() sqlc.DBTX {
	return t.dbtx
}
