//go:build unit

// Package memstore is an in-memory shared.UnitOfWork for usecase tests. Every
// conditional update mirrors the WHERE clause of its SQL counterpart.
package memstore

import (
	"context"
	"sync"
	"time"

	"hotel-checkout/internal/domain/bookingrecord"
	"hotel-checkout/internal/domain/coupon"
	"hotel-checkout/internal/domain/payment"
	"hotel-checkout/internal/domain/user"
	"hotel-checkout/internal/infra"
	sqlc "hotel-checkout/internal/infra/sqlc/generated"
	"hotel-checkout/internal/usecase/queries"
	"hotel-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Store struct {
	mu            sync.Mutex
	attempts      map[uuid.UUID]payment.ReconstructParams
	couponCounted map[uuid.UUID]bool
	bookings      map[uuid.UUID]bookingrecord.ReconstructParams
	coupons       map[string]coupon.ReconstructParams
	ownerHistory  map[uuid.UUID][]uuid.UUID
	users         map[uuid.UUID]account
	logins        map[uuid.UUID]int
	intents       []string

	// Fail, when set, is returned by the named operation instead of running it.
	Fail map[string]error
}

func New() *Store {
	return &Store{
		attempts:      map[uuid.UUID]payment.ReconstructParams{},
		couponCounted: map[uuid.UUID]bool{},
		bookings:      map[uuid.UUID]bookingrecord.ReconstructParams{},
		coupons:       map[string]coupon.ReconstructParams{},
		ownerHistory:  map[uuid.UUID][]uuid.UUID{},
		users:         map[uuid.UUID]account{},
		logins:        map[uuid.UUID]int{},
		Fail:          map[string]error{},
	}
}

var (
	_ shared.UnitOfWork     = (*Store)(nil)
	_ queries.UserReadStore = (*Store)(nil)
)

// Within runs fn against the store and restores the previous state when fn fails.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	snap := s.snapshot()
	if err := fn(ctx, txView{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) Repos() shared.Repositories { return txView{s} }

// Seeding and inspection helpers.

func (s *Store) PutAttempt(a *payment.Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[a.ID()] = attemptParams(a)
}

func (s *Store) Attempt(id uuid.UUID) *payment.Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.attempts[id]
	if !ok {
		return nil
	}
	return payment.Reconstruct(p)
}

func (s *Store) AttemptList() []*payment.Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*payment.Attempt, 0, len(s.attempts))
	for _, p := range s.attempts {
		out = append(out, payment.Reconstruct(p))
	}
	return out
}

// Intents lists the checkout intent keys locked so far, in order.
func (s *Store) Intents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.intents...)
}

func (s *Store) CouponCounted(attemptID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.couponCounted[attemptID]
}

func (s *Store) PutBooking(r *bookingrecord.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[r.ID()] = bookingParams(r)
}

func (s *Store) Booking(id uuid.UUID) *bookingrecord.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.bookings[id]
	if !ok {
		return nil
	}
	return bookingrecord.Reconstruct(p)
}

func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

// SetBookingLock plants a support lock as if another operator held it.
func (s *Store) SetBookingLock(id uuid.UUID, lock *bookingrecord.SupportLock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.bookings[id]
	p.Lock = lock
	s.bookings[id] = p
}

func (s *Store) PutCoupon(p coupon.ReconstructParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupons[p.Code] = p
}

func (s *Store) CouponOrders(code string) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coupons[code].SuccessfulOrders
}

func (s *Store) OwnerHistory(ownerID uuid.UUID) []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uuid.UUID(nil), s.ownerHistory[ownerID]...)
}

type state struct {
	attempts      map[uuid.UUID]payment.ReconstructParams
	couponCounted map[uuid.UUID]bool
	bookings      map[uuid.UUID]bookingrecord.ReconstructParams
	coupons       map[string]coupon.ReconstructParams
	ownerHistory  map[uuid.UUID][]uuid.UUID
}

func (s *Store) snapshot() state {
	s.mu.Lock()
	defer s.mu.Unlock()
	return state{
		attempts:      cloneMap(s.attempts),
		couponCounted: cloneMap(s.couponCounted),
		bookings:      cloneMap(s.bookings),
		coupons:       cloneMap(s.coupons),
		ownerHistory:  cloneMap(s.ownerHistory),
	}
}

func (s *Store) restore(st state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = st.attempts
	s.couponCounted = st.couponCounted
	s.bookings = st.bookings
	s.coupons = st.coupons
	s.ownerHistory = st.ownerHistory
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", pgx.ErrNoRows, infra.KindNotFound)
}

func (s *Store) failure(op string) error {
	return s.Fail[op]
}

type txView struct{ s *Store }

func (t txView) Attempts() shared.AttemptRepository { return attemptRepo{t.s} }
func (t txView) Bookings() shared.BookingRepository { return bookingRepo{t.s} }
func (t txView) Coupons() shared.CouponRepository   { return couponRepo{t.s} }
func (t txView) Users() shared.UserRepository       { return userRepo{t.s} }
func (t txView) DB() sqlc.DBTX                      { return nil }

type attemptRepo struct{ s *Store }

func (r attemptRepo) Create(_ context.Context, a *payment.Attempt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("attempts.create"); err != nil {
		return err
	}
	for _, p := range r.s.attempts {
		if p.Gateway == a.Gateway() && p.OrderID == a.OrderID() {
			return infra.WrapRepoErr("payment attempt exists", nil, infra.KindDuplicateKey)
		}
	}
	r.s.attempts[a.ID()] = attemptParams(a)
	return nil
}

func (r attemptRepo) FindByID(_ context.Context, id uuid.UUID) (*payment.Attempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.attempts[id]
	if !ok {
		return nil, notFound("payment attempt")
	}
	return payment.Reconstruct(p), nil
}

func (r attemptRepo) FindByOrder(_ context.Context, gateway, orderID string) (*payment.Attempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.attempts {
		if p.Gateway == gateway && p.OrderID == orderID {
			return payment.Reconstruct(p), nil
		}
	}
	return nil, notFound("payment attempt")
}

func (r attemptRepo) ListActiveByFingerprint(_ context.Context, q shared.FingerprintQuery) ([]*payment.Attempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*payment.Attempt
	for _, p := range r.s.attempts {
		if p.Purpose != payment.PurposeBooking || nonBlocking(p.Status) {
			continue
		}
		sameFingerprint := p.Fingerprint != nil && *p.Fingerprint == q.Fingerprint
		sameSelection := p.Fingerprint == nil &&
			p.SessionID == q.SessionID && p.HotelCode == q.HotelCode && p.GroupCode == q.GroupCode
		if sameFingerprint || sameSelection {
			out = append(out, payment.Reconstruct(p))
		}
	}
	return out, nil
}

func (r attemptRepo) ListActiveByAddon(_ context.Context, bookingID uuid.UUID, serviceKeys []string) ([]*payment.Attempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := map[string]struct{}{}
	for _, k := range serviceKeys {
		want[k] = struct{}{}
	}
	var out []*payment.Attempt
	for _, p := range r.s.attempts {
		if p.Purpose != payment.PurposeAddon || nonBlocking(p.Status) ||
			p.TargetBookingID == nil || *p.TargetBookingID != bookingID {
			continue
		}
		for _, k := range p.ServiceKeys {
			if _, ok := want[k]; ok {
				out = append(out, payment.Reconstruct(p))
				break
			}
		}
	}
	return out, nil
}

func (r attemptRepo) LockIntent(_ context.Context, key string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("attempts.lock_intent"); err != nil {
		return err
	}
	r.s.intents = append(r.s.intents, key)
	return nil
}

func (r attemptRepo) ResolvePayment(_ context.Context, id uuid.UUID, res shared.PaymentResolution) (bool, error) {
	return r.update(id, "attempts.resolve", func(p *payment.ReconstructParams) bool {
		if !p.Status.IsPrePayment() {
			return false
		}
		p.Status = res.Status
		p.GatewayResponse = res.GatewayResponse
		p.FailureReason = res.FailureReason
		p.PaidAt = res.PaidAt
		p.UpdatedAt = res.Now
		return true
	})
}

func (r attemptRepo) AcquireBookingLock(_ context.Context, id uuid.UUID, now time.Time) (bool, error) {
	return r.update(id, "attempts.lock", func(p *payment.ReconstructParams) bool {
		if !p.Status.IsLockable() {
			return false
		}
		p.Status = payment.StatusBookingInProgress
		p.UpdatedAt = now
		return true
	})
}

func (r attemptRepo) RecoverStaleLock(_ context.Context, id uuid.UUID, observedUpdatedAt, now time.Time) (bool, error) {
	return r.update(id, "attempts.recover", func(p *payment.ReconstructParams) bool {
		if p.Status != payment.StatusBookingInProgress || !p.UpdatedAt.Equal(observedUpdatedAt) {
			return false
		}
		p.UpdatedAt = now
		return true
	})
}

func (r attemptRepo) RecordSupplierConfirmation(_ context.Context, id uuid.UUID, c bookingrecord.Confirmation, now time.Time) (bool, error) {
	return r.update(id, "attempts.supplier_confirmation", func(p *payment.ReconstructParams) bool {
		if p.Status != payment.StatusBookingInProgress || p.SupplierConfirmation != nil {
			return false
		}
		p.SupplierConfirmation = &c
		p.UpdatedAt = now
		return true
	})
}

func (r attemptRepo) CompleteBooking(_ context.Context, id, bookingID uuid.UUID, now time.Time) (bool, error) {
	return r.update(id, "attempts.complete", func(p *payment.ReconstructParams) bool {
		if p.Status != payment.StatusBookingInProgress {
			return false
		}
		p.Status = payment.StatusBookingComplete
		p.BookingID = &bookingID
		p.BookingError = nil
		p.UpdatedAt = now
		return true
	})
}

func (r attemptRepo) FailBooking(_ context.Context, id uuid.UUID, reason string, now time.Time) (bool, error) {
	return r.update(id, "attempts.fail", func(p *payment.ReconstructParams) bool {
		if p.Status != payment.StatusBookingInProgress {
			return false
		}
		p.Status = payment.StatusBookingFailed
		p.BookingError = &reason
		p.UpdatedAt = now
		return true
	})
}

func (r attemptRepo) RecordSideEffects(_ context.Context, id uuid.UUID, se payment.SideEffectErrors) error {
	_, err := r.update(id, "attempts.side_effects", func(p *payment.ReconstructParams) bool {
		if se.Insurance != nil {
			p.SideEffects.Insurance = se.Insurance
		}
		if se.Email != nil {
			p.SideEffects.Email = se.Email
		}
		if se.Coupon != nil {
			p.SideEffects.Coupon = se.Coupon
		}
		return true
	})
	return err
}

func (r attemptRepo) ClaimCouponCount(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("attempts.claim_coupon"); err != nil {
		return false, err
	}
	p, ok := r.s.attempts[id]
	if !ok || p.Coupon == nil || r.s.couponCounted[id] {
		return false, nil
	}
	r.s.couponCounted[id] = true
	c := *p.Coupon
	c.OrderCounted = true
	p.Coupon = &c
	r.s.attempts[id] = p
	return true, nil
}

func (r attemptRepo) update(id uuid.UUID, op string, apply func(p *payment.ReconstructParams) bool) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(op); err != nil {
		return false, err
	}
	p, ok := r.s.attempts[id]
	if !ok || !apply(&p) {
		return false, nil
	}
	r.s.attempts[id] = p
	return true, nil
}

func nonBlocking(s payment.Status) bool {
	for _, st := range payment.NonBlockingStatuses() {
		if st == s {
			return true
		}
	}
	return false
}

type bookingRepo struct{ s *Store }

func (r bookingRepo) Create(_ context.Context, rec *bookingrecord.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("bookings.create"); err != nil {
		return err
	}
	r.s.bookings[rec.ID()] = bookingParams(rec)
	return nil
}

func (r bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingrecord.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.bookings[id]
	if !ok {
		return nil, notFound("booking")
	}
	return bookingrecord.Reconstruct(p), nil
}

func (r bookingRepo) FindByAttemptID(_ context.Context, attemptID uuid.UUID) (*bookingrecord.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.bookings {
		if p.AttemptID == attemptID {
			return bookingrecord.Reconstruct(p), nil
		}
	}
	return nil, notFound("booking")
}

func (r bookingRepo) UpdateAddons(_ context.Context, rec *bookingrecord.Record) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("bookings.update_addons"); err != nil {
		return false, err
	}
	p, ok := r.s.bookings[rec.ID()]
	if !ok || p.Version != rec.Version() || p.Status != bookingrecord.StatusConfirmed {
		return false, nil
	}
	p.Payload = rec.Payload()
	p.Version++
	p.UpdatedAt = rec.UpdatedAt()
	r.s.bookings[rec.ID()] = p
	return true, nil
}

func (r bookingRepo) SetPolicies(_ context.Context, rec *bookingrecord.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("bookings.set_policies"); err != nil {
		return err
	}
	p := r.s.bookings[rec.ID()]
	p.Policies = rec.Policies()
	r.s.bookings[rec.ID()] = p
	return nil
}

func (r bookingRepo) AcquireSupportLock(_ context.Context, id uuid.UUID, lock bookingrecord.SupportLock, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.bookings[id]
	if !ok || (p.Lock != nil && !p.Lock.IsExpired(now)) {
		return false, nil
	}
	l := lock
	p.Lock = &l
	r.s.bookings[id] = p
	return true, nil
}

func (r bookingRepo) ReleaseSupportLock(_ context.Context, id, token uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.bookings[id]
	if ok && p.Lock != nil && p.Lock.Token == token {
		p.Lock = nil
		r.s.bookings[id] = p
	}
	return nil
}

func (r bookingRepo) UpdateBySupport(_ context.Context, rec *bookingrecord.Record, token uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.bookings[rec.ID()]
	if !ok || p.Lock == nil || p.Lock.Token != token || !p.Lock.ExpiresAt.After(rec.UpdatedAt()) {
		return false, nil
	}
	p.Status = rec.Status()
	p.Payload = rec.Payload()
	p.SupportHistory = rec.SupportHistory()
	p.Version++
	p.UpdatedAt = rec.UpdatedAt()
	r.s.bookings[rec.ID()] = p
	return true, nil
}

func (r bookingRepo) AppendOwnerHistory(_ context.Context, rec *bookingrecord.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec.OwnerID() == nil {
		return nil
	}
	owner := *rec.OwnerID()
	r.s.ownerHistory[owner] = append(r.s.ownerHistory[owner], rec.ID())
	return nil
}

type couponRepo struct{ s *Store }

func (r couponRepo) FindByCode(_ context.Context, code string) (*coupon.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.coupons[code]
	if !ok {
		return nil, notFound("coupon")
	}
	return coupon.Reconstruct(p)
}

func (r couponRepo) IncrementSuccessfulOrders(_ context.Context, code string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("coupons.increment"); err != nil {
		return false, err
	}
	p, ok := r.s.coupons[code]
	if !ok || !p.Active || (p.MaxOrders != nil && p.SuccessfulOrders >= *p.MaxOrders) {
		return false, nil
	}
	p.SuccessfulOrders++
	r.s.coupons[code] = p
	return true, nil
}

type account struct {
	view queries.AuthorizedUserView
	hash string
}

// PutUser seeds an account for the user read store.
func (s *Store) PutUser(view queries.AuthorizedUserView, passwordHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[view.ID] = account{view: view, hash: passwordHash}
}

// Logins counts recorded last-login updates.
func (s *Store) Logins(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logins[id]
}

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("users.find"); err != nil {
		return nil, err
	}
	a, ok := s.users[id]
	if !ok {
		return nil, notFound("user")
	}
	view := a.view
	return &view, nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("users.find"); err != nil {
		return nil, "", err
	}
	for _, a := range s.users {
		if a.view.Email == email {
			view := a.view
			return &view, a.hash, nil
		}
	}
	return nil, "", notFound("user")
}

type userRepo struct{ s *Store }

func (r userRepo) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.update_last_login"); err != nil {
		return err
	}
	r.s.logins[id]++
	return nil
}

func (userRepo) Create(_ context.Context, u *user.User) (uuid.UUID, error) { return u.ID(), nil }

func attemptParams(a *payment.Attempt) payment.ReconstructParams {
	return payment.ReconstructParams{
		ID:              a.ID(),
		Gateway:         a.Gateway(),
		OrderID:         a.OrderID(),
		Purpose:         a.Purpose(),
		Status:          a.Status(),
		Fingerprint:     a.Fingerprint(),
		SessionID:       a.SessionID(),
		HotelCode:       a.HotelCode(),
		GroupCode:       a.GroupCode(),
		Amount:          a.Amount(),
		Currency:        a.Currency(),
		Payload:         a.Payload(),
		Coupon:          a.Coupon(),
		OwnerID:         a.OwnerID(),
		TargetBookingID: a.TargetBookingID(),
		ServiceKeys:     a.ServiceKeys(),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
		PaidAt:          a.PaidAt(),
		GatewayResponse: a.GatewayResponse(),
		BookingID:       a.BookingID(),
		BookingError:    a.BookingError(),
		FailureReason:   a.FailureReason(),
		SideEffects:     a.SideEffects(),

		SupplierConfirmation: a.SupplierConfirmation(),
	}
}

func bookingParams(r *bookingrecord.Record) bookingrecord.ReconstructParams {
	return bookingrecord.ReconstructParams{
		ID:             r.ID(),
		AttemptID:      r.AttemptID(),
		OwnerID:        r.OwnerID(),
		Status:         r.Status(),
		Payload:        r.Payload(),
		Confirmation:   r.Confirmation(),
		Policies:       r.Policies(),
		SupportHistory: r.SupportHistory(),
		Version:        r.Version(),
		Lock:           r.Lock(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
}
