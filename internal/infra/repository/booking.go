package repository

import (
	"context"
	"encoding/json"
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/domain/bookingrecord"
	"hotel-checkout/internal/infra"
	sqlc "hotel-checkout/internal/infra/sqlc/generated"
	"hotel-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingQueries interface {
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) error
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	GetBookingByAttemptID(ctx context.Context, db sqlc.DBTX, attemptID uuid.UUID) (sqlc.Bookings, error)
	UpdateBookingAddons(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingAddonsParams) (int64, error)
	SetBookingPolicies(ctx context.Context, db sqlc.DBTX, arg sqlc.SetBookingPoliciesParams) error
	AcquireBookingSupportLock(ctx context.Context, db sqlc.DBTX, arg sqlc.AcquireBookingSupportLockParams) (int64, error)
	ReleaseBookingSupportLock(ctx context.Context, db sqlc.DBTX, arg sqlc.ReleaseBookingSupportLockParams) (int64, error)
	UpdateBookingBySupport(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingBySupportParams) (int64, error)
	InsertUserBookingHistory(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertUserBookingHistoryParams) error
}

type BookingRepository struct {
	queries BookingQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, rec *bookingrecord.Record) error {
	doc, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	err = r.queries.CreateBooking(ctx, r.db, sqlc.CreateBookingParams{
		ID:             rec.ID(),
		AttemptID:      rec.AttemptID(),
		OwnerID:        pgconv.UUIDPtrToPgtype(rec.OwnerID()),
		Status:         rec.Status().String(),
		Payload:        doc.payload,
		Confirmation:   doc.confirmation,
		Policies:       doc.policies,
		SupportHistory: doc.history,
		Version:        rec.Version(),
		CreatedAt:      pgconv.TimeToPgtype(rec.CreatedAt()),
		UpdatedAt:      pgconv.TimeToPgtype(rec.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingrecord.Record, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return ToRecord(row)
}

func (r *BookingRepository) FindByAttemptID(ctx context.Context, attemptID uuid.UUID) (*bookingrecord.Record, error) {
	row, err := r.queries.GetBookingByAttemptID(ctx, r.db, attemptID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by attempt", err)
	}
	return ToRecord(row)
}

func (r *BookingRepository) UpdateAddons(ctx context.Context, rec *bookingrecord.Record) (bool, error) {
	payload, err := json.Marshal(rec.Payload())
	if err != nil {
		return false, infra.WrapRepoErr("failed to encode booking payload", err)
	}

	n, err := r.queries.UpdateBookingAddons(ctx, r.db, sqlc.UpdateBookingAddonsParams{
		Payload:   payload,
		UpdatedAt: pgconv.TimeToPgtype(rec.UpdatedAt()),
		ID:        rec.ID(),
		Version:   rec.Version(),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to merge booking addons", err)
	}
	return n == 1, nil
}

func (r *BookingRepository) SetPolicies(ctx context.Context, rec *bookingrecord.Record) error {
	policies, err := json.Marshal(nonNil(rec.Policies()))
	if err != nil {
		return infra.WrapRepoErr("failed to encode booking policies", err)
	}

	err = r.queries.SetBookingPolicies(ctx, r.db, sqlc.SetBookingPoliciesParams{
		Policies:  policies,
		UpdatedAt: pgconv.TimeToPgtype(rec.UpdatedAt()),
		ID:        rec.ID(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to set booking policies", err)
	}
	return nil
}

func (r *BookingRepository) AcquireSupportLock(ctx context.Context, id uuid.UUID, lock bookingrecord.SupportLock, now time.Time) (bool, error) {
	n, err := r.queries.AcquireBookingSupportLock(ctx, r.db, sqlc.AcquireBookingSupportLockParams{
		Token:     pgconv.UUIDToPgtype(lock.Token),
		HolderID:  pgconv.UUIDToPgtype(lock.HolderID),
		ExpiresAt: pgconv.TimeToPgtype(lock.ExpiresAt),
		ID:        id,
		Now:       pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to acquire support lock", err)
	}
	return n == 1, nil
}

func (r *BookingRepository) ReleaseSupportLock(ctx context.Context, id, token uuid.UUID) error {
	_, err := r.queries.ReleaseBookingSupportLock(ctx, r.db, sqlc.ReleaseBookingSupportLockParams{
		ID:    id,
		Token: pgconv.UUIDToPgtype(token),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to release support lock", err)
	}
	return nil
}

func (r *BookingRepository) UpdateBySupport(ctx context.Context, rec *bookingrecord.Record, token uuid.UUID) (bool, error) {
	doc, err := encodeRecord(rec)
	if err != nil {
		return false, err
	}

	n, err := r.queries.UpdateBookingBySupport(ctx, r.db, sqlc.UpdateBookingBySupportParams{
		Status:         rec.Status().String(),
		Payload:        doc.payload,
		SupportHistory: doc.history,
		UpdatedAt:      pgconv.TimeToPgtype(rec.UpdatedAt()),
		ID:             rec.ID(),
		Token:          pgconv.UUIDToPgtype(token),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to save support edit", err)
	}
	return n == 1, nil
}

// AppendOwnerHistory is a no-op for guest bookings.
func (r *BookingRepository) AppendOwnerHistory(ctx context.Context, rec *bookingrecord.Record) error {
	owner := rec.OwnerID()
	if owner == nil {
		return nil
	}
	p := rec.Payload()

	err := r.queries.InsertUserBookingHistory(ctx, r.db, sqlc.InsertUserBookingHistoryParams{
		UserID:    *owner,
		BookingID: rec.ID(),
		HotelCode: p.HotelCode,
		CheckIn:   pgconv.DateFromString(p.CheckIn),
		CheckOut:  pgconv.DateFromString(p.CheckOut),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to append booking history", err)
	}
	return nil
}

type recordDoc struct {
	payload      []byte
	confirmation []byte
	policies     []byte
	history      []byte
}

func encodeRecord(rec *bookingrecord.Record) (recordDoc, error) {
	var (
		doc recordDoc
		err error
	)
	if doc.payload, err = json.Marshal(rec.Payload()); err != nil {
		return doc, infra.WrapRepoErr("failed to encode booking payload", err)
	}
	if doc.confirmation, err = json.Marshal(rec.Confirmation()); err != nil {
		return doc, infra.WrapRepoErr("failed to encode booking confirmation", err)
	}
	if doc.policies, err = json.Marshal(nonNil(rec.Policies())); err != nil {
		return doc, infra.WrapRepoErr("failed to encode booking policies", err)
	}
	if doc.history, err = json.Marshal(nonNil(rec.SupportHistory())); err != nil {
		return doc, infra.WrapRepoErr("failed to encode support history", err)
	}
	return doc, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ToRecord rebuilds the aggregate from its row. Shared with the read store.
func ToRecord(row sqlc.Bookings) (*bookingrecord.Record, error) {
	var (
		payload      booking.Payload
		confirmation bookingrecord.Confirmation
		policies     []bookingrecord.Policy
		history      []bookingrecord.SupportEntry
	)
	for _, f := range []struct {
		raw  []byte
		dst  any
		name string
	}{
		{row.Payload, &payload, "payload"},
		{row.Confirmation, &confirmation, "confirmation"},
		{row.Policies, &policies, "policies"},
		{row.SupportHistory, &history, "support history"},
	} {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, infra.WrapRepoErr("failed to decode booking "+f.name, err)
		}
	}

	var lock *bookingrecord.SupportLock
	if row.SupportLockToken.Valid {
		lock = &bookingrecord.SupportLock{
			Token:     uuid.UUID(row.SupportLockToken.Bytes),
			HolderID:  uuid.UUID(row.SupportLockHolder.Bytes),
			ExpiresAt: pgconv.TimeFromPgtype(row.SupportLockExpiresAt),
		}
	}

	return bookingrecord.Reconstruct(bookingrecord.ReconstructParams{
		ID:             row.ID,
		AttemptID:      row.AttemptID,
		OwnerID:        pgconv.UUIDPtrFromPgtype(row.OwnerID),
		Status:         bookingrecord.Status(row.Status),
		Payload:        payload,
		Confirmation:   confirmation,
		Policies:       policies,
		SupportHistory: history,
		Version:        row.Version,
		Lock:           lock,
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:      pgconv.TimeFromPgtype(row.UpdatedAt),
	}), nil
}
