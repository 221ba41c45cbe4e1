package readstore

import (
	"context"
	"encoding/json"

	"hotel-checkout/internal/infra"
	sqlc "hotel-checkout/internal/infra/sqlc/generated"
	"hotel-checkout/internal/pkg/pgconv"
	"hotel-checkout/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadQueries interface {
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	ListBookingsByOwner(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByOwnerParams) ([]sqlc.Bookings, error)
}

type BookingReadStore struct {
	queries BookingReadQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingReadQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return toBookingView(row)
}

func (r *BookingReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*queries.BookingListItem, error) {
	rows, err := r.queries.ListBookingsByOwner(ctx, r.db, sqlc.ListBookingsByOwnerParams{
		OwnerID:    pgconv.UUIDToPgtype(ownerID),
		LimitCount: int32(limit), // #nosec G115 -- bounded by queries.ValidateLimit
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}

	items := make([]*queries.BookingListItem, 0, len(rows))
	for _, row := range rows {
		view, err := toBookingView(row)
		if err != nil {
			return nil, err
		}
		items = append(items, &queries.BookingListItem{
			ID:               view.ID,
			Status:           view.Status,
			HotelCode:        view.Payload.HotelCode,
			HotelName:        view.Payload.HotelName,
			CheckIn:          view.Payload.CheckIn,
			CheckOut:         view.Payload.CheckOut,
			ConfirmationCode: view.Confirmation.Code,
			CreatedAt:        view.CreatedAt,
		})
	}
	return items, nil
}

func toBookingView(row sqlc.Bookings) (*queries.BookingView, error) {
	view := &queries.BookingView{
		ID:             row.ID,
		AttemptID:      row.AttemptID,
		OwnerID:        pgconv.UUIDPtrFromPgtype(row.OwnerID),
		Status:         row.Status,
		Policies:       []queries.PolicyView{},
		SupportHistory: []queries.SupportEntryView{},
		Version:        row.Version,
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:      pgconv.TimeFromPgtype(row.UpdatedAt),
	}

	for _, f := range []struct {
		raw []byte
		dst any
	}{
		{row.Payload, &view.Payload},
		{row.Confirmation, &view.Confirmation},
		{row.Policies, &view.Policies},
		{row.SupportHistory, &view.SupportHistory},
	} {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, infra.WrapRepoErr("failed to decode booking document", err)
		}
	}
	return view, nil
}
