package readstore

import (
	"context"

	"hotel-checkout/internal/infra"
	sqlc "hotel-checkout/internal/infra/sqlc/generated"
	"hotel-checkout/internal/pkg/pgconv"
	"hotel-checkout/internal/usecase/queries"

	"github.com/google/uuid"
)

type AttemptReadQueries interface {
	GetPaymentAttemptByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.PaymentAttempts, error)
}

type AttemptReadStore struct {
	queries AttemptReadQueries
	db      sqlc.DBTX
}

func NewAttemptReadStore(queries AttemptReadQueries, db sqlc.DBTX) *AttemptReadStore {
	return &AttemptReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *AttemptReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AttemptView, error) {
	row, err := r.queries.GetPaymentAttemptByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment attempt not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment attempt", err)
	}

	amount, err := pgconv.DecimalFromNumeric(row.Amount)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode attempt amount", err)
	}

	return &queries.AttemptView{
		ID:              row.ID,
		Gateway:         row.Gateway,
		OrderID:         row.OrderID,
		Purpose:         row.Purpose,
		Status:          row.Status,
		Amount:          amount,
		Currency:        row.Currency,
		OwnerID:         pgconv.UUIDPtrFromPgtype(row.OwnerID),
		BookingID:       pgconv.UUIDPtrFromPgtype(row.BookingID),
		TargetBookingID: pgconv.UUIDPtrFromPgtype(row.TargetBookingID),
		BookingError:    pgconv.StringPtrFromPgtype(row.BookingError),
		FailureReason:   pgconv.StringPtrFromPgtype(row.FailureReason),
		PaidAt:          pgconv.TimePtrFromPgtype(row.PaidAt),
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}
