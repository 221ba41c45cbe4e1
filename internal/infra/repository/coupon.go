package repository

import (
	"context"

	"hotel-checkout/internal/domain/coupon"
	"hotel-checkout/internal/infra"
	sqlc "hotel-checkout/internal/infra/sqlc/generated"
	"hotel-checkout/internal/pkg/pgconv"
)

type CouponQueries interface {
	GetCouponByCode(ctx context.Context, db sqlc.DBTX, code string) (sqlc.Coupons, error)
	IncrementCouponSuccessfulOrders(ctx context.Context, db sqlc.DBTX, code string) (int64, error)
}

type CouponRepository struct {
	queries CouponQueries
	db      sqlc.DBTX
}

func NewCouponRepository(queries CouponQueries, db sqlc.DBTX) *CouponRepository {
	return &CouponRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	row, err := r.queries.GetCouponByCode(ctx, r.db, code)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}

	percent, err := pgconv.DecimalFromNumeric(row.PercentOff)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert coupon row", err)
	}

	c, err := coupon.Reconstruct(coupon.ReconstructParams{
		ID:               row.ID,
		Code:             row.Code,
		PercentOff:       percent,
		ValidFrom:        pgconv.TimePtrFromPgtype(row.ValidFrom),
		ValidTo:          pgconv.TimePtrFromPgtype(row.ValidTo),
		MaxOrders:        pgconv.Int32PtrFromPgtype(row.MaxOrders),
		SuccessfulOrders: row.SuccessfulOrders,
		Active:           row.IsActive,
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert coupon row", err)
	}
	return c, nil
}

// IncrementSuccessfulOrders returns false when the coupon is inactive or at its limit.
func (r *CouponRepository) IncrementSuccessfulOrders(ctx context.Context, code string) (bool, error) {
	n, err := r.queries.IncrementCouponSuccessfulOrders(ctx, r.db, code)
	if err != nil {
		return false, infra.WrapRepoErr("failed to increment coupon usage", err)
	}
	return n == 1, nil
}
