package readstore

import (
	"context"

	"hotel-checkout/internal/infra"
	sqlc "hotel-checkout/internal/infra/sqlc/generated"
	"hotel-checkout/internal/pkg/pgconv"
	"hotel-checkout/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	FindUserByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.FindUserByIDRow, error)
	FindUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (sqlc.Users, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      sqlc.DBTX
}

func NewUserReadStore(queries UserReadQueries, db sqlc.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row, err := r.queries.FindUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return userView(row.ID, row.Email, row.Role, row.FullName, row.IsActive), nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	row, err := r.queries.FindUserByEmail(ctx, r.db, email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}

	// Inactive accounts are returned too; the caller decides what to reveal.
	return userView(row.ID, row.Email, row.Role, row.FullName, row.IsActive), row.PasswordHash, nil
}

func userView(id uuid.UUID, email, role, fullName string, active bool) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       id,
		Email:    email,
		Role:     role,
		FullName: fullName,
		IsActive: active,
	}
}
