package queries

import (
	"context"

	"hotel-checkout/internal/infra"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrAttemptNotFound = errs.NewCoded(errs.ErrNotFound, "payment_attempt_not_found", "Payment attempt not found")

type AttemptQueries interface {
	GetAttempt(ctx context.Context, actor *shared.Actor, id uuid.UUID) (*AttemptView, error)
}

type AttemptReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AttemptView, error)
}

type attemptQueriesImpl struct {
	readStore AttemptReadStore
}

func NewAttemptQueries(readStore AttemptReadStore) AttemptQueries {
	return &attemptQueriesImpl{readStore: readStore}
}

func (q *attemptQueriesImpl) GetAttempt(ctx context.Context, actor *shared.Actor, id uuid.UUID) (*AttemptView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	if !actor.CanSee(view.OwnerID) {
		return nil, ErrAttemptNotFound
	}
	return view, nil
}
