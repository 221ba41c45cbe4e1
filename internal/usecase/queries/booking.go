package queries

import (
	"context"

	"hotel-checkout/internal/infra"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrBookingNotFound = errs.NewCoded(errs.ErrNotFound, "booking_not_found", "Booking not found")

type BookingQueries interface {
	GetBooking(ctx context.Context, actor *shared.Actor, id uuid.UUID) (*BookingView, error)
	ListBookings(ctx context.Context, actor *shared.Actor, limit int) ([]*BookingListItem, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	readStore BookingReadStore
}

func NewBookingQueries(readStore BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{readStore: readStore}
}

// GetBooking hides bookings the actor may not see behind a not-found.
func (q *bookingQueriesImpl) GetBooking(ctx context.Context, actor *shared.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if view.OwnerID == nil && (actor == nil || !actor.Role.CanEditBookings()) {
		return nil, ErrBookingNotFound
	}
	if !actor.CanSee(view.OwnerID) {
		return nil, ErrBookingNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListBookings(ctx context.Context, actor *shared.Actor, limit int) ([]*BookingListItem, error) {
	if actor == nil {
		return nil, ErrUserAccess
	}
	return q.readStore.ListByOwner(ctx, actor.UserID, ValidateLimit(limit))
}

const MaxListLimit = 200

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default limit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
