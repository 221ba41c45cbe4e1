package shared

import (
	"hotel-checkout/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the caller of a usecase. A nil *Actor is an anonymous guest.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func (a *Actor) IDPtr() *uuid.UUID {
	if a == nil {
		return nil
	}
	id := a.UserID
	return &id
}

// CanSee reports whether the actor may read a resource owned by ownerID.
// Unowned resources are visible to anyone holding their id.
func (a *Actor) CanSee(ownerID *uuid.UUID) bool {
	if ownerID == nil {
		return true
	}
	if a == nil {
		return false
	}
	return a.Role.CanEditBookings() || a.UserID == *ownerID
}
