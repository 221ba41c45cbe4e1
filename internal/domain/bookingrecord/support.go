package bookingrecord

import (
	"strconv"
	"strings"
	"time"

	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/pkg/patch"

	"github.com/google/uuid"
)

var (
	ErrSupportLockHeld    = errs.NewCoded(errs.ErrConflict, "support_lock_held", "Another operator is editing this booking, try again shortly")
	ErrInvalidGuestIndex  = errs.NewCoded(errs.ErrValidation, "invalid_guest_index", "Guest does not exist on this booking")
	ErrAlreadyCanceled    = errs.NewCoded(errs.ErrConflict, "booking_canceled", "Booking is already canceled")
	ErrEmptySupportEdit   = errs.NewCoded(errs.ErrValidation, "empty_support_edit", "Nothing to change")
	ErrEmptyGuestName     = errs.NewCoded(errs.ErrValidation, "invalid_guest_name", "Guest names cannot be empty")
	ErrCancelReasonNeeded = errs.NewCoded(errs.ErrValidation, "cancel_reason_required", "A reason is required to cancel a booking")
)

// SupportLock is a short-lived exclusive claim on a record for admin edits.
type SupportLock struct {
	Token     uuid.UUID
	HolderID  uuid.UUID
	ExpiresAt time.Time
}

func (l *SupportLock) IsExpired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}

// SupportEntry is one line of the admin audit trail.
type SupportEntry struct {
	At      time.Time      `json:"at"`
	ActorID uuid.UUID      `json:"actorId"`
	Action  string         `json:"action"`
	Changes map[string]any `json:"changes,omitempty"`
	Reason  string         `json:"reason,omitempty"`
}

type GuestNameChange struct {
	RoomIndex  int
	GuestIndex int
	FirstName  *string
	LastName   *string
}

type SupportEdit struct {
	GuestNames []GuestNameChange
	Note       *string
	Cancel     bool
	Reason     string
}

func (e SupportEdit) IsEmpty() bool {
	return len(e.GuestNames) == 0 && e.Note == nil && !e.Cancel
}

// ApplySupportEdit changes the record and appends an audit entry. The caller
// must hold the support lock.
func (r *Record) ApplySupportEdit(edit SupportEdit, actorID uuid.UUID, now time.Time) error {
	if edit.IsEmpty() {
		return ErrEmptySupportEdit
	}
	if r.status == StatusCanceled {
		return ErrAlreadyCanceled
	}
	if edit.Cancel && strings.TrimSpace(edit.Reason) == "" {
		return ErrCancelReasonNeeded
	}

	changes := map[string]any{}

	for _, gc := range edit.GuestNames {
		if gc.RoomIndex < 0 || gc.RoomIndex >= len(r.payload.Rooms) ||
			gc.GuestIndex < 0 || gc.GuestIndex >= len(r.payload.Rooms[gc.RoomIndex].Guests) {
			return ErrInvalidGuestIndex
		}
		if (gc.FirstName != nil && strings.TrimSpace(*gc.FirstName) == "") ||
			(gc.LastName != nil && strings.TrimSpace(*gc.LastName) == "") {
			return ErrEmptyGuestName
		}
	}
	for _, gc := range edit.GuestNames {
		g := &r.payload.Rooms[gc.RoomIndex].Guests[gc.GuestIndex]
		if first := trimmed(gc.FirstName); patch.Changed(first, g.FirstName) {
			changes[guestField(gc, "firstName")] = map[string]string{"from": g.FirstName, "to": *first}
		}
		if last := trimmed(gc.LastName); patch.Changed(last, g.LastName) {
			changes[guestField(gc, "lastName")] = map[string]string{"from": g.LastName, "to": *last}
		}
		g.FirstName = patch.Coalesce(trimmed(gc.FirstName), g.FirstName)
		g.LastName = patch.Coalesce(trimmed(gc.LastName), g.LastName)
	}

	if patch.Changed(edit.Note, r.payload.Note) {
		changes["note"] = map[string]string{"from": r.payload.Note, "to": *edit.Note}
		r.payload.Note = *edit.Note
	}

	action := "edit"
	if edit.Cancel {
		action = "cancel"
		changes["status"] = map[string]string{"from": r.status.String(), "to": StatusCanceled.String()}
		r.status = StatusCanceled
	}

	r.supportHistory = append(r.supportHistory, SupportEntry{
		At:      now,
		ActorID: actorID,
		Action:  action,
		Changes: changes,
		Reason:  edit.Reason,
	})
	r.updatedAt = now
	return nil
}

func guestField(gc GuestNameChange, field string) string {
	return "rooms[" + strconv.Itoa(gc.RoomIndex) + "].guests[" + strconv.Itoa(gc.GuestIndex) + "]." + field
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
