//go:build unit

package bookingrecord_test

import (
	"testing"
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/domain/bookingrecord"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_ApplySupportEdit(t *testing.T) {
	actor := uuid.New()

	t.Run("renames a guest and records history", func(t *testing.T) {
		r := recordWith(bookingrecord.StatusConfirmed, booking.Addons{})

		err := r.ApplySupportEdit(bookingrecord.SupportEdit{
			GuestNames: []bookingrecord.GuestNameChange{{RoomIndex: 1, GuestIndex: 0, LastName: ptr.Of(" Petrosyan ")}},
			Reason:     "typo",
		}, actor, now)

		require.NoError(t, err)
		assert.Equal(t, "Petrosyan", r.Payload().Rooms[1].Guests[0].LastName)
		require.Len(t, r.SupportHistory(), 1)
		entry := r.SupportHistory()[0]
		assert.Equal(t, "edit", entry.Action)
		assert.Equal(t, actor, entry.ActorID)
		assert.Contains(t, entry.Changes, "rooms[1].guests[0].lastName")
	})

	t.Run("unchanged values stay out of history", func(t *testing.T) {
		r := recordWith(bookingrecord.StatusConfirmed, booking.Addons{})

		err := r.ApplySupportEdit(bookingrecord.SupportEdit{
			GuestNames: []bookingrecord.GuestNameChange{{RoomIndex: 0, GuestIndex: 0, FirstName: ptr.Of("Ani"), LastName: ptr.Of("Hakobyan")}},
		}, actor, now)

		require.NoError(t, err)
		entry := r.SupportHistory()[0]
		assert.NotContains(t, entry.Changes, "rooms[0].guests[0].firstName")
		assert.Contains(t, entry.Changes, "rooms[0].guests[0].lastName")
		assert.Equal(t, "Hakobyan", r.Payload().Rooms[0].Guests[0].LastName)
	})

	t.Run("cancel requires a reason", func(t *testing.T) {
		r := recordWith(bookingrecord.StatusConfirmed, booking.Addons{})
		err := r.ApplySupportEdit(bookingrecord.SupportEdit{Cancel: true}, actor, now)
		assert.Equal(t, "cancel_reason_required", errs.CodeOf(err))
		assert.Equal(t, bookingrecord.StatusConfirmed, r.Status())
	})

	t.Run("cancel", func(t *testing.T) {
		r := recordWith(bookingrecord.StatusConfirmed, booking.Addons{})
		require.NoError(t, r.ApplySupportEdit(bookingrecord.SupportEdit{Cancel: true, Reason: "guest request"}, actor, now))
		assert.Equal(t, bookingrecord.StatusCanceled, r.Status())

		err := r.ApplySupportEdit(bookingrecord.SupportEdit{Note: ptr.Of("late")}, actor, now)
		assert.Equal(t, "booking_canceled", errs.CodeOf(err))
	})

	t.Run("out of range guest leaves record untouched", func(t *testing.T) {
		r := recordWith(bookingrecord.StatusConfirmed, booking.Addons{})
		err := r.ApplySupportEdit(bookingrecord.SupportEdit{
			GuestNames: []bookingrecord.GuestNameChange{
				{RoomIndex: 0, GuestIndex: 0, FirstName: ptr.Of("Aram")},
				{RoomIndex: 5, GuestIndex: 0, FirstName: ptr.Of("X")},
			},
		}, actor, now)
		assert.Equal(t, "invalid_guest_index", errs.CodeOf(err))
		assert.Equal(t, "Ani", r.Payload().Rooms[0].Guests[0].FirstName)
		assert.Empty(t, r.SupportHistory())
	})

	t.Run("empty edit", func(t *testing.T) {
		r := recordWith(bookingrecord.StatusConfirmed, booking.Addons{})
		assert.Equal(t, "empty_support_edit", errs.CodeOf(r.ApplySupportEdit(bookingrecord.SupportEdit{}, actor, now)))
	})
}

func TestSupportLock_IsExpired(t *testing.T) {
	l := &bookingrecord.SupportLock{Token: uuid.New(), ExpiresAt: now.Add(2 * time.Minute)}
	assert.False(t, l.IsExpired(now))
	assert.True(t, l.IsExpired(now.Add(2*time.Minute)))
}
