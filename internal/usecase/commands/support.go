package commands

import (
	"context"
	"log/slog"
	"time"

	"hotel-checkout/internal/domain/bookingrecord"
	reqdto "hotel-checkout/internal/handler/dto/request"
	"hotel-checkout/internal/infra"
	"hotel-checkout/internal/pkg/clock"
	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSupportForbidden = errs.NewCoded(errs.ErrForbidden, "support_forbidden", "Only support staff can edit bookings")
	ErrSupportLockLost  = errs.NewCoded(errs.ErrConflict, "support_lock_lost", "Your edit session expired, reload the booking and try again")
)

type SupportCommands interface {
	EditBooking(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, req reqdto.SupportEditRequest) error
}

type supportCommandsImpl struct {
	uow     shared.UnitOfWork
	lockTTL time.Duration
	clock   clock.Clock
}

func NewSupportCommands(uow shared.UnitOfWork, cfg config.Config, clk clock.Clock) SupportCommands {
	return &supportCommandsImpl{uow: uow, lockTTL: cfg.Checkout.SupportLockTTL, clock: clk}
}

func (s *supportCommandsImpl) EditBooking(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, req reqdto.SupportEditRequest) error {
	if !actor.Role.CanEditBookings() {
		return ErrSupportForbidden
	}
	edit := req.ToDomain()

	return s.withSupportLock(ctx, actor, bookingID, func(ctx context.Context, token uuid.UUID) error {
		bookings := s.uow.Repos().Bookings()
		rec, err := bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := rec.ApplySupportEdit(edit, actor.UserID, s.clock.Now()); err != nil {
			return err
		}
		saved, err := bookings.UpdateBySupport(ctx, rec, token)
		if err != nil {
			return err
		}
		if !saved {
			return ErrSupportLockLost
		}

		entry := rec.SupportHistory()[len(rec.SupportHistory())-1]
		slog.Info("booking edited by support",
			"booking_id", bookingID,
			"actor_id", actor.UserID,
			"action", entry.Action,
			"reason", entry.Reason,
		)
		return nil
	})
}

// withSupportLock runs fn while holding the booking's support lock. The lock
// is released on every path, including when the request is canceled.
func (s *supportCommandsImpl) withSupportLock(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, fn func(ctx context.Context, token uuid.UUID) error) error {
	bookings := s.uow.Repos().Bookings()
	now := s.clock.Now()
	lock := bookingrecord.SupportLock{
		Token:     uuid.New(),
		HolderID:  actor.UserID,
		ExpiresAt: now.Add(s.lockTTL),
	}

	acquired, err := bookings.AcquireSupportLock(ctx, bookingID, lock, now)
	if err != nil {
		return err
	}
	if !acquired {
		if _, err := bookings.FindByID(ctx, bookingID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		return bookingrecord.ErrSupportLockHeld
	}

	defer func() {
		if err := bookings.ReleaseSupportLock(context.WithoutCancel(ctx), bookingID, lock.Token); err != nil {
			slog.Warn("failed to release support lock", "booking_id", bookingID, "error", err.Error())
		}
	}()

	return fn(ctx, lock.Token)
}
