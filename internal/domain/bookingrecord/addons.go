package bookingrecord

import (
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/pkg/errs"
)

var (
	ErrNotConfirmed = errs.NewCoded(errs.ErrConflict, "booking_not_confirmed", "Services can only be added to a confirmed booking")
	ErrCanceled     = errs.NewCoded(errs.ErrConflict, "booking_canceled", "Services cannot be added to a canceled booking")
	ErrAddonExists  = errs.NewCoded(errs.ErrConflict, "addon_service_exists", "One or more selected services are already part of this booking")
	ErrAddonEmpty   = errs.NewCoded(errs.ErrValidation, "addon_empty", "Select at least one service to add")
)

// EnsureAddonsMergeable rejects the whole request when any requested service
// is already attached. Transfer and insurance are single-slot: requesting one
// when the booking already carries one counts as a duplicate.
func (r *Record) EnsureAddonsMergeable(requested booking.Addons) error {
	switch r.status {
	case StatusConfirmed:
	case StatusCanceled:
		return ErrCanceled
	default:
		return ErrNotConfirmed
	}
	if requested.IsEmpty() {
		return ErrAddonEmpty
	}

	existing := map[string]struct{}{}
	for _, k := range r.payload.Addons.ServiceKeys() {
		existing[k] = struct{}{}
	}

	var dup []string
	for _, k := range requested.ServiceKeys() {
		if _, ok := existing[k]; ok {
			dup = append(dup, k)
		}
	}
	if requested.Transfer != nil && r.payload.Addons.Transfer != nil &&
		requested.Transfer.Key != r.payload.Addons.Transfer.Key {
		dup = append(dup, booking.ServiceKey(booking.ServiceTransfer, requested.Transfer.Key))
	}
	if requested.Insurance != nil && r.payload.Addons.Insurance != nil &&
		requested.Insurance.Key != r.payload.Addons.Insurance.Key {
		dup = append(dup, booking.ServiceKey(booking.ServiceInsurance, requested.Insurance.Key))
	}

	if len(dup) > 0 {
		return ErrAddonExists.WithDetail(map[string]any{"serviceKeys": dup})
	}
	return nil
}

// MergeAddons attaches requested to the booking payload. The caller persists
// it with a version check so concurrent merges cannot overwrite each other.
func (r *Record) MergeAddons(requested booking.Addons, now time.Time) error {
	if err := r.EnsureAddonsMergeable(requested); err != nil {
		return err
	}
	r.payload.Addons = r.payload.Addons.Merge(requested)
	r.updatedAt = now
	return nil
}

func (r *Record) AddPolicies(policies []Policy) {
	r.policies = append(r.policies, policies...)
}
