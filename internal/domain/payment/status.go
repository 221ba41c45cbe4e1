package payment

type Status string

const (
	StatusCreated           Status = "created"
	StatusPrechecked        Status = "prechecked"
	StatusPaymentSuccess    Status = "payment_success"
	StatusPaymentFailed     Status = "payment_failed"
	StatusPaymentMismatch   Status = "payment_mismatch"
	StatusBookingInProgress Status = "booking_in_progress"
	StatusBookingComplete   Status = "booking_complete"
	StatusBookingFailed     Status = "booking_failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusPrechecked, StatusPaymentSuccess, StatusPaymentFailed,
		StatusPaymentMismatch, StatusBookingInProgress, StatusBookingComplete, StatusBookingFailed:
		return true
	}
	return false
}

// IsPrePayment reports whether the gateway has not confirmed anything yet.
func (s Status) IsPrePayment() bool {
	return s == StatusCreated || s == StatusPrechecked
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusPaymentFailed, StatusPaymentMismatch, StatusBookingComplete, StatusBookingFailed:
		return true
	}
	return false
}

func (s Status) IsSuccess() bool {
	return s == StatusBookingComplete
}

// IsLockable reports whether the booking lock may be taken from this status.
// Mirrors the WHERE clause of the conditional update in the ledger.
func (s Status) IsLockable() bool {
	switch s {
	case StatusBookingComplete, StatusBookingFailed, StatusBookingInProgress,
		StatusPaymentFailed, StatusPaymentMismatch:
		return false
	}
	return true
}

// LockExcludedStatuses are the statuses from which the booking lock cannot be taken.
func LockExcludedStatuses() []Status {
	return []Status{
		StatusBookingComplete, StatusBookingFailed, StatusBookingInProgress,
		StatusPaymentFailed, StatusPaymentMismatch,
	}
}

// NonBlockingStatuses never block a new checkout for the same intent.
func NonBlockingStatuses() []Status {
	return []Status{StatusPaymentFailed, StatusPaymentMismatch, StatusBookingFailed}
}

type Purpose string

const (
	PurposeBooking Purpose = "booking"
	PurposeAddon   Purpose = "addon"
)
