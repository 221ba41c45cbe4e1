package errs

// Categories used by handlers to pick a status code. Usecase errors are marked
// with one of these (directly or through a CodedError).
var (
	ErrValidation  = New("validation failed")
	ErrConflict    = New("conflict")
	ErrNotFound    = New("not found")
	ErrForbidden   = New("forbidden")
	ErrUnavailable = New("upstream unavailable")
)
