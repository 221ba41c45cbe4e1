package errs

// CodedError carries a machine-readable code for API clients alongside the
// category it belongs to.
type CodedError struct {
	Code    string
	Message string
	Detail  map[string]any
	Kind    error
}

func NewCoded(kind error, code, message string) *CodedError {
	return &CodedError{Kind: kind, Code: code, Message: message}
}

func (e *CodedError) Error() string {
	return e.Code + ": " + e.Message
}

func (e *CodedError) Unwrap() error {
	return e.Kind
}

// WithDetail returns a copy so package-level coded errors can be reused safely.
func (e *CodedError) WithDetail(detail map[string]any) *CodedError {
	cp := *e
	cp.Detail = detail
	return &cp
}

func (e *CodedError) WithMessage(message string) *CodedError {
	cp := *e
	cp.Message = message
	return &cp
}

// CodeOf returns the code of the first CodedError in err's chain.
func CodeOf(err error) string {
	var ce *CodedError
	if As(err, &ce) {
		return ce.Code
	}
	return ""
}
