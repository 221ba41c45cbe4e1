// Package patch applies optional fields from partial updates such as a
// support edit, where nil means "leave as is".
package patch

func Coalesce[T any](ptr *T, fallback T) T {
	if ptr == nil {
		return fallback
	}
	return *ptr
}

// Changed reports whether applying ptr over current would change the value.
func Changed[T comparable](ptr *T, current T) bool {
	return ptr != nil && *ptr != current
}
