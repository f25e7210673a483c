package util

// Ptr lets optional JSON response fields be set from a literal in one
// expression.
func Ptr[T any](v T) *T {
	return &v
}
