package utils

// Ptr returns a pointer to a copy of value.
func Ptr[T any](value T) *T {
	return &value
}

// Clone returns a pointer to a copy of the pointed value, or nil.
func Clone[T any](value *T) *T {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

// StringPtr returns a pointer to the string if it's not empty, otherwise returns nil
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
