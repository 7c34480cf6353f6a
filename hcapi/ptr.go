package hcapi

// Ptr returns a pointer to the given value. Handy for the optional
// pointer fields of create and update opts.
func Ptr[T any](v T) *T { return &v }
