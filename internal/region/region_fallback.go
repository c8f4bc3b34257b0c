//go:build !unix

package region

// reserve falls back to a heap-backed slice on platforms without an
// anonymous-mapping path. Offsets remain stable because the slice is never
// reallocated.
func reserve(limit int64) ([]byte, func([]byte) error, error) {
	return make([]byte, limit), nil, nil
}
