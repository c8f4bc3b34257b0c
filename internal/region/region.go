// Package region provides the break-extension primitive the allocator is
// built on: a single reserved address range with a monotonic break that can
// be moved up or down, in the style of sbrk. The reservation is made once,
// at creation; moving the break never relocates memory, so offsets into the
// region stay valid for the region's whole lifetime.
package region

import (
	"errors"
	"fmt"
)

// DefaultLimit is the default reservation size for a new region (256 MiB).
// Pages are only committed as the break passes over them, so the limit
// costs address space, not memory.
const DefaultLimit = 256 << 20

// ErrLimit indicates the requested reservation could not be made.
var ErrLimit = errors.New("region: reservation failed")

// Region is a reserved address range with a movable break. The bytes below
// the break are live; the bytes above it must not be referenced. Region is
// not safe for concurrent use.
type Region struct {
	data  []byte
	brk   int64
	unmap func([]byte) error
}

// New reserves a region of limit bytes with the break at zero.
// If limit <= 0, DefaultLimit is used.
func New(limit int64) (*Region, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	data, unmap, err := reserve(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLimit, err)
	}
	return &Region{data: data, unmap: unmap}, nil
}

// Sbrk moves the break by delta bytes and returns the previous break.
// It fails, with no change, if the region is closed, the new break would
// be negative, or it would exceed the reservation. There is no partial
// growth and no retry.
func (r *Region) Sbrk(delta int64) (int64, bool) {
	if r.data == nil {
		return 0, false
	}
	nb := r.brk + delta
	if nb < 0 || nb > int64(len(r.data)) {
		return 0, false
	}
	old := r.brk
	r.brk = nb
	return old, true
}

// Brk returns the current break.
func (r *Region) Brk() int64 { return r.brk }

// Bytes returns the full reserved range. Callers must only touch bytes
// below the current break.
func (r *Region) Bytes() []byte { return r.data }

// Close releases the reservation. Any outstanding offsets into the region
// are invalid afterwards. Close is idempotent.
func (r *Region) Close() error {
	if r.data == nil {
		return nil
	}
	data := r.data
	r.data = nil
	r.brk = 0
	if r.unmap == nil {
		return nil
	}
	return r.unmap(data)
}
