package heap

import "errors"

var (
	// ErrNoSpace indicates the region could not be extended to satisfy an
	// allocation and no free block was large enough.
	ErrNoSpace = errors.New("heap: out of space")

	// ErrClosed indicates an operation on a heap whose region has been
	// released via Close.
	ErrClosed = errors.New("heap: closed")
)
