// Package format houses the binary layout of heap block headers. The goal
// is to keep the layout in one place, independent from the allocator logic,
// so every field access and every header-to-payload conversion goes through
// the same named constants instead of ad hoc offset arithmetic.
package format

const (
	// HeaderSize is the number of bytes used by the block header preceding
	// every payload (free or in-use) within the heap region. A payload is
	// always exactly HeaderSize bytes past its header.
	HeaderSize = 32

	// WordSize is the allocation alignment granularity. All capacities and
	// payload sizes are rounded up to this boundary.
	WordSize = 8

	// WordMask is the alignment mask derived from WordSize.
	WordMask = WordSize - 1

	// Field offsets within a block header.
	//   0x00  capacity  uint64  usable payload bytes following the header
	//   0x08  size      uint64  bytes the current owner actually uses
	//   0x10  prev      uint64  region offset of the previous list member
	//   0x18  next      uint64  region offset of the next list member
	CapacityOff = 0
	SizeOff     = 8
	PrevOff     = 16
	NextOff     = 24
)

// SentinelMark is stored in the capacity and size fields of the free-list
// sentinel. No real block can carry it: capacities are bounded by the
// region reservation.
const SentinelMark = ^uint64(0)
