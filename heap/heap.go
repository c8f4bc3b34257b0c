package heap

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/region"
)

// Ref is the byte offset of an allocation's payload within the heap region,
// the stand-in for a malloc-style pointer. The block header sits exactly
// format.HeaderSize bytes below the Ref.
type Ref int64

// NoRef is the designated empty result: returned for zero-size requests and
// on allocation failure, and accepted as a no-op by Free.
const NoRef Ref = 0

// DefaultTrimThreshold is the minimum capacity a top-of-heap block must
// have before Free returns its memory to the region (one page).
const DefaultTrimThreshold = 4096

// sentinelRef is the region offset of the free-list sentinel header,
// reserved at the bottom of the region before any client block. Because
// the sentinel occupies offset zero, no valid payload Ref can be zero.
const sentinelRef int64 = 0

// Heap is one independent allocator: a reserved region, its free list, and
// its counters. Heap is not safe for concurrent use; callers that share a
// heap across goroutines must serialize access themselves.
type Heap struct {
	region   *region.Region
	policy   Policy
	trim     int64
	limit    int64
	counters [numCounters]uint64
}

// Option configures a Heap at creation time.
type Option func(*Heap)

// WithPolicy selects the fit policy used to pick free-list candidates.
// The default is FirstFit.
func WithPolicy(p Policy) Option {
	return func(h *Heap) { h.policy = p }
}

// WithTrimThreshold sets the minimum capacity for returning a top-of-heap
// block to the region. The default is DefaultTrimThreshold.
func WithTrimThreshold(n int64) Option {
	return func(h *Heap) { h.trim = n }
}

// WithLimit sets the size of the region reservation. Allocations beyond it
// fail with ErrNoSpace. The default is region.DefaultLimit.
func WithLimit(n int64) Option {
	return func(h *Heap) { h.limit = n }
}

// New creates an empty heap. The returned heap holds an address-space
// reservation and should be released with Close when no longer needed.
func New(opts ...Option) (*Heap, error) {
	h := &Heap{
		policy: FirstFit,
		trim:   DefaultTrimThreshold,
		limit:  region.DefaultLimit,
	}
	for _, o := range opts {
		o(h)
	}

	r, err := region.New(h.limit)
	if err != nil {
		return nil, err
	}
	if _, ok := r.Sbrk(format.HeaderSize); !ok {
		_ = r.Close()
		return nil, fmt.Errorf("heap: reservation too small for free-list sentinel: %w", ErrNoSpace)
	}
	h.region = r

	// The sentinel anchors the circular free list. Its marker capacity and
	// size distinguish it from every real block; its links start
	// self-referential (empty list).
	b := r.Bytes()
	format.PutU64(b, sentinelRef+format.CapacityOff, format.SentinelMark)
	format.PutU64(b, sentinelRef+format.SizeOff, format.SentinelMark)
	format.PutU64(b, sentinelRef+format.PrevOff, uint64(sentinelRef))
	format.PutU64(b, sentinelRef+format.NextOff, uint64(sentinelRef))

	return h, nil
}

// Policy reports the heap's fit policy.
func (h *Heap) Policy() Policy { return h.policy }

// Close releases the heap's region. Every Ref issued by the heap is invalid
// afterwards. Close is idempotent.
func (h *Heap) Close() error {
	if h.region == nil {
		return nil
	}
	r := h.region
	h.region = nil
	return r.Close()
}

// Header field access. All block bookkeeping goes through these so the
// layout lives in one place (internal/format).

func (h *Heap) bytes() []byte { return h.region.Bytes() }

func (h *Heap) capacity(ref int64) int64 {
	return int64(format.ReadU64(h.bytes(), ref+format.CapacityOff))
}

func (h *Heap) setCapacity(ref, v int64) {
	format.PutU64(h.bytes(), ref+format.CapacityOff, uint64(v))
}

func (h *Heap) size(ref int64) int64 {
	return int64(format.ReadU64(h.bytes(), ref+format.SizeOff))
}

func (h *Heap) setSize(ref, v int64) {
	format.PutU64(h.bytes(), ref+format.SizeOff, uint64(v))
}

func (h *Heap) prev(ref int64) int64 {
	return int64(format.ReadU64(h.bytes(), ref+format.PrevOff))
}

func (h *Heap) setPrev(ref, v int64) {
	format.PutU64(h.bytes(), ref+format.PrevOff, uint64(v))
}

func (h *Heap) next(ref int64) int64 {
	return int64(format.ReadU64(h.bytes(), ref+format.NextOff))
}

func (h *Heap) setNext(ref, v int64) {
	format.PutU64(h.bytes(), ref+format.NextOff, uint64(v))
}

// payload returns the first n payload bytes of the block headed at ref.
func (h *Heap) payload(ref, n int64) []byte {
	d := ref + format.HeaderSize
	return h.bytes()[d : d+n]
}
