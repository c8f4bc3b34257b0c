package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

// newTestHeap creates a heap with a modest reservation and registers
// cleanup. Extra options append to (and may override) the defaults.
func newTestHeap(t *testing.T, opts ...Option) *Heap {
	t.Helper()
	all := append([]Option{WithLimit(1 << 20)}, opts...)
	h, err := New(all...)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, h.Close()) })
	return h
}

// hdrOf recovers the header offset behind a payload Ref.
func hdrOf(ref Ref) int64 {
	return int64(ref) - format.HeaderSize
}

// requireUnlinked asserts the block is in the self-referential state, i.e.
// not a member of any list.
func requireUnlinked(t *testing.T, h *Heap, hdr int64) {
	t.Helper()
	require.Equal(t, hdr, h.prev(hdr), "prev must be self on an unlinked block")
	require.Equal(t, hdr, h.next(hdr), "next must be self on an unlinked block")
}

// requireListConsistent walks the free list forward and backward and checks
// the two traversals agree and every member links back to its neighbors.
func requireListConsistent(t *testing.T, h *Heap) {
	t.Helper()

	var forward []int64
	for cur := h.next(sentinelRef); cur != sentinelRef; cur = h.next(cur) {
		require.Equal(t, cur, h.next(h.prev(cur)), "broken prev link at %#x", cur)
		require.Equal(t, cur, h.prev(h.next(cur)), "broken next link at %#x", cur)
		forward = append(forward, cur)
		require.LessOrEqual(t, len(forward), 1<<16, "free list does not terminate")
	}

	var backward []int64
	for cur := h.prev(sentinelRef); cur != sentinelRef; cur = h.prev(cur) {
		backward = append(backward, cur)
	}

	require.Equal(t, len(forward), len(backward))
	for i := range forward {
		require.Equal(t, forward[i], backward[len(backward)-1-i])
	}
}

// liveFootprint sums header+capacity over the free list plus the given
// owned headers; with no leaks it must equal the heap_size counter.
func liveFootprint(h *Heap, owned []int64) uint64 {
	var sum uint64
	for cur := h.next(sentinelRef); cur != sentinelRef; cur = h.next(cur) {
		sum += uint64(format.HeaderSize) + uint64(h.capacity(cur))
	}
	for _, hdr := range owned {
		sum += uint64(format.HeaderSize) + uint64(h.capacity(hdr))
	}
	return sum
}

// requireAccounting asserts the accounting identity of the heap: bytes
// grown minus bytes shrunk equals the live footprint.
func requireAccounting(t *testing.T, h *Heap, owned []int64) {
	t.Helper()
	require.Equal(t, h.counters[cHeapSize], liveFootprint(h, owned),
		"heap_size counter must equal the live block footprint")
}
