package heap

import "github.com/joshuapare/heapkit/internal/format"

// Block manager: the primitives every entry point is built from. A block is
// identified by the region offset of its header. Physical adjacency is the
// identity ref + HeaderSize + capacity == next header offset; both merge
// and releaseBlock rely on it.

// growBlock extends the break by a header plus the aligned size and carves
// a fresh, unlinked block there. Reports false if the region cannot be
// extended; there is no retry.
func (h *Heap) growBlock(size int64) (int64, bool) {
	aligned := format.Align(size)
	total := int64(format.HeaderSize) + aligned

	ref, ok := h.region.Sbrk(total)
	if !ok {
		return 0, false
	}

	h.setCapacity(ref, aligned)
	h.setSize(ref, size)
	h.setPrev(ref, ref)
	h.setNext(ref, ref)

	h.counters[cHeapSize] += uint64(total)
	h.counters[cBlocks]++
	h.counters[cGrows]++
	return ref, true
}

// releaseBlock returns a block's memory to the region, but only when the
// block sits exactly at the top of the live heap and its capacity meets the
// trim threshold. Reports false with no side effects otherwise; the caller
// recycles the block through the free list instead. On success the block's
// memory must not be referenced again.
func (h *Heap) releaseBlock(ref int64) bool {
	c := h.capacity(ref)
	if ref+int64(format.HeaderSize)+c != h.region.Brk() || c < h.trim {
		return false
	}

	total := int64(format.HeaderSize) + c
	h.region.Sbrk(-total)

	h.counters[cBlocks]--
	h.counters[cShrinks]++
	h.counters[cHeapSize] -= uint64(total)
	return true
}

// detachBlock unlinks a block from whichever circular list holds it,
// relinks its former neighbors, and resets it to the self-referential
// state. O(1). Detaching an already unlinked block is a no-op.
func (h *Heap) detachBlock(ref int64) int64 {
	before := h.prev(ref)
	after := h.next(ref)

	h.setNext(before, after)
	h.setPrev(after, before)

	h.setNext(ref, ref)
	h.setPrev(ref, ref)
	return ref
}

// mergeBlocks grows dst by absorbing src, header included, when dst is
// physically immediately followed by src. If dst was unlinked at call time
// it is spliced into the list position src occupied, so one call can both
// widen an existing free entry and re-attach a newly freed block.
// Adjacency is directional: callers probe both orders to find either
// neighbor. Reports false with no side effects when not adjacent.
func (h *Heap) mergeBlocks(dst, src int64) bool {
	if dst+int64(format.HeaderSize)+h.capacity(dst) != src {
		return false
	}

	h.setCapacity(dst, h.capacity(dst)+int64(format.HeaderSize)+h.capacity(src))
	h.counters[cMerges]++
	h.counters[cBlocks]--

	if h.prev(dst) == dst {
		sp := h.prev(src)
		sn := h.next(src)
		h.setNext(sp, dst)
		h.setPrev(sn, dst)
		h.setPrev(dst, sp)
		h.setNext(dst, sn)
	}
	return true
}

// splitBlock carves a front block of exactly the aligned size out of ref,
// provided the remainder can host a full header plus at least one byte;
// otherwise the block is returned whole. The remainder inherits ref's
// former links, so splitting a free-list member leaves the list shape
// intact, and splitting an unlinked block leaves the pair linked to each
// other for the caller to sort out.
func (h *Heap) splitBlock(ref, size int64) int64 {
	aligned := format.Align(size)
	if h.capacity(ref) <= int64(format.HeaderSize)+aligned {
		return ref
	}

	rem := ref + int64(format.HeaderSize) + aligned
	h.setCapacity(rem, h.capacity(ref)-(int64(format.HeaderSize)+aligned))
	h.setSize(rem, h.capacity(rem))

	oldNext := h.next(ref)
	h.setPrev(rem, ref)
	h.setNext(rem, oldNext)

	h.setCapacity(ref, aligned)
	h.setSize(ref, size)
	h.setPrev(oldNext, rem)
	h.setNext(ref, rem)

	h.counters[cSplits]++
	h.counters[cBlocks]++
	return ref
}
