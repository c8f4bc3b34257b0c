package heap

// Free list: one unordered circular doubly-linked pool anchored by the
// sentinel at the bottom of the region. A block is either on the free list
// or owned by a client, never both.

// searchFree scans the pool once for a block with capacity >= size under
// the given policy. Ties between equal candidates go to the earliest list
// member. On a hit the reuse counter is bumped but the block is NOT
// removed; the caller splits and detaches explicitly.
func (h *Heap) searchFree(size int64, policy Policy) (int64, bool) {
	found := int64(-1)

	for cur := h.next(sentinelRef); cur != sentinelRef; cur = h.next(cur) {
		c := h.capacity(cur)
		if c < size {
			continue
		}
		switch policy {
		case FirstFit:
			h.counters[cReuses]++
			return cur, true
		case BestFit:
			if found < 0 || c < h.capacity(found) {
				found = cur
			}
		case WorstFit:
			if found < 0 || c > h.capacity(found) {
				found = cur
			}
		}
	}

	if found < 0 {
		return 0, false
	}
	h.counters[cReuses]++
	return found, true
}

// insertFree adds an unlinked block to the pool. It first walks the pool
// probing a merge in both directions against each member, stopping at the
// first success - a freed block absorbs at most one neighbor per call.
// If no member is adjacent the block is appended at the tail.
func (h *Heap) insertFree(ref int64) {
	for cur := h.next(sentinelRef); cur != sentinelRef; cur = h.next(cur) {
		if h.mergeBlocks(ref, cur) || h.mergeBlocks(cur, ref) {
			return
		}
	}

	tail := h.prev(sentinelRef)
	h.setPrev(ref, tail)
	h.setNext(ref, sentinelRef)
	h.setNext(tail, ref)
	h.setPrev(sentinelRef, ref)
}

// freeListLength counts pool members. O(n); diagnostic only.
func (h *Heap) freeListLength() int {
	n := 0
	for cur := h.next(sentinelRef); cur != sentinelRef; cur = h.next(cur) {
		n++
	}
	return n
}
