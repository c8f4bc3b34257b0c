package heap

import "github.com/joshuapare/heapkit/internal/format"

// The four entry points. Each returns the payload Ref plus a byte slice
// over the payload's first size bytes; the slice stays valid until the Ref
// is freed (or shrunk below the accessed range) because region memory
// never relocates.

// Malloc allocates size bytes. A request of zero or less yields NoRef with
// a nil slice and no error; nothing is allocated and no state changes.
// ErrNoSpace is returned when no free block fits and the region cannot be
// extended, with all existing blocks untouched.
func (h *Heap) Malloc(size int64) (Ref, []byte, error) {
	if h.region == nil {
		return NoRef, nil, ErrClosed
	}
	if size <= 0 {
		return NoRef, nil, nil
	}

	ref, ok := h.searchFree(size, h.policy)
	if ok {
		// Carve the request off the front of the candidate, then detach
		// it; the remainder, if any, inherits the candidate's list slot.
		ref = h.splitBlock(ref, size)
		ref = h.detachBlock(ref)
	} else {
		ref, ok = h.growBlock(size)
		if !ok {
			return NoRef, nil, ErrNoSpace
		}
	}

	h.setSize(ref, size)
	h.counters[cMallocs]++
	h.counters[cRequested] += uint64(size)
	return Ref(ref + format.HeaderSize), h.payload(ref, size), nil
}

// Free returns a previously allocated block for reuse. NoRef is a no-op.
// The fast path hands the block's memory back to the region when it sits
// at the top of the heap and is large enough to trim; otherwise the block
// joins the free list, coalescing with an adjacent member if one exists.
//
// Freeing a Ref not issued by this heap, or freeing one twice, is
// undefined behavior.
func (h *Heap) Free(ref Ref) {
	if h.region == nil || ref == NoRef {
		return
	}
	hdr := int64(ref) - format.HeaderSize

	h.counters[cFrees]++
	if !h.releaseBlock(hdr) {
		h.insertFree(hdr)
	}
}

// Calloc allocates count*size bytes and zero-fills them. The product is
// computed without an overflow guard, a documented limitation. A zero
// count or size yields NoRef, as with Malloc.
func (h *Heap) Calloc(count, size int64) (Ref, []byte, error) {
	total := count * size

	ref, buf, err := h.Malloc(total)
	if err != nil || ref == NoRef {
		return ref, buf, err
	}

	clear(buf)
	h.counters[cCallocs]++
	return ref, buf, nil
}

// Realloc resizes an allocation. A NoRef behaves as Malloc; a zero size on
// a valid Ref behaves as Free and yields NoRef. When the block's current
// size already covers the request the block is shrunk in place - the Ref
// is preserved, no bytes move, and the carved-off remainder (if any) goes
// straight to the free list. Otherwise a fresh block is allocated, the old
// payload copied, and the old block freed; if the fresh allocation fails
// the old block remains intact and unreleased.
func (h *Heap) Realloc(ref Ref, size int64) (Ref, []byte, error) {
	if h.region == nil {
		return NoRef, nil, ErrClosed
	}
	h.counters[cReallocs]++

	if ref == NoRef {
		return h.Malloc(size)
	}
	hdr := int64(ref) - format.HeaderSize

	if h.size(hdr) >= size {
		if size <= 0 {
			h.Free(ref)
			return NoRef, nil, nil
		}
		// Shrink in place. splitBlock leaves an unlinked block and its
		// remainder linked to each other; detach the remainder before
		// giving it to the free list so the client block goes back to the
		// caller fully unlinked.
		h.splitBlock(hdr, size)
		if rem := h.next(hdr); rem != hdr {
			h.detachBlock(rem)
			h.insertFree(rem)
		}
		h.setSize(hdr, size)
		return ref, h.payload(hdr, size), nil
	}

	oldSize := h.size(hdr)
	newRef, newBuf, err := h.Malloc(size)
	if err != nil {
		return NoRef, nil, err
	}
	copy(newBuf, h.payload(hdr, oldSize))
	h.Free(ref)
	return newRef, newBuf, nil
}

// Default heap. The package-level entry points operate on one lazily
// created process-wide heap, matching the conventional global allocator
// shape. Like everything else here it is unsynchronized.

var std *Heap

// Default returns the process-wide heap, creating it on first use with
// default options.
func Default() (*Heap, error) {
	if std == nil {
		h, err := New()
		if err != nil {
			return nil, err
		}
		std = h
	}
	return std, nil
}

// Malloc allocates from the default heap.
func Malloc(size int64) (Ref, []byte, error) {
	h, err := Default()
	if err != nil {
		return NoRef, nil, err
	}
	return h.Malloc(size)
}

// Free releases a block allocated from the default heap.
func Free(ref Ref) {
	if std == nil {
		return
	}
	std.Free(ref)
}

// Calloc allocates zeroed memory from the default heap.
func Calloc(count, size int64) (Ref, []byte, error) {
	h, err := Default()
	if err != nil {
		return NoRef, nil, err
	}
	return h.Calloc(count, size)
}

// Realloc resizes a block on the default heap.
func Realloc(ref Ref, size int64) (Ref, []byte, error) {
	h, err := Default()
	if err != nil {
		return NoRef, nil, err
	}
	return h.Realloc(ref, size)
}
