// Package heap implements a general-purpose dynamic memory allocator over a
// single growable region, exposing the four classic entry points:
// Malloc, Free, Calloc, and Realloc.
//
// # Overview
//
// Every allocation is a block: a fixed 32-byte header followed immediately
// by the payload. Blocks live inside one reserved address range (see
// internal/region) whose break is extended sbrk-style when no existing
// block can satisfy a request. Freed blocks are recycled through a single
// unordered circular free list anchored by a sentinel, coalescing with a
// physically adjacent neighbor on insertion and splitting on reuse.
//
// Blocks are addressed by Refs - byte offsets into the region - rather
// than raw pointers. A Ref identifies the payload; the header sits exactly
// format.HeaderSize bytes below it.
//
// # Usage Example
//
//	h, err := heap.New(heap.WithPolicy(heap.BestFit))
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
//	ref, buf, err := h.Malloc(256)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	// Later, return the block for reuse.
//	h.Free(ref)
//
// A package-level default heap, created lazily on first use, backs the
// package-level Malloc/Free/Calloc/Realloc functions for callers that want
// the conventional process-wide allocator shape.
//
// # Fit Policies
//
// The free-list candidate for a request is chosen by a runtime-selectable
// policy: FirstFit (first block large enough), BestFit (smallest block
// large enough), or WorstFit (largest block large enough). Ties go to the
// earliest list member.
//
// # Trimming
//
// Free never returns memory to the region unless the block sits at the very
// top of the live heap and its capacity meets the trim threshold (one page
// by default); everything else is recycled through the free list
// indefinitely.
//
// # Diagnostics
//
// Each heap keeps monotonic event counters (grows, shrinks, splits, merges,
// reuses, per-call tallies, bytes requested, heap size), exposed as a
// read-only name-to-value mapping via Counters, plus free-list length and
// internal/external fragmentation ratios. Counters are never reset.
//
// # Limitations
//
// The allocator is deliberately minimal:
//
//   - Not safe for concurrent use. Callers serialize access themselves.
//   - No size classes or arenas; a single free list serves all sizes.
//   - No defragmentation beyond adjacent coalescing.
//   - Freeing a Ref that was never issued, or freeing one twice, is
//     undefined behavior: no canaries or guard bytes are maintained.
//   - Calloc computes count*size without an overflow check.
package heap
