package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scatterFree mallocs a row of blocks and frees every other one, leaving a
// free list of non-adjacent entries (the owned separators prevent any
// coalescing). Returns the freed headers in insertion order and the owned
// separator headers.
func scatterFree(t *testing.T, h *Heap, sizes []int64) (freed, owned []int64) {
	t.Helper()

	var refs []Ref
	for _, s := range sizes {
		ref, _, err := h.Malloc(s)
		require.NoError(t, err)

		sep, _, err := h.Malloc(16)
		require.NoError(t, err)
		refs = append(refs, ref)
		owned = append(owned, hdrOf(sep))
	}
	for _, ref := range refs {
		h.Free(ref)
		freed = append(freed, hdrOf(ref))
	}
	return freed, owned
}

func Test_SearchFirstFit(t *testing.T) {
	h := newTestHeap(t)
	freed, _ := scatterFree(t, h, []int64{64, 128, 32})

	got, ok := h.searchFree(32, FirstFit)
	require.True(t, ok)
	require.Equal(t, freed[0], got, "first fit takes the first qualifying entry")
	require.Equal(t, uint64(1), h.counters[cReuses])

	// The hit does not remove the block.
	require.Equal(t, 3, h.freeListLength())
}

func Test_SearchBestFit(t *testing.T) {
	h := newTestHeap(t)
	freed, _ := scatterFree(t, h, []int64{64, 128, 32})

	got, ok := h.searchFree(32, BestFit)
	require.True(t, ok)
	require.Equal(t, freed[2], got, "best fit takes the smallest qualifying entry")
}

func Test_SearchWorstFit(t *testing.T) {
	h := newTestHeap(t)
	freed, _ := scatterFree(t, h, []int64{64, 128, 32})

	got, ok := h.searchFree(32, WorstFit)
	require.True(t, ok)
	require.Equal(t, freed[1], got, "worst fit takes the largest qualifying entry")
}

func Test_SearchTiesGoToFirstOccurrence(t *testing.T) {
	h := newTestHeap(t)
	freed, _ := scatterFree(t, h, []int64{64, 64, 64})

	for _, p := range []Policy{BestFit, WorstFit} {
		got, ok := h.searchFree(16, p)
		require.True(t, ok)
		require.Equal(t, freed[0], got, "%v must keep the earliest of equals", p)
	}
}

func Test_SearchMiss(t *testing.T) {
	h := newTestHeap(t)
	scatterFree(t, h, []int64{16, 24})

	before := h.counters[cReuses]
	_, ok := h.searchFree(1024, FirstFit)
	require.False(t, ok)
	require.Equal(t, before, h.counters[cReuses], "a miss is not a reuse")
}

func Test_SearchSkipsSmallerBlocks(t *testing.T) {
	h := newTestHeap(t)
	freed, _ := scatterFree(t, h, []int64{16, 16, 128})

	got, ok := h.searchFree(100, FirstFit)
	require.True(t, ok)
	require.Equal(t, freed[2], got)
}

func Test_InsertAppendsWhenNoNeighbor(t *testing.T) {
	h := newTestHeap(t)
	freed, _ := scatterFree(t, h, []int64{32, 32, 32})

	require.Equal(t, 3, h.freeListLength())
	requireListConsistent(t, h)

	// Insertion order is preserved: tail append.
	var order []int64
	for cur := h.next(sentinelRef); cur != sentinelRef; cur = h.next(cur) {
		order = append(order, cur)
	}
	require.Equal(t, freed, order)
}

func Test_InsertMergesForward(t *testing.T) {
	h := newTestHeap(t)

	a, _, err := h.Malloc(32)
	require.NoError(t, err)
	b, _, err := h.Malloc(32)
	require.NoError(t, err)
	// Guard so neither free can trim.
	_, _, err = h.Malloc(16)
	require.NoError(t, err)

	h.Free(b)
	require.Equal(t, 1, h.freeListLength())

	// a physically precedes b: freeing a absorbs b in one pass.
	h.Free(a)
	require.Equal(t, 1, h.freeListLength())

	merged := h.next(sentinelRef)
	require.Equal(t, hdrOf(a), merged)
	require.Equal(t, int64(32+32+32), h.capacity(merged), "capacity absorbs b's header too")
	requireListConsistent(t, h)
}

func Test_InsertMergesBackward(t *testing.T) {
	h := newTestHeap(t)

	a, _, err := h.Malloc(32)
	require.NoError(t, err)
	b, _, err := h.Malloc(32)
	require.NoError(t, err)
	_, _, err = h.Malloc(16)
	require.NoError(t, err)

	// Free in the other order: the listed a absorbs the newly freed b.
	h.Free(a)
	require.Equal(t, 1, h.freeListLength())

	h.Free(b)
	require.Equal(t, 1, h.freeListLength())
	merged := h.next(sentinelRef)
	require.Equal(t, hdrOf(a), merged)
	require.Equal(t, int64(96), h.capacity(merged))
	requireListConsistent(t, h)
}

func Test_InsertMergesAtMostOneNeighbor(t *testing.T) {
	h := newTestHeap(t)

	a, _, err := h.Malloc(32)
	require.NoError(t, err)
	b, _, err := h.Malloc(32)
	require.NoError(t, err)
	c, _, err := h.Malloc(32)
	require.NoError(t, err)
	_, _, err = h.Malloc(16)
	require.NoError(t, err)

	h.Free(a)
	h.Free(c)
	require.Equal(t, 2, h.freeListLength())

	// b is adjacent to both a and c, but one insert absorbs only one
	// neighbor - no re-scan after a successful merge.
	h.Free(b)
	require.Equal(t, 2, h.freeListLength())
	requireListConsistent(t, h)
}

func Test_FreeListLength(t *testing.T) {
	h := newTestHeap(t)
	require.Equal(t, 0, h.freeListLength())

	freed, _ := scatterFree(t, h, []int64{8, 8, 8, 8})
	require.Len(t, freed, 4)
	require.Equal(t, 4, h.freeListLength())
}
