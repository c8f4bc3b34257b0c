package heap

import (
	"fmt"
	"io"
)

// Counter indices. Every counter is monotonic for the heap's lifetime
// except blocks and heap_size, which track the current live population.
type counter int

const (
	cBlocks counter = iota
	cMallocs
	cFrees
	cCallocs
	cReallocs
	cReuses
	cGrows
	cShrinks
	cSplits
	cMerges
	cRequested
	cHeapSize
	numCounters
)

var counterNames = [numCounters]string{
	cBlocks:    "blocks",
	cMallocs:   "mallocs",
	cFrees:     "frees",
	cCallocs:   "callocs",
	cReallocs:  "reallocs",
	cReuses:    "reuses",
	cGrows:     "grows",
	cShrinks:   "shrinks",
	cSplits:    "splits",
	cMerges:    "merges",
	cRequested: "requested",
	cHeapSize:  "heap_size",
}

// Counters returns a snapshot of the heap's diagnostic counters, keyed by
// metric name. The mapping is a copy; mutating it has no effect.
func (h *Heap) Counters() map[string]uint64 {
	m := make(map[string]uint64, numCounters)
	for c := counter(0); c < numCounters; c++ {
		m[counterNames[c]] = h.counters[c]
	}
	return m
}

// FreeBlocks reports the current free-list length.
func (h *Heap) FreeBlocks() int {
	if h.region == nil {
		return 0
	}
	return h.freeListLength()
}

// InternalFragmentation reports the share of the heap held by free blocks
// beyond their last recorded use:
//
//	sum(capacity - size over free blocks) / heap_size * 100
func (h *Heap) InternalFragmentation() float64 {
	if h.region == nil || h.counters[cHeapSize] == 0 {
		return 0
	}
	var frag int64
	for cur := h.next(sentinelRef); cur != sentinelRef; cur = h.next(cur) {
		frag += h.capacity(cur) - h.size(cur)
	}
	return float64(frag) / float64(h.counters[cHeapSize]) * 100
}

// ExternalFragmentation reports how scattered the free memory is:
//
//	(1 - largest free block / total free memory) * 100
func (h *Heap) ExternalFragmentation() float64 {
	if h.region == nil {
		return 0
	}
	var largest, total int64
	for cur := h.next(sentinelRef); cur != sentinelRef; cur = h.next(cur) {
		c := h.capacity(cur)
		if c > largest {
			largest = c
		}
		total += c
	}
	if total == 0 {
		return 0
	}
	return (1 - float64(largest)/float64(total)) * 100
}

// DumpCounters writes the full diagnostic table to w.
func (h *Heap) DumpCounters(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"blocks:      %d\n"+
			"free blocks: %d\n"+
			"mallocs:     %d\n"+
			"frees:       %d\n"+
			"callocs:     %d\n"+
			"reallocs:    %d\n"+
			"reuses:      %d\n"+
			"grows:       %d\n"+
			"shrinks:     %d\n"+
			"splits:      %d\n"+
			"merges:      %d\n"+
			"requested:   %d\n"+
			"heap size:   %d\n"+
			"internal:    %4.2f\n"+
			"external:    %4.2f\n",
		h.counters[cBlocks],
		h.FreeBlocks(),
		h.counters[cMallocs],
		h.counters[cFrees],
		h.counters[cCallocs],
		h.counters[cReallocs],
		h.counters[cReuses],
		h.counters[cGrows],
		h.counters[cShrinks],
		h.counters[cSplits],
		h.counters[cMerges],
		h.counters[cRequested],
		h.counters[cHeapSize],
		h.InternalFragmentation(),
		h.ExternalFragmentation(),
	)
	return err
}
