package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
)

var (
	// Global flags
	policyName string
	trim       int64
	limit      int64
	jsonOut    bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Exercise and inspect heapkit allocator workloads",
	Long: `heapctl drives the heapkit allocator from the command line: it replays
allocation trace scripts and runs randomized stress workloads, reporting the
allocator's counters and fragmentation under a chosen fit policy.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&policyName, "policy", "first", "Fit policy: first, best, or worst")
	rootCmd.PersistentFlags().
		Int64Var(&trim, "trim", heap.DefaultTrimThreshold, "Trim threshold in bytes for returning top-of-heap blocks")
	rootCmd.PersistentFlags().
		Int64Var(&limit, "limit", 0, "Heap reservation size in bytes (0 = default)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newHeap builds a heap from the global flags.
func newHeap() (*heap.Heap, error) {
	policy, err := heap.ParsePolicy(policyName)
	if err != nil {
		return nil, err
	}
	opts := []heap.Option{
		heap.WithPolicy(policy),
		heap.WithTrimThreshold(trim),
	}
	if limit > 0 {
		opts = append(opts, heap.WithLimit(limit))
	}
	return heap.New(opts...)
}

// report prints the heap's counters in the requested format.
func report(h *heap.Heap) error {
	if quiet {
		return nil
	}
	if jsonOut {
		out := struct {
			Policy     string            `json:"policy"`
			Counters   map[string]uint64 `json:"counters"`
			FreeBlocks int               `json:"free_blocks"`
			Internal   float64           `json:"internal_fragmentation"`
			External   float64           `json:"external_fragmentation"`
		}{
			Policy:     h.Policy().String(),
			Counters:   h.Counters(),
			FreeBlocks: h.FreeBlocks(),
			Internal:   h.InternalFragmentation(),
			External:   h.ExternalFragmentation(),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return h.DumpCounters(os.Stdout)
}

// printInfo prints an info message if not in quiet mode.
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}
