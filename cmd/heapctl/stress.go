package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
)

var (
	stressOps     int
	stressSeed    int64
	stressMaxSize int64
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressOps, "ops", 10000, "Number of operations to run")
	cmd.Flags().Int64Var(&stressSeed, "seed", 1, "Seed for the workload generator")
	cmd.Flags().Int64Var(&stressMaxSize, "max-size", 4096, "Largest single request in bytes")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Run a seeded random malloc/free/realloc workload",
		Long: `The stress command drives a reproducible random workload against a
fresh heap and prints the resulting counters and fragmentation. The same
seed always produces the same sequence, so two policies can be compared
run against run.

Example:
  heapctl stress --ops 100000 --policy worst
  heapctl stress --seed 7 --max-size 65536 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
}

func runStress() error {
	h, err := newHeap()
	if err != nil {
		return err
	}
	defer h.Close()

	rng := rand.New(rand.NewSource(stressSeed))
	var refs []heap.Ref

	for op := 0; op < stressOps; op++ {
		switch {
		case len(refs) == 0 || rng.Intn(100) < 50:
			ref, _, err := h.Malloc(rng.Int63n(stressMaxSize) + 1)
			if err != nil {
				return fmt.Errorf("op %d: %w", op, err)
			}
			refs = append(refs, ref)

		case rng.Intn(100) < 60:
			i := rng.Intn(len(refs))
			h.Free(refs[i])
			refs = append(refs[:i], refs[i+1:]...)

		default:
			i := rng.Intn(len(refs))
			ref, _, err := h.Realloc(refs[i], rng.Int63n(stressMaxSize)+1)
			if err != nil {
				return fmt.Errorf("op %d: %w", op, err)
			}
			refs[i] = ref
		}
	}

	printInfo("ran %d operations, %d blocks live (%s fit)\n\n",
		stressOps, len(refs), h.Policy())
	return report(h)
}
