package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
)

func init() {
	rootCmd.AddCommand(newReplayCmd())
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay an allocation trace script against a fresh heap",
		Long: `The replay command executes a trace script - one allocator call per
line - against a fresh heap and prints the resulting counters.

Trace format (blank lines and # comments are ignored):

  malloc <size> <name>
  calloc <count> <size> <name>
  realloc <name> <size> <newname>
  free <name>

Names bind results so later lines can refer to them; a name bound to a
zero-size result simply holds the empty allocation.

Example:
  heapctl replay workload.trace
  heapctl replay workload.trace --policy best --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
	return cmd
}

// traceOp is one parsed line of a trace script.
type traceOp struct {
	line    int
	verb    string
	count   int64  // calloc only
	size    int64  // malloc, calloc, realloc
	name    string // operand binding
	newName string // realloc result binding
}

// parseTrace reads a trace script into operations, validating verbs and
// argument counts up front so replay failures point at a line number.
func parseTrace(r io.Reader) ([]traceOp, error) {
	var ops []traceOp
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		op := traceOp{line: n, verb: fields[0]}

		var err error
		switch op.verb {
		case "malloc":
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: malloc wants <size> <name>", n)
			}
			op.size, err = strconv.ParseInt(fields[1], 10, 64)
			op.name = fields[2]
		case "calloc":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: calloc wants <count> <size> <name>", n)
			}
			op.count, err = strconv.ParseInt(fields[1], 10, 64)
			if err == nil {
				op.size, err = strconv.ParseInt(fields[2], 10, 64)
			}
			op.name = fields[3]
		case "realloc":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: realloc wants <name> <size> <newname>", n)
			}
			op.name = fields[1]
			op.size, err = strconv.ParseInt(fields[2], 10, 64)
			op.newName = fields[3]
		case "free":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: free wants <name>", n)
			}
			op.name = fields[1]
		default:
			return nil, fmt.Errorf("line %d: unknown verb %q", n, op.verb)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", n, err)
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

// runTrace executes parsed operations against h, tracking name bindings.
func runTrace(h *heap.Heap, ops []traceOp) error {
	refs := map[string]heap.Ref{}

	lookup := func(op traceOp) (heap.Ref, error) {
		ref, ok := refs[op.name]
		if !ok {
			return heap.NoRef, fmt.Errorf("line %d: unknown name %q", op.line, op.name)
		}
		return ref, nil
	}

	for _, op := range ops {
		switch op.verb {
		case "malloc":
			ref, _, err := h.Malloc(op.size)
			if err != nil {
				return fmt.Errorf("line %d: malloc %d: %w", op.line, op.size, err)
			}
			refs[op.name] = ref
		case "calloc":
			ref, _, err := h.Calloc(op.count, op.size)
			if err != nil {
				return fmt.Errorf("line %d: calloc %d %d: %w", op.line, op.count, op.size, err)
			}
			refs[op.name] = ref
		case "realloc":
			ref, err := lookup(op)
			if err != nil {
				return err
			}
			next, _, err := h.Realloc(ref, op.size)
			if err != nil {
				return fmt.Errorf("line %d: realloc %q %d: %w", op.line, op.name, op.size, err)
			}
			delete(refs, op.name)
			refs[op.newName] = next
		case "free":
			ref, err := lookup(op)
			if err != nil {
				return err
			}
			h.Free(ref)
			delete(refs, op.name)
		}
	}
	return nil
}

func runReplay(args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	ops, err := parseTrace(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	h, err := newHeap()
	if err != nil {
		return err
	}
	defer h.Close()

	if err := runTrace(h, ops); err != nil {
		return err
	}

	printInfo("replayed %d operations (%s fit)\n\n", len(ops), h.Policy())
	return report(h)
}
