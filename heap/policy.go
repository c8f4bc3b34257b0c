package heap

import "fmt"

// Policy selects the free-list candidate for an allocation request.
type Policy uint8

const (
	// FirstFit returns the first free block with sufficient capacity.
	FirstFit Policy = iota

	// BestFit returns the qualifying free block of smallest capacity.
	BestFit

	// WorstFit returns the qualifying free block of largest capacity.
	WorstFit
)

// String returns the short name used by ParsePolicy.
func (p Policy) String() string {
	switch p {
	case FirstFit:
		return "first"
	case BestFit:
		return "best"
	case WorstFit:
		return "worst"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// ParsePolicy maps "first", "best", or "worst" to the corresponding Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "first":
		return FirstFit, nil
	case "best":
		return BestFit, nil
	case "worst":
		return WorstFit, nil
	default:
		return FirstFit, fmt.Errorf("heap: unknown fit policy %q", s)
	}
}
