package index

import (
	"fmt"
	"math"
)

// MaxDistance is the distance of the "no candidate" sentinel. Every real
// distance is strictly smaller for dimensions accepted by the harness.
const MaxDistance int32 = math.MaxInt32

// Result is the outcome of a nearest neighbor search.
type Result struct {
	// Distance is the smallest distance found.
	Distance int32 `json:"distance"`

	// Index is the dictionary position achieving Distance, or -1.
	Index int `json:"index"`
}

// NoCandidate returns the sentinel result of a search over an empty dictionary.
func NoCandidate() Result {
	return Result{Distance: MaxDistance, Index: -1}
}

// Found reports whether r refers to a dictionary element.
func (r Result) Found() bool {
	return r.Index >= 0
}

// String formats r the way the benchmark report prints it.
func (r Result) String() string {
	return fmt.Sprintf("%d (distance=%d)", r.Index, r.Distance)
}
