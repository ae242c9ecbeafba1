// Package evaluator turns a sequence pair plus rectangle dimensions into
// a compact, non-overlapping placement. Two interchangeable
// implementations are provided: an O(N log N) ordered-map algorithm
// (LCS, on a B-tree) and an O(N^2) longest-path-on-DAG algorithm (DAG). Both must
// agree bit-for-bit on identical inputs.
package evaluator

import (
	"github.com/seqpair/rectpack/pkg/layout"
	"github.com/seqpair/rectpack/pkg/seqpair"
)

// Evaluator computes positions for every rectangle in l from pair and
// the layout's own widths/heights, returning the bounding box (W,H).
// Scratch must be sized for len(pair.Plus) via scratch.Reset.
type Evaluator interface {
	Evaluate(pair seqpair.Pair, l *layout.Layout, scratch *Scratch) (w, h int)
}
