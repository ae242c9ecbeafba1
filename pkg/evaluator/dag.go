package evaluator

import (
	"github.com/seqpair/rectpack/pkg/layout"
	"github.com/seqpair/rectpack/pkg/seqpair"
)

// DAG packs rectangles by building the horizontal and vertical
// constraint DAGs implicit in the sequence pair and relaxing them in
// topological order (Gamma+ itself, or its reverse). It computes the
// same function as LCS by direct O(N^2) pairwise comparison instead of
// an ordered-map staircase, and must agree with it bit-for-bit.
type DAG struct{}

// Evaluate implements Evaluator.
func (DAG) Evaluate(pair seqpair.Pair, l *layout.Layout, scratch *Scratch) (w, h int) {
	n := pair.N()
	scratch.Reset(n)
	pair.InversePlus(scratch.invPlus)
	pair.InverseMinus(scratch.invMinus)

	x := scratch.x
	y := scratch.y
	for i := range x {
		x[i] = 0
		y[i] = 0
	}
	widths := l.Widths()
	heights := l.Heights()

	invPlus, invMinus := scratch.invPlus, scratch.invMinus

	// Gamma+ is a topological order of the horizontal DAG: relax each
	// rectangle's successors' longest-path distance as it is finalized.
	for _, a := range pair.Plus {
		if x[a]+widths[a] > w {
			w = x[a] + widths[a]
		}
		for _, b := range pair.Plus {
			if seqpair.LeftOf(invPlus, invMinus, a, b) {
				if cand := x[a] + widths[a]; cand > x[b] {
					x[b] = cand
				}
			}
		}
	}

	// The reverse of Gamma+ is a topological order of the vertical DAG:
	// "below" predecessors of a rectangle always have a larger pos+, so
	// they are finalized before it when walking Gamma+ backwards.
	for i := n - 1; i >= 0; i-- {
		a := pair.Plus[i]
		if y[a]+heights[a] > h {
			h = y[a] + heights[a]
		}
		for _, d := range pair.Plus {
			if seqpair.Below(invPlus, invMinus, a, d) {
				if cand := y[a] + heights[a]; cand > y[d] {
					y[d] = cand
				}
			}
		}
	}

	l.SetPositions(x, y)
	return w, h
}
