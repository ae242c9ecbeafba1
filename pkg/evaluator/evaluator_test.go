package evaluator

import (
	"math/rand"
	"testing"

	"github.com/seqpair/rectpack/pkg/layout"
	"github.com/seqpair/rectpack/pkg/seqpair"
)

func newLayout(dims [][2]int) *layout.Layout {
	l := layout.New()
	for _, d := range dims {
		l.Push(d[0], d[1])
	}
	return l
}

// TestConcretePlacement pins an exact, previously-verified placement:
// six rectangles with a specific sequence pair must pack identically
// under both evaluators.
func TestConcretePlacement(t *testing.T) {
	dims := [][2]int{{4, 6}, {3, 7}, {3, 3}, {2, 3}, {4, 3}, {6, 4}}
	pair := seqpair.Pair{
		Plus:  []int{3, 2, 0, 5, 1, 4},
		Minus: []int{5, 2, 4, 3, 0, 1},
	}
	wantX := []int{3, 7, 0, 0, 6, 0}
	const wantW, wantH = 10, 10

	for _, ev := range []Evaluator{LCS{}, DAG{}} {
		l := newLayout(dims)
		scratch := NewScratch(len(dims))
		w, h := ev.Evaluate(pair, l, scratch)
		if w != wantW || h != wantH {
			t.Fatalf("%T: (W,H) = (%d,%d), want (%d,%d)", ev, w, h, wantW, wantH)
		}
		for i, r := range l.Rects() {
			if r.X != wantX[i] {
				t.Fatalf("%T: x[%d] = %d, want %d", ev, i, r.X, wantX[i])
			}
		}
	}
}

// TestLCSAndDAGAgree checks the two evaluators produce bit-identical
// placements on random inputs.
func TestLCSAndDAGAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		n := 2 + rng.Intn(30)
		dims := make([][2]int, n)
		for i := range dims {
			dims[i] = [2]int{1 + rng.Intn(10), 1 + rng.Intn(10)}
		}
		pair := seqpair.Pair{Plus: rng.Perm(n), Minus: rng.Perm(n)}

		lLCS := newLayout(dims)
		wLCS, hLCS := LCS{}.Evaluate(pair.Clone(), lLCS, NewScratch(n))

		lDAG := newLayout(dims)
		wDAG, hDAG := DAG{}.Evaluate(pair.Clone(), lDAG, NewScratch(n))

		if wLCS != wDAG || hLCS != hDAG {
			t.Fatalf("trial %d: LCS=(%d,%d) DAG=(%d,%d)", trial, wLCS, hLCS, wDAG, hDAG)
		}
		for i := range dims {
			if lLCS.Rects()[i] != lDAG.Rects()[i] {
				t.Fatalf("trial %d: rect %d differs: LCS=%+v DAG=%+v", trial, i, lLCS.Rects()[i], lDAG.Rects()[i])
			}
		}
	}
}

// TestSingleRowIdentity: an identity sequence pair with unit heights
// packs into a single horizontal row.
func TestSingleRowIdentity(t *testing.T) {
	dims := [][2]int{{5, 1}, {3, 1}, {7, 1}, {2, 1}}
	pair := seqpair.NewIdentity(len(dims))

	for _, ev := range []Evaluator{LCS{}, DAG{}} {
		l := newLayout(dims)
		w, h := ev.Evaluate(pair, l, NewScratch(len(dims)))
		wantW := 5 + 3 + 7 + 2
		if w != wantW || h != 1 {
			t.Fatalf("%T: (W,H) = (%d,%d), want (%d,1)", ev, w, h, wantW)
		}
	}
}

// TestSingleRectangleBoundary: N=1 places the rectangle at the origin
// with (W,H) equal to its own dimensions.
func TestSingleRectangleBoundary(t *testing.T) {
	dims := [][2]int{{9, 4}}
	pair := seqpair.NewIdentity(1)

	for _, ev := range []Evaluator{LCS{}, DAG{}} {
		l := newLayout(dims)
		w, h := ev.Evaluate(pair, l, NewScratch(1))
		if w != 9 || h != 4 {
			t.Fatalf("%T: (W,H) = (%d,%d), want (9,4)", ev, w, h)
		}
		r := l.Rects()[0]
		if r.X != 0 || r.Y != 0 {
			t.Fatalf("%T: position = (%d,%d), want (0,0)", ev, r.X, r.Y)
		}
	}
}

// TestNonOverlapping checks that after evaluation no two rectangles
// overlap and both minimum coordinates are zero.
func TestNonOverlapping(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const n = 25
	dims := make([][2]int, n)
	for i := range dims {
		dims[i] = [2]int{1 + rng.Intn(8), 1 + rng.Intn(8)}
	}
	pair := seqpair.Pair{Plus: rng.Perm(n), Minus: rng.Perm(n)}

	for _, ev := range []Evaluator{LCS{}, DAG{}} {
		l := newLayout(dims)
		ev.Evaluate(pair.Clone(), l, NewScratch(n))

		minX, minY := l.Rects()[0].X, l.Rects()[0].Y
		for _, r := range l.Rects() {
			if r.X < minX {
				minX = r.X
			}
			if r.Y < minY {
				minY = r.Y
			}
		}
		if minX != 0 || minY != 0 {
			t.Fatalf("%T: min position = (%d,%d), want (0,0)", ev, minX, minY)
		}

		rects := l.Rects()
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				a, b := rects[i], rects[j]
				overlapX := a.X < b.X+b.Width && b.X < a.X+a.Width
				overlapY := a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
				if overlapX && overlapY {
					t.Fatalf("%T: rectangles %d and %d overlap: %+v %+v", ev, i, j, a, b)
				}
			}
		}
	}
}

// TestEvaluateIsIdempotent checks re-running an evaluator on the same
// sequence pair yields the same layout both times.
func TestEvaluateIsIdempotent(t *testing.T) {
	dims := [][2]int{{4, 6}, {3, 7}, {3, 3}, {2, 3}, {4, 3}, {6, 4}}
	pair := seqpair.Pair{
		Plus:  []int{3, 2, 0, 5, 1, 4},
		Minus: []int{5, 2, 4, 3, 0, 1},
	}
	l := newLayout(dims)
	scratch := NewScratch(len(dims))
	w1, h1 := LCS{}.Evaluate(pair, l, scratch)
	first := append([]layout.Rectangle(nil), l.Rects()...)

	w2, h2 := LCS{}.Evaluate(pair, l, scratch)
	if w1 != w2 || h1 != h2 {
		t.Fatalf("(W,H) changed across re-evaluation: (%d,%d) vs (%d,%d)", w1, h1, w2, h2)
	}
	for i, r := range l.Rects() {
		if r != first[i] {
			t.Fatalf("rect %d changed across re-evaluation: %+v vs %+v", i, first[i], r)
		}
	}
}
