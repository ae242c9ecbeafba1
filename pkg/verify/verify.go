// Package verify is the final-check tool that confirms a completed
// placement is actually non-overlapping, independent of whichever
// evaluator produced it.
package verify

import (
	"github.com/tidwall/rtree"

	"github.com/seqpair/rectpack/pkg/layout"
)

// Overlap is one pairwise intersection found by HasOverlap/Overlaps.
type Overlap struct {
	I, J int
	Area int
}

// HasOverlap reports whether any two rectangles in l intersect, using
// an R-tree for broad-phase pruning before the narrow-phase interval
// check.
func HasOverlap(l *layout.Layout) bool {
	rects := l.Rects()
	if len(rects) < 2 {
		return false
	}

	tr := rtree.RTree{}
	for i, r := range rects {
		tr.Insert(
			[2]float64{float64(r.X), float64(r.Y)},
			[2]float64{float64(r.X + r.Width), float64(r.Y + r.Height)},
			i,
		)
	}

	for i, a := range rects {
		found := false
		tr.Search(
			[2]float64{float64(a.X), float64(a.Y)},
			[2]float64{float64(a.X + a.Width), float64(a.Y + a.Height)},
			func(_, _ [2]float64, data interface{}) bool {
				j := data.(int)
				if j != i && intersects(a, rects[j]) {
					found = true
					return false
				}
				return true
			},
		)
		if found {
			return true
		}
	}
	return false
}

// Overlaps returns every pairwise overlap in l, each counted once, with
// its intersection area, for callers that want the exact offending
// pairs rather than a single boolean. The CLI's acceptance check uses
// HasOverlap only.
func Overlaps(l *layout.Layout) []Overlap {
	rects := l.Rects()
	if len(rects) < 2 {
		return nil
	}

	tr := rtree.RTree{}
	for i, r := range rects {
		tr.Insert(
			[2]float64{float64(r.X), float64(r.Y)},
			[2]float64{float64(r.X + r.Width), float64(r.Y + r.Height)},
			i,
		)
	}

	var out []Overlap
	for i, a := range rects {
		tr.Search(
			[2]float64{float64(a.X), float64(a.Y)},
			[2]float64{float64(a.X + a.Width), float64(a.Y + a.Height)},
			func(_, _ [2]float64, data interface{}) bool {
				j := data.(int)
				if j > i && intersects(a, rects[j]) {
					out = append(out, Overlap{I: i, J: j, Area: intersectionArea(a, rects[j])})
				}
				return true
			},
		)
	}
	return out
}

func intersects(a, b layout.Rectangle) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

func intersectionArea(a, b layout.Rectangle) int {
	if !intersects(a, b) {
		return 0
	}
	left := max(a.X, b.X)
	right := min(a.X+a.Width, b.X+b.Width)
	bottom := max(a.Y, b.Y)
	top := min(a.Y+a.Height, b.Y+b.Height)
	return (right - left) * (top - bottom)
}
