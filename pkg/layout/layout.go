// Package layout holds the placed rectangles that an Evaluator produces
// and that a Move-Generator feeds to a simulated-annealing driver.
package layout

import "fmt"

// Rectangle is an axis-aligned box with immutable dimensions and a
// position assigned by an evaluator. Rectangles are identified by their
// stable index (0..N-1) in the owning Layout.
type Rectangle struct {
	Width, Height int
	X, Y          int
}

// HCenter and VCenter return the rectangle's center, used by the energy
// function to compute net wirelength.
func (r Rectangle) HCenter() float64 { return float64(r.X) + float64(r.Width)/2.0 }
func (r Rectangle) VCenter() float64 { return float64(r.Y) + float64(r.Height)/2.0 }

// Layout is an insertion-ordered container of Rectangles. Widths and
// heights are fixed at push time; X and Y are overwritten wholesale by
// an Evaluator call.
type Layout struct {
	rects   []Rectangle
	widths  []int
	heights []int
}

// New returns an empty layout.
func New() *Layout {
	return &Layout{}
}

// Push appends a rectangle of the given dimensions, positioned at the
// origin until the next evaluation. Panics if w or h is not positive,
// mirroring the data model's w,h >= 1 invariant.
func (l *Layout) Push(w, h int) {
	if w < 1 || h < 1 {
		panic(fmt.Sprintf("layout: invalid rectangle dimensions %dx%d", w, h))
	}
	l.rects = append(l.rects, Rectangle{Width: w, Height: h})
	l.widths = append(l.widths, w)
	l.heights = append(l.heights, h)
}

// Size returns the number of rectangles.
func (l *Layout) Size() int { return len(l.rects) }

// Empty reports whether the layout holds no rectangles.
func (l *Layout) Empty() bool { return len(l.rects) == 0 }

// Rects exposes the underlying slice for read access.
func (l *Layout) Rects() []Rectangle { return l.rects }

// Widths returns the width of each rectangle in insertion order. Fixed
// at Push time (dimensions are immutable once the layout is built), so
// this is the live backing array, not a copy. Safe for the SA driver's
// hot loop to read every evaluation.
func (l *Layout) Widths() []int { return l.widths }

// Heights returns the height of each rectangle in insertion order, the
// same live-backing-array guarantee as Widths.
func (l *Layout) Heights() []int { return l.heights }

// X returns the current x position of each rectangle.
func (l *Layout) X() []int {
	out := make([]int, len(l.rects))
	for i, r := range l.rects {
		out[i] = r.X
	}
	return out
}

// Y returns the current y position of each rectangle.
func (l *Layout) Y() []int {
	out := make([]int, len(l.rects))
	for i, r := range l.rects {
		out[i] = r.Y
	}
	return out
}

// SetPositions overwrites every rectangle's (x,y) atomically. x and y
// must each have Size() entries.
func (l *Layout) SetPositions(x, y []int) {
	for i := range l.rects {
		l.rects[i].X = x[i]
		l.rects[i].Y = y[i]
	}
}

// BoundingBox returns (W,H) where W = max(x_i+w_i), H = max(y_i+h_i).
func (l *Layout) BoundingBox() (w, h int) {
	for _, r := range l.rects {
		if right := r.X + r.Width; right > w {
			w = right
		}
		if top := r.Y + r.Height; top > h {
			h = top
		}
	}
	return w, h
}

// Area returns the bounding-box area W*H.
func (l *Layout) Area() int {
	w, h := l.BoundingBox()
	return w * h
}

// SumComponentAreas returns sum(w_i * h_i), used to report utilization.
func (l *Layout) SumComponentAreas() int {
	total := 0
	for _, r := range l.rects {
		total += r.Width * r.Height
	}
	return total
}

// Clone returns a deep, independent copy.
func (l *Layout) Clone() *Layout {
	c := &Layout{
		rects:   make([]Rectangle, len(l.rects)),
		widths:  make([]int, len(l.widths)),
		heights: make([]int, len(l.heights)),
	}
	copy(c.rects, l.rects)
	copy(c.widths, l.widths)
	copy(c.heights, l.heights)
	return c
}

// CopyFrom overwrites l's rectangles with a deep copy of src's. Both
// must have the same size; this is used by the SA drivers to snapshot
// and restore layouts without reallocating on the hot path.
func (l *Layout) CopyFrom(src *Layout) {
	if len(l.rects) != len(src.rects) {
		l.rects = make([]Rectangle, len(src.rects))
		l.widths = make([]int, len(src.widths))
		l.heights = make([]int, len(src.heights))
	}
	copy(l.rects, src.rects)
	copy(l.widths, src.widths)
	copy(l.heights, src.heights)
}
