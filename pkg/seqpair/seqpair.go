// Package seqpair implements the sequence-pair representation of a
// non-overlapping rectangle placement: two permutations (Plus, Minus) of
// the rectangle indices whose relative order encodes the horizontal and
// vertical constraint graphs.
package seqpair

// Pair is an ordered pair (Gamma+, Gamma-), each a permutation of
// {0..N-1}. For indices a != b, with pos+(.), pos-(.) denoting position
// in Plus, Minus:
//
//	a is left-of b  <=>  pos+(a) < pos+(b) && pos-(a) < pos-(b)
//	a is below b    <=>  pos+(a) > pos+(b) && pos-(a) < pos-(b)
//
// These two relations partition every unordered pair of distinct
// indices.
type Pair struct {
	Plus  []int
	Minus []int
}

// NewIdentity returns a sequence pair with both permutations equal to
// the identity 0..n-1.
func NewIdentity(n int) Pair {
	plus := make([]int, n)
	minus := make([]int, n)
	for i := range plus {
		plus[i] = i
		minus[i] = i
	}
	return Pair{Plus: plus, Minus: minus}
}

// N returns the number of rectangles encoded by the pair.
func (p Pair) N() int { return len(p.Plus) }

// Clone returns a deep, independent copy.
func (p Pair) Clone() Pair {
	plus := make([]int, len(p.Plus))
	minus := make([]int, len(p.Minus))
	copy(plus, p.Plus)
	copy(minus, p.Minus)
	return Pair{Plus: plus, Minus: minus}
}

// CopyFrom overwrites p's permutations in place from src, reusing p's
// existing backing arrays when the sizes match, so loading a saved or
// resampled state into a working generator allocates nothing.
func (p *Pair) CopyFrom(src Pair) {
	if len(p.Plus) != len(src.Plus) {
		p.Plus = make([]int, len(src.Plus))
	}
	if len(p.Minus) != len(src.Minus) {
		p.Minus = make([]int, len(src.Minus))
	}
	copy(p.Plus, src.Plus)
	copy(p.Minus, src.Minus)
}

// Equal reports whether p and other are bitwise-identical permutation
// pairs. Used by tests asserting the mutate/rollback round trip.
func (p Pair) Equal(other Pair) bool {
	if len(p.Plus) != len(other.Plus) || len(p.Minus) != len(other.Minus) {
		return false
	}
	for i := range p.Plus {
		if p.Plus[i] != other.Plus[i] || p.Minus[i] != other.Minus[i] {
			return false
		}
	}
	return true
}

// InversePlus fills inv such that inv[Plus[i]] == i for all i, reusing
// the caller-supplied buffer (sized N) to avoid allocation in the
// evaluator hot path.
func (p Pair) InversePlus(inv []int) {
	for i, v := range p.Plus {
		inv[v] = i
	}
}

// InverseMinus fills inv such that inv[Minus[i]] == i for all i.
func (p Pair) InverseMinus(inv []int) {
	for i, v := range p.Minus {
		inv[v] = i
	}
}

// LeftOf reports whether a is left-of b given the inverse-position
// arrays of Plus and Minus (as produced by InversePlus/InverseMinus).
func LeftOf(invPlus, invMinus []int, a, b int) bool {
	return invPlus[a] < invPlus[b] && invMinus[a] < invMinus[b]
}

// Below reports whether a is below b given the same inverse-position
// arrays.
func Below(invPlus, invMinus []int, a, b int) bool {
	return invPlus[a] > invPlus[b] && invMinus[a] < invMinus[b]
}

// Match computes, for two permutations x and y of {0..N-1}, the map p
// such that x[i] == y[p[i]] for every i. invY is a caller-supplied
// scratch buffer (sized len(y)) that receives y's inverse permutation;
// out (sized len(x)) receives p. With x = Plus and y = Minus, p gives,
// for each position in Plus, the position of the same rectangle in
// Minus. The evaluators do not call Match; they use InverseMinus.
func Match(x, y, invY, out []int) {
	for i, v := range y {
		invY[v] = i
	}
	for i, v := range x {
		out[i] = invY[v]
	}
}
