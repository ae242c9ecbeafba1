package evaluator

import "github.com/google/btree"

// staircaseItem is a (position, running-chain-length) pair kept in the
// LCS evaluator's ordered map. Entries are ordered by key (position in
// Gamma-); among surviving entries, value increases strictly with key.
type staircaseItem struct {
	key, val int
}

func (a staircaseItem) Less(than btree.Item) bool {
	return a.key < than.(staircaseItem).key
}

// Scratch bundles every buffer an Evaluator needs, sized to N and
// reused across calls, so the slices are not reallocated per
// evaluation. The ordered map stores staircaseItem values as
// btree.Item interfaces, so each LCS insertion still makes a small heap
// allocation; the DAG evaluator allocates nothing. Degree 32 suits the small-to-medium ordered maps rebuilt every
// evaluation.
type Scratch struct {
	invPlus  []int
	invMinus []int
	x        []int
	y        []int
	order    []int
	tree     *btree.BTree
}

// NewScratch allocates a Scratch for layouts of size n.
func NewScratch(n int) *Scratch {
	return &Scratch{
		invPlus:  make([]int, n),
		invMinus: make([]int, n),
		x:        make([]int, n),
		y:        make([]int, n),
		order:    make([]int, n),
		tree:     btree.New(32),
	}
}

// Reset grows the buffers to n if needed (without reallocating when n
// already fits) and clears the ordered map in O(map size) without
// releasing its node pool.
func (s *Scratch) Reset(n int) {
	if cap(s.invPlus) < n {
		s.invPlus = make([]int, n)
		s.invMinus = make([]int, n)
		s.x = make([]int, n)
		s.y = make([]int, n)
		s.order = make([]int, n)
	} else {
		s.invPlus = s.invPlus[:n]
		s.invMinus = s.invMinus[:n]
		s.x = s.x[:n]
		s.y = s.y[:n]
		s.order = s.order[:n]
	}
	s.tree.Clear(true)
}

// N returns the current buffer size.
func (s *Scratch) N() int { return len(s.invPlus) }
