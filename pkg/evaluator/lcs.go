package evaluator

import (
	"github.com/google/btree"

	"github.com/seqpair/rectpack/pkg/layout"
	"github.com/seqpair/rectpack/pkg/seqpair"
)

// LCS packs rectangles via the ordered-map longest-chain algorithm: one
// pass over Gamma+ in forward order for x[], one pass in reverse order
// for y[], sharing the same staircase machinery with widths swapped for
// heights.
type LCS struct{}

// Evaluate implements Evaluator.
func (LCS) Evaluate(pair seqpair.Pair, l *layout.Layout, scratch *Scratch) (w, h int) {
	n := pair.N()
	scratch.Reset(n)
	pair.InversePlus(scratch.invPlus)
	pair.InverseMinus(scratch.invMinus)

	x := scratch.x
	y := scratch.y
	widths := l.Widths()
	heights := l.Heights()

	w = staircasePass(pair.Plus, scratch.invMinus, widths, scratch.tree, x)
	reversed := scratch.order
	for i, v := range pair.Plus {
		reversed[n-1-i] = v
	}
	scratch.tree.Clear(true)
	h = staircasePass(reversed, scratch.invMinus, heights, scratch.tree, y)

	l.SetPositions(x, y)
	return w, h
}

// staircasePass walks order (a permutation of rectangle indices) and,
// for each rectangle a, finds the longest chain of rectangles that
// precede a in both order and inverseKey, weighted by weight[]. pos[a]
// receives the chain length ending just before a; the return value is
// the running maximum of pos[a]+weight[a] across the whole pass.
func staircasePass(order, inverseKey, weight []int, tree *btree.BTree, pos []int) int {
	maxU := 0
	for _, a := range order {
		p := inverseKey[a]
		l := 0
		tree.DescendLessOrEqual(staircaseItem{key: p}, func(i btree.Item) bool {
			l = i.(staircaseItem).val
			return false
		})
		pos[a] = l
		u := l + weight[a]
		if u > maxU {
			maxU = u
		}
		tree.ReplaceOrInsert(staircaseItem{key: p, val: u})

		// Dominated entries (key > p, value <= u) are removed one at a
		// time: re-seek the first successor of p after each deletion so
		// no pending-delete buffer is needed in the inner loop.
		for {
			victim, ok := firstAbove(tree, p)
			if !ok || victim.val > u {
				break
			}
			tree.Delete(victim)
		}
	}
	return maxU
}

// firstAbove returns the entry with the smallest key strictly greater
// than p, if any.
func firstAbove(tree *btree.BTree, p int) (staircaseItem, bool) {
	var out staircaseItem
	found := false
	tree.AscendGreaterOrEqual(staircaseItem{key: p}, func(i btree.Item) bool {
		item := i.(staircaseItem)
		if item.key == p {
			return true
		}
		out = item
		found = true
		return false
	})
	return out, found
}
