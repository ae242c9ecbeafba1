// Package mover owns the live sequence pair perturbed by the
// simulated-annealing drivers: propose a move, evaluate it into a
// layout, and roll it back exactly if rejected.
package mover

import (
	"math/rand"

	"github.com/seqpair/rectpack/pkg/evaluator"
	"github.com/seqpair/rectpack/pkg/layout"
	"github.com/seqpair/rectpack/pkg/seqpair"
)

// Generator holds the current sequence pair and the record of the last
// proposed move, which rollback consumes. At most one uncommitted move
// is outstanding at a time.
type Generator struct {
	pair    seqpair.Pair
	last    seqpair.Move
	hasMove bool
}

// New constructs a generator with Gamma+ and Gamma- both set to the
// identity permutation of size n.
func New(n int) *Generator {
	return &Generator{pair: seqpair.NewIdentity(n)}
}

// Pair exposes the current sequence pair for read access (e.g. by a
// completed run wanting to report the winning permutation).
func (g *Generator) Pair() seqpair.Pair { return g.pair }

// Shuffle independently shuffles both permutations in place using
// Fisher-Yates and clears any outstanding move record.
func (g *Generator) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(g.pair.Plus), func(i, j int) {
		g.pair.Plus[i], g.pair.Plus[j] = g.pair.Plus[j], g.pair.Plus[i]
	})
	rng.Shuffle(len(g.pair.Minus), func(i, j int) {
		g.pair.Minus[i], g.pair.Minus[j] = g.pair.Minus[j], g.pair.Minus[i]
	})
	g.last = seqpair.Move{Kind: seqpair.None}
	g.hasMove = false
}

// Evaluate atomically proposes a move sampled from dist, applies it,
// records it for a subsequent Rollback, and runs ev to write positions
// into l, returning the resulting bounding box.
func (g *Generator) Evaluate(
	l *layout.Layout,
	rng *rand.Rand,
	scratch *evaluator.Scratch,
	dist ChangeDistribution,
	ev evaluator.Evaluator,
) (w, h int) {
	m := dist.Sample(rng, g.pair.N())
	seqpair.Apply(&g.pair, m)
	g.last = m
	g.hasMove = true
	return ev.Evaluate(g.pair, l, scratch)
}

// Rollback undoes the last proposed move exactly, restoring the
// sequence pair to its state immediately before the matching Evaluate
// call. Returns false if no move is outstanding.
func (g *Generator) Rollback() bool {
	if !g.hasMove {
		return false
	}
	seqpair.Undo(&g.pair, g.last)
	g.hasMove = false
	return true
}

// CopyFrom deep-copies src's sequence pair and move state into g,
// reusing g's backing arrays when sizes match. The SA drivers use it to
// snapshot the best generator and to load a resampled or restarted
// state into a working generator by value rather than by alias.
func (g *Generator) CopyFrom(src *Generator) {
	g.pair.CopyFrom(src.pair)
	g.last = src.last
	g.hasMove = src.hasMove
}

// Clone returns a deep, independent copy.
func (g *Generator) Clone() *Generator {
	return &Generator{pair: g.pair.Clone(), last: g.last, hasMove: g.hasMove}
}
