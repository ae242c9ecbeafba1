package mover

import (
	"math/rand"

	"github.com/seqpair/rectpack/pkg/seqpair"
)

// ChangeDistribution samples the next move to propose against a
// sequence pair of size n. Implementers may be swapped in without
// touching Generator.
type ChangeDistribution interface {
	Sample(rng *rand.Rand, n int) seqpair.Move
}

// Uniform samples move kind uniformly over {SwapX, SwapY, SwapBoth} and
// positions i != j uniformly at random. This is the default
// distribution.
type Uniform struct{}

// Sample implements ChangeDistribution. With fewer than two positions
// no swap exists, so the proposal degenerates to a no-op move.
func (Uniform) Sample(rng *rand.Rand, n int) seqpair.Move {
	if n < 2 {
		return seqpair.Move{Kind: seqpair.None}
	}
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	kind := seqpair.SwapX + seqpair.Kind(rng.Intn(3))
	return seqpair.Move{Kind: kind, I: i, J: j}
}
