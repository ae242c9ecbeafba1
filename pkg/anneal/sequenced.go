// Package anneal implements the simulated-annealing drivers: a
// single-threaded sequenced variant and a worker-pool parallel variant
// that resample their chains each temperature step.
package anneal

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/seqpair/rectpack/pkg/evaluator"
	"github.com/seqpair/rectpack/pkg/layout"
	"github.com/seqpair/rectpack/pkg/mover"
)

// epsilon guards the starting-temperature estimate against a
// degenerate zero-variance sample.
const epsilon = 1e-9

// Result is the outcome of a completed SA run.
type Result struct {
	Layout   *layout.Layout
	Energy   float64
	Levels   int
	Restarts int
}

// chain bundles everything one sequential Metropolis walk needs: its
// own layout, generator, scratch, and RNG.
type chain struct {
	layout  *layout.Layout
	gen     *mover.Generator
	scratch *evaluator.Scratch
	rng     *rand.Rand
}

func newChain(widths, heights []int, rng *rand.Rand) *chain {
	l := layout.New()
	for i := range widths {
		l.Push(widths[i], heights[i])
	}
	return &chain{
		layout:  l,
		gen:     mover.New(len(widths)),
		scratch: evaluator.NewScratch(len(widths)),
		rng:     rng,
	}
}

// energyOf runs ev over c's current generator state and returns the
// resulting energy, leaving c.layout holding that placement.
func energyOf(c *chain, alpha float64, nets []layout.Net, ev evaluator.Evaluator, dist mover.ChangeDistribution) float64 {
	w, h := c.gen.Evaluate(c.layout, c.rng, c.scratch, dist, ev)
	return Energy(alpha, w, h, c.layout, nets)
}

// estimateStartingTemperature runs 64 proposal-and-shuffle steps,
// sampling the resulting energies, and returns T0 = (sigma+eps) /
// ln(1/initial_accept_prob). Along the way it updates the best layout
// and generator seen so far, since each sampled step is a fully valid
// evaluation in its own right.
func estimateStartingTemperature(
	c *chain, opts Options, alpha float64, nets []layout.Net,
	ev evaluator.Evaluator, dist mover.ChangeDistribution,
	bestEnergy *float64, bestLayout *layout.Layout, bestGen *mover.Generator,
) float64 {
	const samples = 64
	energies := make([]float64, samples)
	for i := 0; i < samples; i++ {
		e := energyOf(c, alpha, nets, ev, dist)
		energies[i] = e
		if e < *bestEnergy {
			*bestEnergy = e
			bestLayout.CopyFrom(c.layout)
			bestGen.CopyFrom(c.gen)
		}
		c.gen.Shuffle(c.rng)
	}
	sigma := stat.StdDev(energies, nil)
	return (sigma + epsilon) / math.Log(1/opts.InitialAcceptProb)
}

// RunSequenced executes the single-threaded SA driver to completion
// and returns the best layout found and its energy.
func RunSequenced(
	opts Options,
	alpha float64,
	widths, heights []int,
	nets []layout.Net,
	ev evaluator.Evaluator,
	dist mover.ChangeDistribution,
	rng *rand.Rand,
	obs Observer,
) Result {
	n := len(widths)
	if n == 0 {
		return Result{Layout: layout.New(), Energy: 0}
	}

	c := newChain(widths, heights, rng)
	c.gen.Shuffle(rng)

	bestEnergy := math.Inf(1)
	bestLayout := c.layout.Clone()
	bestGen := c.gen.Clone()

	t := estimateStartingTemperature(c, opts, alpha, nets, ev, dist, &bestEnergy, bestLayout, bestGen)

	// The estimation loop leaves the generator freshly shuffled with no
	// committed energy; the main loop's working energy starts here.
	curEnergy := energyOf(c, alpha, nets, ev, dist)
	if curEnergy < bestEnergy {
		bestEnergy = curEnergy
		bestLayout.CopyFrom(c.layout)
		bestGen.CopyFrom(c.gen)
	}

	levels := 0
	restarts := 0
	for {
		levels++
		accepted := 0
		sumEnergy := 0.0

		for trial := 0; trial < opts.SimsPerTemperature; trial++ {
			candEnergy := energyOf(c, alpha, nets, ev, dist)
			accept := candEnergy < curEnergy
			if !accept {
				u := rng.Float64()
				accept = u < math.Exp((curEnergy-candEnergy)/t)
			}
			if accept {
				curEnergy = candEnergy
				accepted++
				if curEnergy < bestEnergy {
					bestEnergy = curEnergy
					bestLayout.CopyFrom(c.layout)
					bestGen.CopyFrom(c.gen)
				}
			} else if !c.gen.Rollback() {
				panic("anneal: rollback with no outstanding move")
			}
			sumEnergy += candEnergy
		}

		if obs != nil {
			obs.TemperatureLevel(levels, t, sumEnergy/float64(opts.SimsPerTemperature), accepted, opts.SimsPerTemperature)
		}

		if float64(accepted) < opts.StoppingAcceptProb*float64(opts.SimsPerTemperature) || t < 1.0 {
			break
		}

		if sumEnergy/float64(opts.SimsPerTemperature) > opts.RestartRatio*bestEnergy {
			c.gen.CopyFrom(bestGen)
			curEnergy = bestEnergy
			restarts++
		}

		t *= opts.DecreasingRatio
	}

	return Result{Layout: bestLayout, Energy: bestEnergy, Levels: levels, Restarts: restarts}
}
