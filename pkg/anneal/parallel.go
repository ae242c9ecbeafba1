package anneal

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/seqpair/rectpack/pkg/evaluator"
	"github.com/seqpair/rectpack/pkg/layout"
	"github.com/seqpair/rectpack/pkg/mover"
)

// bestState is the mutex-guarded global best shared by every worker.
// Updates use a double-checked comparison: a lock-free read of the
// current best energy first, then a re-check under the lock before
// committing, so losing workers never serialize on the mutex.
type bestState struct {
	mu         sync.Mutex
	energyBits atomic.Uint64 // Float64bits of energy, for the unlocked first check
	energy     float64
	layout     *layout.Layout
	gen        *mover.Generator
}

func newBestState(l *layout.Layout, gen *mover.Generator) *bestState {
	b := &bestState{energy: math.Inf(1), layout: l, gen: gen}
	b.energyBits.Store(math.Float64bits(b.energy))
	return b
}

func (b *bestState) consider(energy float64, l *layout.Layout, gen *mover.Generator) {
	if energy >= math.Float64frombits(b.energyBits.Load()) {
		return
	}
	b.mu.Lock()
	if energy < b.energy {
		b.energy = energy
		b.energyBits.Store(math.Float64bits(energy))
		b.layout.CopyFrom(l)
		b.gen.CopyFrom(gen)
	}
	b.mu.Unlock()
}

func (b *bestState) snapshot() (float64, *layout.Layout, *mover.Generator) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.energy, b.layout.Clone(), b.gen.Clone()
}

// goMsg is sent from coordinator to worker at the start of a
// temperature level: the generator state to resume from, the current
// energy that corresponds to it, the shared temperature, and whether
// the worker should instead shut down.
type goMsg struct {
	stop        bool
	temperature float64
	gen         *mover.Generator
	energy      float64
}

// doneMsg is sent from worker to coordinator at the end of a
// temperature level.
type doneMsg struct {
	worker     int
	energy     float64 // E_i: worker's current energy at level end
	meanEnergy float64 // mean energy over the worker's own trials this level
	accepted   int
	gen        *mover.Generator
}

// runWorker executes one worker's quota of Metropolis trials per
// temperature level until it receives a stop message.
func runWorker(
	id int,
	widths, heights []int,
	nets []layout.Net,
	alpha float64,
	ev evaluator.Evaluator,
	dist mover.ChangeDistribution,
	quota int,
	best *bestState,
	goCh <-chan goMsg,
	doneCh chan<- doneMsg,
	rng *rand.Rand,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	n := len(widths)
	l := layout.New()
	for i := 0; i < n; i++ {
		l.Push(widths[i], heights[i])
	}
	scratch := evaluator.NewScratch(n)
	gen := mover.New(n)

	for msg := range goCh {
		if msg.stop {
			return
		}
		gen.CopyFrom(msg.gen)
		curEnergy := msg.energy
		t := msg.temperature

		accepted := 0
		sumEnergy := 0.0
		for trial := 0; trial < quota; trial++ {
			w, h := gen.Evaluate(l, rng, scratch, dist, ev)
			candEnergy := Energy(alpha, w, h, l, nets)
			accept := candEnergy < curEnergy
			if !accept {
				u := rng.Float64()
				accept = u < math.Exp((curEnergy-candEnergy)/t)
			}
			if accept {
				curEnergy = candEnergy
				accepted++
				best.consider(curEnergy, l, gen)
			} else if !gen.Rollback() {
				panic("anneal: rollback with no outstanding move")
			}
			sumEnergy += candEnergy
		}

		doneCh <- doneMsg{
			worker:     id,
			energy:     curEnergy,
			meanEnergy: sumEnergy / float64(quota),
			accepted:   accepted,
			gen:        gen.Clone(),
		}
	}
}

// RunParallel executes the K-worker resampling SA driver. K=1
// (numThreads<2) special-cases to the sequenced driver. The coordinator
// runs on the calling goroutine.
func RunParallel(
	opts Options,
	alpha float64,
	widths, heights []int,
	nets []layout.Net,
	ev evaluator.Evaluator,
	distFactory func() mover.ChangeDistribution,
	numThreads int,
	rng *rand.Rand,
	obs Observer,
) Result {
	if numThreads < 2 {
		return RunSequenced(opts, alpha, widths, heights, nets, ev, distFactory(), rng, obs)
	}
	n := len(widths)
	if n == 0 {
		return Result{Layout: layout.New(), Energy: 0}
	}

	k := numThreads - 1 // coordination thread excluded
	quota := (opts.SimsPerTemperature + k - 1) / k

	bestLayoutInit := layout.New()
	for i := 0; i < n; i++ {
		bestLayoutInit.Push(widths[i], heights[i])
	}
	best := newBestState(bestLayoutInit, mover.New(n))

	goChans := make([]chan goMsg, k)
	doneCh := make(chan doneMsg, k)
	var wg sync.WaitGroup
	wg.Add(k)
	for i := 0; i < k; i++ {
		goChans[i] = make(chan goMsg, 1)
		workerRng := rand.New(rand.NewSource(rng.Int63()))
		go runWorker(i, widths, heights, nets, alpha, ev, distFactory(), quota, best, goChans[i], doneCh, workerRng, &wg)
	}

	// Initial population: every worker starts from its own shuffled
	// identity permutation.
	slotGens := make([]*mover.Generator, k)
	slotEnergies := make([]float64, k)
	for i := 0; i < k; i++ {
		g := mover.New(n)
		g.Shuffle(rng)
		slotGens[i] = g
		l := layout.New()
		for j := 0; j < n; j++ {
			l.Push(widths[j], heights[j])
		}
		scratch := evaluator.NewScratch(n)
		w, h := g.Evaluate(l, rng, scratch, distFactory(), ev)
		slotEnergies[i] = Energy(alpha, w, h, l, nets)
		best.consider(slotEnergies[i], l, g)
	}

	t := estimateParallelStartingTemperature(opts, alpha, widths, heights, nets, ev, distFactory(), rng)

	totalTrials := quota * k
	results := make([]doneMsg, k)
	levels := 0
	restarts := 0

	for {
		levels++
		for i := 0; i < k; i++ {
			goChans[i] <- goMsg{temperature: t, gen: slotGens[i], energy: slotEnergies[i]}
		}
		sumA := 0
		sumMean := 0.0
		for i := 0; i < k; i++ {
			d := <-doneCh
			results[d.worker] = d
			sumA += d.accepted
			sumMean += d.meanEnergy
		}

		if obs != nil {
			obs.TemperatureLevel(levels, t, sumMean/float64(k), sumA, totalTrials)
		}

		if float64(sumA) < opts.StoppingAcceptProb*float64(totalTrials) || t < 1.0 {
			for i := 0; i < k; i++ {
				goChans[i] <- goMsg{stop: true}
			}
			break
		}

		bestEnergy, _, bestGen := best.snapshot()

		// Boltzmann-weighted resampling with mean subtraction to avoid
		// overflow/underflow.
		mean := 0.0
		for _, d := range results {
			mean += d.energy
		}
		mean /= float64(k)

		weights := make([]float64, k)
		sumW := 0.0
		for i, d := range results {
			weights[i] = math.Exp(-(d.energy - mean) / t)
			sumW += weights[i]
		}
		cdf := make([]float64, k)
		running := 0.0
		for i, wgt := range weights {
			running += wgt / sumW
			cdf[i] = running
		}

		newGens := make([]*mover.Generator, k)
		newEnergies := make([]float64, k)
		for i := 0; i < k; i++ {
			u := rng.Float64()
			src := k - 1
			for idx, c := range cdf {
				if u <= c {
					src = idx
					break
				}
			}
			restarted := results[src].energy > opts.RestartRatio*bestEnergy
			if restarted {
				newGens[i] = bestGen.Clone()
				newEnergies[i] = bestEnergy
				restarts++
			} else {
				newGens[i] = results[src].gen.Clone()
				newEnergies[i] = results[src].energy
			}
			if obs != nil {
				obs.ResampleDecision(levels, i, src, restarted, newEnergies[i])
			}
		}
		slotGens, slotEnergies = newGens, newEnergies
		t *= opts.DecreasingRatio
	}

	wg.Wait()
	bestEnergy, bestLayout, _ := best.snapshot()
	return Result{Layout: bestLayout, Energy: bestEnergy, Levels: levels, Restarts: restarts}
}

// estimateParallelStartingTemperature reuses the sequenced estimator on
// a throwaway chain: the starting temperature depends only on the
// energy landscape, not on which driver explores it.
func estimateParallelStartingTemperature(
	opts Options, alpha float64, widths, heights []int, nets []layout.Net,
	ev evaluator.Evaluator, dist mover.ChangeDistribution, rng *rand.Rand,
) float64 {
	c := newChain(widths, heights, rng)
	c.gen.Shuffle(rng)
	discardEnergy := math.Inf(1)
	discardLayout := c.layout.Clone()
	discardGen := c.gen.Clone()
	return estimateStartingTemperature(c, opts, alpha, nets, ev, dist, &discardEnergy, discardLayout, discardGen)
}
