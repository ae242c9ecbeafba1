package anneal

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seqpair/rectpack/pkg/evaluator"
	"github.com/seqpair/rectpack/pkg/layout"
	"github.com/seqpair/rectpack/pkg/mover"
)

func smallInstance() (widths, heights []int, nets []layout.Net) {
	widths = []int{4, 3, 3, 2, 4, 6}
	heights = []int{6, 7, 3, 3, 3, 4}
	nets = []layout.Net{{I: 0, J: 1}, {I: 2, J: 5}}
	return
}

func TestOptionsValidateRejectsOutOfDomain(t *testing.T) {
	bad := []Options{
		{InitialAcceptProb: 0, SimsPerTemperature: 10, DecreasingRatio: 0.9, RestartRatio: 2, StoppingAcceptProb: 0.1},
		{InitialAcceptProb: 0.5, SimsPerTemperature: 0, DecreasingRatio: 0.9, RestartRatio: 2, StoppingAcceptProb: 0.1},
		{InitialAcceptProb: 0.5, SimsPerTemperature: 10, DecreasingRatio: 1.5, RestartRatio: 2, StoppingAcceptProb: 0.1},
		{InitialAcceptProb: 0.5, SimsPerTemperature: 10, DecreasingRatio: 0.9, RestartRatio: 1, StoppingAcceptProb: 0.1},
		{InitialAcceptProb: 0.5, SimsPerTemperature: 10, DecreasingRatio: 0.9, RestartRatio: 2, StoppingAcceptProb: 0},
	}
	for i, o := range bad {
		if o.Validate() == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, o)
		}
	}
}

func TestParseOptionsFiveNumberFormat(t *testing.T) {
	in := "0.9 2048 0.95 2.3 0.02\n"
	o, err := ParseOptions(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseOptions: %v", err)
	}
	want := Options{InitialAcceptProb: 0.9, SimsPerTemperature: 2048, DecreasingRatio: 0.95, RestartRatio: 2.3, StoppingAcceptProb: 0.02}
	if o != want {
		t.Fatalf("ParseOptions = %+v, want %+v", o, want)
	}
}

func TestParseOptionsRejectsTruncatedFile(t *testing.T) {
	if _, err := ParseOptions(strings.NewReader("0.9 2048 0.95\n")); err == nil {
		t.Fatal("expected error for truncated options file")
	}
}

func TestLoadOptionsFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	content := "options:\n" +
		"  initial_accept_prob: 0.8\n" +
		"  sims_per_temperature: 512\n" +
		"  decreasing_ratio: 0.97\n" +
		"  restart_ratio: 2.1\n" +
		"  stopping_accept_prob: 0.03\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	o, err := LoadOptionsFile(path)
	if err != nil {
		t.Fatalf("LoadOptionsFile: %v", err)
	}
	if o.SimsPerTemperature != 512 || o.InitialAcceptProb != 0.8 {
		t.Fatalf("LoadOptionsFile = %+v", o)
	}
}

func TestDefaultsScalesForParallel(t *testing.T) {
	seq := Defaults(100, 1)
	par := Defaults(100, 4)
	if par.SimsPerTemperature <= seq.SimsPerTemperature {
		t.Fatalf("parallel sims_per_temperature %d should exceed sequenced %d", par.SimsPerTemperature, seq.SimsPerTemperature)
	}
	if par.RestartRatio != 2.3 {
		t.Fatalf("parallel restart_ratio = %v, want 2.3", par.RestartRatio)
	}
}

// TestRestartTriggerOccurs: a very low restart_ratio on a tiny
// instance must trigger at least one restart, and the best energy is
// non-increasing by construction (it is only ever assigned a smaller
// value).
func TestRestartTriggerOccurs(t *testing.T) {
	widths, heights, nets := smallInstance()
	opts := Options{
		InitialAcceptProb:  0.9,
		SimsPerTemperature: 32,
		DecreasingRatio:    0.9,
		RestartRatio:       1.001,
		StoppingAcceptProb: 0.001,
	}
	rng := rand.New(rand.NewSource(42))
	result := RunSequenced(opts, 0.5, widths, heights, nets, evaluator.LCS{}, mover.Uniform{}, rng, nil)
	if result.Restarts == 0 {
		t.Fatal("expected at least one restart with restart_ratio=1.001")
	}
}

// TestParallelMatchesSequencedAtK1: the parallel driver with
// numThreads=1 must special-case to the sequenced driver and return
// the same best energy for a fixed seed.
func TestParallelMatchesSequencedAtK1(t *testing.T) {
	widths, heights, nets := smallInstance()
	opts := Options{
		InitialAcceptProb:  0.9,
		SimsPerTemperature: 16,
		DecreasingRatio:    0.9,
		RestartRatio:       2.3,
		StoppingAcceptProb: 0.05,
	}

	seqResult := RunSequenced(opts, 0.5, widths, heights, nets, evaluator.LCS{}, mover.Uniform{}, rand.New(rand.NewSource(99)), nil)
	parResult := RunParallel(opts, 0.5, widths, heights, nets, evaluator.LCS{}, func() mover.ChangeDistribution { return mover.Uniform{} }, 1, rand.New(rand.NewSource(99)), nil)

	if seqResult.Energy != parResult.Energy {
		t.Fatalf("sequenced energy %v != parallel(K=1) energy %v", seqResult.Energy, parResult.Energy)
	}
}

// TestSingleRectangleRun: with one rectangle every proposal is a no-op,
// the energy sample has zero variance, and both drivers terminate on
// the temperature guard after a single level with the rectangle at the
// origin.
func TestSingleRectangleRun(t *testing.T) {
	widths, heights := []int{9}, []int{4}
	opts := Defaults(1, 1)

	result := RunSequenced(opts, 0.5, widths, heights, nil, evaluator.LCS{}, mover.Uniform{}, rand.New(rand.NewSource(5)), nil)
	if result.Levels != 1 {
		t.Fatalf("sequenced levels = %d, want 1", result.Levels)
	}
	r := result.Layout.Rects()[0]
	if r.X != 0 || r.Y != 0 {
		t.Fatalf("rectangle placed at (%d,%d), want origin", r.X, r.Y)
	}
	if want := 0.5 * 36; result.Energy != want {
		t.Fatalf("energy = %v, want %v", result.Energy, want)
	}

	parResult := RunParallel(Defaults(1, 3), 0.5, widths, heights, nil, evaluator.LCS{}, func() mover.ChangeDistribution { return mover.Uniform{} }, 3, rand.New(rand.NewSource(5)), nil)
	if parResult.Levels != 1 {
		t.Fatalf("parallel levels = %d, want 1", parResult.Levels)
	}
	if parResult.Energy != result.Energy {
		t.Fatalf("parallel energy %v != sequenced energy %v", parResult.Energy, result.Energy)
	}
}

func TestRunSequencedEmptyLayout(t *testing.T) {
	opts := Defaults(0, 1)
	result := RunSequenced(opts, 0.5, nil, nil, nil, evaluator.LCS{}, mover.Uniform{}, rand.New(rand.NewSource(1)), nil)
	if result.Energy != 0 || result.Layout.Size() != 0 {
		t.Fatalf("empty layout result = %+v, want zero energy and empty layout", result)
	}
}

// TestReturnedCostMatchesLayout: the returned energy equals
// alpha*W*H + (1-alpha)*L recomputed on the returned layout, within 16
// machine epsilons.
func TestReturnedCostMatchesLayout(t *testing.T) {
	widths, heights, nets := smallInstance()
	opts := Options{
		InitialAcceptProb:  0.9,
		SimsPerTemperature: 32,
		DecreasingRatio:    0.9,
		RestartRatio:       2.3,
		StoppingAcceptProb: 0.05,
	}
	const alpha = 0.7
	result := RunSequenced(opts, alpha, widths, heights, nets, evaluator.LCS{}, mover.Uniform{}, rand.New(rand.NewSource(3)), nil)

	w, h := result.Layout.BoundingBox()
	recomputed := Energy(alpha, w, h, result.Layout, nets)
	const eps = 2.220446049250313e-16
	if math.Abs(recomputed-result.Energy) > 16*eps {
		t.Fatalf("recomputed cost %v differs from returned %v", recomputed, result.Energy)
	}
}

type recordingObserver struct {
	levels    int
	resamples int
}

func (r *recordingObserver) TemperatureLevel(level int, temperature, avgEnergy float64, accepted, trials int) {
	r.levels++
}

func (r *recordingObserver) ResampleDecision(level, slot, source int, restarted bool, energy float64) {
	r.resamples++
}

func TestObserverSeesEveryTemperatureLevel(t *testing.T) {
	widths, heights, nets := smallInstance()
	opts := Options{
		InitialAcceptProb:  0.9,
		SimsPerTemperature: 16,
		DecreasingRatio:    0.9,
		RestartRatio:       2.3,
		StoppingAcceptProb: 0.05,
	}
	obs := &recordingObserver{}
	result := RunSequenced(opts, 0.5, widths, heights, nets, evaluator.LCS{}, mover.Uniform{}, rand.New(rand.NewSource(8)), obs)
	if obs.levels != result.Levels {
		t.Fatalf("observer saw %d levels, result reports %d", obs.levels, result.Levels)
	}

	obs = &recordingObserver{}
	parResult := RunParallel(opts, 0.5, widths, heights, nets, evaluator.LCS{}, func() mover.ChangeDistribution { return mover.Uniform{} }, 3, rand.New(rand.NewSource(8)), obs)
	if obs.levels != parResult.Levels {
		t.Fatalf("observer saw %d parallel levels, result reports %d", obs.levels, parResult.Levels)
	}
}

func TestRunParallelProducesNonOverlappingBestLayout(t *testing.T) {
	widths, heights, nets := smallInstance()
	opts := Options{
		InitialAcceptProb:  0.9,
		SimsPerTemperature: 24,
		DecreasingRatio:    0.9,
		RestartRatio:       2.3,
		StoppingAcceptProb: 0.05,
	}
	result := RunParallel(opts, 0.5, widths, heights, nets, evaluator.LCS{}, func() mover.ChangeDistribution { return mover.Uniform{} }, 4, rand.New(rand.NewSource(7)), nil)

	rects := result.Layout.Rects()
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			overlapX := a.X < b.X+b.Width && b.X < a.X+a.Width
			overlapY := a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
			if overlapX && overlapY {
				t.Fatalf("rectangles %d and %d overlap in parallel result: %+v %+v", i, j, a, b)
			}
		}
	}
}
