// Package testgen is the random test-case generator named as an
// out-of-scope collaborator in the core's purpose and scope: it builds
// a rectangle layout and a net list for exercising the packer, mirroring
// the original generate_testcase.cpp tool's parameters and constraints.
package testgen

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/seqpair/rectpack/pkg/ioformat"
	"github.com/seqpair/rectpack/pkg/layout"
)

// Scenario configures a generation run. It mirrors the original tool's
// positional arguments (num_rects, num_lines, min_len, max_len) plus a
// seed, loaded from a YAML scenario file.
type Scenario struct {
	NumRects int   `yaml:"num_rects"`
	NumLines int   `yaml:"num_lines"`
	MinLen   int   `yaml:"min_len"`
	MaxLen   int   `yaml:"max_len"`
	Seed     int64 `yaml:"seed"`
}

// DefaultScenario returns a valid scenario of 32 rectangles with side
// lengths in [1,10], 8 nets and seed 1. cmd/testgen does not use it:
// its size parameters are required positional arguments.
func DefaultScenario() Scenario {
	return Scenario{NumRects: 32, NumLines: 8, MinLen: 1, MaxLen: 10, Seed: 1}
}

// LoadScenario reads a YAML scenario file, accepting either a
// "params:"-nested or a bare top-level struct.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("testgen: read scenario file: %w", err)
	}
	var wrapper struct {
		Params Scenario `yaml:"params"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err == nil && wrapper.Params != (Scenario{}) {
		return wrapper.Params, nil
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("testgen: parse scenario file: %w", err)
	}
	return s, nil
}

// Validate reports the first domain violation, mirroring
// generate_testcase.cpp's argument checks.
func (s Scenario) Validate() error {
	switch {
	case s.NumRects <= 0:
		return fmt.Errorf("testgen: num_rects must be positive")
	case s.MinLen <= 0 || s.MinLen > s.MaxLen:
		return fmt.Errorf("testgen: min_len %d must be positive and <= max_len %d", s.MinLen, s.MaxLen)
	case s.NumRects < 2*s.NumLines:
		return fmt.Errorf("testgen: num_rects (%d) < 2*num_lines (%d)", s.NumRects, 2*s.NumLines)
	}
	return nil
}

// Generate builds a random layout of s.NumRects rectangles with
// independent uniform width/height in [MinLen,MaxLen], and a net list
// of s.NumLines disjoint pairs drawn by scattering 2*NumLines distinct
// rectangle indices and pairing them consecutively — the Go rendition
// of random_scatter_to_pairs.
func (s Scenario) Generate(rng *rand.Rand) (*layout.Layout, []layout.Net, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	l := layout.New()
	span := s.MaxLen - s.MinLen + 1
	for i := 0; i < s.NumRects; i++ {
		w := s.MinLen + rng.Intn(span)
		h := s.MinLen + rng.Intn(span)
		l.Push(w, h)
	}

	scattered := rng.Perm(s.NumRects)[:2*s.NumLines]
	nets := make([]layout.Net, s.NumLines)
	for i := range nets {
		nets[i] = layout.Net{I: scattered[2*i], J: scattered[2*i+1]}
	}
	return l, nets, nil
}

// WriteFiles generates a scenario and writes its rect/net files via
// pkg/ioformat.
func (s Scenario) WriteFiles(rectPath, netPath string, rng *rand.Rand) error {
	l, nets, err := s.Generate(rng)
	if err != nil {
		return err
	}
	if err := writeRects(rectPath, l); err != nil {
		return err
	}
	return writeNets(netPath, nets)
}

func writeRects(path string, l *layout.Layout) error {
	// The generator's rectangles sit at the origin until placed; the
	// rect file format only records width/height on input, so any
	// placement serializes to the same dimensions.
	l.SetPositions(make([]int, l.Size()), make([]int, l.Size()))
	return ioformat.WriteRectFile(path, l)
}

func writeNets(path string, nets []layout.Net) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("testgen: create net file: %w", err)
	}
	defer f.Close()
	for _, n := range nets {
		if _, err := fmt.Fprintf(f, "%d %d\n", n.I, n.J); err != nil {
			return fmt.Errorf("testgen: write net file: %w", err)
		}
	}
	return nil
}
