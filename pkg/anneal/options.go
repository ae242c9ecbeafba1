package anneal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options configures a simulated-annealing run. Zero values are never
// valid; use Defaults and override from an options file.
type Options struct {
	InitialAcceptProb  float64 // (0,1): target acceptance rate at start, sets T0.
	SimsPerTemperature int     // >=1: proposed moves per temperature level.
	DecreasingRatio    float64 // (0,1): geometric cooling factor.
	RestartRatio       float64 // >1: restart-from-best trigger ratio.
	StoppingAcceptProb float64 // (0,1]: terminate below this acceptance rate.
}

// Defaults returns the options used when no options file is given and
// the driver is sequenced or single-threaded. numThreads scales
// SimsPerTemperature and overrides RestartRatio when the driver runs
// two or more worker threads, per the CLI's documented behavior.
func Defaults(n, numThreads int) Options {
	sims := 30 * n
	if sims < 1024 {
		sims = 1024
	}
	restart := 2.0
	if numThreads >= 2 {
		sims *= (numThreads + 2) / 2 // ceil((numThreads+1)/2)
		restart = 2.3
	}
	return Options{
		InitialAcceptProb:  0.9,
		SimsPerTemperature: sims,
		DecreasingRatio:    0.99,
		RestartRatio:       restart,
		StoppingAcceptProb: 0.05,
	}
}

// Validate reports the first domain violation found, or nil.
func (o Options) Validate() error {
	switch {
	case !(o.InitialAcceptProb > 0 && o.InitialAcceptProb < 1):
		return fmt.Errorf("anneal: initial_accept_prob %v out of domain (0,1)", o.InitialAcceptProb)
	case o.SimsPerTemperature < 1:
		return fmt.Errorf("anneal: sims_per_temperature %d out of domain [1,inf)", o.SimsPerTemperature)
	case !(o.DecreasingRatio > 0 && o.DecreasingRatio < 1):
		return fmt.Errorf("anneal: decreasing_ratio %v out of domain (0,1)", o.DecreasingRatio)
	case !(o.RestartRatio > 1):
		return fmt.Errorf("anneal: restart_ratio %v out of domain (1,inf)", o.RestartRatio)
	case !(o.StoppingAcceptProb > 0 && o.StoppingAcceptProb <= 1):
		return fmt.Errorf("anneal: stopping_accept_prob %v out of domain (0,1]", o.StoppingAcceptProb)
	}
	return nil
}

// LoadOptionsFile parses an options file. The canonical format is five
// whitespace/newline-separated numbers in the order documented in the
// external-interfaces section: initial_accept_prob
// sims_per_temperature decreasing_ratio restart_ratio
// stopping_accept_prob. Files named *.yaml or *.yml instead load a
// YAML run profile with the same five fields. Either way the result is
// validated before returning.
func LoadOptionsFile(path string) (Options, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadOptionsYAML(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return Options{}, fmt.Errorf("anneal: open options file: %w", err)
	}
	defer f.Close()
	return ParseOptions(f)
}

// yamlOptions is the YAML run-profile shape, accepted either bare or
// under an "options:" key.
type yamlOptions struct {
	InitialAcceptProb  float64 `yaml:"initial_accept_prob"`
	SimsPerTemperature int     `yaml:"sims_per_temperature"`
	DecreasingRatio    float64 `yaml:"decreasing_ratio"`
	RestartRatio       float64 `yaml:"restart_ratio"`
	StoppingAcceptProb float64 `yaml:"stopping_accept_prob"`
}

func (y yamlOptions) toOptions() Options {
	return Options{
		InitialAcceptProb:  y.InitialAcceptProb,
		SimsPerTemperature: y.SimsPerTemperature,
		DecreasingRatio:    y.DecreasingRatio,
		RestartRatio:       y.RestartRatio,
		StoppingAcceptProb: y.StoppingAcceptProb,
	}
}

func loadOptionsYAML(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("anneal: read options file: %w", err)
	}
	var wrapper struct {
		Options yamlOptions `yaml:"options"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err == nil && wrapper.Options != (yamlOptions{}) {
		o := wrapper.Options.toOptions()
		if err := o.Validate(); err != nil {
			return Options{}, err
		}
		return o, nil
	}
	var bare yamlOptions
	if err := yaml.Unmarshal(data, &bare); err != nil {
		return Options{}, fmt.Errorf("anneal: parse options file: %w", err)
	}
	o := bare.toOptions()
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// ParseOptions reads the five-number options format from r.
func ParseOptions(r io.Reader) (Options, error) {
	var o Options
	br := bufio.NewReader(r)
	values := make([]float64, 0, 5)
	for len(values) < 5 {
		var v float64
		if _, err := fmt.Fscan(br, &v); err != nil {
			return Options{}, fmt.Errorf("anneal: reading option %d: %w", len(values)+1, err)
		}
		values = append(values, v)
	}
	o = Options{
		InitialAcceptProb:  values[0],
		SimsPerTemperature: int(values[1]),
		DecreasingRatio:    values[2],
		RestartRatio:       values[3],
		StoppingAcceptProb: values[4],
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}
