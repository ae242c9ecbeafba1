// Command run_packer is the CLI entry point for the sequence-pair
// simulated-annealing rectangle floorplanner.
//
// Usage: run_packer rect_file net_file alpha method result_file
//
//	[num_threads=1] [verbose_level=1] [options_file]
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/seqpair/rectpack/pkg/anneal"
	"github.com/seqpair/rectpack/pkg/evaluator"
	"github.com/seqpair/rectpack/pkg/ioformat"
	"github.com/seqpair/rectpack/pkg/layout"
	"github.com/seqpair/rectpack/pkg/mover"
	"github.com/seqpair/rectpack/pkg/report"
	"github.com/seqpair/rectpack/pkg/verify"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: rect_file net_file alpha method result_file "+
		"[num_threads=1] [verbose_level=1] [options_file]")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 5 {
		usage()
		return 1
	}

	rectFile, netFile := args[0], args[1]
	alpha, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run_packer: invalid alpha %q: %v\n", args[2], err)
		return 1
	}
	method := strings.ToLower(args[3])
	if method != "lcs" && method != "dag" {
		fmt.Fprintf(os.Stderr, "run_packer: unknown method %q, want \"lcs\" or \"dag\"\n", args[3])
		return 1
	}
	resultFile := args[4]

	numThreads := 1
	if len(args) > 5 {
		numThreads, err = strconv.Atoi(args[5])
		if err != nil || numThreads < 1 {
			fmt.Fprintf(os.Stderr, "run_packer: invalid num_threads %q\n", args[5])
			return 1
		}
	}
	verboseLevel := 1
	if len(args) > 6 {
		verboseLevel, err = strconv.Atoi(args[6])
		if err != nil {
			fmt.Fprintf(os.Stderr, "run_packer: invalid verbose_level %q\n", args[6])
			return 1
		}
	}
	var optionsFile string
	if len(args) > 7 {
		optionsFile = args[7]
	}
	if len(args) > 8 {
		fmt.Println("Warning: extra command-line arguments are omitted.")
	}

	l, err := ioformat.ReadRectFile(rectFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	nets, err := ioformat.ReadNetFile(netFile, l.Size())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	reporter := report.New(report.Level(verboseLevel), os.Stdout)

	var opts anneal.Options
	if optionsFile != "" {
		opts, err = anneal.LoadOptionsFile(optionsFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	} else {
		opts = anneal.Defaults(l.Size(), numThreads)
	}

	if reporter.Enabled(report.Summary) {
		fmt.Printf("Rectangles: %d\n", l.Size())
		fmt.Printf("Alpha: %v\n\n", alpha)
		fmt.Printf("Threads: %d\n", numThreads)
		methodLabel := "LCS"
		if method == "dag" {
			methodLabel = "DAG"
		}
		fmt.Printf("Method: %s\n", methodLabel)
	}

	if l.Empty() {
		writeResultAndCheck(resultFile, l, nets, alpha, 0, reporter)
		return 0
	}

	var ev evaluator.Evaluator = evaluator.LCS{}
	if method == "dag" {
		ev = evaluator.DAG{}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	widths, heights := l.Widths(), l.Heights()

	start := time.Now()
	var result anneal.Result
	if numThreads < 2 {
		result = anneal.RunSequenced(opts, alpha, widths, heights, nets, ev, mover.Uniform{}, rng, reporter)
	} else {
		result = anneal.RunParallel(opts, alpha, widths, heights, nets, ev,
			func() mover.ChangeDistribution { return mover.Uniform{} }, numThreads, rng, reporter)
	}
	elapsed := time.Since(start)

	w, h := result.Layout.BoundingBox()
	reporter.RunSummary(strings.ToUpper(method), l.Size(), numThreads, alpha,
		w, h, result.Layout.SumComponentAreas(),
		result.Energy, result.Levels, result.Restarts, elapsed)

	writeResultAndCheck(resultFile, result.Layout, nets, alpha, result.Energy, reporter)
	return 0
}

// machineEpsilon is the smallest float64 x such that 1+x != 1, matching
// the original's numeric_limits<double>().epsilon() used in the
// result-acceptance tolerance.
const machineEpsilon = 2.220446049250313e-16

// writeResultAndCheck writes the result file and performs the
// result-acceptance check described in the external-interfaces
// section: it never affects the process exit code.
func writeResultAndCheck(path string, l *layout.Layout, nets []layout.Net, alpha, reportedCost float64, reporter *report.Reporter) {
	w, h := l.BoundingBox()
	wirelength := l.Wirelength(nets)
	recomputed := alpha*float64(w)*float64(h) + (1-alpha)*wirelength
	withinTolerance := math.Abs(recomputed-reportedCost) <= 16*machineEpsilon
	noOverlap := !verify.HasOverlap(l)

	reporter.AcceptanceCheck(recomputed, reportedCost, withinTolerance, noOverlap)

	if err := ioformat.WriteRectFile(path, l); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
