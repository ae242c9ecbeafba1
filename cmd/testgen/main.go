// Command testgen generates a random rect/net test case for the
// packer, the Go rendition of generate_testcase.cpp.
//
// Usage: testgen <num_rects> <num_lines> <min_len> <max_len> <rect_file> <net_file> [scenario_file]
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/seqpair/rectpack/pkg/testgen"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 6 {
		return fmt.Errorf("usage: testgen num_rects num_lines min_len max_len rect_file net_file [scenario_file]")
	}

	numRects, err1 := strconv.Atoi(args[0])
	numLines, err2 := strconv.Atoi(args[1])
	minLen, err3 := strconv.Atoi(args[2])
	maxLen, err4 := strconv.Atoi(args[3])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return fmt.Errorf("testgen: num_rects/num_lines/min_len/max_len must be integers")
	}
	rectFile, netFile := args[4], args[5]

	scenario := testgen.Scenario{NumRects: numRects, NumLines: numLines, MinLen: minLen, MaxLen: maxLen, Seed: 0}
	if len(args) > 6 {
		fromFile, err := testgen.LoadScenario(args[6])
		if err != nil {
			return err
		}
		scenario.Seed = fromFile.Seed
	}
	if err := scenario.Validate(); err != nil {
		return err
	}

	seed := scenario.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	if err := scenario.WriteFiles(rectFile, netFile, rng); err != nil {
		return err
	}
	fmt.Printf("Generated %d rectangles, %d nets -> %s, %s\n", numRects, numLines, rectFile, netFile)
	return nil
}
