package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/seqpair/rectpack/pkg/layout"
)

// ReadNetFile parses a net file (pairs "i j" of 0-based rect indices,
// one per line) against a layout of n rectangles. Every index must be
// less than n; otherwise the load fails with an out-of-range error, per
// the error taxonomy.
func ReadNetFile(path string, n int) ([]layout.Net, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioformat: open net file: %w", err)
	}
	defer f.Close()
	return ParseNets(f, n)
}

// ParseNets reads the net format from r, validating indices against n.
func ParseNets(r io.Reader, n int) ([]layout.Net, error) {
	var nets []layout.Net
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if len(text) == 0 {
			continue
		}
		var i, j int
		if _, err := fmt.Sscan(text, &i, &j); err != nil {
			return nil, fmt.Errorf("ioformat: net file line %d: %w", line, err)
		}
		if i < 0 || i >= n || j < 0 || j >= n {
			return nil, fmt.Errorf("ioformat: net file line %d: index out of range [0,%d)", line, n)
		}
		nets = append(nets, layout.Net{I: i, J: j})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ioformat: read net file: %w", err)
	}
	return nets, nil
}
