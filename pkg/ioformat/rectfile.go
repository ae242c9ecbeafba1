// Package ioformat reads and writes the whitespace-separated rect and
// net file formats consumed and produced by cmd/run_packer and
// cmd/testgen.
package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/seqpair/rectpack/pkg/layout"
)

// ReadRectFile parses a rect file (one "x_lb y_lb x_rt y_rt" per line)
// into a Layout. Input x_lb/y_lb are discarded; only the derived
// width/height survive, since positions are overwritten by an
// evaluator.
func ReadRectFile(path string) (*layout.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioformat: open rect file: %w", err)
	}
	defer f.Close()
	return ParseRects(f)
}

// ParseRects reads the rect format from r.
func ParseRects(r io.Reader) (*layout.Layout, error) {
	l := layout.New()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if len(text) == 0 {
			continue
		}
		var xlb, ylb, xrt, yrt int
		if _, err := fmt.Sscan(text, &xlb, &ylb, &xrt, &yrt); err != nil {
			return nil, fmt.Errorf("ioformat: rect file line %d: %w", line, err)
		}
		w, h := xrt-xlb, yrt-ylb
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("ioformat: rect file line %d: non-positive dimensions %dx%d", line, w, h)
		}
		l.Push(w, h)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ioformat: read rect file: %w", err)
	}
	return l, nil
}

// WriteRectFile writes l's current placement to path in no-delim
// policy, the format read back by ReadRectFile.
func WriteRectFile(path string, l *layout.Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ioformat: create result file: %w", err)
	}
	defer f.Close()
	if _, err := l.WriteTo(f, layout.NoDelim); err != nil {
		return fmt.Errorf("ioformat: write result file: %w", err)
	}
	return nil
}
