package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FormatPolicy selects how Layout.Format renders a placement.
type FormatPolicy int

const (
	// NoDelim renders "x_lb y_lb x_rt y_rt" per line, the wire format
	// read back by pkg/ioformat and written by cmd/run_packer's result
	// file.
	NoDelim FormatPolicy = iota
	// Delim renders "(x, y) - (x+w, y+h)" per line, for human inspection.
	Delim
)

// Format renders the layout according to policy.
func (l *Layout) Format(policy FormatPolicy) string {
	var b strings.Builder
	for _, r := range l.rects {
		switch policy {
		case Delim:
			fmt.Fprintf(&b, "(%d, %d) - (%d, %d)\n", r.X, r.Y, r.X+r.Width, r.Y+r.Height)
		default:
			fmt.Fprintf(&b, "%d %d %d %d\n", r.X, r.Y, r.X+r.Width, r.Y+r.Height)
		}
	}
	return b.String()
}

// WriteTo writes Format(policy) to w.
func (l *Layout) WriteTo(w io.Writer, policy FormatPolicy) (int64, error) {
	n, err := io.WriteString(w, l.Format(policy))
	return int64(n), err
}

// GeoJSON renders the layout as a GeoJSON FeatureCollection of
// rectangular polygons, one feature per rectangle, index carried in the
// "index" property, useful for visual debugging of a placement.
func (l *Layout) GeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, r := range l.rects {
		ring := orb.Ring{
			{float64(r.X), float64(r.Y)},
			{float64(r.X + r.Width), float64(r.Y)},
			{float64(r.X + r.Width), float64(r.Y + r.Height)},
			{float64(r.X), float64(r.Y + r.Height)},
			{float64(r.X), float64(r.Y)},
		}
		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties = geojson.Properties{"index": i}
		fc.Append(f)
	}
	return fc
}
