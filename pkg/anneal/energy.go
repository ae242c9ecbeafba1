package anneal

import "github.com/seqpair/rectpack/pkg/layout"

// Energy computes the weighted cost alpha*(W*H) + (1-alpha)*L that the
// SA drivers minimize, where L is the layout's net wirelength.
func Energy(alpha float64, w, h int, l *layout.Layout, nets []layout.Net) float64 {
	area := float64(w) * float64(h)
	wirelength := l.Wirelength(nets)
	return alpha*area + (1-alpha)*wirelength
}
