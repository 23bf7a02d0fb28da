package engine

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/rafaelvleite/kuramoto-metronomes/internal/layout"
)

// buildWeights computes the normalized distance-decay adjacency matrix
// w_ij = exp(-dist(i,j)/lambda) with a zero diagonal, each row rescaled
// to sum to 1. A row with no neighbors keeps a divisor of 1, so an
// isolated oscillator simply receives no coupling.
func buildWeights(pos []layout.Point, lambda float64) *mat.Dense {
	n := len(pos)
	w := mat.NewDense(n, n, nil)

	for i := 0; i < n; i++ {
		row := w.RawRowView(i)
		sum := 0.0
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v := math.Exp(-pos[i].DistanceTo(pos[j]) / lambda)
			row[j] = v
			sum += v
		}
		if sum == 0 {
			sum = 1
		}
		for j := range row {
			row[j] /= sum
		}
	}
	return w
}
