// Package layout places oscillators on the fixed table. Positions are
// computed once per run and never mutated afterwards.
package layout

import "math"

type Point struct {
	X, Y float64
}

func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

const (
	marginX    = 120.0
	marginYTop = 160.0
	spacingY   = 160.0
)

// Grid lays n oscillators out in rows across a table of the given pixel
// width, filling row by row. The last row may be short when rows does
// not divide n.
func Grid(n, rows int, width float64) []Point {
	if n <= 0 || rows <= 0 {
		return nil
	}
	cols := (n + rows - 1) / rows
	spacingX := 0.0
	if cols > 1 {
		spacingX = (width - 2*marginX) / float64(cols-1)
	}

	pts := make([]Point, 0, n)
	for r := 0; r < rows && len(pts) < n; r++ {
		y := marginYTop + float64(r)*spacingY
		for c := 0; c < cols && len(pts) < n; c++ {
			pts = append(pts, Point{X: marginX + float64(c)*spacingX, Y: y})
		}
	}
	return pts
}
