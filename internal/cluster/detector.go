// Package cluster groups active oscillators into spatial-plus-phase
// connected components and keeps the resulting color assignments
// visually stable across frames.
package cluster

import (
	"math"

	"github.com/rafaelvleite/kuramoto-metronomes/internal/layout"
)

// Cluster is one frame's connected component. Members are oscillator
// indices in ascending order. Color is a palette index for qualified
// clusters and Neutral otherwise.
type Cluster struct {
	Members   []int
	Coherence float64
	Color     int
}

// Neutral marks an oscillator with no cluster color.
const Neutral = -1

// Detector finds connected components among active oscillators whose
// positions are within Radius and whose phases are within PhaseEps of
// each other, then qualifies them by size and internal coherence.
// Cluster identity is not tracked across frames; colors cycle through
// the palette in discovery order.
type Detector struct {
	Radius       float64
	PhaseEps     float64
	CoherenceMin float64
	MinSize      int
	PaletteSize  int
}

// Detect computes this frame's components. Components are ordered by
// their smallest member index, so output does not depend on iteration
// order over the index set. Zero active oscillators yields nil.
func (d *Detector) Detect(pos []layout.Point, phases []float64, active []bool) []Cluster {
	activeIdx := make([]int, 0, len(pos))
	for i := range pos {
		if active[i] {
			activeIdx = append(activeIdx, i)
		}
	}
	if len(activeIdx) == 0 {
		return nil
	}

	// Arena over compacted active indices only.
	ds := NewDisjointSet(len(activeIdx))
	for a := 0; a < len(activeIdx); a++ {
		i := activeIdx[a]
		for b := a + 1; b < len(activeIdx); b++ {
			j := activeIdx[b]
			if pos[i].DistanceTo(pos[j]) > d.Radius {
				continue
			}
			if math.Abs(wrapPhase(phases[i]-phases[j])) > d.PhaseEps {
				continue
			}
			ds.Union(a, b)
		}
	}

	// Group members under the component whose representative has the
	// smallest oscillator index; activeIdx is ascending, so the first
	// appearance of each root fixes discovery order.
	byRoot := make(map[int]*Cluster)
	order := make([]*Cluster, 0)
	for a, i := range activeIdx {
		root := ds.Find(a)
		c, ok := byRoot[root]
		if !ok {
			c = &Cluster{Color: Neutral}
			byRoot[root] = c
			order = append(order, c)
		}
		c.Members = append(c.Members, i)
	}

	colorNext := 0
	out := make([]Cluster, 0, len(order))
	for _, c := range order {
		c.Coherence = coherence(c.Members, phases)
		if len(c.Members) >= d.MinSize && c.Coherence >= d.CoherenceMin && d.PaletteSize > 0 {
			c.Color = colorNext % d.PaletteSize
			colorNext++
		}
		out = append(out, *c)
	}
	return out
}

// Assignments flattens qualified clusters into an oscillator->color map.
func Assignments(clusters []Cluster) map[int]int {
	fresh := make(map[int]int)
	for _, c := range clusters {
		if c.Color == Neutral {
			continue
		}
		for _, i := range c.Members {
			fresh[i] = c.Color
		}
	}
	return fresh
}

// coherence is the circular order parameter over a component.
func coherence(members []int, phases []float64) float64 {
	if len(members) == 0 {
		return 0
	}
	re, im := 0.0, 0.0
	for _, i := range members {
		s, c := math.Sincos(phases[i])
		re += c
		im += s
	}
	n := float64(len(members))
	return math.Hypot(re/n, im/n)
}

func wrapPhase(theta float64) float64 {
	m := math.Mod(theta+math.Pi, 2*math.Pi)
	if m <= 0 {
		m += 2 * math.Pi
	}
	return m - math.Pi
}
