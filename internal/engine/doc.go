// Package engine evolves a lattice of Kuramoto phase oscillators under
// time-ramped spatial coupling, staggered activation, and phase noise,
// and derives the per-frame state a renderer consumes.
//
// An [Engine] owns all mutable run state (phase vector, generator, lock
// timer, hysteresis map); callers receive read-only [Frame] snapshots:
//
//	eng, err := engine.New(cfg)
//	if err != nil { ... }
//	eng.Run(ctx, func(f engine.Frame) bool {
//	    render(f)
//	    return true
//	})
//
// Given a fixed seed and configuration the phase trajectory is exactly
// reproducible; noise is drawn in index order each sub-step.
package engine
