package engine

import (
	"context"
	"fmt"
	"math"
	rand "math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rafaelvleite/kuramoto-metronomes/internal/cluster"
	"github.com/rafaelvleite/kuramoto-metronomes/internal/config"
	"github.com/rafaelvleite/kuramoto-metronomes/internal/layout"
	"github.com/rafaelvleite/kuramoto-metronomes/internal/palette"
)

// Frame is the read-only per-frame snapshot handed to the rendering
// collaborator. Slices are copies; mutating them does not touch the
// engine.
type Frame struct {
	Index    int
	Time     float64
	Phases   []float64
	Active   []bool
	Colors   []int // palette index per oscillator, cluster.Neutral if none
	Order    float64
	Coupling float64
	Clusters int
	Locked   bool
}

// Engine owns the full mutable state of one simulation run. It is not
// safe for concurrent use; a run is strictly sequential.
type Engine struct {
	cfg config.Config
	pos []layout.Point

	// Immutable for the run.
	weights *mat.Dense
	omega   []float64
	start   []float64
	ramp    Ramp

	theta []float64
	next  []float64
	gain  []float64

	noise distuv.Normal // standard normal; scaled by noiseStd*sqrt(dt)

	lock     LockTracker
	detector cluster.Detector
	hyst     *cluster.Tracker

	t     float64
	frame int
}

// New validates cfg, lays oscillators out on the grid, and builds the
// engine. Invalid configuration is rejected here, never mid-run.
func New(cfg *config.Config) (*Engine, error) {
	return NewWithPositions(cfg, layout.Grid(cfg.N, cfg.Rows, cfg.Width))
}

// NewWithPositions builds an engine over externally supplied positions;
// len(pos) must equal cfg.N.
func NewWithPositions(cfg *config.Config, pos []layout.Point) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(pos) != cfg.N {
		return nil, fmt.Errorf("expected %d positions, got %d", cfg.N, len(pos))
	}

	paletteSize := len(cfg.Palette)
	if paletteSize == 0 {
		paletteSize = len(palette.Default())
	}

	src := rand.NewPCG(cfg.Seed, cfg.Seed)
	e := &Engine{
		cfg:     *cfg,
		pos:     pos,
		weights: buildWeights(pos, cfg.Lambda),
		omega:   make([]float64, cfg.N),
		start:   make([]float64, cfg.N),
		theta:   make([]float64, cfg.N),
		next:    make([]float64, cfg.N),
		gain:    make([]float64, cfg.N),
		ramp: Ramp{
			KStart:     cfg.KStart,
			KEnd:       cfg.KEnd,
			RampStart:  cfg.RampStart,
			LockTarget: cfg.LockTarget,
		},
		noise: distuv.Normal{Mu: 0, Sigma: 1, Src: src},
		lock:  LockTracker{RLock: cfg.RLock, Hold: cfg.LockHold},
		detector: cluster.Detector{
			Radius:       cfg.NeighborRadius,
			PhaseEps:     cfg.PhaseThreshold,
			CoherenceMin: cfg.CoherenceMin,
			MinSize:      cfg.MinClusterSize,
			PaletteSize:  paletteSize,
		},
		hyst: cluster.NewTracker(cfg.Hysteresis),
	}

	// Fixed draw order (frequencies, phases, start times) keeps runs
	// with equal seeds bit-identical.
	omegaDist := distuv.Normal{Mu: 2 * math.Pi * cfg.OmegaMeanHz, Sigma: cfg.OmegaSpread, Src: src}
	for i := range e.omega {
		e.omega[i] = omegaDist.Rand()
	}
	phaseDist := distuv.Uniform{Min: -math.Pi, Max: math.Pi, Src: src}
	for i := range e.theta {
		e.theta[i] = phaseDist.Rand()
	}
	if cfg.StartSpread > 0 {
		startDist := distuv.Uniform{Min: 0, Max: cfg.StartSpread, Src: src}
		for i := range e.start {
			e.start[i] = startDist.Rand()
		}
	}

	return e, nil
}

// step advances all phases by one Euler-Maruyama sub-step from the
// previous phase vector. Noise is drawn per oscillator in index order.
func (e *Engine) step(dt float64) {
	keff := e.ramp.At(e.t)
	e.gains(e.t, e.gain)
	sigma := e.cfg.NoiseStd * math.Sqrt(dt)

	for i := range e.theta {
		sum := 0.0
		if gi := e.gain[i]; gi > 0 && keff != 0 {
			row := e.weights.RawRowView(i)
			for j, w := range row {
				if w == 0 {
					continue
				}
				gj := e.gain[j]
				if gj == 0 {
					continue
				}
				sum += w * gi * gj * math.Sin(e.theta[j]-e.theta[i])
			}
		}
		eta := 0.0
		if sigma > 0 {
			eta = sigma * e.noise.Rand()
		}
		e.next[i] = WrapPhase(e.theta[i] + (e.omega[i]+keff*sum)*dt + eta)
	}

	e.theta, e.next = e.next, e.theta
	e.t += dt
}

// StepFrame advances one output frame: Substeps integrator sub-steps,
// then the lock state machine, then (if not locked) clustering and the
// hysteresis merge.
func (e *Engine) StepFrame() Frame {
	dt := e.cfg.StepDt()
	for s := 0; s < e.cfg.Substeps; s++ {
		e.step(dt)
	}
	frameDt := e.cfg.FrameDt()

	r := OrderParameter(e.theta)
	if e.lock.Update(r, frameDt) {
		e.hyst.Reset()
	}

	n := e.cfg.N
	active := make([]bool, n)
	for i := range active {
		active[i] = e.t >= e.start[i]
	}

	colors := make([]int, n)
	clusters := 0
	if e.lock.Locked() {
		// One locked group; no per-cluster output past this point.
		for i := range colors {
			colors[i] = 0
		}
		clusters = 1
	} else {
		found := e.detector.Detect(e.pos, e.theta, active)
		e.hyst.Update(cluster.Assignments(found), frameDt)
		e.hyst.Apply(colors)
		for _, c := range found {
			if c.Color != cluster.Neutral {
				clusters++
			}
		}
	}

	phases := make([]float64, n)
	copy(phases, e.theta)

	f := Frame{
		Index:    e.frame,
		Time:     e.t,
		Phases:   phases,
		Active:   active,
		Colors:   colors,
		Order:    r,
		Coupling: e.ramp.At(e.t),
		Clusters: clusters,
		Locked:   e.lock.Locked(),
	}
	e.frame++
	return f
}

// Run drives every frame of the configured duration, handing each
// snapshot to fn. Returning false from fn stops the run; cancellation
// is checked between frames.
func (e *Engine) Run(ctx context.Context, fn func(Frame) bool) error {
	total := e.cfg.TotalFrames()
	for i := e.frame; i < total; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !fn(e.StepFrame()) {
			return nil
		}
	}
	return nil
}

// Time is the current simulation clock.
func (e *Engine) Time() float64 { return e.t }

// Locked reports whether the run has fully locked.
func (e *Engine) Locked() bool { return e.lock.Locked() }

// Positions returns the immutable oscillator positions.
func (e *Engine) Positions() []layout.Point { return e.pos }

// Config returns the run configuration.
func (e *Engine) Config() config.Config { return e.cfg }
