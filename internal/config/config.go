package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultN           = 90
	DefaultRows        = 3
	DefaultDuration    = 30.0
	DefaultFPS         = 30
	DefaultSubsteps    = 4
	DefaultOmegaMeanHz = 1.1
	DefaultOmegaSpread = 0.10
	DefaultSeed        = 7
	DefaultStartSpread = 10.0
	DefaultFadeIn      = 2.5
	DefaultLambda      = 160.0
	DefaultKStart      = 0.18
	DefaultKEnd        = 1.60
	DefaultRampStart   = 5.0
	DefaultLockTarget  = 25.0
	DefaultNoiseStd    = 0.02
)

// Config enumerates every tunable parameter of a run: population and
// layout, integration, natural frequencies, staggered starts, spatial
// coupling, the K ramp, clustering, hysteresis, and the lock detector.
type Config struct {
	N    int `yaml:"n"`
	Rows int `yaml:"rows"`

	Duration float64 `yaml:"duration"`
	FPS      int     `yaml:"fps"`
	Substeps int     `yaml:"substeps"`

	OmegaMeanHz float64 `yaml:"omega_mean_hz"`
	OmegaSpread float64 `yaml:"omega_spread"`
	Seed        uint64  `yaml:"seed"`

	StartSpread float64 `yaml:"start_spread"`
	FadeIn      float64 `yaml:"fadein"`

	Lambda     float64 `yaml:"lambda"`
	KStart     float64 `yaml:"k_start"`
	KEnd       float64 `yaml:"k_end"`
	RampStart  float64 `yaml:"ramp_start"`
	LockTarget float64 `yaml:"lock_target"`
	NoiseStd   float64 `yaml:"noise_std"`

	NeighborRadius float64 `yaml:"neighbor_radius"`
	PhaseThreshold float64 `yaml:"phase_threshold"`
	CoherenceMin   float64 `yaml:"coherence_min"`
	MinClusterSize int     `yaml:"min_cluster_size"`
	Hysteresis     float64 `yaml:"hysteresis"`

	RLock    float64 `yaml:"r_lock"`
	LockHold float64 `yaml:"lock_hold"`

	// Palette holds hex colors cycled through qualified clusters.
	// Empty means the built-in pastel palette.
	Palette []string `yaml:"palette"`

	// Layout bounds in pixels; positions are computed once per run.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func Default() *Config {
	return &Config{
		N:              DefaultN,
		Rows:           DefaultRows,
		Duration:       DefaultDuration,
		FPS:            DefaultFPS,
		Substeps:       DefaultSubsteps,
		OmegaMeanHz:    DefaultOmegaMeanHz,
		OmegaSpread:    DefaultOmegaSpread,
		Seed:           DefaultSeed,
		StartSpread:    DefaultStartSpread,
		FadeIn:         DefaultFadeIn,
		Lambda:         DefaultLambda,
		KStart:         DefaultKStart,
		KEnd:           DefaultKEnd,
		RampStart:      DefaultRampStart,
		LockTarget:     DefaultLockTarget,
		NoiseStd:       DefaultNoiseStd,
		NeighborRadius: 170.0,
		PhaseThreshold: 0.35,
		CoherenceMin:   0.93,
		MinClusterSize: 4,
		Hysteresis:     0.8,
		RLock:          0.975,
		LockHold:       1.5,
		Width:          1280,
		Height:         720,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects degenerate configuration before a run starts; the
// engine is failure-free for anything that passes here.
func (c *Config) Validate() error {
	if c.N <= 0 {
		return fmt.Errorf("n must be positive, got %d", c.N)
	}
	if c.Rows <= 0 {
		return fmt.Errorf("rows must be positive, got %d", c.Rows)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.FPS < 1 {
		return fmt.Errorf("fps must be at least 1, got %d", c.FPS)
	}
	if c.Substeps < 1 {
		return fmt.Errorf("substeps must be at least 1, got %d", c.Substeps)
	}
	if c.Lambda <= 0 {
		return fmt.Errorf("lambda must be positive, got %f", c.Lambda)
	}
	if c.FadeIn <= 0 {
		return fmt.Errorf("fadein must be positive, got %f", c.FadeIn)
	}
	if c.StartSpread < 0 {
		return fmt.Errorf("start_spread must be non-negative, got %f", c.StartSpread)
	}
	if c.NoiseStd < 0 {
		return fmt.Errorf("noise_std must be non-negative, got %f", c.NoiseStd)
	}
	if c.NeighborRadius < 0 {
		return fmt.Errorf("neighbor_radius must be non-negative, got %f", c.NeighborRadius)
	}
	if c.MinClusterSize < 1 {
		return fmt.Errorf("min_cluster_size must be at least 1, got %d", c.MinClusterSize)
	}
	if c.RLock <= 0 || c.RLock > 1 {
		return fmt.Errorf("r_lock must be in (0, 1], got %f", c.RLock)
	}
	if c.CoherenceMin < 0 || c.CoherenceMin > 1 {
		return fmt.Errorf("coherence_min must be in [0, 1], got %f", c.CoherenceMin)
	}
	if c.Hysteresis < 0 {
		return fmt.Errorf("hysteresis must be non-negative, got %f", c.Hysteresis)
	}
	if c.LockHold < 0 {
		return fmt.Errorf("lock_hold must be non-negative, got %f", c.LockHold)
	}
	return nil
}

// FrameDt is the simulated time covered by one output frame.
func (c *Config) FrameDt() float64 { return 1.0 / float64(c.FPS) }

// StepDt is the integrator sub-step, FrameDt split across Substeps.
func (c *Config) StepDt() float64 { return 1.0 / float64(c.FPS*c.Substeps) }

// TotalFrames is the number of output frames in the run.
func (c *Config) TotalFrames() int { return int(c.Duration * float64(c.FPS)) }
