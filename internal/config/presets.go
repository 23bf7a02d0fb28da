package config

// Presets are named parameter bundles matching the published variants of
// the visualization; "classic" is the 30 s video locking near t=25 s.
var Presets = map[string]*Config{
	"classic": Default(),
	"pastel": {
		N: 90, Rows: 3, Duration: 46.0, FPS: 30, Substeps: 4,
		OmegaMeanHz: 1.1, OmegaSpread: 0.10, Seed: 7,
		StartSpread: 12.0, FadeIn: 2.5,
		Lambda: 160.0, KStart: 0.18, KEnd: 1.80, RampStart: 8.0, LockTarget: 40.0,
		NoiseStd:       0.02,
		NeighborRadius: 170.0, PhaseThreshold: 0.35, CoherenceMin: 0.93,
		MinClusterSize: 4, Hysteresis: 0.8,
		RLock: 0.975, LockHold: 1.5,
		Width: 1280, Height: 720,
	},
	"small": {
		N: 24, Rows: 2, Duration: 15.0, FPS: 30, Substeps: 4,
		OmegaMeanHz: 1.1, OmegaSpread: 0.08, Seed: 7,
		StartSpread: 3.0, FadeIn: 1.0,
		Lambda: 220.0, KStart: 0.25, KEnd: 2.0, RampStart: 2.0, LockTarget: 10.0,
		NoiseStd:       0.015,
		NeighborRadius: 220.0, PhaseThreshold: 0.40, CoherenceMin: 0.90,
		MinClusterSize: 3, Hysteresis: 0.6,
		RLock: 0.97, LockHold: 1.0,
		Width: 1280, Height: 720,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
