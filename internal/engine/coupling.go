package engine

// Ramp maps elapsed time to the effective coupling strength K_eff(t):
// flat at KStart until RampStart, smoothstep-eased up to KEnd at
// LockTarget, clamped at KEnd beyond. Pure; safe to share.
type Ramp struct {
	KStart     float64
	KEnd       float64
	RampStart  float64
	LockTarget float64
}

// rampEpsilon guards a zero-length ramp window; the ramp then collapses
// to an instantaneous jump to KEnd.
const rampEpsilon = 1e-9

func (r Ramp) At(t float64) float64 {
	if t <= r.RampStart {
		return r.KStart
	}
	window := r.LockTarget - r.RampStart
	if window < rampEpsilon {
		window = rampEpsilon
	}
	z := (t - r.RampStart) / window
	return r.KStart + smoothstep(z)*(r.KEnd-r.KStart)
}

func smoothstep(z float64) float64 {
	if z < 0 {
		z = 0
	} else if z > 1 {
		z = 1
	}
	return z * z * (3 - 2*z)
}
