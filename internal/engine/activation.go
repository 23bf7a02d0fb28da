package engine

// activationGain returns the [0,1] participation gain of an oscillator
// that starts at start and fades in over fadeIn seconds. Coupling uses
// the pairwise product of gains, so a link is inert until both ends
// have started.
func activationGain(t, start, fadeIn float64) float64 {
	if t < start {
		return 0
	}
	g := (t - start) / fadeIn
	if g > 1 {
		return 1
	}
	if g < 0 {
		return 0
	}
	return g
}

// gains fills dst with the activation gain of every oscillator at time t.
func (e *Engine) gains(t float64, dst []float64) {
	for i := range dst {
		dst[i] = activationGain(t, e.start[i], e.cfg.FadeIn)
	}
}
