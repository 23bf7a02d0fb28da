package engine

import "math"

// WrapPhase maps an angle into (-pi, pi].
func WrapPhase(theta float64) float64 {
	m := math.Mod(theta+math.Pi, 2*math.Pi)
	if m <= 0 {
		m += 2 * math.Pi
	}
	return m - math.Pi
}

// OrderParameter returns r = |mean e^{i*theta}|, the global circular
// coherence: 0 fully incoherent, 1 perfectly synchronized.
func OrderParameter(phases []float64) float64 {
	if len(phases) == 0 {
		return 0
	}
	re, im := 0.0, 0.0
	for _, th := range phases {
		s, c := math.Sincos(th)
		re += c
		im += s
	}
	n := float64(len(phases))
	return math.Hypot(re/n, im/n)
}

// LockTracker accumulates time spent above the coherence threshold and
// latches once the hold requirement is met. Locked is sticky for the
// run; only an explicit Reset by the caller unlatches it.
type LockTracker struct {
	RLock float64
	Hold  float64

	timer  float64
	locked bool
}

// Update feeds one frame's order parameter and duration. It returns
// true on the frame the tracker transitions to locked.
func (l *LockTracker) Update(r, frameDt float64) bool {
	if l.locked {
		return false
	}
	if r >= l.RLock {
		l.timer += frameDt
	} else {
		l.timer = 0
	}
	if l.timer >= l.Hold {
		l.locked = true
		return true
	}
	return false
}

func (l *LockTracker) Locked() bool { return l.locked }

// HoldTimer reports how long coherence has currently stayed above the
// threshold.
func (l *LockTracker) HoldTimer() float64 { return l.timer }

func (l *LockTracker) Reset() {
	l.timer = 0
	l.locked = false
}
