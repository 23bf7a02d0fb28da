package cluster

// entry is one oscillator's persisted color and remaining lifetime.
type entry struct {
	color int
	ttl   float64
}

// Tracker absorbs frame-to-frame cluster churn: an oscillator keeps its
// last cluster color for TTL seconds after losing membership, then goes
// neutral. Fresh membership refreshes the full TTL.
type Tracker struct {
	ttl     float64
	entries map[int]entry
}

func NewTracker(ttl float64) *Tracker {
	return &Tracker{
		ttl:     ttl,
		entries: make(map[int]entry),
	}
}

// Update merges this frame's fresh color assignments with the decaying
// prior state. frameDt is the simulated time since the last update.
func (t *Tracker) Update(fresh map[int]int, frameDt float64) {
	for i, e := range t.entries {
		if _, ok := fresh[i]; ok {
			continue
		}
		e.ttl -= frameDt
		if e.ttl <= 0 {
			delete(t.entries, i)
			continue
		}
		t.entries[i] = e
	}
	for i, color := range fresh {
		t.entries[i] = entry{color: color, ttl: t.ttl}
	}
}

// Color returns the persisted color for oscillator i, or Neutral.
func (t *Tracker) Color(i int) int {
	e, ok := t.entries[i]
	if !ok {
		return Neutral
	}
	return e.color
}

// Apply fills colors with each oscillator's persisted color or Neutral.
func (t *Tracker) Apply(colors []int) {
	for i := range colors {
		colors[i] = t.Color(i)
	}
}

// Len reports how many oscillators currently hold a color.
func (t *Tracker) Len() int { return len(t.entries) }

// Reset drops all persisted state; called when the run fully locks.
func (t *Tracker) Reset() {
	clear(t.entries)
}
