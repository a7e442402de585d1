package world

import "math"

// Progression derives a score from elapsed active time and walks an ordered
// threshold list, one level per check.
type Progression struct {
	thresholds []int
	divisor    float64
	elapsed    float64
	score      int
	level      int
	next       int // Index of the next unmet threshold

	// OnLevelChanged fires once per transition.
	OnLevelChanged Signal[LevelChanged]
}

// NewProgression creates a progression at level 0. Thresholds must be
// ascending; divisor <= 0 falls back to one second per point.
func NewProgression(thresholds []int, divisor float64) *Progression {
	if divisor <= 0 {
		divisor = 1
	}
	ts := make([]int, len(thresholds))
	copy(ts, thresholds)
	return &Progression{thresholds: ts, divisor: divisor}
}

// Tick accumulates active time and recomputes the score.
func (p *Progression) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	p.elapsed += dt
	p.score = int(math.Floor(p.elapsed / p.divisor))
}

// CheckTransition advances at most one level when the score has reached the
// next unmet threshold. It reports the new level and whether it changed.
func (p *Progression) CheckTransition() (int, bool) {
	if p.Exhausted() || p.score < p.thresholds[p.next] {
		return p.level, false
	}
	p.next++
	p.level++
	p.OnLevelChanged.Emit(LevelChanged{Level: p.level, Score: p.score})
	return p.level, true
}

// Exhausted reports whether every threshold has been consumed.
func (p *Progression) Exhausted() bool {
	return p.next >= len(p.thresholds)
}

// Level returns the current level index.
func (p *Progression) Level() int { return p.level }

// Score returns the derived score.
func (p *Progression) Score() int { return p.score }

// Elapsed returns accumulated active time in seconds.
func (p *Progression) Elapsed() float64 { return p.elapsed }

// NextThreshold returns the next unmet threshold, or -1 when exhausted.
func (p *Progression) NextThreshold() int {
	if p.Exhausted() {
		return -1
	}
	return p.thresholds[p.next]
}
