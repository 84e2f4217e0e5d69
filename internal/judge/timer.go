package judge

import "time"

// DefaultHoldPeriod is how often a held Long note repeats its feedback.
const DefaultHoldPeriod = 250 * time.Millisecond

// HoldTimer is the periodic per-lane timer that runs while a Long note is
// held. It only drives feedback; it never decides a judgement.
type HoldTimer struct {
	Period  time.Duration
	elapsed time.Duration
}

func (t *HoldTimer) Reset() {
	t.elapsed = 0
}

// Advance moves the timer forward and returns how many periods completed.
func (t *HoldTimer) Advance(dt time.Duration) int {
	if t.Period <= 0 {
		return 0
	}
	t.elapsed += dt
	n := int(t.elapsed / t.Period)
	t.elapsed %= t.Period
	return n
}

func (t *HoldTimer) Elapsed() time.Duration {
	return t.elapsed
}
