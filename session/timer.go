package session

import "time"

// FallTimer accumulates frame time and reports how many fall steps are due.
// It lets frame-driven hosts run the fall loop without a goroutine.
type FallTimer struct {
	interval time.Duration
	elapsed  time.Duration
}

// NewFallTimer creates a timer firing every interval.
func NewFallTimer(interval time.Duration) *FallTimer {
	return &FallTimer{interval: interval}
}

// Advance adds dt and returns the number of whole intervals that elapsed.
func (t *FallTimer) Advance(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}

	t.elapsed += dt
	due := int(t.elapsed / t.interval)
	t.elapsed -= time.Duration(due) * t.interval
	return due
}

// Reset discards accumulated time.
func (t *FallTimer) Reset() {
	t.elapsed = 0
}
