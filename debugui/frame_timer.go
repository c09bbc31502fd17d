package debugui

import "time"

type FrameTimer struct {
	lastFrameTime time.Time
	last          time.Duration
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// Tick measures the time since the previous Tick.
func (ft *FrameTimer) Tick() time.Duration {
	now := time.Now()
	ft.last = now.Sub(ft.lastFrameTime)
	ft.lastFrameTime = now
	return ft.last
}

// Last returns the duration measured by the latest Tick.
func (ft *FrameTimer) Last() time.Duration {
	return ft.last
}
