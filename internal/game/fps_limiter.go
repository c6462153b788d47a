package game

import (
	"time"

	"slicecraft/internal/config"
)

// spinWindow is how close to the deadline the limiter stops sleeping and spins
const spinWindow = 200 * time.Microsecond

// FPSLimiter paces the frame loop to config.GetFPSLimit frames per second
type FPSLimiter struct {
	next time.Time
	last time.Time
}

func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{}
}

// Wait blocks until the next frame is due and returns the time since the previous
// call, which the caller feeds to Session.Tick as dt.
// Uses a hybrid sleep/spin approach for better precision on high FPS caps.
func (f *FPSLimiter) Wait() time.Duration {
	if limit := config.GetFPSLimit(); limit > 0 {
		f.pace(time.Second / time.Duration(limit))
	} else {
		f.next = time.Time{}
	}

	now := time.Now()
	var dt time.Duration
	if !f.last.IsZero() {
		dt = now.Sub(f.last)
	}
	f.last = now
	return dt
}

func (f *FPSLimiter) pace(target time.Duration) {
	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
	}

	// Resync after a hitch instead of running a burst of catch-up frames
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
