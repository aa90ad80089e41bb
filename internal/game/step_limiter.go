package game

import "time"

// StepLimiter paces the fixed-step loop at a configured rate.
type StepLimiter struct {
	interval time.Duration
	next     time.Time
}

// NewStepLimiter creates a limiter for hz steps per second. A rate of
// zero or less disables pacing.
func NewStepLimiter(hz int) *StepLimiter {
	l := &StepLimiter{}
	if hz > 0 {
		l.interval = time.Second / time.Duration(hz)
	}
	return l
}

// Interval returns the step period, or zero when pacing is disabled.
func (l *StepLimiter) Interval() time.Duration {
	return l.interval
}

// Wait blocks until the next step is due. A hybrid sleep/spin keeps the
// timing tight without burning a core: sleep covers most of the wait,
// a short spin covers the scheduler's wakeup slack.
func (l *StepLimiter) Wait() {
	if l.interval <= 0 {
		return
	}

	if l.next.IsZero() {
		l.next = time.Now().Add(l.interval)
	} else {
		l.next = l.next.Add(l.interval)
	}

	for {
		remaining := time.Until(l.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		if time.Until(l.next) <= 0 {
			break
		}
	}

	// After a hitch longer than a full step, resync instead of
	// sprinting to catch up.
	if late := -time.Until(l.next); late > l.interval {
		l.next = time.Now().Add(l.interval)
	}
}
