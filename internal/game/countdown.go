package game

import "time"

// TimeLimit is the time allowed to reduce one number to 1.
const TimeLimit = 15 * time.Second

// Countdown measures elapsed time since the current round started.
type Countdown struct {
	limit     time.Duration
	startedAt time.Time
}

// NewCountdown returns a countdown started at now.
func NewCountdown(limit time.Duration, now time.Time) Countdown {
	return Countdown{limit: limit, startedAt: now}
}

// Reset restarts the countdown at now.
func (c *Countdown) Reset(now time.Time) {
	c.startedAt = now
}

// Limit returns the configured duration.
func (c Countdown) Limit() time.Duration {
	return c.limit
}

// Elapsed returns time since the round started.
func (c Countdown) Elapsed(now time.Time) time.Duration {
	return now.Sub(c.startedAt)
}

// Remaining returns the time left, never negative.
func (c Countdown) Remaining(now time.Time) time.Duration {
	left := c.limit - c.Elapsed(now)
	if left < 0 {
		return 0
	}
	return left
}

// Fraction returns the remaining share of the limit in [0, 1].
func (c Countdown) Fraction(now time.Time) float64 {
	if c.limit <= 0 {
		return 0
	}
	f := float64(c.Remaining(now)) / float64(c.limit)
	if f > 1 {
		return 1
	}
	return f
}

// Expired reports whether elapsed time exceeds the limit.
func (c Countdown) Expired(now time.Time) bool {
	return c.Elapsed(now) > c.limit
}
