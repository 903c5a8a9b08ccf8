package clock

import "time"

// Clock supplies the current time. Services take a Clock instead of calling
// time.Now directly so tests can run against a frozen time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	frozen time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{frozen: t}
}

func (c *FixedClock) Now() time.Time {
	return c.frozen
}

// Set moves the frozen instant, for tests that advance time.
func (c *FixedClock) Set(t time.Time) {
	c.frozen = t
}
