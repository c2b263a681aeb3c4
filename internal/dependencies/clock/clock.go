package clock

import "time"

// Clock provides the current time. Services take a Clock so timestamps and
// token expiry can be controlled in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system clock
type SystemClock struct{}

// New creates a new SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time in UTC, truncated to milliseconds so stored
// timestamps compare equal across every storage backend
func (c *SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
