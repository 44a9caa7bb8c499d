package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/dicegraph/internal/common/clock Clock

// Clock supplies timestamps for saved roll sets and simulation timings
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// New returns the system clock
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current time
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t
func (c *DefaultClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}
