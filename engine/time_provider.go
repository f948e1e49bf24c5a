package engine

import "time"

// Timer is the cancellable handle returned by Clock.AfterFunc, *time.Timer satisfies it
type Timer interface {
	Stop() bool
}

// Clock abstracts wall time for debounce windows and animation delays
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
	Sleep(d time.Duration)
}

// TimeProvider is the real system clock with monotonic readings
type TimeProvider struct{}

// NewTimeProvider creates a new monotonic time provider
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *TimeProvider) Now() time.Time {
	return time.Now()
}

// AfterFunc runs fn on its own goroutine after d
func (p *TimeProvider) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Sleep blocks the calling goroutine for d
func (p *TimeProvider) Sleep(d time.Duration) {
	time.Sleep(d)
}
