package engine

import (
	"sort"
	"sync"
	"time"
)

// MockTimeProvider provides a controllable time source for testing
// Timers fire synchronously inside Advance/Sleep, on the caller's goroutine
type MockTimeProvider struct {
	mu          sync.Mutex
	currentTime time.Time
	timers      []*mockTimer
	slept       time.Duration
}

type mockTimer struct {
	owner    *MockTimeProvider
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

// Stop cancels the timer, returns false if it already fired or was stopped
func (t *mockTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

// AfterFunc registers fn to run once the mocked time passes now+d
func (m *MockTimeProvider) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &mockTimer{owner: m, deadline: m.currentTime.Add(d), fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Sleep advances mocked time instead of blocking
func (m *MockTimeProvider) Sleep(d time.Duration) {
	m.mu.Lock()
	m.slept += d
	m.mu.Unlock()
	m.Advance(d)
}

// Slept returns the total duration passed to Sleep
func (m *MockTimeProvider) Slept() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slept
}

// Advance moves time forward and fires due timers in deadline order
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.currentTime = m.currentTime.Add(d)
	now := m.currentTime

	var due []*mockTimer
	pending := m.timers[:0]
	for _, t := range m.timers {
		switch {
		case t.stopped:
		case !t.deadline.After(now):
			t.fired = true
			due = append(due, t)
		default:
			pending = append(pending, t)
		}
	}
	m.timers = pending
	m.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
	for _, t := range due {
		t.fn()
	}
}

// PendingTimers returns the number of armed timers
func (m *MockTimeProvider) PendingTimers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}
