package engine

import (
	"testing"
	"time"
)

func TestTimeProviderAfterFunc(t *testing.T) {
	provider := NewTimeProvider()

	fired := make(chan struct{})
	provider.AfterFunc(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("AfterFunc did not fire")
	}
}

func TestMockTimeProvider(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(startTime)

	if !mock.Now().Equal(startTime) {
		t.Errorf("Expected initial time to be %v, got %v", startTime, mock.Now())
	}

	mock.Advance(30 * time.Minute)
	mock.Advance(15 * time.Minute)
	expected := startTime.Add(45 * time.Minute)
	if !mock.Now().Equal(expected) {
		t.Errorf("Expected time to be %v after advances, got %v", expected, mock.Now())
	}
}

// TestMockTimerOrdering verifies timers fire in deadline order and only once
func TestMockTimerOrdering(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(0, 0))

	var order []int
	mock.AfterFunc(30*time.Millisecond, func() { order = append(order, 3) })
	mock.AfterFunc(10*time.Millisecond, func() { order = append(order, 1) })
	mock.AfterFunc(20*time.Millisecond, func() { order = append(order, 2) })

	mock.Advance(5 * time.Millisecond)
	if len(order) != 0 {
		t.Fatalf("Expected no timers before deadline, got %v", order)
	}

	mock.Advance(50 * time.Millisecond)
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("Expected [1 2 3], got %v", order)
	}

	mock.Advance(time.Second)
	if len(order) != 3 {
		t.Errorf("Expected timers to fire once, got %v", order)
	}
}

// TestMockTimerStop verifies stopped timers never fire
func TestMockTimerStop(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(0, 0))

	fired := false
	timer := mock.AfterFunc(10*time.Millisecond, func() { fired = true })
	if mock.PendingTimers() != 1 {
		t.Fatalf("Expected 1 pending timer, got %d", mock.PendingTimers())
	}
	if !timer.Stop() {
		t.Error("Expected Stop to report cancellation")
	}
	if timer.Stop() {
		t.Error("Expected second Stop to return false")
	}

	mock.Advance(time.Second)
	if fired {
		t.Error("Stopped timer fired")
	}
}

// TestMockSleepAdvances verifies Sleep advances time and fires timers without blocking
func TestMockSleepAdvances(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(0, 0))

	fired := false
	mock.AfterFunc(100*time.Millisecond, func() { fired = true })
	mock.Sleep(100 * time.Millisecond)

	if !fired {
		t.Error("Expected timer to fire during Sleep")
	}
	if mock.Slept() != 100*time.Millisecond {
		t.Errorf("Expected 100ms slept, got %v", mock.Slept())
	}
}
