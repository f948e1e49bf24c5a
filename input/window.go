package input

import (
	"sync"
	"time"

	"github.com/lixenwraith/solo-pong/engine"
)

// Window is a one-shot debounce window
// The first trigger is accepted and opens the window, later triggers are dropped until it expires
type Window struct {
	clock  engine.Clock
	length time.Duration

	mu    sync.Mutex
	open  bool
	gen   uint64
	timer engine.Timer
}

// NewWindow creates a window of the given length, zero disables debouncing
func NewWindow(clock engine.Clock, length time.Duration) *Window {
	if clock == nil {
		clock = engine.NewTimeProvider()
	}
	return &Window{clock: clock, length: length}
}

// Trigger reports whether the event is accepted
func (w *Window) Trigger() bool {
	if w.length <= 0 {
		return true
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.open {
		return false
	}
	w.open = true
	w.gen++
	gen := w.gen
	w.timer = w.clock.AfterFunc(w.length, func() { w.expire(gen) })
	return true
}

// expire closes the window opened as generation gen; a timer that fired late for an older window is ignored
func (w *Window) expire(gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		return
	}
	w.open = false
	w.timer = nil
}

// Open reports whether triggers are currently being dropped
func (w *Window) Open() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

// Reset closes the window early
func (w *Window) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.gen++
	w.open = false
}
