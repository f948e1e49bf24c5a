package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/solo-pong/core"
)

// Ticker invokes a callback at a fixed cadence on a dedicated loop goroutine
// Each tick is dispatched on its own goroutine so a slow callback never delays the cadence,
// callbacks are expected to coalesce overlapping invocations themselves
type Ticker struct {
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	stop    chan struct{}
	running atomic.Bool
	wg      sync.WaitGroup

	ticks atomic.Uint64
}

// NewTicker creates a stopped ticker
func NewTicker(interval time.Duration, fn func()) *Ticker {
	return &Ticker{
		interval: interval,
		fn:       fn,
	}
}

// Start arms the ticker, no-op if already running
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running.CompareAndSwap(false, true) {
		return
	}

	stop := make(chan struct{})
	t.stop = stop
	t.wg.Add(1)
	core.Go(func() {
		defer t.wg.Done()
		t.loop(stop)
	})
}

// Stop disarms future ticks without waiting for an executing callback
// Idempotent and safe to call from inside the callback itself
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running.CompareAndSwap(true, false) {
		return
	}
	close(t.stop)
}

// Running reports whether ticks are armed
func (t *Ticker) Running() bool {
	return t.running.Load()
}

// Ticks returns the number of dispatched ticks
func (t *Ticker) Ticks() uint64 {
	return t.ticks.Load()
}

// Wait blocks until stopped loop goroutines and every dispatched callback have returned,
// must not be called from the callback
func (t *Ticker) Wait() {
	t.wg.Wait()
}

func (t *Ticker) loop(stop <-chan struct{}) {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-stop:
			return
		case <-tk.C:
			// Stop may race with a ready tick, stop wins
			select {
			case <-stop:
				return
			default:
			}
			t.ticks.Add(1)
			t.wg.Add(1)
			core.Go(func() {
				defer t.wg.Done()
				t.fn()
			})
		}
	}
}
