package input

import (
	"log"
	"sync"
)

// Direction is the sense of one encoder detent
type Direction int8

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "cw"
	case CounterClockwise:
		return "ccw"
	}
	return "none"
}

// Side is the paddle movement produced by a rotation
type Side uint8

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Encoder receives knob events from a hardware or keyboard frontend
type Encoder interface {
	Rotated(dir Direction)
	Clicked()
}

// SideOf maps a rotation to a paddle side, invert swaps them for a display mounted at 270 degrees
func SideOf(dir Direction, invert bool) Side {
	right := dir == Clockwise
	if invert {
		right = !right
	}
	if right {
		return Right
	}
	return Left
}

// RotaryFilter turns debounced detents into paddle moves
// A reversal needs two accepted detents before the paddle follows
type RotaryFilter struct {
	window *Window
	invert bool
	move   func(Side)

	mu      sync.Mutex
	counter int
}

// NewRotaryFilter creates a filter; a nil window disables debouncing
func NewRotaryFilter(window *Window, invert bool, move func(Side)) *RotaryFilter {
	if window == nil {
		window = NewWindow(nil, 0)
	}
	return &RotaryFilter{window: window, invert: invert, move: move}
}

// Rotate handles one detent and reports whether a move was emitted
func (f *RotaryFilter) Rotate(dir Direction) bool {
	if dir != Clockwise && dir != CounterClockwise {
		return false
	}
	if !f.window.Trigger() {
		return false
	}

	f.mu.Lock()
	emit := false
	switch dir {
	case Clockwise:
		f.counter++
		if f.counter > 0 {
			emit = true
			f.counter = 1
		}
	case CounterClockwise:
		f.counter--
		if f.counter < 0 {
			emit = true
			f.counter = -1
		}
	}
	f.mu.Unlock()

	if !emit || f.move == nil {
		return false
	}
	return f.dispatch(SideOf(dir, f.invert))
}

func (f *RotaryFilter) dispatch(side Side) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("input: move %s panicked: %v", side, r)
			ok = false
		}
	}()
	f.move(side)
	return true
}

// Counter returns the accumulated direction, for diagnostics
func (f *RotaryFilter) Counter() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counter
}

// Reset clears the direction counter and the debounce window
func (f *RotaryFilter) Reset() {
	f.mu.Lock()
	f.counter = 0
	f.mu.Unlock()
	f.window.Reset()
}
