package engine

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidTransition is returned when a transition is not declared or the source state does not match
var ErrInvalidTransition = errors.New("invalid state transition")

// Machine is a flat finite state machine with declared transitions and enter actions
// Actions and listeners run synchronously on the transitioning goroutine after the state is committed,
// so they may query Current() and trigger further transitions
type Machine[S comparable] struct {
	mu        sync.Mutex
	current   S
	allowed   map[S]map[S]bool
	onEnter   map[S][]func(from S)
	listeners []func(from, to S)
}

// NewMachine creates a machine resting in initial
func NewMachine[S comparable](initial S) *Machine[S] {
	return &Machine[S]{
		current: initial,
		allowed: make(map[S]map[S]bool),
		onEnter: make(map[S][]func(from S)),
	}
}

// Allow declares transitions from one state to each target, must be called before use
func (m *Machine[S]) Allow(from S, to ...S) *Machine[S] {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.allowed[from]
	if !ok {
		set = make(map[S]bool)
		m.allowed[from] = set
	}
	for _, s := range to {
		set[s] = true
	}
	return m
}

// OnEnter registers an action run whenever state is entered
func (m *Machine[S]) OnEnter(state S, fn func(from S)) {
	m.mu.Lock()
	m.onEnter[state] = append(m.onEnter[state], fn)
	m.mu.Unlock()
}

// OnTransition registers a listener for every committed transition
func (m *Machine[S]) OnTransition(fn func(from, to S)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// Current returns the active state
func (m *Machine[S]) Current() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Is reports whether the machine is in state
func (m *Machine[S]) Is(state S) bool {
	return m.Current() == state
}

// CanTransition reports whether from -> to is declared
func (m *Machine[S]) CanTransition(from, to S) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allowed[from][to]
}

// Transition moves to target from whatever the current state is
func (m *Machine[S]) Transition(to S) error {
	m.mu.Lock()
	from := m.current
	return m.commit(from, to)
}

// TransitionFrom moves to target only if the machine is currently in from
// Concurrent callers racing on the same source state see exactly one winner
func (m *Machine[S]) TransitionFrom(from, to S) error {
	m.mu.Lock()
	if m.current != from {
		cur := m.current
		m.mu.Unlock()
		return fmt.Errorf("%w: expected %v, in %v", ErrInvalidTransition, from, cur)
	}
	return m.commit(from, to)
}

// commit is entered with mu held and releases it before running actions
func (m *Machine[S]) commit(from, to S) error {
	if !m.allowed[from][to] {
		m.mu.Unlock()
		return fmt.Errorf("%w: %v -> %v", ErrInvalidTransition, from, to)
	}

	m.current = to
	actions := append([]func(S){}, m.onEnter[to]...)
	listeners := append([]func(S, S){}, m.listeners...)
	m.mu.Unlock()

	for _, fn := range actions {
		fn(from)
	}
	for _, fn := range listeners {
		fn(from, to)
	}
	return nil
}
