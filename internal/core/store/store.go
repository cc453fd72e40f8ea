// Package store provides a small observable state container.
//
// A Store is owned by whoever composes the application and handed to the
// components that read or change the state. Listeners run synchronously, in
// subscription order, on the goroutine that changed the state. Changes are
// delivered one at a time in the order they were applied, so a listener's
// last value always matches Get. A listener must not change the store that
// called it.
package store

import "sync"

// Store holds a value of type T and notifies subscribers when it changes.
type Store[T any] struct {
	// changeMu is held across a change and its notifications.
	changeMu sync.Mutex

	mu        sync.RWMutex
	state     T
	nextID    int
	listeners []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// New creates a store holding initial.
func New[T any](initial T) *Store[T] {
	return &Store[T]{state: initial}
}

// Get returns the current state.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set replaces the state and notifies subscribers.
func (s *Store[T]) Set(state T) {
	s.changeMu.Lock()
	defer s.changeMu.Unlock()

	s.mu.Lock()
	s.state = state
	listeners := s.snapshot()
	s.mu.Unlock()

	notify(listeners, state)
}

// Update applies fn to the current state atomically and notifies subscribers
// with the result.
func (s *Store[T]) Update(fn func(T) T) T {
	s.changeMu.Lock()
	defer s.changeMu.Unlock()

	s.mu.Lock()
	s.state = fn(s.state)
	state := s.state
	listeners := s.snapshot()
	s.mu.Unlock()

	notify(listeners, state)
	return state
}

// Subscribe registers fn for future changes and returns a function that
// removes it. The returned function is safe to call more than once.
func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of active subscribers.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners)
}

// snapshot copies the listener list (caller must hold lock).
func (s *Store[T]) snapshot() []listener[T] {
	out := make([]listener[T], len(s.listeners))
	copy(out, s.listeners)
	return out
}

func notify[T any](listeners []listener[T], state T) {
	for _, l := range listeners {
		l.fn(state)
	}
}
