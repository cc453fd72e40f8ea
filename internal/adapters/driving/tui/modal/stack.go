// Package modal holds the overlay stack drawn above the search view.
package modal

import (
	"slices"

	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/store"
)

// Kind identifies what a modal shows.
type Kind int

const (
	// KindDetail shows one result in full.
	KindDetail Kind = iota
	// KindStrategy lets the user pick a ranking strategy.
	KindStrategy
	// KindHelp lists keybindings.
	KindHelp
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindDetail:
		return "detail"
	case KindStrategy:
		return "strategy"
	case KindHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Modal is one overlay. Modals are values; change one with Stack.ReplaceTop.
type Modal struct {
	Kind  Kind
	Title string

	// Result is the subject of a detail modal.
	Result *domain.SearchResult

	// Cursor is the highlighted row of a picker.
	Cursor int
}

// Stack is a LIFO of modals kept in an observable store.
// Each change publishes a fresh slice, so snapshots handed to
// subscribers are never modified afterwards.
type Stack struct {
	state *store.Store[[]Modal]
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{state: store.New[[]Modal](nil)}
}

// Push adds m on top.
func (s *Stack) Push(m Modal) {
	s.state.Update(func(ms []Modal) []Modal {
		return append(slices.Clip(ms), m)
	})
}

// Pop removes and returns the top modal. Popping an empty stack does
// nothing and returns false.
func (s *Stack) Pop() (Modal, bool) {
	if s.Len() == 0 {
		return Modal{}, false
	}

	var top Modal
	var ok bool
	s.state.Update(func(ms []Modal) []Modal {
		if len(ms) == 0 {
			return ms
		}
		top, ok = ms[len(ms)-1], true
		return slices.Clip(ms[:len(ms)-1])
	})
	return top, ok
}

// Top returns the top modal without removing it.
func (s *Stack) Top() (Modal, bool) {
	ms := s.state.Get()
	if len(ms) == 0 {
		return Modal{}, false
	}
	return ms[len(ms)-1], true
}

// ReplaceTop swaps the top modal for m. It does nothing on an empty stack.
func (s *Stack) ReplaceTop(m Modal) {
	if s.Len() == 0 {
		return
	}
	s.state.Update(func(ms []Modal) []Modal {
		if len(ms) == 0 {
			return ms
		}
		out := slices.Clone(ms)
		out[len(out)-1] = m
		return out
	})
}

// Clear removes every modal.
func (s *Stack) Clear() {
	if s.Len() == 0 {
		return
	}
	s.state.Set(nil)
}

// Len returns the number of open modals.
func (s *Stack) Len() int {
	return len(s.state.Get())
}

// Subscribe registers fn for every change to the stack.
func (s *Stack) Subscribe(fn func([]Modal)) (unsubscribe func()) {
	return s.state.Subscribe(fn)
}
