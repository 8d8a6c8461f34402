package view

import (
	"sync/atomic"

	"github.com/specialistvlad/modelgrid/internal/modelerr"
)

// State tracks whether one view instance may still be mutated.
type State struct {
	desc     string
	rule     string
	writable bool
	closed   atomic.Bool
}

// NewState creates the state of a view described by desc and handed to the
// rule with descriptor rule. A view created read-only is closed from the
// start.
func NewState(desc, rule string, writable bool) *State {
	s := &State{desc: desc, rule: rule, writable: writable}
	if !writable {
		s.closed.Store(true)
	}
	return s
}

// IsWritable reports whether mutations are currently accepted.
func (s *State) IsWritable() bool {
	return !s.closed.Load()
}

// IsClosed reports whether the view was closed.
func (s *State) IsClosed() bool {
	return s.closed.Load()
}

// AssertWritable returns a *modelerr.InvalidStateError once the view no
// longer accepts mutations.
func (s *State) AssertWritable() error {
	if !s.closed.Load() {
		return nil
	}
	reason := "view is closed"
	if !s.writable {
		reason = "view is read-only"
	}
	if s.rule != "" {
		reason += " (given to rule " + s.rule + ")"
	}
	return &modelerr.InvalidStateError{View: s.desc, Reason: reason}
}

// Close makes the view permanently read-only. Closing twice is a no-op.
func (s *State) Close() {
	s.closed.Store(true)
}

// Closer returns Close as a func, to be handed to whoever owns the view's
// lifetime.
func (s *State) Closer() func() {
	return s.Close
}
