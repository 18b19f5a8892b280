// Package fsm is the frame-driven state machine shared by every actor.
package fsm

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// State is one behaviour of an actor. A state belongs to exactly one Machine.
type State interface {
	Enter()
	Tick(dt float64)
	Exit()
}

// Named states report a readable name for logs and debug overlays.
type Named interface {
	Name() string
}

// NameOf returns the state's name, or its type when it has none.
func NameOf(s State) string {
	if s == nil {
		return "none"
	}
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}

// Machine holds the active state.
//
// Exit of the outgoing state always completes before Enter of the incoming
// one. A ChangeState issued from inside Tick, Enter or Exit is deferred until
// that call returns, so a state never sees Tick after its own Exit.
type Machine struct {
	owner   string
	current State

	pending    State
	hasPending bool
	busy       bool

	transitions int
}

func New(owner string) *Machine {
	return &Machine{owner: owner}
}

// Current is nil until the first ChangeState.
func (m *Machine) Current() State {
	if m == nil {
		return nil
	}
	return m.current
}

// Transitions counts completed state changes.
func (m *Machine) Transitions() int {
	if m == nil {
		return 0
	}
	return m.transitions
}

// ChangeState exits the current state and enters next. Passing nil stops the
// machine.
func (m *Machine) ChangeState(next State) {
	if m == nil {
		return
	}
	m.pending = next
	m.hasPending = true
	if m.busy {
		return
	}
	m.flush()
}

// Tick forwards one simulation step to the active state.
func (m *Machine) Tick(dt float64) {
	if m == nil || m.current == nil || m.busy {
		return
	}
	m.busy = true
	m.current.Tick(dt)
	m.busy = false
	m.flush()
}

func (m *Machine) flush() {
	m.busy = true
	defer func() { m.busy = false }()

	for m.hasPending {
		next := m.pending
		m.pending = nil
		m.hasPending = false

		prev := m.current
		if prev != nil {
			prev.Exit()
		}
		m.current = next
		m.transitions++
		log.Debug().
			Str("owner", m.owner).
			Str("from", NameOf(prev)).
			Str("to", NameOf(next)).
			Msg("fsm: state changed")
		if next != nil {
			next.Enter()
		}
	}
}
