package input

import (
	"errors"
	"strings"

	"github.com/milk9111/combatant/common"
)

var ErrUnknownSignal = errors.New("input: unknown signal")

// Phase is the lifecycle stage of a raw device action.
type Phase int

const (
	PhaseBegin Phase = iota + 1
	PhasePerformed
	PhaseCanceled
)

func (p Phase) String() string {
	switch p {
	case PhaseBegin:
		return "begin"
	case PhasePerformed:
		return "performed"
	case PhaseCanceled:
		return "canceled"
	default:
		return "none"
	}
}

// Signal names a gameplay action.
type Signal string

const (
	SignalMove   Signal = "move"
	SignalJump   Signal = "jump"
	SignalDodge  Signal = "dodge"
	SignalLook   Signal = "look"
	SignalTarget Signal = "target"
	SignalCancel Signal = "cancel"
	SignalAttack Signal = "attack"
	SignalBlock  Signal = "block"
)

// Signals lists every signal the router understands.
var Signals = []Signal{
	SignalMove,
	SignalJump,
	SignalDodge,
	SignalLook,
	SignalTarget,
	SignalCancel,
	SignalAttack,
	SignalBlock,
}

// Discrete reports whether s is an edge-triggered event.
func (s Signal) Discrete() bool {
	switch s {
	case SignalJump, SignalDodge, SignalLook, SignalTarget, SignalCancel:
		return true
	}
	return false
}

// Held reports whether s is a level-triggered flag.
func (s Signal) Held() bool {
	return s == SignalAttack || s == SignalBlock
}

func ParseSignal(name string) (Signal, error) {
	s := Signal(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Signals {
		if s == known {
			return s, nil
		}
	}
	return "", ErrUnknownSignal
}

// RawEvent is a single device callback. Value is only read for SignalMove.
type RawEvent struct {
	Signal Signal
	Phase  Phase
	Value  common.Vec2
}
