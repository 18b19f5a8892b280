package component

import "github.com/milk9111/combatant/behavior"

// Brain is the state-driven behaviour attached to an actor.
type Brain struct {
	Agent behavior.Agent
}

var BrainComponent = NewComponent[Brain]()
