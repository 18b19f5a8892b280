package component

import (
	"github.com/milk9111/combatant/physics"
	"github.com/milk9111/combatant/ragdoll"
)

// Ragdoll holds an actor's ragdoll controller and the physics parts it was
// built from, in the order they were declared.
type Ragdoll struct {
	Controller *ragdoll.Controller
	Parts      []*physics.Part
	Root       *physics.Part
}

var RagdollComponent = NewComponent[Ragdoll]()
