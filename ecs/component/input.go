package component

import "github.com/milk9111/combatant/input"

// Input feeds device state into an actor's signal router.
type Input struct {
	Router *input.Router
	Poller *input.Poller
}

var InputComponent = NewComponent[Input]()
