package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

// Targeter marks the entity an actor uses to acquire targets.
type Targeter struct {
	Owner uint64
	Range float64
}

var TargeterComponent = NewComponent[Targeter]()
