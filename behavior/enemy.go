package behavior

import (
	"github.com/milk9111/combatant/common"
	"github.com/milk9111/combatant/fsm"
)

const (
	StateIdle   = "idle"
	StateChase  = "chase"
	StateAttack = "attack"
	StateImpact = "impact"
	StateDead   = "dead"
)

// EnemyConfig tunes an enemy's states. Durations are in seconds.
type EnemyConfig struct {
	AttackRange    float64
	MoveSpeed      float64
	AttackDuration float64
	// StrikeStart and StrikeEnd bound the damage window as fractions of
	// AttackDuration.
	StrikeStart    float64
	StrikeEnd      float64
	ImpactDuration float64
	IdleScript     *Script
}

func (c EnemyConfig) withDefaults() EnemyConfig {
	if c.AttackDuration <= 0 {
		c.AttackDuration = 1
	}
	if c.StrikeEnd <= 0 || c.StrikeEnd > 1 {
		c.StrikeEnd = 0.6
	}
	if c.StrikeStart < 0 || c.StrikeStart >= c.StrikeEnd {
		c.StrikeStart = 0.3
	}
	if c.ImpactDuration <= 0 {
		c.ImpactDuration = 0.5
	}
	return c
}

// Enemy is an AI-controlled actor that chases and attacks its target.
type Enemy struct {
	Actor
	cfg EnemyConfig
}

func NewEnemy(actor Actor, cfg EnemyConfig) *Enemy {
	if actor.Machine == nil {
		actor.Machine = fsm.New(actor.Name)
	}
	return &Enemy{Actor: actor, cfg: cfg.withDefaults()}
}

func (e *Enemy) Core() *Actor {
	return &e.Actor
}

// Config returns the active tuning.
func (e *Enemy) Config() EnemyConfig {
	return e.cfg
}

// Retune swaps the tuning of a live enemy. It takes effect on the next tick.
func (e *Enemy) Retune(chaseRange float64, cfg EnemyConfig) {
	e.ChaseRange = chaseRange
	if cfg.IdleScript == nil {
		cfg.IdleScript = e.cfg.IdleScript
	}
	e.cfg = cfg.withDefaults()
}

// Start enters the initial state.
func (e *Enemy) Start() {
	e.ToIdle()
}

// IsInAttackRange reports whether a living target is within weapon reach.
func (e *Enemy) IsInAttackRange() bool {
	return e.withinRange(e.cfg.AttackRange)
}

func (e *Enemy) ToIdle() {
	if e.cfg.IdleScript != nil {
		e.changeState(NewScriptState(e, StateIdle, e.cfg.IdleScript))
		return
	}
	e.changeState(&EnemyIdleState{enemy: e})
}

func (e *Enemy) ToChase()  { e.changeState(&EnemyChaseState{enemy: e}) }
func (e *Enemy) ToAttack() { e.changeState(&EnemyAttackState{enemy: e}) }
func (e *Enemy) ToImpact() { e.changeState(&EnemyImpactState{enemy: e}) }
func (e *Enemy) ToDead()   { e.changeState(&EnemyDeadState{enemy: e}) }

// Hurt interrupts whatever the enemy is doing with a stagger.
func (e *Enemy) Hurt() {
	if e.IsDead() {
		return
	}
	e.ToImpact()
}

// Kill moves the enemy into its terminal state. Later calls do nothing.
func (e *Enemy) Kill() {
	if e.IsDead() {
		return
	}
	e.ToDead()
}

// Transition switches to a state by name and reports whether the name is
// known. Scripts use it.
func (e *Enemy) Transition(name string) bool {
	switch name {
	case StateIdle:
		e.ToIdle()
	case StateChase:
		e.ToChase()
	case StateAttack:
		e.ToAttack()
	case StateImpact:
		e.ToImpact()
	case StateDead:
		e.Kill()
	default:
		return false
	}
	return true
}

// EnemyIdleState waits for a target to come into chase range.
type EnemyIdleState struct {
	enemy *Enemy
}

func (s *EnemyIdleState) Name() string { return StateIdle }

func (s *EnemyIdleState) Enter() {
	s.enemy.play("idle")
}

func (s *EnemyIdleState) Tick(dt float64) {
	s.enemy.Drift(dt)
	if s.enemy.IsInChaseRange() {
		s.enemy.ToChase()
	}
}

func (s *EnemyIdleState) Exit() {}

// EnemyChaseState runs at the target until it escapes or is within reach.
type EnemyChaseState struct {
	enemy *Enemy
}

func (s *EnemyChaseState) Name() string { return StateChase }

func (s *EnemyChaseState) Enter() {
	s.enemy.play("run")
}

func (s *EnemyChaseState) Tick(dt float64) {
	e := s.enemy
	if !e.IsInChaseRange() {
		e.ToIdle()
		return
	}
	if e.IsInAttackRange() {
		e.ToAttack()
		return
	}

	target, _ := e.TargetPosition()
	dir := target.Sub(e.Position()).Planar().NormalizeOr(common.Zero3)
	e.Move(dir.Scale(e.cfg.MoveSpeed), dt)
	e.FaceTarget()
}

func (s *EnemyChaseState) Exit() {}

// EnemyAttackState swings once and returns to the chase.
type EnemyAttackState struct {
	enemy   *Enemy
	elapsed float64
}

func (s *EnemyAttackState) Name() string { return StateAttack }

func (s *EnemyAttackState) Enter() {
	s.elapsed = 0
	s.enemy.beginSwing()
	s.enemy.FaceTarget()
	s.enemy.play("attack")
}

func (s *EnemyAttackState) Tick(dt float64) {
	e := s.enemy
	e.Drift(dt)
	s.elapsed += dt

	progress := s.elapsed / e.cfg.AttackDuration
	e.setStrike(progress >= e.cfg.StrikeStart && progress < e.cfg.StrikeEnd)
	if progress >= 1 {
		e.ToChase()
	}
}

func (s *EnemyAttackState) Exit() {
	s.enemy.setStrike(false)
}

// EnemyImpactState staggers the enemy while knockback plays out.
type EnemyImpactState struct {
	enemy   *Enemy
	elapsed float64
}

func (s *EnemyImpactState) Name() string { return StateImpact }

func (s *EnemyImpactState) Enter() {
	s.elapsed = 0
	s.enemy.play("impact")
}

func (s *EnemyImpactState) Tick(dt float64) {
	s.enemy.Drift(dt)
	s.elapsed += dt
	if s.elapsed >= s.enemy.cfg.ImpactDuration {
		s.enemy.ToIdle()
	}
}

func (s *EnemyImpactState) Exit() {}

// EnemyDeadState hands the body to the physics simulation. It is terminal:
// Tick and Exit do nothing.
type EnemyDeadState struct {
	enemy *Enemy
}

func (s *EnemyDeadState) Name() string { return StateDead }

func (s *EnemyDeadState) Enter() {
	e := s.enemy
	target, ok := e.TargetPosition()
	if !ok {
		target = common.Vec3{}
	}
	e.ragdollDeath(DeathDirection(e.Position(), target))
}

func (s *EnemyDeadState) Tick(dt float64) {}

func (s *EnemyDeadState) Exit() {}

// DeathDirection is the launch direction for a body killed near target: the
// normalized sum of both positions. The sum does not point away from the
// killer (target minus self would) and is most likely a bug, but it is the
// established launch behaviour and is kept. When the sum is the zero vector
// the body is launched straight up.
func DeathDirection(self, target common.Vec3) common.Vec3 {
	return target.Add(self).NormalizeOr(common.Up)
}
