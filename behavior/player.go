package behavior

import (
	"github.com/milk9111/combatant/common"
	"github.com/milk9111/combatant/fsm"
	"github.com/milk9111/combatant/input"
)

const (
	StateFreeLook  = "free_look"
	StateTargeting = "targeting"
	StateBlock     = "block"
	StateDodge     = "dodge"
	StateJump      = "jump"
)

// Jumper is the vertical part of the force receiver.
type Jumper interface {
	Jump(speed float64)
	Grounded() bool
}

// TargetFinder locates something to lock on to.
type TargetFinder interface {
	Nearest(from common.Vec3, within float64) (Target, bool)
}

type PlayerConfig struct {
	MoveSpeed      float64
	TargetingSpeed float64
	TargetRange    float64
	JumpSpeed      float64
	DodgeSpeed     float64
	DodgeDuration  float64
	AttackDuration float64
	StrikeStart    float64
	StrikeEnd      float64
	ImpactDuration float64
}

func (c PlayerConfig) withDefaults() PlayerConfig {
	if c.TargetingSpeed <= 0 {
		c.TargetingSpeed = c.MoveSpeed
	}
	if c.DodgeDuration <= 0 {
		c.DodgeDuration = 0.4
	}
	if c.AttackDuration <= 0 {
		c.AttackDuration = 0.6
	}
	if c.StrikeEnd <= 0 || c.StrikeEnd > 1 {
		c.StrikeEnd = 0.7
	}
	if c.StrikeStart < 0 || c.StrikeStart >= c.StrikeEnd {
		c.StrikeStart = 0.2
	}
	if c.ImpactDuration <= 0 {
		c.ImpactDuration = 0.3
	}
	return c
}

// Player is the input-driven actor. Its states read gameplay intent from the
// signal router: discrete events through subscriptions that live exactly as
// long as the state, held flags by polling every tick.
type Player struct {
	Actor
	Input  *input.Router
	Jumper Jumper
	Finder TargetFinder

	cfg    PlayerConfig
	locked bool
}

func NewPlayer(actor Actor, router *input.Router, cfg PlayerConfig) *Player {
	if actor.Machine == nil {
		actor.Machine = fsm.New(actor.Name)
	}
	return &Player{Actor: actor, Input: router, cfg: cfg.withDefaults()}
}

func (p *Player) Core() *Actor {
	return &p.Actor
}

func (p *Player) Config() PlayerConfig {
	return p.cfg
}

func (p *Player) Start() {
	p.ToFreeLook()
}

// Locked reports whether the player is locked on to a target.
func (p *Player) Locked() bool {
	return p.locked
}

func (p *Player) ToFreeLook()  { p.changeState(&PlayerFreeLookState{player: p}) }
func (p *Player) ToTargeting() { p.changeState(&PlayerTargetingState{player: p}) }
func (p *Player) ToAttack()    { p.changeState(&PlayerAttackState{player: p}) }
func (p *Player) ToBlock()     { p.changeState(&PlayerBlockState{player: p}) }
func (p *Player) ToDodge()     { p.changeState(&PlayerDodgeState{player: p}) }
func (p *Player) ToJump()      { p.changeState(&PlayerJumpState{player: p}) }
func (p *Player) ToImpact()    { p.changeState(&PlayerImpactState{player: p}) }
func (p *Player) ToDead()      { p.changeState(&PlayerDeadState{player: p}) }

// ToLocomotion returns to targeting while a lock is held, free look otherwise.
func (p *Player) ToLocomotion() {
	if p.locked && p.targetAlive() {
		p.ToTargeting()
		return
	}
	p.unlock()
	p.ToFreeLook()
}

func (p *Player) Hurt() {
	if p.IsDead() || p.Blocking() {
		return
	}
	p.ToImpact()
}

func (p *Player) Kill() {
	if p.IsDead() {
		return
	}
	p.ToDead()
}

func (p *Player) lock() bool {
	if p.Finder == nil {
		return false
	}
	t, ok := p.Finder.Nearest(p.Position(), p.cfg.TargetRange)
	if !ok {
		return false
	}
	p.Target = t
	p.locked = true
	return true
}

func (p *Player) unlock() {
	p.locked = false
	p.Target = nil
}

func (p *Player) targetAlive() bool {
	if p.Target == nil || p.Target.IsDead() {
		return false
	}
	_, ok := p.Target.Locate()
	return ok
}

// movement is the router's move axis on the ground plane, clamped to unit
// length.
func (p *Player) movement() common.Vec3 {
	v := p.Input.Movement()
	m := common.Vec3{X: v.X, Z: v.Y}
	if m.LenSq() > 1 {
		m, _ = m.Normalize()
	}
	return m
}

// pollHeld switches to attack or block when their flags are held.
func (p *Player) pollHeld() bool {
	if p.Input.IsAttacking() {
		p.ToAttack()
		return true
	}
	if p.Input.IsBlocking() {
		p.ToBlock()
		return true
	}
	return false
}

// PlayerFreeLookState moves relative to the world and faces the direction of
// travel.
type PlayerFreeLookState struct {
	player  *Player
	binding *input.Binding
}

func (s *PlayerFreeLookState) Name() string { return StateFreeLook }

func (s *PlayerFreeLookState) Enter() {
	p := s.player
	s.binding = input.NewBinding(p.Input).
		On(input.SignalJump, p.ToJump).
		On(input.SignalDodge, p.ToDodge).
		On(input.SignalTarget, s.onTarget).
		On(input.SignalLook, s.onLook)
	p.play("locomotion")
}

func (s *PlayerFreeLookState) onTarget() {
	if s.player.lock() {
		s.player.ToTargeting()
	}
}

// onLook turns toward the nearest enemy without locking on.
func (s *PlayerFreeLookState) onLook() {
	p := s.player
	if p.Finder == nil || p.Body == nil {
		return
	}
	t, ok := p.Finder.Nearest(p.Position(), p.cfg.TargetRange)
	if !ok {
		return
	}
	pos, ok := t.Locate()
	if !ok {
		return
	}
	if look := pos.Sub(p.Position()).Planar(); look.LenSq() > 0 {
		p.Body.LookAlong(look)
	}
}

func (s *PlayerFreeLookState) Tick(dt float64) {
	p := s.player
	if p.pollHeld() {
		return
	}
	motion := p.movement()
	p.Move(motion.Scale(p.cfg.MoveSpeed), dt)
	if motion.LenSq() > 0 && p.Body != nil {
		p.Body.LookAlong(motion)
	}
}

func (s *PlayerFreeLookState) Exit() {
	s.binding.Close()
}

// PlayerTargetingState strafes around the locked target while facing it.
type PlayerTargetingState struct {
	player  *Player
	binding *input.Binding
}

func (s *PlayerTargetingState) Name() string { return StateTargeting }

func (s *PlayerTargetingState) Enter() {
	p := s.player
	release := func() {
		p.unlock()
		p.ToFreeLook()
	}
	s.binding = input.NewBinding(p.Input).
		On(input.SignalCancel, release).
		On(input.SignalTarget, release).
		On(input.SignalJump, p.ToJump).
		On(input.SignalDodge, p.ToDodge)
	p.play("targeting")
}

func (s *PlayerTargetingState) Tick(dt float64) {
	p := s.player
	if !p.targetAlive() {
		p.unlock()
		p.ToFreeLook()
		return
	}
	if p.pollHeld() {
		return
	}

	target, _ := p.TargetPosition()
	forward := target.Sub(p.Position()).Planar().NormalizeOr(common.DirectionOf(p.yaw()))
	right := common.Vec3{X: forward.Z, Z: -forward.X}
	in := p.movement()
	motion := right.Scale(in.X).Add(forward.Scale(in.Z))
	p.Move(motion.Scale(p.cfg.TargetingSpeed), dt)
	p.FaceTarget()
}

func (s *PlayerTargetingState) Exit() {
	s.binding.Close()
}

// PlayerAttackState swings once; holding attack chains into the next swing.
type PlayerAttackState struct {
	player  *Player
	elapsed float64
}

func (s *PlayerAttackState) Name() string { return StateAttack }

func (s *PlayerAttackState) Enter() {
	s.elapsed = 0
	s.player.beginSwing()
	if s.player.locked {
		s.player.FaceTarget()
	}
	s.player.play("attack")
}

func (s *PlayerAttackState) Tick(dt float64) {
	p := s.player
	p.Drift(dt)
	s.elapsed += dt

	progress := s.elapsed / p.cfg.AttackDuration
	p.setStrike(progress >= p.cfg.StrikeStart && progress < p.cfg.StrikeEnd)
	if progress < 1 {
		return
	}
	if p.Input.IsAttacking() {
		p.ToAttack()
		return
	}
	p.ToLocomotion()
}

func (s *PlayerAttackState) Exit() {
	s.player.setStrike(false)
}

// PlayerBlockState holds a guard while the block flag is set.
type PlayerBlockState struct {
	player *Player
}

func (s *PlayerBlockState) Name() string { return StateBlock }

func (s *PlayerBlockState) Enter() {
	s.player.blocking = true
	s.player.play("block")
}

func (s *PlayerBlockState) Tick(dt float64) {
	p := s.player
	p.Drift(dt)
	if !p.Input.IsBlocking() {
		p.ToLocomotion()
	}
}

func (s *PlayerBlockState) Exit() {
	s.player.blocking = false
}

// PlayerDodgeState dashes along the move input, or backwards without one.
type PlayerDodgeState struct {
	player    *Player
	direction common.Vec3
	elapsed   float64
}

func (s *PlayerDodgeState) Name() string { return StateDodge }

func (s *PlayerDodgeState) Enter() {
	p := s.player
	s.elapsed = 0
	s.direction = p.movement().NormalizeOr(common.DirectionOf(p.yaw()).Scale(-1))
	p.play("dodge")
}

func (s *PlayerDodgeState) Tick(dt float64) {
	p := s.player
	p.Move(s.direction.Scale(p.cfg.DodgeSpeed), dt)
	s.elapsed += dt
	if s.elapsed >= p.cfg.DodgeDuration {
		p.ToLocomotion()
	}
}

func (s *PlayerDodgeState) Exit() {}

// PlayerJumpState keeps the take-off momentum until the player lands.
type PlayerJumpState struct {
	player   *Player
	momentum common.Vec3
}

func (s *PlayerJumpState) Name() string { return StateJump }

func (s *PlayerJumpState) Enter() {
	p := s.player
	s.momentum = p.movement().Scale(p.cfg.MoveSpeed)
	if p.Jumper != nil {
		p.Jumper.Jump(p.cfg.JumpSpeed)
	}
	p.play("jump")
}

func (s *PlayerJumpState) Tick(dt float64) {
	p := s.player
	p.Move(s.momentum, dt)
	if p.Jumper == nil || p.Jumper.Grounded() {
		p.ToLocomotion()
	}
}

func (s *PlayerJumpState) Exit() {}

// PlayerImpactState staggers the player.
type PlayerImpactState struct {
	player  *Player
	elapsed float64
}

func (s *PlayerImpactState) Name() string { return StateImpact }

func (s *PlayerImpactState) Enter() {
	s.elapsed = 0
	s.player.play("impact")
}

func (s *PlayerImpactState) Tick(dt float64) {
	p := s.player
	p.Drift(dt)
	s.elapsed += dt
	if s.elapsed >= p.cfg.ImpactDuration {
		p.ToLocomotion()
	}
}

func (s *PlayerImpactState) Exit() {}

// PlayerDeadState falls back and up from the facing direction and never
// leaves.
type PlayerDeadState struct {
	player *Player
}

func (s *PlayerDeadState) Name() string { return StateDead }

func (s *PlayerDeadState) Enter() {
	p := s.player
	p.unlock()
	back := common.DirectionOf(p.yaw()).Scale(-1).Add(common.Up)
	p.ragdollDeath(back.NormalizeOr(common.Up))
}

func (s *PlayerDeadState) Tick(dt float64) {}

func (s *PlayerDeadState) Exit() {}

func (p *Player) yaw() float64 {
	if p.Body == nil {
		return 0
	}
	return p.Body.Yaw()
}
