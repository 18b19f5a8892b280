package behavior

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/combatant/common"
)

var ErrScriptState = errors.New("behavior: script state")

// A behaviour script defines on_enter(engine, state), on_tick(engine, state,
// dt) and on_exit(engine, state). state is a map that lives from one Enter
// to the matching Exit.
const scriptDispatch = `
if __phase == "enter" {
	on_enter(__engine, __state)
} else if __phase == "tick" {
	on_tick(__engine, __state, __dt)
} else if __phase == "exit" {
	on_exit(__engine, __state)
}
`

// Script is a compiled behaviour script. Every ScriptState runs its own copy.
type Script struct {
	name     string
	compiled *tengo.Compiled
}

func CompileScript(name string, src []byte) (*Script, error) {
	body := string(src) + "\n" + scriptDispatch
	script := tengo.NewScript([]byte(body))
	vars := map[string]any{
		"__phase":  "",
		"__engine": map[string]any{},
		"__state":  map[string]any{},
		"__dt":     0.0,
	}
	for k, v := range vars {
		if err := script.Add(k, v); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrScriptState, name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("%w: compile %s: %v", ErrScriptState, name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

func (s *Script) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// ScriptState runs a behaviour script as an enemy state. A script that fails
// hands control to the built-in idle state on the next tick.
type ScriptState struct {
	enemy    *Enemy
	name     string
	script   *Script
	compiled *tengo.Compiled
	state    *tengo.Map
	pending  string
	failed   bool
}

func NewScriptState(e *Enemy, name string, s *Script) *ScriptState {
	st := &ScriptState{enemy: e, name: name, script: s}
	if s != nil && s.compiled != nil {
		st.compiled = s.compiled.Clone()
	}
	return st
}

func (s *ScriptState) Name() string { return s.name }

// Failed reports whether the script has errored.
func (s *ScriptState) Failed() bool { return s.failed }

func (s *ScriptState) Enter() {
	s.state = &tengo.Map{Value: map[string]tengo.Object{}}
	s.failed = false
	s.run("enter", 0)
}

func (s *ScriptState) Tick(dt float64) {
	if s.failed {
		s.enemy.changeState(&EnemyIdleState{enemy: s.enemy})
		return
	}
	s.run("tick", dt)
}

func (s *ScriptState) Exit() {
	if s.failed {
		return
	}
	s.run("exit", 0)
}

func (s *ScriptState) run(phase string, dt float64) {
	if s.compiled == nil {
		s.failed = true
		return
	}
	err := s.exec(phase, dt)
	if err != nil {
		s.failed = true
		log.Warn().Err(err).Str("script", s.script.Name()).Str("phase", phase).Msg("behavior: script failed")
		return
	}

	// transitions requested while exiting would replace the state the
	// machine is already moving to
	if s.pending == "" || phase == "exit" {
		s.pending = ""
		return
	}
	next := s.pending
	s.pending = ""
	if !s.enemy.Transition(next) {
		log.Warn().Str("script", s.script.Name()).Str("state", next).Msg("behavior: script requested unknown state")
	}
}

func (s *ScriptState) exec(phase string, dt float64) error {
	c := s.compiled
	if err := c.Set("__phase", phase); err != nil {
		return err
	}
	if err := c.Set("__engine", s.engine(dt)); err != nil {
		return err
	}
	if err := c.Set("__state", s.state); err != nil {
		return err
	}
	if err := c.Set("__dt", dt); err != nil {
		return err
	}
	return c.Run()
}

func (s *ScriptState) engine(dt float64) *tengo.ImmutableMap {
	e := s.enemy
	values := map[string]tengo.Object{}

	values["in_chase_range"] = &tengo.UserFunction{Name: "in_chase_range", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(e.IsInChaseRange()), nil
	}}

	values["in_attack_range"] = &tengo.UserFunction{Name: "in_attack_range", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(e.IsInAttackRange()), nil
	}}

	values["face_target"] = &tengo.UserFunction{Name: "face_target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e.FaceTarget()
		return tengo.UndefinedValue, nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, okX := tengo.ToFloat64(args[0])
		z, okZ := tengo.ToFloat64(args[1])
		if !okX || !okZ {
			return nil, tengo.ErrInvalidArgumentType{Name: "motion", Expected: "float", Found: args[0].TypeName()}
		}
		e.Move(common.Vec3{X: x, Z: z}, dt)
		return tengo.UndefinedValue, nil
	}}

	values["drift"] = &tengo.UserFunction{Name: "drift", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e.Drift(dt)
		return tengo.UndefinedValue, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vecObject(e.Position()), nil
	}}

	values["target_position"] = &tengo.UserFunction{Name: "target_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		pos, ok := e.TargetPosition()
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vecObject(pos), nil
	}}

	values["play"] = &tengo.UserFunction{Name: "play", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		e.play(objectAsString(args[0]))
		return tengo.UndefinedValue, nil
	}}

	values["transition"] = &tengo.UserFunction{Name: "transition", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		s.pending = name
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Debug().Str("actor", e.Name).Msg(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func vecObject(v common.Vec3) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v.X},
		&tengo.Float{Value: v.Y},
		&tengo.Float{Value: v.Z},
	}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
