package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const framesPerSecond = 60

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PartSpec is one ragdoll limb, offset from the actor's root.
type PartSpec struct {
	Name    string  `yaml:"name"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Radius  float64 `yaml:"radius"`
	Mass    float64 `yaml:"mass"`
}

type RagdollSpec struct {
	LaunchSpeed       float64    `yaml:"launch_speed"`
	MaxExplosionForce float64    `yaml:"max_explosion_force"`
	ExplosionRadius   float64    `yaml:"explosion_radius"`
	Parts             []PartSpec `yaml:"parts"`
}

type WeaponSpec struct {
	Reach        float64 `yaml:"reach"`
	Damage       int     `yaml:"damage"`
	Knockback    float64 `yaml:"knockback"`
	AttackFrames int     `yaml:"attack_frames"`
	StrikeStart  float64 `yaml:"strike_start"`
	StrikeEnd    float64 `yaml:"strike_end"`
}

// AttackSeconds converts the swing length from frames to seconds.
func (w WeaponSpec) AttackSeconds() float64 {
	return float64(w.AttackFrames) / framesPerSecond
}

type AnimationDefSpec struct {
	Name       string  `yaml:"name"`
	FrameCount int     `yaml:"frame_count"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

type EnemySpec struct {
	Name          string             `yaml:"name"`
	Health        int                `yaml:"health"`
	ChaseRange    float64            `yaml:"chase_range"`
	AttackRange   float64            `yaml:"attack_range"`
	MoveSpeed     float64            `yaml:"move_speed"`
	ImpactSeconds float64            `yaml:"impact_seconds"`
	Drag          float64            `yaml:"drag"`
	IdleScript    string             `yaml:"idle_script"`
	Color         *YAMLColor         `yaml:"color"`
	Weapon        WeaponSpec         `yaml:"weapon"`
	Ragdoll       RagdollSpec        `yaml:"ragdoll"`
	Animations    []AnimationDefSpec `yaml:"animations"`
}

func (s *EnemySpec) Validate() error {
	switch {
	case s.Health <= 0:
		return fmt.Errorf("%w: enemy %q: health must be positive", ErrInvalidSpec, s.Name)
	case s.ChaseRange < 0 || s.AttackRange < 0:
		return fmt.Errorf("%w: enemy %q: negative range", ErrInvalidSpec, s.Name)
	case s.AttackRange > s.ChaseRange:
		return fmt.Errorf("%w: enemy %q: attack_range exceeds chase_range", ErrInvalidSpec, s.Name)
	}
	return validateRagdoll(s.Name, s.Ragdoll)
}

func LoadEnemySpec() (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec]("enemy.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

type PlayerSpec struct {
	Name           string             `yaml:"name"`
	Health         int                `yaml:"health"`
	MoveSpeed      float64            `yaml:"move_speed"`
	TargetingSpeed float64            `yaml:"targeting_speed"`
	TargetRange    float64            `yaml:"target_range"`
	JumpSpeed      float64            `yaml:"jump_speed"`
	DodgeSpeed     float64            `yaml:"dodge_speed"`
	DodgeSeconds   float64            `yaml:"dodge_seconds"`
	ImpactSeconds  float64            `yaml:"impact_seconds"`
	Drag           float64            `yaml:"drag"`
	Color          *YAMLColor         `yaml:"color"`
	Weapon         WeaponSpec         `yaml:"weapon"`
	Ragdoll        RagdollSpec        `yaml:"ragdoll"`
	Animations     []AnimationDefSpec `yaml:"animations"`
}

func (s *PlayerSpec) Validate() error {
	if s.Health <= 0 {
		return fmt.Errorf("%w: player %q: health must be positive", ErrInvalidSpec, s.Name)
	}
	if s.MoveSpeed <= 0 {
		return fmt.Errorf("%w: player %q: move_speed must be positive", ErrInvalidSpec, s.Name)
	}
	return validateRagdoll(s.Name, s.Ragdoll)
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func validateRagdoll(owner string, r RagdollSpec) error {
	if len(r.Parts) == 0 {
		return fmt.Errorf("%w: %q: ragdoll needs at least one part", ErrInvalidSpec, owner)
	}
	seen := make(map[string]bool, len(r.Parts))
	for _, p := range r.Parts {
		if p.Radius <= 0 || p.Mass <= 0 {
			return fmt.Errorf("%w: %q: part %q needs positive radius and mass", ErrInvalidSpec, owner, p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: %q: duplicate part %q", ErrInvalidSpec, owner, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// BindingSpec lists the keyboard keys and standard gamepad buttons that
// drive one signal.
type BindingSpec struct {
	Keys    []string `yaml:"keys"`
	Buttons []string `yaml:"buttons"`
	Mouse   []string `yaml:"mouse"`
}

type MoveSpec struct {
	Up       []string `yaml:"up"`
	Down     []string `yaml:"down"`
	Left     []string `yaml:"left"`
	Right    []string `yaml:"right"`
	Deadzone float64  `yaml:"deadzone"`
}

type InputSpec struct {
	Move     MoveSpec               `yaml:"move"`
	Bindings map[string]BindingSpec `yaml:"bindings"`
}

func LoadInputSpec() (*InputSpec, error) {
	spec, err := LoadSpec[InputSpec]("input.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed colour, or fallback when none was given.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
