package system

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/combatant/common"
	"github.com/milk9111/combatant/input"
	"github.com/milk9111/combatant/prefabs"
)

var ErrUnknownKey = errors.New("input: unknown key")

const defaultDeadzone = 0.2

var gamepadButtons = map[string]ebiten.StandardGamepadButton{
	"rightbottom":      ebiten.StandardGamepadButtonRightBottom,
	"rightright":       ebiten.StandardGamepadButtonRightRight,
	"rightleft":        ebiten.StandardGamepadButtonRightLeft,
	"righttop":         ebiten.StandardGamepadButtonRightTop,
	"fronttopleft":     ebiten.StandardGamepadButtonFrontTopLeft,
	"fronttopright":    ebiten.StandardGamepadButtonFrontTopRight,
	"frontbottomleft":  ebiten.StandardGamepadButtonFrontBottomLeft,
	"frontbottomright": ebiten.StandardGamepadButtonFrontBottomRight,
	"centerleft":       ebiten.StandardGamepadButtonCenterLeft,
	"centerright":      ebiten.StandardGamepadButtonCenterRight,
	"leftstick":        ebiten.StandardGamepadButtonLeftStick,
	"rightstick":       ebiten.StandardGamepadButtonRightStick,
	"lefttop":          ebiten.StandardGamepadButtonLeftTop,
	"leftbottom":       ebiten.StandardGamepadButtonLeftBottom,
	"leftleft":         ebiten.StandardGamepadButtonLeftLeft,
	"leftright":        ebiten.StandardGamepadButtonLeftRight,
}

var mouseButtons = map[string]ebiten.MouseButton{
	"left":   ebiten.MouseButtonLeft,
	"right":  ebiten.MouseButtonRight,
	"middle": ebiten.MouseButtonMiddle,
}

// Device is the raw hardware state a Keymap samples.
type Device interface {
	KeyPressed(key ebiten.Key) bool
	ButtonPressed(button ebiten.StandardGamepadButton) bool
	MousePressed(button ebiten.MouseButton) bool
	// Stick is the left analog stick, ok is false without a gamepad.
	Stick() (x, y float64, ok bool)
}

type binding struct {
	keys    []ebiten.Key
	buttons []ebiten.StandardGamepadButton
	mouse   []ebiten.MouseButton
}

func (b binding) pressed(d Device) bool {
	for _, k := range b.keys {
		if d.KeyPressed(k) {
			return true
		}
	}
	for _, btn := range b.buttons {
		if d.ButtonPressed(btn) {
			return true
		}
	}
	for _, m := range b.mouse {
		if d.MousePressed(m) {
			return true
		}
	}
	return false
}

// Keymap maps device controls onto gameplay signals.
type Keymap struct {
	up, down, left, right []ebiten.Key
	deadzone              float64
	signals               map[input.Signal]binding
}

// NewKeymap resolves the key, button and mouse names in spec.
func NewKeymap(spec *prefabs.InputSpec) (*Keymap, error) {
	km := &Keymap{deadzone: spec.Move.Deadzone, signals: make(map[input.Signal]binding)}
	if km.deadzone <= 0 {
		km.deadzone = defaultDeadzone
	}

	var err error
	if km.up, err = parseKeys(spec.Move.Up); err != nil {
		return nil, err
	}
	if km.down, err = parseKeys(spec.Move.Down); err != nil {
		return nil, err
	}
	if km.left, err = parseKeys(spec.Move.Left); err != nil {
		return nil, err
	}
	if km.right, err = parseKeys(spec.Move.Right); err != nil {
		return nil, err
	}

	for name, bs := range spec.Bindings {
		sig, err := input.ParseSignal(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, name)
		}
		var b binding
		if b.keys, err = parseKeys(bs.Keys); err != nil {
			return nil, err
		}
		for _, n := range bs.Buttons {
			btn, ok := gamepadButtons[strings.ToLower(n)]
			if !ok {
				return nil, fmt.Errorf("%w: gamepad button %q", ErrUnknownKey, n)
			}
			b.buttons = append(b.buttons, btn)
		}
		for _, n := range bs.Mouse {
			m, ok := mouseButtons[strings.ToLower(n)]
			if !ok {
				return nil, fmt.Errorf("%w: mouse button %q", ErrUnknownKey, n)
			}
			b.mouse = append(b.mouse, m)
		}
		km.signals[sig] = b
	}
	return km, nil
}

func parseKeys(names []string) ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for _, n := range names {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(n)); err != nil {
			return nil, fmt.Errorf("%w: key %q", ErrUnknownKey, n)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Sample reads one frame of device state.
func (km *Keymap) Sample(d Device) input.Frame {
	f := input.Frame{Down: make(map[input.Signal]bool, len(km.signals))}
	for sig, b := range km.signals {
		if b.pressed(d) {
			f.Down[sig] = true
		}
	}

	anyPressed := func(keys []ebiten.Key) bool {
		return binding{keys: keys}.pressed(d)
	}
	var x, y float64
	if anyPressed(km.left) {
		x--
	}
	if anyPressed(km.right) {
		x++
	}
	if anyPressed(km.up) {
		y++
	}
	if anyPressed(km.down) {
		y--
	}
	// ebiten's stick Y grows downward
	if sx, sy, ok := d.Stick(); ok && math.Hypot(sx, sy) > km.deadzone {
		x, y = sx, -sy
	}
	f.Move = common.Vec2{X: x, Y: y}
	return f
}

type ebitenDevice struct{}

func (ebitenDevice) KeyPressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }

func (ebitenDevice) MousePressed(button ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(button)
}

func (ebitenDevice) ButtonPressed(button ebiten.StandardGamepadButton) bool {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if ebiten.IsStandardGamepadButtonPressed(id, button) {
			return true
		}
	}
	return false
}

func (ebitenDevice) Stick() (float64, float64, bool) {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return 0, 0, false
	}
	id := ids[0]
	x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	return x, y, true
}
