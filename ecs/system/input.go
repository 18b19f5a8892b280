package system

import (
	"github.com/milk9111/combatant/ecs"
	"github.com/milk9111/combatant/ecs/component"
)

// InputSystem samples the devices once per frame, feeds each input
// component's router and delivers the queued discrete events.
type InputSystem struct {
	keymap *Keymap
	device Device
}

func NewInputSystem(keymap *Keymap) *InputSystem {
	return &InputSystem{keymap: keymap, device: ebitenDevice{}}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.keymap == nil {
		return
	}
	frame := i.keymap.Sample(i.device)

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, in *component.Input) {
		in.Poller.Update(frame)
		in.Router.Dispatch()
	})
}
