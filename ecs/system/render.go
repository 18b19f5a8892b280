package system

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/combatant/behavior"
	"github.com/milk9111/combatant/common"
	"github.com/milk9111/combatant/ecs"
	"github.com/milk9111/combatant/ecs/component"
)

const (
	pixelsPerMeter = 40.0
	// oblique projection: depth is squashed and height lifts things up
	depthScale  = 0.6
	heightScale = 0.8
	healthBarW  = 30
)

// RenderSystem draws the arena in an oblique view centred on the player.
type RenderSystem struct {
	Bounds float64
	camera common.Vec3
	player ecs.Entity
}

func NewRenderSystem(bounds float64) *RenderSystem {
	return &RenderSystem{Bounds: bounds}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(colornames.Darkslategray)

	if !ecs.IsAlive(w, r.player) {
		if e, _, ok := ecs.First(w, component.PlayerTagComponent); ok {
			r.player = e
		}
	}
	if t, ok := ecs.Get(w, r.player, component.TransformComponent); ok {
		r.camera = common.Vec3{X: t.Pos.X, Z: t.Pos.Z}
	}

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	r.drawFloor(screen, sw, sh)

	var actors []ecs.Entity
	ecs.ForEach2(w, component.TransformComponent, component.AppearanceComponent, func(e ecs.Entity, _ *component.Transform, _ *component.Appearance) {
		actors = append(actors, e)
	})
	// far to near so closer actors overlap
	sort.SliceStable(actors, func(i, j int) bool {
		ti, _ := ecs.Get(w, actors[i], component.TransformComponent)
		tj, _ := ecs.Get(w, actors[j], component.TransformComponent)
		return ti.Pos.Z > tj.Pos.Z
	})
	for _, e := range actors {
		r.drawActor(w, e, screen, sw, sh)
	}
}

func (r *RenderSystem) project(p common.Vec3, sw, sh int) (float32, float32) {
	x := float64(sw)/2 + (p.X-r.camera.X)*pixelsPerMeter
	y := float64(sh)/2 - (p.Z-r.camera.Z)*pixelsPerMeter*depthScale - p.Y*pixelsPerMeter*heightScale
	return float32(x), float32(y)
}

func (r *RenderSystem) drawFloor(screen *ebiten.Image, sw, sh int) {
	if r.Bounds <= 0 {
		return
	}
	b := r.Bounds
	corners := []common.Vec3{{X: -b, Z: -b}, {X: b, Z: -b}, {X: b, Z: b}, {X: -b, Z: b}}
	for i := range corners {
		x0, y0 := r.project(corners[i], sw, sh)
		x1, y1 := r.project(corners[(i+1)%len(corners)], sw, sh)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, colornames.Lightgrey, true)
	}
}

func (r *RenderSystem) drawActor(w *ecs.World, e ecs.Entity, screen *ebiten.Image, sw, sh int) {
	t, _ := ecs.Get(w, e, component.TransformComponent)
	look, _ := ecs.Get(w, e, component.AppearanceComponent)
	clr := look.Color
	if clr == nil {
		clr = colornames.White
	}

	// shadow
	sx, sy := r.project(common.Vec3{X: t.Pos.X, Z: t.Pos.Z}, sw, sh)
	vector.FillCircle(screen, sx, sy, 10, color.NRGBA{A: 90}, true)

	top := t.Pos.Add(common.Vec3{Y: 2})
	if rd, ok := ecs.Get(w, e, component.RagdollComponent); ok && len(rd.Parts) > 0 {
		top = rd.Parts[0].Position()
		for _, p := range rd.Parts {
			px, py := r.project(p.Position(), sw, sh)
			radius := float32(p.Radius() * pixelsPerMeter)
			vector.FillCircle(screen, px, py, radius, clr, true)
			if top.Y < p.Position().Y {
				top = p.Position()
			}
		}
	}

	if eq, ok := ecs.Get(w, e, component.EquipmentComponent); ok && eq.Visible {
		hand := t.Pos.Add(common.Vec3{Y: 1.2})
		tip := hand.Add(t.Forward().Scale(eq.Reach))
		x0, y0 := r.project(hand, sw, sh)
		x1, y1 := r.project(tip, sw, sh)
		weapon := colornames.Silver
		if brain, ok := ecs.Get(w, e, component.BrainComponent); ok && brain.Agent != nil {
			if active, _ := brain.Agent.Core().Striking(); active {
				weapon = colornames.Gold
			}
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, 3, weapon, true)
	}

	hx, hy := r.project(top.Add(common.Vec3{Y: 0.4}), sw, sh)
	if h, ok := ecs.Get(w, e, component.HealthComponent); ok && h.Max > 0 && !h.IsDead() {
		frac := float32(h.Current) / float32(h.Max)
		vector.FillRect(screen, hx-healthBarW/2, hy, healthBarW, 4, colornames.Darkred, false)
		vector.FillRect(screen, hx-healthBarW/2, hy, healthBarW*frac, 4, colornames.Limegreen, false)
	}

	brain, ok := ecs.Get(w, e, component.BrainComponent)
	if !ok || brain.Agent == nil {
		return
	}
	ebitenutil.DebugPrintAt(screen, brain.Agent.Core().StateName(), int(hx)-healthBarW/2, int(hy)-16)

	if p, ok := brain.Agent.(*behavior.Player); ok && p.Locked() {
		if pos, ok := p.TargetPosition(); ok {
			tx, ty := r.project(pos, sw, sh)
			vector.StrokeCircle(screen, tx, ty, 14, 2, colornames.Orange, true)
		}
	}
}

// DrawHUD prints the player's status in the top-left corner.
func DrawHUD(w *ecs.World, screen *ebiten.Image, deaths *DeathSystem) {
	e, _, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return
	}
	status := "dead"
	if b, ok := ecs.Get(w, e, component.BrainComponent); ok && b.Agent != nil {
		status = b.Agent.Core().StateName()
	}
	hp := 0
	if h, ok := ecs.Get(w, e, component.HealthComponent); ok {
		hp = h.Current
	}
	kills := 0
	if deaths != nil {
		kills = deaths.Kills
	}
	text := fmt.Sprintf("TPS: %.0f\nState: %s\nHealth: %d\nKills: %d", ebiten.ActualTPS(), status, hp, kills)
	if deaths != nil && !deaths.PlayerAlive {
		text += "\n\nYou died. Enter to restart"
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}
