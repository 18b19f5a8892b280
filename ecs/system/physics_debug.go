package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/combatant/physics"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	debugPanelW         = 320
	debugPanelH         = 180
	debugZoom           = 24.0
)

// DrawPhysicsDebug draws the simulation plane side-on in a panel in the
// bottom-right corner, centred on centerX.
func DrawPhysicsDebug(pw *physics.World, screen *ebiten.Image, centerX float64) {
	if pw == nil || pw.Space() == nil || screen == nil {
		return
	}
	b := screen.Bounds()
	left := float64(b.Max.X - debugPanelW - 10)
	top := float64(b.Max.Y - debugPanelH - 10)
	vector.FillRect(screen, float32(left), float32(top), debugPanelW, debugPanelH, color.NRGBA{A: 160}, false)

	drawer := &physicsDebugDrawer{
		screen:  screen,
		originX: left + debugPanelW/2 - centerX*debugZoom,
		originY: top + debugPanelH - 12,
		zoom:    debugZoom,
	}
	cp.DrawSpace(pw.Space(), drawer)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("bodies: %d", pw.Parts()), int(left)+4, int(top)+2)
}

type physicsDebugDrawer struct {
	screen  *ebiten.Image
	originX float64
	originY float64
	zoom    float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / d.zoom / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

// ShapeColor greys out parts whose collider is switched off.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.Filter.Categories == 0 {
		return cp.FColor{R: 0.5, G: 0.5, B: 0.5, A: 0.4}
	}
	if shape.Body().GetType() == cp.BODY_KINEMATIC {
		return cp.FColor{R: 0.2, G: 0.4, B: 1, A: 0.6}
	}
	return cp.FColor{R: 0.1, G: 0.8, B: 0.1, A: 0.6}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(c), true)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

// toScreen flips Y: the simulation is Y up.
func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return d.originX + v.X*d.zoom, d.originY - v.Y*d.zoom
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
