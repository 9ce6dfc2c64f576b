package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumplab/ecs"
	"github.com/milk9111/jumplab/ecs/component"
)

const debugDotSize = 4

// DrawPhysicsDebug outlines every collision shape in the space.
func DrawPhysicsDebug(space *cp.Space, screen *ebiten.Image, vp Viewport) {
	if space == nil || screen == nil {
		return
	}
	cp.DrawSpace(space, &physicsDebugDrawer{screen: screen, vp: vp})
}

// DrawPlayerDebug prints the body state under the readout.
func DrawPlayerDebug(w *ecs.World, screen *ebiten.Image, x, y int) {
	if w == nil || screen == nil {
		return
	}
	player, _, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	grounded := false
	if pc, ok := ecs.Get(w, player, component.PlayerCollisionComponent.Kind()); ok {
		grounded = pc.Grounded
	}
	vx, vy := 0.0, 0.0
	if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		vel := body.Body.Velocity()
		vx, vy = vel.X, vel.Y
	}
	launches := 0
	if assist, ok := ecs.Get(w, player, component.JumpAssistComponent.Kind()); ok {
		launches = len(assist.LaunchTimes)
	}
	text := fmt.Sprintf("contact: %v\nvx: %.1f\nvy: %.1f\nlaunches: %d", grounded, vx, vy, launches)
	ebitenutil.DebugPrintAt(screen, text, x, y)
}

// physicsDebugDrawer outlines shapes in colours keyed to their role: the
// player body, the scene's solids and the world bounds. Contact points are
// drawn as short thick ticks along the contact normal so floor contact is
// visible while the player stands or lands.
type physicsDebugDrawer struct {
	screen *ebiten.Image
	vp     Viewport
}

var (
	debugPlayerColor  = cp.FColor{R: 1, G: 0.6, B: 0.6, A: 1}
	debugSolidColor   = cp.FColor{R: 0.58, G: 0.64, B: 0.72, A: 1}
	debugBoundsColor  = cp.FColor{R: 0.2, G: 0.25, B: 0.33, A: 1}
	debugContactColor = cp.FColor{R: 0.98, G: 0.8, B: 0.08, A: 1}
)

// Scenes are built from boxes and bound segments only, so circles are marked
// by their centre and heading.
func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, fill, 1)
}

// DrawSegment is only reached for contact points.
func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill, 3)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill, float32(max(1, 2*radius)))
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	for i := 0; i < count; i++ {
		d.drawLine(verts[i], verts[(i+1)%count], fill, 1)
	}
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	half := max(size, debugDotSize) / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill, 1)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill, 1)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return debugSolidColor
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return debugShapeColor(shape)
}

func debugShapeColor(shape *cp.Shape) cp.FColor {
	if body := shape.Body(); body != nil && body.GetType() == cp.BODY_DYNAMIC {
		return debugPlayerColor
	}
	if _, ok := shape.Class.(*cp.Segment); ok {
		return debugBoundsColor
	}
	return debugSolidColor
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return debugSolidColor
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return debugContactColor
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor, width float32) {
	x1, y1 := d.vp.ToScreen(a.X, a.Y)
	x2, y2 := d.vp.ToScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), width*float32(max(d.vp.Scale, 1)), toNRGBA(c), false)
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
	return min(max(v, 0), 1)
}
