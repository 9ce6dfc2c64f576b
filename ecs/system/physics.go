package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumplab/ecs"
	"github.com/milk9111/jumplab/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeSolid
)

// groundNormalY is the minimum downward component of a contact normal (from
// the player toward the other shape) for the contact to count as floor.
const groundNormalY = 0.5

type PhysicsSystem struct {
	space *cp.Space

	entities map[ecs.Entity]*bodyInfo
	bounds   *bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &PhysicsSystem{
		space:    space,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) SetGravity(gravity float64) {
	ps.space.SetGravity(cp.Vector{X: 0, Y: gravity})
}

func (ps *PhysicsSystem) Gravity() float64 {
	return ps.space.Gravity().Y
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	_, clock, ok := ecs.First(w, component.FrameClockComponent.Kind())
	if !ok || !(clock.DeltaMs > 0) || math.IsInf(clock.DeltaMs, 0) {
		return
	}

	ps.syncEntities(w)
	ps.syncWorldBounds(w)

	ps.space.Step(clock.DeltaMs / 1000)

	ps.syncTransforms(w)
	ps.updatePlayerContacts(w)
}

// Sync creates bodies for new entities and drops those whose entity is gone.
// It is also called directly when a scene is built so bodies exist before the
// first frame.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range ecs.Query(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		if _, exists := ps.entities[e]; exists {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		info := ps.createBodyInfo(transform, bodyComp, ecs.Has(w, e, component.PlayerTagComponent.Kind()))
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, isPlayer bool) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = 32, 32
	}

	if bodyComp.Static {
		bb := cp.BB{L: transform.X, B: transform.Y, R: transform.X + width, T: transform.Y + height}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	moment := cp.MomentForBox(mass, width, height)
	if isPlayer {
		// players never tip over
		moment = cp.INFINITY
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: transform.X + width/2, Y: transform.Y + height/2})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)
	if isPlayer {
		shape.SetCollisionType(collisionTypePlayer)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	if ps.bounds != nil {
		return
	}
	_, bounds, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	worldW, worldH := bounds.Width, bounds.Height
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 0)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	ps.bounds = info
}

// updatePlayerContacts derives floor contact from this step's arbiters.
func (ps *PhysicsSystem) updatePlayerContacts(w *ecs.World) {
	ecs.ForEach2(w, component.PlayerCollisionComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, pc *component.PlayerCollision, bodyComp *component.PhysicsBody) {
			pc.Grounded = false
			if bodyComp.Body == nil {
				return
			}
			bodyComp.Body.EachArbiter(func(arb *cp.Arbiter) {
				if arb.Normal().Y > groundNormalY {
					pc.Grounded = true
				}
			})
		})
}

// RefreshGrounded recomputes floor contact for e from the shapes it overlaps
// right now, without stepping. Arbiters from the last step are stale once the
// body has been teleported.
func (ps *PhysicsSystem) RefreshGrounded(w *ecs.World, e ecs.Entity) {
	pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
	if !ok {
		return
	}
	pc.Grounded = false
	bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if ps == nil || !ok || bodyComp.Shape == nil {
		return
	}
	ps.space.ShapeQuery(bodyComp.Shape, func(other *cp.Shape, points *cp.ContactPointSet) {
		if other.Body() == bodyComp.Body {
			return
		}
		if points.Count > 0 && points.Normal.Y > groundNormalY {
			pc.Grounded = true
		}
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
			if bodyComp.Static || bodyComp.Body == nil {
				return
			}
			pos := bodyComp.Body.Position()
			transform.X = pos.X - bodyComp.Width/2
			transform.Y = pos.Y - bodyComp.Height/2
		})
}

// Teleport moves a dynamic body so that its top-left corner sits at (x, y)
// and stops it.
func Teleport(bodyComp *component.PhysicsBody, transform *component.Transform, x, y float64) {
	if transform != nil {
		transform.X, transform.Y = x, y
	}
	if bodyComp == nil || bodyComp.Body == nil || bodyComp.Static {
		return
	}
	bodyComp.Body.SetPosition(cp.Vector{X: x + bodyComp.Width/2, Y: y + bodyComp.Height/2})
	bodyComp.Body.SetVelocityVector(cp.Vector{})
	bodyComp.Body.SetAngularVelocity(0)
	bodyComp.Body.Activate()
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
		}
		if !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
