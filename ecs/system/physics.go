package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/milk9111/tower/clock"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypeEnemy
	collisionTypeProjectile
)

// Filter categories. Walls live in their own category so the camera can
// query them alone.
const (
	categoryStatic uint = 1 << iota
	categoryDynamic
)

// friendlyGroup keeps the player and its shots from colliding.
const friendlyGroup uint = 1

type PhysicsSystem struct {
	clock         clock.Clock
	space         *cp.Space
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	contacts map[ecs.Entity][]ecs.Entity

	logger zerolog.Logger
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem(c clock.Clock) *PhysicsSystem {
	return &PhysicsSystem{
		clock:    c,
		space:    newSpace(),
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
		contacts: make(map[ecs.Entity][]ecs.Entity),
		logger:   systemLogger("physics"),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)

	dt := ps.clock.Delta().Seconds()
	if dt <= 0 {
		return
	}

	clear(ps.contacts)
	ps.applyForces(w, dt)
	ps.space.Step(dt)
	ps.syncTransforms(w)
	ps.flushContacts(w)
}

// FirstStaticHit casts a segment against walls only and returns the distance
// from a to the first hit.
func (ps *PhysicsSystem) FirstStaticHit(ax, ay, bx, by float64) (float64, bool) {
	if ps == nil || ps.space == nil {
		return 0, false
	}
	start := cp.Vector{X: ax, Y: ay}
	end := cp.Vector{X: bx, Y: by}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categoryStatic)
	info := ps.space.SegmentQueryFirst(start, end, 0, filter)
	if info.Shape == nil {
		return 0, false
	}
	return math.Hypot(info.Point.X-ax, info.Point.Y-ay), true
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	record := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		a, okA := sys.shapes[shapeA]
		b, okB := sys.shapes[shapeB]
		if okA && okB {
			sys.addContact(a, b)
			sys.addContact(b, a)
		}
		return true
	}

	handler := ps.space.NewCollisionHandler(collisionTypeProjectile, collisionTypeEnemy)
	handler.UserData = ps
	handler.BeginFunc = record
	handler.PreSolveFunc = record

	ps.handlersReady = true
}

func (ps *PhysicsSystem) addContact(e, other ecs.Entity) {
	for _, existing := range ps.contacts[e] {
		if existing == other {
			return
		}
	}
	ps.contacts[e] = append(ps.contacts[e], other)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		info := ps.createBodyInfo(*transform, *bodyComp)
		if info == nil {
			continue
		}
		ps.entities[e] = info
		ps.shapes[info.shape] = e
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape

		if !info.static && (bodyComp.ImpulseX != 0 || bodyComp.ImpulseY != 0) {
			info.body.ApplyImpulseAtWorldPoint(cp.Vector{X: bodyComp.ImpulseX, Y: bodyComp.ImpulseY}, info.body.Position())
			bodyComp.ImpulseX, bodyComp.ImpulseY = 0, 0
		}
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody) *bodyInfo {
	if bodyComp.Segment {
		shape := cp.NewSegment(ps.space.StaticBody,
			cp.Vector{X: bodyComp.AX, Y: bodyComp.AY},
			cp.Vector{X: bodyComp.BX, Y: bodyComp.BY},
			bodyComp.Radius)
		ps.configureShape(shape, bodyComp, true)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	width, height, radius := bodyComp.Width, bodyComp.Height, bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		ps.logger.Warn().Msg("physics body without size, using unit box")
		width, height = 1, 1
	}

	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: transform.X, Y: transform.Y})
		} else {
			bb := cp.BB{L: transform.X - width/2, B: transform.Y - height/2, R: transform.X + width/2, T: transform.Y + height/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		ps.configureShape(shape, bodyComp, true)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	moment := math.Inf(1)
	if !bodyComp.FixedRotation {
		if radius > 0 {
			moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
		} else {
			moment = cp.MomentForBox(mass, width, height)
		}
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	ps.configureShape(shape, bodyComp, false)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

func (ps *PhysicsSystem) configureShape(shape *cp.Shape, bodyComp component.PhysicsBody, static bool) {
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeFor(bodyComp.Layer))

	if static {
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryStatic, cp.ALL_CATEGORIES))
		return
	}
	var group uint = cp.NO_GROUP
	if bodyComp.Layer == component.LayerPlayer || bodyComp.Layer == component.LayerProjectile {
		group = friendlyGroup
	}
	shape.SetFilter(cp.NewShapeFilter(group, categoryDynamic, cp.ALL_CATEGORIES))
}

func collisionTypeFor(layer component.CollisionLayer) cp.CollisionType {
	switch layer {
	case component.LayerPlayer:
		return collisionTypePlayer
	case component.LayerEnemy:
		return collisionTypeEnemy
	case component.LayerProjectile:
		return collisionTypeProjectile
	default:
		return collisionTypeSolid
	}
}

// applyForces pushes stored forces onto bodies and applies linear damping.
// Chipmunk clears body forces after every step, so this runs each frame.
func (ps *PhysicsSystem) applyForces(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.ForceComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, f *component.Force, b *component.PhysicsBody) {
		if b.Body == nil || b.Static || (f.X == 0 && f.Y == 0) {
			return
		}
		b.Body.ApplyForceAtWorldPoint(cp.Vector{X: f.X, Y: f.Y}, b.Body.Position())
	})

	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, b *component.PhysicsBody) {
		if b.Body == nil || b.Static || b.Damping <= 0 {
			return
		}
		scale := math.Max(0, 1-b.Damping*dt)
		b.Body.SetVelocityVector(b.Body.Velocity().Mult(scale))
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.PhysicsBody, t *component.Transform) {
		if b.Body == nil || b.Static || b.Segment {
			return
		}
		pos := b.Body.Position()
		t.X, t.Y = pos.X, pos.Y
		t.Rotation = b.Body.Angle()
	})
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	ecs.ForEach(w, component.ContactsComponent.Kind(), func(e ecs.Entity, c *component.Contacts) {
		c.Entities = c.Entities[:0]
		for _, other := range ps.contacts[e] {
			c.Entities = append(c.Entities, other.Ref())
		}
	})
}

// teleport moves an entity and its body, keeping velocity.
func teleport(w *ecs.World, e ecs.Entity, x, y float64) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X, t.Y = x, y
	}
	if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && b.Body != nil && !b.Static {
		b.Body.SetPosition(cp.Vector{X: x, Y: y})
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.shapes, info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
