package component

import "github.com/jakecoffman/cp"

// CollisionLayer selects the collision type and handlers a body gets.
type CollisionLayer string

const (
	LayerSolid      CollisionLayer = "solid"
	LayerPlayer     CollisionLayer = "player"
	LayerEnemy      CollisionLayer = "enemy"
	LayerProjectile CollisionLayer = "projectile"
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape are filled in by the physics system.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	// Damping is linear drag per second applied to dynamic bodies.
	Damping float64
	Static  bool
	// FixedRotation gives the body infinite moment so contacts never spin it.
	FixedRotation bool
	Layer         CollisionLayer
	// Impulse is the launch impulse magnitude and SpawnOffset how far ahead of
	// the spawner the body appears. Spawners resolve them into ImpulseX/Y,
	// which are applied once when the body is created.
	Impulse     float64
	SpawnOffset float64
	ImpulseX    float64
	ImpulseY    float64
	// Segment colliders (static walls) use A/B instead of a box.
	Segment bool
	AX, AY  float64
	BX, BY  float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Contacts lists the entities (as ecs.Entity values) a body touched during
// the last physics step.
type Contacts struct {
	Entities []uint64
}

// Touching reports whether e was in contact during the last step.
func (c *Contacts) Touching(e uint64) bool {
	if c == nil {
		return false
	}
	for _, other := range c.Entities {
		if other == e {
			return true
		}
	}
	return false
}

var ContactsComponent = NewComponent[Contacts]()

// Force is a persistent force applied to a dynamic body every step.
type Force struct {
	X float64
	Y float64
}

var ForceComponent = NewComponent[Force]()
