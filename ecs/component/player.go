package component

// Player holds movement tuning for the controllable character. Speeds are in
// world units per second.
type Player struct {
	BaseSpeed      float64
	DashMultiplier float64
	// MinDashInput is the movement magnitude required before a dash may be
	// requested, so a stationary player cannot dash.
	MinDashInput float64
}

// MaxSpeed is the speed at the start of a dash.
func (p *Player) MaxSpeed() float64 {
	return p.BaseSpeed * p.DashMultiplier
}

var PlayerComponent = NewComponent[Player]()

// PlayerRig groups the fixed sub-entities that make up the player.
type PlayerRig struct {
	Camera     uint64 // ecs.Entity of the follow camera
	DashEffect uint64 // ecs.Entity of the dash particle emitter
	// Facing is the mesh orientation in radians. It follows the camera
	// forward vector independently of the collider.
	Facing float64
}

var PlayerRigComponent = NewComponent[PlayerRig]()
