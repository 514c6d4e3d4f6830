package system

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/milk9111/tower/clock"
	"github.com/milk9111/tower/common"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
)

// PlayerMovementSystem turns camera-relative input into walking velocity and
// files dash requests. While a dash is active DashSystem owns the velocity.
type PlayerMovementSystem struct {
	clock  clock.Clock
	logger zerolog.Logger
}

func NewPlayerMovementSystem(c clock.Clock) *PlayerMovementSystem {
	return &PlayerMovementSystem{clock: c, logger: systemLogger("movement")}
}

func (s *PlayerMovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := s.clock.Delta()

	ecs.ForEach4(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		component.CharacterDashComponent.Kind(),
		func(e ecs.Entity, p *component.Player, input *component.Input, tr *component.Transform, dash *component.CharacterDash) {
			yaw := 0.0
			if _, cam, ok := rigCamera(w, e); ok {
				yaw = cam.Yaw
			}

			dirX, dirY, mag := 0.0, 0.0, 0.0
			if input.Captured {
				dirX, dirY, mag = moveDirection(yaw, input.Forward, input.Right)
			}

			if input.Dash && mag > p.MinDashInput {
				if dash.State == component.DashIdle {
					s.logger.Debug().Stringer("entity", e).Msg("dash requested")
				}
				dash.Request(dirX, dirY)
			} else {
				dash.Steer(dirX, dirY)
			}

			if rig, ok := ecs.Get(w, e, component.PlayerRigComponent.Kind()); ok {
				rig.Facing = yaw
			}
			if dash.Active() {
				return
			}
			setVelocity(w, e, tr, dirX*p.BaseSpeed, dirY*p.BaseSpeed, dt)
		})
}

// setVelocity drives the physics body when there is one and integrates the
// transform directly otherwise.
func setVelocity(w *ecs.World, e ecs.Entity, tr *component.Transform, vx, vy float64, dt time.Duration) {
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetVelocityVector(cp.Vector{X: vx, Y: vy})
		return
	}
	tr.MoveBy(vx*dt.Seconds(), vy*dt.Seconds())
}

// moveDirection maps forward/right axes onto the ground plane for a camera
// yaw and returns the unit direction plus the input magnitude.
func moveDirection(yaw, forward, right float64) (float64, float64, float64) {
	fx, fy, rx, ry := common.Forward(yaw)
	return common.Normalize(fx*forward+rx*right, fy*forward+ry*right)
}

// dashSpeed starts at the player's top speed and eases down to twice the
// walking speed as the dash completes.
func dashSpeed(p *component.Player, progress float64) float64 {
	return common.Lerp(p.MaxSpeed(), p.BaseSpeed*2, common.EaseOutExpo(progress))
}
