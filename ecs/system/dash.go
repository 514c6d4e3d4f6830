package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/tower/clock"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
)

// DashSystem grants pending dash requests through the dash cooldown and
// drives the player while a dash is in progress.
type DashSystem struct {
	clock  clock.Clock
	logger zerolog.Logger
}

func NewDashSystem(c clock.Clock) *DashSystem {
	return &DashSystem{clock: c, logger: systemLogger("dash")}
}

func (s *DashSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now, dt := s.clock.Now(), s.clock.Delta()

	ecs.ForEach3(w,
		component.PlayerComponent.Kind(),
		component.TransformComponent.Kind(),
		component.CharacterDashComponent.Kind(),
		func(e ecs.Entity, p *component.Player, tr *component.Transform, dash *component.CharacterDash) {
			progress := 0.0
			switch {
			case dash.TryActivate(now):
				s.logger.Debug().Stringer("entity", e).Dur("at", now).Msg("dash started")
				s.replayEffect(w, e, tr)
				w.Events().Push(ecs.Event{Type: ecs.EventDashStarted, Entity: e})
			case dash.Active():
				progress, _ = dash.Advance(dt)
			default:
				return
			}

			speed := dashSpeed(p, progress)
			setVelocity(w, e, tr, dash.DirX*speed, dash.DirY*speed, dt)
		})
}

// replayEffect restarts the dash burst at the player. A player without an
// effect dashes silently.
func (s *DashSystem) replayEffect(w *ecs.World, p ecs.Entity, tr *component.Transform) {
	rig, ok := ecs.Get(w, p, component.PlayerRigComponent.Kind())
	if !ok || rig.DashEffect == 0 {
		return
	}
	fx := ecs.FromRef(rig.DashEffect)
	emitter, ok := ecs.Get(w, fx, component.ParticleEmitterComponent.Kind())
	if !ok {
		return
	}
	emitter.Replay = true
	if ftr, ok := ecs.Get(w, fx, component.TransformComponent.Kind()); ok {
		ftr.X, ftr.Y = tr.X, tr.Y
	}
}
