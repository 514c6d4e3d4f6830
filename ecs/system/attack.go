package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/tower/clock"
	"github.com/milk9111/tower/common"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
	"github.com/milk9111/tower/ecs/entity"
)

// AttackSystem fires a projectile along the player's facing whenever the
// attack cooldown grants a request. Holding the button keeps requesting, and
// a request made inside the grace window fires on its own once ready.
type AttackSystem struct {
	clock  clock.Clock
	logger zerolog.Logger
}

func NewAttackSystem(c clock.Clock) *AttackSystem {
	return &AttackSystem{clock: c, logger: systemLogger("attack")}
}

func (s *AttackSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := s.clock.Now()

	var shooters []ecs.Entity
	ecs.ForEach3(w,
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		component.AttackCooldownComponent.Kind(),
		func(e ecs.Entity, input *component.Input, _ *component.Transform, cd *component.AbilityCooldown) {
			if input.Attack || cd.IsPending() {
				cd.RequestActivation(now)
			}
			if cd.Consume(now) {
				shooters = append(shooters, e)
			}
		})

	// Spawning adds entities, so it happens outside the iteration.
	for _, e := range shooters {
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		facing := 0.0
		if rig, ok := ecs.Get(w, e, component.PlayerRigComponent.Kind()); ok {
			facing = rig.Facing
		}
		fx, fy, _, _ := common.Forward(facing)
		shot, err := entity.NewProjectile(w, tr.X, tr.Y, fx, fy)
		if err != nil {
			s.logger.Error().Err(err).Str("ability", "attack").Msg("spawn projectile")
			continue
		}
		w.Events().Push(ecs.Event{Type: ecs.EventShotFired, Entity: shot})
	}
}
