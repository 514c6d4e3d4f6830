package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
	"github.com/milk9111/tower/ecs/entity"
	"github.com/milk9111/tower/prefabs"
	"github.com/milk9111/tower/session"
)

// LevelProgressSystem resolves projectile hits on the current level's enemy.
// Each touching projectile is consumed and costs the enemy one health; the
// killing hit clears every projectile and advances the level once.
type LevelProgressSystem struct {
	session *session.State
	logger  zerolog.Logger
}

func NewLevelProgressSystem(state *session.State) *LevelProgressSystem {
	return &LevelProgressSystem{session: state, logger: systemLogger("level")}
}

func (s *LevelProgressSystem) Update(w *ecs.World) {
	if w == nil || s.session == nil {
		return
	}

	enemies := w.Query(
		component.EnemyTagComponent.Kind(),
		component.HealthComponent.Kind(),
		component.LevelLocationComponent.Kind(),
	)
	projectiles := w.Query(component.ProjectileTagComponent.Kind(), component.ContactsComponent.Kind())

	for _, enemy := range enemies {
		loc, _ := ecs.Get(w, enemy, component.LevelLocationComponent.Kind())
		if loc.Level != s.session.Level {
			// The pass stops at the first enemy outside the current level.
			return
		}
		health, _ := ecs.Get(w, enemy, component.HealthComponent.Kind())

		for _, shot := range projectiles {
			contacts, ok := ecs.Get(w, shot, component.ContactsComponent.Kind())
			if !ok || !contacts.Touching(enemy.Ref()) {
				continue
			}

			ecs.DestroyEntity(w, shot)
			health.Current--
			w.Events().Push(ecs.Event{Type: ecs.EventEnemyHit, Entity: enemy})

			if health.Current <= 0 {
				s.defeat(w, enemy, projectiles)
				return
			}
			s.setHUD(w, "", float64(health.Current)/float64(s.session.Level+1))
		}
	}
}

func (s *LevelProgressSystem) defeat(w *ecs.World, enemy ecs.Entity, projectiles []ecs.Entity) {
	ecs.DestroyEntity(w, enemy)
	level := s.session.Advance()

	for _, shot := range projectiles {
		ecs.DestroyEntity(w, shot)
	}

	w.Events().Push(ecs.Event{Type: ecs.EventEnemyDefeated, Entity: enemy})
	w.Events().Push(ecs.Event{Type: ecs.EventLevelChanged, Data: ecs.LevelChanged{Level: level}})
	s.setHUD(w, session.LevelLabel(level), 1)

	s.logger.Info().Int("level", level).Msg("enemy defeated, level advanced")
}

func (s *LevelProgressSystem) setHUD(w *ecs.World, label string, bar float64) {
	ecs.ForEach(w, component.HUDComponent.Kind(), func(_ ecs.Entity, hud *component.HUD) {
		if label != "" {
			hud.LevelText = label
		}
		hud.BossHealth = bar
	})
}

// LevelSpawnSystem builds the room for the current level when it has not
// been built yet and carries the player across by the room spacing.
type LevelSpawnSystem struct {
	session *session.State
	spec    prefabs.LevelSpec
	logger  zerolog.Logger
}

func NewLevelSpawnSystem(state *session.State, spec prefabs.LevelSpec) *LevelSpawnSystem {
	return &LevelSpawnSystem{session: state, spec: spec, logger: systemLogger("spawn")}
}

// SetSpec swaps the room layout used for rooms built from now on.
func (s *LevelSpawnSystem) SetSpec(spec prefabs.LevelSpec) {
	s.spec = spec
}

func (s *LevelSpawnSystem) Update(w *ecs.World) {
	if w == nil || s.session == nil || !s.session.NeedsSpawn() {
		return
	}

	level := s.session.Level
	previous := s.session.Spawned
	if _, _, err := entity.BuildRoom(w, s.spec, level, previous < 0); err != nil {
		s.logger.Error().Err(err).Int("level", level).Msg("build room")
		return
	}
	s.session.Spawned = level

	if previous >= 0 {
		dx := s.spec.RoomOffset(level) - s.spec.RoomOffset(previous)
		if p, ok := player(w); ok {
			if tr, ok := ecs.Get(w, p, component.TransformComponent.Kind()); ok {
				teleport(w, p, tr.X+dx, tr.Y)
			}
		}
	}
	s.logger.Info().Int("level", level).Msg("room spawned")
}
