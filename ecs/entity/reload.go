package entity

import (
	"fmt"

	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
	"github.com/milk9111/tower/prefabs"
)

// ApplyTuning re-reads a prefab and pushes its tunables onto live entities.
// Runtime state such as cooldown timers and positions is kept. It reports
// whether the prefab affects live entities at all.
func ApplyTuning(w *ecs.World, prefab string) (bool, error) {
	switch prefab {
	case "player.yaml":
		return true, retunePlayer(w)
	case "camera.yaml":
		return true, retuneCamera(w)
	case "enemy.yaml":
		return true, retuneEnemies(w)
	default:
		return false, nil
	}
}

func loadComponents(prefab string) (map[string]any, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefab)
	if err != nil {
		return nil, fmt.Errorf("retune %s: %w", prefab, err)
	}
	return spec.Components, nil
}

func retunePlayer(w *ecs.World) error {
	comps, err := loadComponents("player.yaml")
	if err != nil {
		return err
	}
	playerSpec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](comps["player"])
	if err != nil {
		return fmt.Errorf("retune player: decode player: %w", err)
	}
	dashSpec, err := prefabs.DecodeComponentSpec[prefabs.DashComponentSpec](comps["dash"])
	if err != nil {
		return fmt.Errorf("retune player: decode dash: %w", err)
	}
	attackSpec, err := prefabs.DecodeComponentSpec[prefabs.AbilityCooldownComponentSpec](comps["attack_cooldown"])
	if err != nil {
		return fmt.Errorf("retune player: decode attack cooldown: %w", err)
	}

	tuned := playerFromSpec(playerSpec)
	dashCD := cooldownFromSpec(dashSpec.AbilityCooldownComponentSpec)
	attackCD := cooldownFromSpec(attackSpec)

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, p *component.Player) {
		*p = *tuned
		if dash, ok := ecs.Get(w, e, component.CharacterDashComponent.Kind()); ok {
			dash.Duration = seconds(dashSpec.DurationSecs)
			dash.Cooldown = dash.Cooldown.Retuned(dashCD.Cooldown(), dashCD.GraceFraction())
		}
		if cd, ok := ecs.Get(w, e, component.AttackCooldownComponent.Kind()); ok {
			*cd = cd.Retuned(attackCD.Cooldown(), attackCD.GraceFraction())
		}
	})
	return nil
}

func retuneCamera(w *ecs.World) error {
	comps, err := loadComponents("camera.yaml")
	if err != nil {
		return err
	}
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](comps["camera"])
	if err != nil {
		return fmt.Errorf("retune camera: decode: %w", err)
	}
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
		applyCameraSpec(cam, spec)
	})
	return nil
}

func retuneEnemies(w *ecs.World) error {
	comps, err := loadComponents("enemy.yaml")
	if err != nil {
		return err
	}
	spec, err := prefabs.DecodeComponentSpec[prefabs.BehaviourComponentSpec](comps["behaviour"])
	if err != nil {
		return fmt.Errorf("retune enemies: decode behaviour: %w", err)
	}
	ecs.ForEach(w, component.BehaviourComponent.Kind(), func(_ ecs.Entity, b *component.Behaviour) {
		b.Strength = spec.Strength
		if spec.Script != "" {
			b.Script = spec.Script
		}
	})
	return nil
}
