package entity

import (
	"fmt"

	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
)

// NewEnemyAt builds the enemy guarding level. Its health grows with the
// level index.
func NewEnemyAt(w *ecs.World, level int, x, y float64) (ecs.Entity, error) {
	e, err := buildEntity(w, "enemy.yaml", &buildContext{PrefabPath: "enemy.yaml", Level: level})
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, y, 0); err != nil {
		return 0, fmt.Errorf("enemy: override transform: %w", err)
	}
	if err := ecs.Add(w, e, component.LevelLocationComponent.Kind(), &component.LevelLocation{Level: level}); err != nil {
		return 0, fmt.Errorf("enemy: add level location: %w", err)
	}
	return e, nil
}
