package entity

import (
	"fmt"

	"github.com/milk9111/tower/common"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
)

// NewProjectile fires a shot from (x, y) along (dirX, dirY). The direction
// is normalised; the prefab decides spawn distance and launch impulse.
func NewProjectile(w *ecs.World, x, y, dirX, dirY float64) (ecs.Entity, error) {
	dx, dy, l := common.Normalize(dirX, dirY)
	if l == 0 {
		return 0, fmt.Errorf("projectile: zero direction")
	}

	e, err := BuildEntity(w, "projectile.yaml")
	if err != nil {
		return 0, err
	}

	offset := 0.0
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		offset = body.SpawnOffset
		body.ImpulseX = dx * body.Impulse
		body.ImpulseY = dy * body.Impulse
	}
	if err := SetEntityTransform(w, e, x+dx*offset, y+dy*offset, 0); err != nil {
		return 0, fmt.Errorf("projectile: override transform: %w", err)
	}
	return e, nil
}
