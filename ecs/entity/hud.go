package entity

import "github.com/milk9111/tower/ecs"

func NewHUD(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "hud.yaml")
}
