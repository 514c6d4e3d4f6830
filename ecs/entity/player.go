package entity

import (
	"fmt"

	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
)

// NewPlayerAt builds the player with its follow camera and dash effect, and
// links them through a PlayerRig.
func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	player, err := BuildEntity(w, "player.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, player, x, y, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}

	camera, err := BuildEntity(w, "camera.yaml")
	if err != nil {
		ecs.DestroyEntity(w, player)
		return 0, fmt.Errorf("player: camera: %w", err)
	}
	effect, err := BuildEntity(w, "dash_effect.yaml")
	if err != nil {
		ecs.DestroyEntity(w, player)
		ecs.DestroyEntity(w, camera)
		return 0, fmt.Errorf("player: dash effect: %w", err)
	}

	rig := &component.PlayerRig{Camera: camera.Ref(), DashEffect: effect.Ref()}
	if cam, ok := ecs.Get(w, camera, component.CameraComponent.Kind()); ok {
		rig.Facing = cam.Yaw
		cam.CenterX, cam.CenterY = x, y
	}
	if err := ecs.Add(w, player, component.PlayerRigComponent.Kind(), rig); err != nil {
		return 0, fmt.Errorf("player: add rig: %w", err)
	}
	return player, nil
}
