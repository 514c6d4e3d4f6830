package entity

import (
	"fmt"

	"github.com/milk9111/tower/assets"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
	"github.com/milk9111/tower/prefabs"
)

// BuildRoom creates the floor and the four walls of a level's room and the
// enemy inside it. initial selects the first-room hue spacing.
func BuildRoom(w *ecs.World, spec prefabs.LevelSpec, level int, initial bool) (room ecs.Entity, enemy ecs.Entity, err error) {
	offset := spec.RoomOffset(level)
	hue := spec.Hue(level, initial)

	room = ecs.CreateEntity(w)
	if err := ecs.Add(w, room, component.RoomComponent.Kind(), &component.Room{
		Level:   level,
		OffsetX: offset,
		Width:   spec.RoomWidth,
		Height:  spec.RoomHeight,
		Hue:     hue,
	}); err != nil {
		return 0, 0, fmt.Errorf("room: add room: %w", err)
	}
	if err := ecs.Add(w, room, component.TransformComponent.Kind(), &component.Transform{X: offset}); err != nil {
		return 0, 0, fmt.Errorf("room: add transform: %w", err)
	}
	if err := ecs.Add(w, room, component.LevelLocationComponent.Kind(), &component.LevelLocation{Level: level}); err != nil {
		return 0, 0, fmt.Errorf("room: add level location: %w", err)
	}

	hw, hh := spec.RoomWidth/2, spec.RoomHeight/2
	wallColor := assets.HSV(hue, spec.Saturation, spec.Value*1.8)
	walls := [][4]float64{
		{-hw, -hh, hw, -hh},
		{hw, -hh, hw, hh},
		{hw, hh, -hw, hh},
		{-hw, hh, -hw, -hh},
	}
	for _, seg := range walls {
		wall := ecs.CreateEntity(w)
		if err := ecs.Add(w, wall, component.WallTagComponent.Kind(), &component.WallTag{}); err != nil {
			return 0, 0, fmt.Errorf("room: add wall tag: %w", err)
		}
		if err := ecs.Add(w, wall, component.TransformComponent.Kind(), &component.Transform{X: offset}); err != nil {
			return 0, 0, fmt.Errorf("room: add wall transform: %w", err)
		}
		if err := ecs.Add(w, wall, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Static:   true,
			Segment:  true,
			AX:       offset + seg[0],
			AY:       seg[1],
			BX:       offset + seg[2],
			BY:       seg[3],
			Radius:   spec.WallThickness,
			Friction: 0.5,
			Layer:    component.LayerSolid,
		}); err != nil {
			return 0, 0, fmt.Errorf("room: add wall body: %w", err)
		}
		if err := ecs.Add(w, wall, component.SpriteComponent.Kind(), &component.Sprite{
			Color: wallColor,
			Alpha: 1,
		}); err != nil {
			return 0, 0, fmt.Errorf("room: add wall sprite: %w", err)
		}
	}

	enemy, err = NewEnemyAt(w, level, offset+spec.EnemySpawn.X, spec.EnemySpawn.Y)
	if err != nil {
		return 0, 0, fmt.Errorf("room: %w", err)
	}
	return room, enemy, nil
}
