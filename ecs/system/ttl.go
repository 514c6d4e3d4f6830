package system

import (
	"github.com/milk9111/tower/clock"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
)

// TTLSystem counts TTL components down by the frame delta and destroys
// entities when the TTL runs out.
type TTLSystem struct {
	clock clock.Clock
}

func NewTTLSystem(c clock.Clock) *TTLSystem {
	return &TTLSystem{clock: c}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := s.clock.Delta()

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl.Tick(dt) {
			ecs.DestroyEntity(w, e)
		}
	})
}
