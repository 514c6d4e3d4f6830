package system

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/tower/clock"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
)

// EffectSystem restarts particle bursts flagged for replay and integrates
// live particles with linear drag.
type EffectSystem struct {
	clock clock.Clock
	rng   *rand.Rand
}

func NewEffectSystem(c clock.Clock, seed uint64) *EffectSystem {
	return &EffectSystem{clock: c, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *EffectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := s.clock.Delta()
	secs := dt.Seconds()

	ecs.ForEach2(w, component.ParticleEmitterComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, em *component.ParticleEmitter, tr *component.Transform) {
		if em.Replay {
			em.Replay = false
			s.burst(em, tr.X, tr.Y)
			return
		}
		if len(em.Particles) == 0 || secs <= 0 {
			return
		}

		drag := math.Max(0, 1-em.Drag*secs)
		live := em.Particles[:0]
		for _, p := range em.Particles {
			p.Age += dt
			if p.Age >= em.Lifetime {
				continue
			}
			p.VX *= drag
			p.VY *= drag
			p.X += p.VX * secs
			p.Y += p.VY * secs
			live = append(live, p)
		}
		em.Particles = live
	})
}

// burst replaces any live particles with a fresh ring moving outward.
func (s *EffectSystem) burst(em *component.ParticleEmitter, x, y float64) {
	em.Particles = em.Particles[:0]
	for i := 0; i < em.Count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(em.Count)
		speed := em.SpeedMin + s.rng.Float64()*(em.SpeedMax-em.SpeedMin)
		em.Particles = append(em.Particles, component.Particle{
			X:  x,
			Y:  y,
			VX: math.Cos(angle) * speed,
			VY: math.Sin(angle) * speed,
		})
	}
}
