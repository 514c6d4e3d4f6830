package component

import (
	"image/color"
	"time"
)

// Particle is a single point of a burst effect, in world units relative to
// the emitter.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Age    time.Duration
}

// GradientStop is a colour at a normalized particle age.
type GradientStop struct {
	At    float64
	Color color.NRGBA
}

// ParticleEmitter spawns a one-shot burst each time Replay is set.
type ParticleEmitter struct {
	Count    int
	Lifetime time.Duration
	SpeedMin float64
	SpeedMax float64
	Drag     float64
	Size     float64
	Gradient []GradientStop

	Replay    bool
	Particles []Particle
}

// ColorAt samples the gradient at t in [0,1].
func (p *ParticleEmitter) ColorAt(t float64) color.NRGBA {
	if len(p.Gradient) == 0 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	if t <= p.Gradient[0].At {
		return p.Gradient[0].Color
	}
	for i := 1; i < len(p.Gradient); i++ {
		a, b := p.Gradient[i-1], p.Gradient[i]
		if t > b.At {
			continue
		}
		span := b.At - a.At
		if span <= 0 {
			return b.Color
		}
		f := (t - a.At) / span
		return color.NRGBA{
			R: mix(a.Color.R, b.Color.R, f),
			G: mix(a.Color.G, b.Color.G, f),
			B: mix(a.Color.B, b.Color.B, f),
			A: mix(a.Color.A, b.Color.A, f),
		}
	}
	return p.Gradient[len(p.Gradient)-1].Color
}

func mix(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
}

var ParticleEmitterComponent = NewComponent[ParticleEmitter]()
