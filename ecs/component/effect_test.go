package component

import (
	"image/color"
	"testing"
)

func TestParticleEmitterColorAt(t *testing.T) {
	p := ParticleEmitter{Gradient: []GradientStop{
		{At: 0, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{At: 0.5, Color: color.NRGBA{R: 255, A: 255}},
		{At: 1, Color: color.NRGBA{}},
	}}

	tests := []struct {
		name string
		t    float64
		want color.NRGBA
	}{
		{"start", 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"mid", 0.5, color.NRGBA{R: 255, A: 255}},
		{"quarter", 0.25, color.NRGBA{R: 255, G: 128, B: 128, A: 255}},
		{"end", 1, color.NRGBA{}},
		{"past_end", 2, color.NRGBA{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.ColorAt(tc.t); got != tc.want {
				t.Fatalf("ColorAt(%v) = %v, want %v", tc.t, got, tc.want)
			}
		})
	}
}

func TestAudioTrigger(t *testing.T) {
	a := &Audio{Names: []string{"shot", "dash"}, Play: make([]bool, 2)}
	if !a.Trigger("dash") || !a.Play[1] || a.Play[0] {
		t.Fatalf("expected dash cue flagged, got %v", a.Play)
	}
	if a.Trigger("missing") {
		t.Fatalf("unknown cue should not trigger")
	}
}
