package assets

import (
	"image/color"
	"testing"

	"github.com/milk9111/tower/ecs/component"
)

func TestDrawShapeFillsCentre(t *testing.T) {
	red := color.NRGBA{R: 200, A: 255}
	tests := []component.SpriteShape{component.ShapeBox, component.ShapeCircle, component.ShapeCapsule}
	for _, shape := range tests {
		t.Run(string(shape), func(t *testing.T) {
			img := DrawShape(shape, 32, 32, red)
			if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
				t.Fatalf("bounds = %v", b)
			}
			// left of centre avoids the capsule's facing mark
			_, _, _, a := img.At(10, 16).RGBA()
			if a == 0 {
				t.Fatalf("expected opaque pixel inside %s", shape)
			}
		})
	}

	img := DrawShape(component.ShapeCircle, 32, 32, red)
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Fatalf("circle corner should be transparent")
	}
}

func TestToneLength(t *testing.T) {
	tests := []struct {
		wave Wave
		secs float64
		want int
	}{
		{WaveSine, 0.1, 4410 * 4},
		{WaveSquare, 0.5, 22050 * 4},
		{WaveNoise, 0, 0},
	}
	for _, tc := range tests {
		if got := len(Tone(tc.wave, 440, 0, tc.secs)); got != tc.want {
			t.Fatalf("%s %vs: got %d bytes, want %d", tc.wave, tc.secs, got, tc.want)
		}
	}
}

func TestHSV(t *testing.T) {
	tests := []struct {
		h, s, v float64
		want    color.NRGBA
	}{
		{0, 1, 1, color.NRGBA{R: 255, A: 255}},
		{120, 1, 1, color.NRGBA{G: 255, A: 255}},
		{240, 1, 1, color.NRGBA{B: 255, A: 255}},
		{360, 0, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tc := range tests {
		if got := HSV(tc.h, tc.s, tc.v); got != tc.want {
			t.Fatalf("HSV(%v,%v,%v) = %v, want %v", tc.h, tc.s, tc.v, got, tc.want)
		}
	}
}

func TestQuantize(t *testing.T) {
	if quantize(0.2) != 1 || quantize(7.5) != 8 || quantize(9) != 16 {
		t.Fatalf("quantize buckets wrong")
	}
}
