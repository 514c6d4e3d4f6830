// Package assets generates the game's sprites and sounds at load time.
package assets

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tower/ecs/component"
)

// DrawShape rasterises a sprite shape into a w×h image.
func DrawShape(shape component.SpriteShape, w, h int, c color.NRGBA) image.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dc := gg.NewContext(w, h)
	fw, fh := float64(w), float64(h)
	outline := math.Max(1, math.Min(fw, fh)*0.08)
	dark := color.NRGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}

	switch shape {
	case component.ShapeCapsule:
		r := math.Min(fw, fh) / 2
		dc.DrawRoundedRectangle(outline/2, outline/2, fw-outline, fh-outline, r)
		dc.SetColor(c)
		dc.FillPreserve()
		dc.SetColor(dark)
		dc.SetLineWidth(outline)
		dc.Stroke()
		// nose marks the facing direction (+X)
		dc.DrawCircle(fw*0.75, fh/2, r*0.25)
		dc.SetColor(dark)
		dc.Fill()
	case component.ShapeCircle:
		dc.DrawCircle(fw/2, fh/2, math.Min(fw, fh)/2)
		dc.SetColor(c)
		dc.Fill()
	default:
		dc.DrawRectangle(outline/2, outline/2, fw-outline, fh-outline)
		dc.SetColor(c)
		dc.FillPreserve()
		dc.SetColor(dark)
		dc.SetLineWidth(outline)
		dc.Stroke()
	}
	return dc.Image()
}

type spriteKey struct {
	shape component.SpriteShape
	w, h  int
	color color.NRGBA
}

// SpriteCache keeps one GPU image per distinct sprite look.
type SpriteCache struct {
	images map[spriteKey]*ebiten.Image
}

func NewSpriteCache() *SpriteCache {
	return &SpriteCache{images: make(map[spriteKey]*ebiten.Image)}
}

// Image returns the image for s at the given pixels-per-unit. Sizes are
// rounded so small zoom changes reuse images.
func (c *SpriteCache) Image(s *component.Sprite, ppu float64) *ebiten.Image {
	if c == nil || s == nil {
		return nil
	}
	key := spriteKey{
		shape: s.Shape,
		w:     quantize(s.Width * ppu),
		h:     quantize(s.Height * ppu),
		color: s.Color,
	}
	if img, ok := c.images[key]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(DrawShape(key.shape, key.w, key.h, key.color))
	c.images[key] = img
	return img
}

// Len returns the number of cached images.
func (c *SpriteCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.images)
}

func quantize(px float64) int {
	if px <= 8 {
		return int(math.Max(1, math.Ceil(px)))
	}
	// 8px buckets
	return int(math.Ceil(px/8)) * 8
}

// HSV converts hue (degrees), saturation and value to a colour.
func HSV(h, s, v float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	to8 := func(f float64) uint8 { return uint8(math.Round((f + m) * 255)) }
	return color.NRGBA{R: to8(r), G: to8(g), B: to8(b), A: 255}
}
