package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/tower/common"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
)

var (
	hudText    = color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	hudBarBack = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xc0}
	hudBarFill = color.NRGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}
)

// HUDSystem draws the level label and the boss health bar at the bottom
// centre of the screen.
type HUDSystem struct {
	face text.Face
}

func NewHUDSystem() *HUDSystem {
	return &HUDSystem{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUDSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if h == nil || w == nil || screen == nil {
		return
	}
	e, ok := w.First(component.HUDComponent.Kind())
	if !ok {
		return
	}
	hud, _ := ecs.Get(w, e, component.HUDComponent.Kind())

	b := screen.Bounds()
	barW := float64(b.Dx()) / 3
	barH := 12.0
	x := (float64(b.Dx()) - barW) / 2
	y := float64(b.Dy()) - 40

	fill := common.Clamp(hud.BossHealth, 0, 1)
	vector.FillRect(screen, float32(x), float32(y), float32(barW), float32(barH), hudBarBack, false)
	vector.FillRect(screen, float32(x), float32(y), float32(barW*fill), float32(barH), hudBarFill, false)

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(float64(b.Dx())/2, y-18)
	op.ColorScale.ScaleWithColor(hudText)
	text.Draw(screen, hud.LevelText, h.face, op)
}
