package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
)

// NewMenuUI builds the title screen. Play starts the run.
func NewMenuUI(g *Game) *ebitenui.UI {
	face := uiFace()
	return centeredPanel(color.NRGBA{R: 0x18, G: 0x18, B: 0x20, A: 230}, func(panel *widget.Container) {
		panel.AddChild(uiTitle("TOWER", face))
		panel.AddChild(uiTitle("WASD move, mouse look, Space dash, left click shoot", face))
		panel.AddChild(uiTitle("Right click frees the cursor, P pauses, Esc quits", face))
		panel.AddChild(uiButton("Play", face, g.StartPlaying))
	})
}
