package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/tower/common"
)

var (
	uiTextColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	uiButtonIdle  = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	uiButtonHover = color.NRGBA{R: 0x55, G: 0x44, B: 0x44, A: 0xff}
	uiButtonPress = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
)

func uiFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

func uiButton(label string, face *ebtext.Face, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    imageui.NewNineSliceColor(uiButtonIdle),
			Hover:   imageui.NewNineSliceColor(uiButtonHover),
			Pressed: imageui.NewNineSliceColor(uiButtonPress),
		}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: uiTextColor}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(160, 28),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// centeredPanel is a vertical panel centred on screen; fill adds its rows.
func centeredPanel(bg color.Color, fill func(panel *widget.Container)) *ebitenui.UI {
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(bg)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	fill(panel)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func uiTitle(label string, face *ebtext.Face) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, face, uiTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

// NewPauseUI builds the pause overlay with a Resume button.
func NewPauseUI(g *Game) *ebitenui.UI {
	face := uiFace()
	return centeredPanel(color.NRGBA{A: 200}, func(panel *widget.Container) {
		panel.AddChild(uiTitle("Paused", face))
		panel.AddChild(uiButton("Resume", face, func() { g.SetPaused(false) }))
	})
}
