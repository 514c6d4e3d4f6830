package component

import "image/color"

// SpriteShape names a procedurally generated sprite.
type SpriteShape string

const (
	ShapeCapsule SpriteShape = "capsule"
	ShapeBox     SpriteShape = "box"
	ShapeCircle  SpriteShape = "circle"
)

// Sprite describes how an entity is drawn. Width and Height are in world
// units; the image itself is generated and cached by the render system.
type Sprite struct {
	Shape  SpriteShape
	Width  float64
	Height float64
	Color  color.NRGBA
	Alpha  float64
}

var SpriteComponent = NewComponent[Sprite]()

// Room is the floor of one level, drawn beneath everything else.
type Room struct {
	Level   int
	OffsetX float64
	Width   float64
	Height  float64
	Hue     float64
}

var RoomComponent = NewComponent[Room]()
