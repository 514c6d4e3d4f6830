package component

// Transform is an entity's pose in world units. Rotation is in radians,
// measured from +X toward +Y.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

// MoveBy shifts the transform by (dx, dy).
func (t *Transform) MoveBy(dx, dy float64) {
	t.X += dx
	t.Y += dy
}

var TransformComponent = NewComponent[Transform]()
