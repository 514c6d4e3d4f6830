package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/tower/ecs"
)

const debugCircleSteps = 16

// PhysicsDebugSystem outlines every collision shape in the physics space,
// seen through the player camera. Enabled with -debug.
type PhysicsDebugSystem struct {
	physics *PhysicsSystem
}

func NewPhysicsDebugSystem(physics *PhysicsSystem) *PhysicsDebugSystem {
	return &PhysicsDebugSystem{physics: physics}
}

func (s *PhysicsDebugSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if s == nil || s.physics == nil || w == nil || screen == nil {
		return
	}
	p, ok := player(w)
	if !ok {
		return
	}
	_, cam, ok := rigCamera(w, p)
	if !ok {
		return
	}
	b := screen.Bounds()
	cp.DrawSpace(s.physics.Space(), &shapeOutliner{screen: screen, view: newView(cam, b.Dx(), b.Dy())})
}

// shapeOutliner implements cp.Drawer on top of the camera view.
type shapeOutliner struct {
	screen *ebiten.Image
	view   view
}

func (d *shapeOutliner) line(a, b cp.Vector, c cp.FColor) {
	ax, ay := d.view.toScreen(a.X, a.Y)
	bx, by := d.view.toScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, float32(ax), float32(ay), float32(bx), float32(by), 1, toRGBA(c), false)
}

func (d *shapeOutliner) DrawCircle(pos cp.Vector, angle, radius float64, outline, _ cp.FColor, _ interface{}) {
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= debugCircleSteps; i++ {
		th := float64(i) * 2 * math.Pi / debugCircleSteps
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.line(prev, cur, outline)
		prev = cur
	}
	d.line(pos, cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}, outline)
}

func (d *shapeOutliner) DrawSegment(a, b cp.Vector, fill cp.FColor, _ interface{}) {
	d.line(a, b, fill)
}

func (d *shapeOutliner) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, outline)
	if radius > 0 {
		d.DrawCircle(a, 0, radius, outline, fill, data)
		d.DrawCircle(b, 0, radius, outline, fill, data)
	}
}

func (d *shapeOutliner) DrawPolygon(count int, verts []cp.Vector, _ float64, outline, _ cp.FColor, _ interface{}) {
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], outline)
	}
}

func (d *shapeOutliner) DrawDot(size float64, pos cp.Vector, fill cp.FColor, _ interface{}) {
	x, y := d.view.toScreen(pos.X, pos.Y)
	vector.FillCircle(d.screen, float32(x), float32(y), float32(size/2), toRGBA(fill), false)
}

func (d *shapeOutliner) Flags() uint { return cp.DRAW_SHAPES }

func (d *shapeOutliner) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 1}
}

// ShapeColor tells walls, the player's side and enemies apart.
func (d *shapeOutliner) ShapeColor(shape *cp.Shape, _ interface{}) cp.FColor {
	switch {
	case shape == nil:
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	case shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC:
		return cp.FColor{R: 0.4, G: 0.7, B: 1, A: 1}
	case shape.CollisionType() == collisionTypePlayer || shape.CollisionType() == collisionTypeProjectile:
		return cp.FColor{R: 0.3, G: 1, B: 0.5, A: 1}
	default:
		return cp.FColor{R: 1, G: 0.3, B: 0.3, A: 1}
	}
}

func (d *shapeOutliner) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1}
}

func (d *shapeOutliner) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.1, B: 0.1, A: 1}
}

func (d *shapeOutliner) Data() interface{} { return nil }

func toRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		return uint8(math.Max(0, math.Min(1, float64(v))) * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
