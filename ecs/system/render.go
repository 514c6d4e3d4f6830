package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/tower/assets"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
)

const floorGridStep = 5.0

// view maps world units onto the screen. The camera's forward direction
// always points up.
type view struct {
	cx, cy   float64
	ppu      float64
	angle    float64
	halfW    float64
	halfH    float64
	cos, sin float64
}

func newView(cam *component.Camera, screenW, screenH int) view {
	radius := cam.Radius
	if radius <= 0 {
		radius = cam.Zoom
	}
	if radius <= 0 {
		radius = 1
	}
	ppu := cam.PixelsPerUnit
	if cam.ReferenceRadius > 0 {
		ppu = cam.PixelsPerUnit * cam.ReferenceRadius / radius
	}
	angle := -math.Pi/2 - cam.Yaw
	return view{
		cx:    cam.CenterX,
		cy:    cam.CenterY,
		ppu:   ppu,
		angle: angle,
		halfW: float64(screenW) / 2,
		halfH: float64(screenH) / 2,
		cos:   math.Cos(angle),
		sin:   math.Sin(angle),
	}
}

func (v view) toScreen(x, y float64) (float64, float64) {
	dx, dy := x-v.cx, y-v.cy
	rx := dx*v.cos - dy*v.sin
	ry := dx*v.sin + dy*v.cos
	return v.halfW + rx*v.ppu, v.halfH + ry*v.ppu
}

// RenderSystem draws rooms, sprites and particles from the player camera's
// point of view.
type RenderSystem struct {
	sprites *assets.SpriteCache
}

func NewRenderSystem(sprites *assets.SpriteCache) *RenderSystem {
	if sprites == nil {
		sprites = assets.NewSpriteCache()
	}
	return &RenderSystem{sprites: sprites}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
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
	v := newView(cam, b.Dx(), b.Dy())

	r.drawRooms(w, screen, v)
	r.drawSprites(w, screen, v)
	r.drawParticles(w, screen, v)
}

func (r *RenderSystem) drawRooms(w *ecs.World, screen *ebiten.Image, v view) {
	ecs.ForEach(w, component.RoomComponent.Kind(), func(_ ecs.Entity, room *component.Room) {
		grid := assets.HSV(room.Hue, 0.3, 0.2)
		halfW, halfH := room.Width/2, room.Height/2
		for x := -halfW; x <= halfW; x += floorGridStep {
			r.line(screen, v, room.OffsetX+x, -halfH, room.OffsetX+x, halfH, 1, grid)
		}
		for y := -halfH; y <= halfH; y += floorGridStep {
			r.line(screen, v, room.OffsetX-halfW, y, room.OffsetX+halfW, y, 1, grid)
		}
	})

	ecs.ForEach3(w, component.WallTagComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.SpriteComponent.Kind(),
		func(_ ecs.Entity, _ *component.WallTag, body *component.PhysicsBody, sprite *component.Sprite) {
			width := math.Max(2, body.Radius*2*v.ppu)
			r.line(screen, v, body.AX, body.AY, body.BX, body.BY, width, sprite.Color)
		})
}

func (r *RenderSystem) line(screen *ebiten.Image, v view, ax, ay, bx, by, width float64, c color.Color) {
	x0, y0 := v.toScreen(ax, ay)
	x1, y1 := v.toScreen(bx, by)
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

func (r *RenderSystem) drawSprites(w *ecs.World, screen *ebiten.Image, v view) {
	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool { return uint64(entities[i]) < uint64(entities[j]) })

	for _, e := range entities {
		if ecs.Has(w, e, component.WallTagComponent.Kind()) {
			continue
		}
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		img := r.sprites.Image(sprite, v.ppu)
		if img == nil {
			continue
		}

		rotation := tr.Rotation
		if rig, ok := ecs.Get(w, e, component.PlayerRigComponent.Kind()); ok {
			rotation = rig.Facing
		}

		ib := img.Bounds()
		sx, sy := v.toScreen(tr.X, tr.Y)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(ib.Dx())/2, -float64(ib.Dy())/2)
		op.GeoM.Rotate(rotation + v.angle)
		op.GeoM.Translate(sx, sy)
		if sprite.Alpha > 0 && sprite.Alpha < 1 {
			op.ColorScale.ScaleAlpha(float32(sprite.Alpha))
		}
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	}
}

func (r *RenderSystem) drawParticles(w *ecs.World, screen *ebiten.Image, v view) {
	ecs.ForEach(w, component.ParticleEmitterComponent.Kind(), func(_ ecs.Entity, em *component.ParticleEmitter) {
		if em.Lifetime <= 0 {
			return
		}
		for _, p := range em.Particles {
			t := p.Age.Seconds() / em.Lifetime.Seconds()
			radius := em.Size * (1 - t) * v.ppu
			if radius <= 0.25 {
				continue
			}
			x, y := v.toScreen(p.X, p.Y)
			vector.FillCircle(screen, float32(x), float32(y), float32(radius), em.ColorAt(t), true)
		}
	})
}
