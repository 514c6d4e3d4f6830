package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/tower/common"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
)

// regrowRate is how fast an occluded camera eases back out, per frame.
const regrowRate = 1.2

// Occluder reports the distance from a to the first static shape on the
// segment a->b.
type Occluder interface {
	FirstStaticHit(ax, ay, bx, by float64) (float64, bool)
}

// CameraSystem orbits the follow camera around the player, applies wheel
// zoom and pulls the view in when a wall sits between the player and the
// eye.
type CameraSystem struct {
	occluder Occluder
	logger   zerolog.Logger
	warn     *warnThrottle
}

func NewCameraSystem(occluder Occluder) *CameraSystem {
	return &CameraSystem{
		occluder: occluder,
		logger:   systemLogger("camera"),
		warn:     newWarnThrottle(),
	}
}

func (s *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	p, ok := player(w)
	if !ok {
		s.warn.Warn(s.logger, "no player to follow")
		return
	}
	_, cam, ok := rigCamera(w, p)
	if !ok {
		s.warn.Warn(s.logger, "no camera")
		return
	}
	tr, ok := ecs.Get(w, p, component.TransformComponent.Kind())
	if !ok {
		return
	}

	if input, ok := ecs.Get(w, p, component.InputComponent.Kind()); ok {
		if input.Captured {
			cam.Yaw += input.OrbitDX * cam.RotateSensitivity
		}
		if input.Wheel != 0 {
			applyWheel(cam, input.Wheel)
		}
	}

	maxR := cam.MaxZoom
	if s.occluder != nil {
		fx, fy, _, _ := common.Forward(cam.Yaw)
		if d, hit := s.occluder.FirstStaticHit(tr.X, tr.Y, tr.X-fx*cam.MaxZoom, tr.Y-fy*cam.MaxZoom); hit {
			maxR = d - 1
		}
	}
	cam.Radius = followRadius(cam.Radius, cam.Zoom, cam.MinZoom, maxR)
	cam.CenterX, cam.CenterY = tr.X, tr.Y
}

func applyWheel(cam *component.Camera, wheel float64) {
	scalar := 1 - wheel*cam.WheelSensitivity
	cam.Zoom = common.Clamp(cam.Zoom*scalar, cam.MinZoom, cam.MaxZoom)
}

// followRadius moves radius toward zoom, regrowing gradually after an
// occlusion, and keeps it inside [lo, maxR].
func followRadius(radius, zoom, lo, maxR float64) float64 {
	r := zoom
	if radius < zoom {
		r = radius * regrowRate
		if r > zoom {
			r = zoom
		}
	}
	hi := maxR
	if hi < lo {
		hi = lo
	}
	return common.Clamp(r, lo, hi)
}
