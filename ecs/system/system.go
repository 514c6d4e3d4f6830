// Package system holds the per-frame systems driven by ecs.Scheduler.
package system

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
)

// warnThrottle limits a repeated warning to one line every few seconds.
type warnThrottle struct {
	s rate.Sometimes
}

func newWarnThrottle() *warnThrottle {
	return &warnThrottle{s: rate.Sometimes{First: 1, Interval: 5 * time.Second}}
}

func (t *warnThrottle) Warn(logger zerolog.Logger, msg string) {
	t.s.Do(func() { logger.Warn().Msg(msg) })
}

func systemLogger(name string) zerolog.Logger {
	return log.With().Str("system", name).Logger()
}

// player returns the first live player entity.
func player(w *ecs.World) (ecs.Entity, bool) {
	return w.First(component.PlayerTagComponent.Kind())
}

// rigCamera resolves the camera linked from the player rig, falling back to
// the first camera in the world.
func rigCamera(w *ecs.World, p ecs.Entity) (ecs.Entity, *component.Camera, bool) {
	if rig, ok := ecs.Get(w, p, component.PlayerRigComponent.Kind()); ok && rig.Camera != 0 {
		e := ecs.FromRef(rig.Camera)
		if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
			return e, cam, true
		}
	}
	e, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
	return e, cam, ok
}
