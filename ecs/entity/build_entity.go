package entity

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/tower/assets"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
	"github.com/milk9111/tower/prefabs"
)

type buildContext struct {
	PrefabPath string
	// Level scales per-level components such as health.
	Level int
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":       addPlayerTag,
	"camera_tag":       addCameraTag,
	"enemy_tag":        addEnemyTag,
	"projectile_tag":   addProjectileTag,
	"player":           addPlayer,
	"input":            addInput,
	"transform":        addTransform,
	"sprite":           addSprite,
	"physics_body":     addPhysicsBody,
	"dash":             addDash,
	"attack_cooldown":  addAttackCooldown,
	"health":           addHealth,
	"ttl":              addTTL,
	"contacts":         addContacts,
	"force":            addForce,
	"behaviour":        addBehaviour,
	"camera":           addCamera,
	"particle_emitter": addParticleEmitter,
	"audio":            addAudio,
	"hud":              addHUD,
}

var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"enemy_tag",
	"projectile_tag",
	"player",
	"input",
	"transform",
	"sprite",
	"physics_body",
	"dash",
	"attack_cooldown",
	"health",
	"ttl",
	"contacts",
	"force",
	"behaviour",
	"camera",
	"particle_emitter",
	"audio",
	"hud",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return buildEntity(w, prefabPath, &buildContext{PrefabPath: prefabPath})
}

func buildEntity(w *ecs.World, prefabPath string, ctx *buildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	// unknown names last, in a stable order, so the error is deterministic
	extra := make([]string, 0, len(remaining))
	for name := range remaining {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	names = append(names, extra...)

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addEnemyTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
}

func addProjectileTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ProjectileTagComponent.Kind(), &component.ProjectileTag{})
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), playerFromSpec(spec))
}

func playerFromSpec(spec prefabs.PlayerComponentSpec) *component.Player {
	if spec.DashMultiplier <= 0 {
		spec.DashMultiplier = 1
	}
	return &component.Player{
		BaseSpeed:      spec.BaseSpeed,
		DashMultiplier: spec.DashMultiplier,
		MinDashInput:   spec.MinDashInput,
	}
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Rotation: spec.Rotation,
	})
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	shape := component.SpriteShape(spec.Shape)
	switch shape {
	case component.ShapeBox, component.ShapeCapsule, component.ShapeCircle:
	case "":
		shape = component.ShapeBox
	default:
		return fmt.Errorf("unknown sprite shape %q", spec.Shape)
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Shape:  shape,
		Width:  spec.Width,
		Height: spec.Height,
		Color:  spec.Color.NRGBA,
		Alpha:  1,
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Radius <= 0 && (spec.Width <= 0 || spec.Height <= 0) {
		return fmt.Errorf("physics body needs a radius or a size")
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}

	layer := component.CollisionLayer(spec.Layer)
	switch layer {
	case component.LayerSolid, component.LayerPlayer, component.LayerEnemy, component.LayerProjectile:
	case "":
		layer = component.LayerSolid
	default:
		return fmt.Errorf("unknown collision layer %q", spec.Layer)
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:         spec.Width,
		Height:        spec.Height,
		Radius:        spec.Radius,
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		Elasticity:    spec.Elasticity,
		Damping:       spec.Damping,
		Static:        spec.Static,
		FixedRotation: spec.FixedRotation,
		Layer:         layer,
		Impulse:       spec.Impulse,
		SpawnOffset:   spec.SpawnOffset,
	})
}

func cooldownFromSpec(spec prefabs.AbilityCooldownComponentSpec) component.AbilityCooldown {
	grace := component.DefaultGraceFraction
	if spec.GraceFraction != nil {
		grace = *spec.GraceFraction
	}
	return component.NewAbilityCooldown(seconds(spec.CooldownSecs), grace)
}

func addDash(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.DashComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode dash spec: %w", err)
	}
	return ecs.Add(w, e, component.CharacterDashComponent.Kind(), &component.CharacterDash{
		Duration: seconds(spec.DurationSecs),
		Cooldown: cooldownFromSpec(spec.AbilityCooldownComponentSpec),
	})
}

func addAttackCooldown(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AbilityCooldownComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode attack cooldown spec: %w", err)
	}
	cd := cooldownFromSpec(spec)
	return ecs.Add(w, e, component.AttackCooldownComponent.Kind(), &cd)
}

func addHealth(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HealthComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	level := 0
	if ctx != nil {
		level = ctx.Level
	}
	hp := spec.Base + spec.PerLevel*level
	if hp <= 0 {
		return fmt.Errorf("health must be positive, got %d", hp)
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: hp})
}

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TTLComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Remaining: seconds(spec.Secs)})
}

func addContacts(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ContactsComponent.Kind(), &component.Contacts{})
}

func addForce(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ForceComponent.Kind(), &component.Force{})
}

func addBehaviour(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BehaviourComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode behaviour spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("behaviour needs a script")
	}
	return ecs.Add(w, e, component.BehaviourComponent.Kind(), &component.Behaviour{
		Script:   spec.Script,
		Strength: spec.Strength,
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	cam := &component.Camera{TargetName: spec.Target, Yaw: spec.Yaw}
	applyCameraSpec(cam, spec)
	cam.Zoom = spec.Zoom
	if cam.Zoom <= 0 {
		cam.Zoom = 5
	}
	cam.Radius = cam.Zoom
	return ecs.Add(w, e, component.CameraComponent.Kind(), cam)
}

// applyCameraSpec copies the tunables of spec onto cam, leaving yaw and the
// current zoom alone.
func applyCameraSpec(cam *component.Camera, spec prefabs.CameraComponentSpec) {
	cam.MinZoom = spec.MinZoom
	if cam.MinZoom <= 0 {
		cam.MinZoom = 0.1
	}
	cam.MaxZoom = spec.MaxZoom
	if cam.MaxZoom < cam.MinZoom {
		cam.MaxZoom = 15
	}
	cam.RotateSensitivity = spec.RotateSensitivity
	cam.WheelSensitivity = spec.WheelSensitivity
	if cam.WheelSensitivity == 0 {
		cam.WheelSensitivity = 0.2
	}
	cam.PixelsPerUnit = spec.PixelsPerUnit
	if cam.PixelsPerUnit <= 0 {
		cam.PixelsPerUnit = 24
	}
	cam.ReferenceRadius = spec.ReferenceRadius
	if cam.ReferenceRadius <= 0 {
		cam.ReferenceRadius = 5
	}
}

func addParticleEmitter(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ParticleEmitterComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode particle emitter spec: %w", err)
	}
	stops := make([]component.GradientStop, 0, len(spec.Gradient))
	for _, g := range spec.Gradient {
		stops = append(stops, component.GradientStop{At: g.At, Color: g.Color.NRGBA})
	}
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].At < stops[j].At })
	return ecs.Add(w, e, component.ParticleEmitterComponent.Kind(), &component.ParticleEmitter{
		Count:    spec.Count,
		Lifetime: seconds(spec.LifetimeSecs),
		SpeedMin: spec.SpeedMin,
		SpeedMax: spec.SpeedMax,
		Drag:     spec.Drag,
		Size:     spec.Size,
		Gradient: stops,
	})
}

func addAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AudioComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if len(spec.Clips) == 0 {
		return nil
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), buildAudioComponentFromSpec(spec.Clips))
}

// buildAudioComponentFromSpec synthesises every clip. Players are attached
// later by the audio system so building needs no audio device.
func buildAudioComponentFromSpec(clips []prefabs.AudioClipSpec) *component.Audio {
	comp := &component.Audio{
		Names:   make([]string, 0, len(clips)),
		Clips:   make([][]byte, 0, len(clips)),
		Players: make([]*audio.Player, len(clips)),
		Volume:  make([]float64, 0, len(clips)),
		Play:    make([]bool, len(clips)),
	}
	for _, clip := range clips {
		vol := clip.Volume
		if vol <= 0 {
			vol = 1
		}
		comp.Names = append(comp.Names, clip.Name)
		comp.Clips = append(comp.Clips, assets.Tone(assets.Wave(clip.Wave), clip.Freq, clip.Slide, clip.Secs))
		comp.Volume = append(comp.Volume, vol)
	}
	return comp
}

func addHUD(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HUDComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode hud spec: %w", err)
	}
	return ecs.Add(w, e, component.HUDComponent.Kind(), &component.HUD{
		LevelText:  spec.LevelText,
		BossHealth: spec.BossHealth,
	})
}
