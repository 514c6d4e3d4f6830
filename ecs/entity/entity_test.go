package entity

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
	"github.com/milk9111/tower/prefabs"
)

func useEmbedded(t *testing.T) {
	t.Helper()
	prefabs.SetDir("")
	t.Cleanup(func() { prefabs.SetDir("prefabs") })
}

func TestNewPlayerAtBuildsRig(t *testing.T) {
	useEmbedded(t)
	w := ecs.NewWorld()

	p, err := NewPlayerAt(w, 3, -10)
	if err != nil {
		t.Fatalf("NewPlayerAt: %v", err)
	}

	tr, ok := ecs.Get(w, p, component.TransformComponent.Kind())
	if !ok || tr.X != 3 || tr.Y != -10 {
		t.Fatalf("transform = %+v", tr)
	}
	dash, ok := ecs.Get(w, p, component.CharacterDashComponent.Kind())
	if !ok {
		t.Fatalf("missing dash")
	}
	if dash.Duration != time.Second || dash.Cooldown.Cooldown() != 1200*time.Millisecond {
		t.Fatalf("dash tuning = %v / %v", dash.Duration, dash.Cooldown.Cooldown())
	}
	attack, ok := ecs.Get(w, p, component.AttackCooldownComponent.Kind())
	if !ok || attack.Cooldown() != 500*time.Millisecond || attack.GraceFraction() != 0.25 {
		t.Fatalf("attack cooldown = %+v", attack)
	}

	rig, ok := ecs.Get(w, p, component.PlayerRigComponent.Kind())
	if !ok {
		t.Fatalf("missing rig")
	}
	if !ecs.Has(w, ecs.FromRef(rig.Camera), component.CameraComponent.Kind()) {
		t.Fatalf("rig camera has no camera component")
	}
	if !ecs.Has(w, ecs.FromRef(rig.DashEffect), component.ParticleEmitterComponent.Kind()) {
		t.Fatalf("rig dash effect has no emitter")
	}
	if a, ok := ecs.Get(w, p, component.AudioComponent.Kind()); !ok || len(a.Clips) != len(a.Names) || len(a.Players) != len(a.Names) {
		t.Fatalf("audio not built: %+v", a)
	}
}

func TestEnemyHealthScalesWithLevel(t *testing.T) {
	useEmbedded(t)

	tests := []struct {
		level int
		want  int
	}{
		{0, 1},
		{2, 3},
		{5, 6},
	}
	for _, tc := range tests {
		w := ecs.NewWorld()
		e, err := NewEnemyAt(w, tc.level, 0, 15)
		if err != nil {
			t.Fatalf("NewEnemyAt: %v", err)
		}
		h, _ := ecs.Get(w, e, component.HealthComponent.Kind())
		loc, _ := ecs.Get(w, e, component.LevelLocationComponent.Kind())
		if h.Current != tc.want || loc.Level != tc.level {
			t.Fatalf("level %d: health=%d location=%d", tc.level, h.Current, loc.Level)
		}
	}
}

func TestNewProjectile(t *testing.T) {
	useEmbedded(t)
	w := ecs.NewWorld()

	e, err := NewProjectile(w, 1, 1, 0, 2)
	if err != nil {
		t.Fatalf("NewProjectile: %v", err)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 1 || tr.Y != 2 {
		t.Fatalf("spawn position = %v,%v want 1,2", tr.X, tr.Y)
	}
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if body.ImpulseX != 0 || math.Abs(body.ImpulseY-body.Impulse) > 1e-9 || body.Radius != 0.15 {
		t.Fatalf("body = %+v", body)
	}
	ttl, _ := ecs.Get(w, e, component.TTLComponent.Kind())
	if ttl.Remaining != 5*time.Second {
		t.Fatalf("ttl = %v", ttl.Remaining)
	}
	if !ecs.Has(w, e, component.ContactsComponent.Kind()) || !ecs.Has(w, e, component.ProjectileTagComponent.Kind()) {
		t.Fatalf("projectile missing contacts or tag")
	}

	if _, err := NewProjectile(w, 0, 0, 0, 0); err == nil {
		t.Fatalf("expected error for zero direction")
	}
}

func TestBuildRoom(t *testing.T) {
	useEmbedded(t)
	spec, err := prefabs.LoadLevelSpec()
	if err != nil {
		t.Fatal(err)
	}
	w := ecs.NewWorld()

	room, enemy, err := BuildRoom(w, spec, 2, false)
	if err != nil {
		t.Fatalf("BuildRoom: %v", err)
	}
	r, _ := ecs.Get(w, room, component.RoomComponent.Kind())
	if r.OffsetX != spec.RoomOffset(2) || r.Hue != spec.Hue(2, false) {
		t.Fatalf("room = %+v", r)
	}
	if got := len(w.Query(component.WallTagComponent.Kind())); got != 4 {
		t.Fatalf("walls = %d", got)
	}
	tr, _ := ecs.Get(w, enemy, component.TransformComponent.Kind())
	if tr.X != spec.RoomOffset(2)+spec.EnemySpawn.X || tr.Y != spec.EnemySpawn.Y {
		t.Fatalf("enemy at %v,%v", tr.X, tr.Y)
	}
}

func TestBuildEntityErrors(t *testing.T) {
	dir := t.TempDir()
	prefabs.SetDir(dir)
	t.Cleanup(func() { prefabs.SetDir("prefabs") })

	files := map[string]string{
		"unknown.yaml": "name: x\ncomponents:\n  transform: {}\n  wings: {}\n",
		"empty.yaml":   "name: x\n",
		"badhp.yaml":   "name: x\ncomponents:\n  health: {base: 0}\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		file string
		want string
	}{
		{"unknown.yaml", `no builder for component "wings"`},
		{"empty.yaml", "does not define components"},
		{"badhp.yaml", "health must be positive"},
		{"missing.yaml", "load"},
	}
	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := BuildEntity(w, tc.file)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
			if n := len(ecs.Entities(w)); n != 0 {
				t.Fatalf("failed build left %d entities", n)
			}
		})
	}
}

func TestApplyTuningKeepsCooldownState(t *testing.T) {
	useEmbedded(t)
	w := ecs.NewWorld()
	p, err := NewPlayerAt(w, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	attack, _ := ecs.Get(w, p, component.AttackCooldownComponent.Kind())
	attack.RequestActivation(time.Second)
	attack.Consume(time.Second)

	dir := t.TempDir()
	data, err := prefabs.Load("player.yaml")
	if err != nil {
		t.Fatal(err)
	}
	edited := strings.Replace(string(data), "cooldown_secs: 0.5", "cooldown_secs: 0.3", 1)
	edited = strings.Replace(edited, "base_speed: 6", "base_speed: 9", 1)
	if err := os.WriteFile(filepath.Join(dir, "player.yaml"), []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}
	prefabs.SetDir(dir)

	live, err := ApplyTuning(w, "player.yaml")
	if err != nil || !live {
		t.Fatalf("ApplyTuning = %v, %v", live, err)
	}
	attack, _ = ecs.Get(w, p, component.AttackCooldownComponent.Kind())
	if attack.Cooldown() != 300*time.Millisecond || attack.LastActivation() != time.Second {
		t.Fatalf("attack after retune: %v last=%v", attack.Cooldown(), attack.LastActivation())
	}
	player, _ := ecs.Get(w, p, component.PlayerComponent.Kind())
	if player.BaseSpeed != 9 {
		t.Fatalf("base speed = %v", player.BaseSpeed)
	}

	if live, err := ApplyTuning(w, "level.yaml"); live || err != nil {
		t.Fatalf("level.yaml should not retune live entities: %v %v", live, err)
	}
}
