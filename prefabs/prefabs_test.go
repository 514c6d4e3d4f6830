package prefabs

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedPrefabsDecode(t *testing.T) {
	SetDir("")
	defer SetDir("prefabs")

	tests := []struct {
		file      string
		component string
	}{
		{"player.yaml", "dash"},
		{"player.yaml", "attack_cooldown"},
		{"enemy.yaml", "behaviour"},
		{"projectile.yaml", "ttl"},
		{"camera.yaml", "camera"},
		{"dash_effect.yaml", "particle_emitter"},
		{"hud.yaml", "hud"},
	}
	for _, tc := range tests {
		t.Run(tc.file+"/"+tc.component, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(tc.file)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if _, ok := spec.Components[tc.component]; !ok {
				t.Fatalf("%s missing component %q", tc.file, tc.component)
			}
		})
	}
}

func TestDecodeDashSpec(t *testing.T) {
	SetDir("")
	defer SetDir("prefabs")

	spec, err := LoadEntityBuildSpec("player.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	dash, err := DecodeComponentSpec[DashComponentSpec](spec.Components["dash"])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dash.DurationSecs != 1.0 || dash.CooldownSecs != 1.2 {
		t.Fatalf("unexpected dash spec %+v", dash)
	}
	if dash.GraceFraction == nil || *dash.GraceFraction != 0.25 {
		t.Fatalf("grace fraction not decoded: %v", dash.GraceFraction)
	}
}

func TestLevelSpec(t *testing.T) {
	SetDir("")
	defer SetDir("prefabs")

	spec, err := LoadLevelSpec()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := spec.RoomOffset(2); got != 120 {
		t.Fatalf("RoomOffset(2) = %v, want 120", got)
	}
	if got := spec.Hue(3, true); got != 90 {
		t.Fatalf("initial hue = %v, want 90", got)
	}
	if got := spec.Hue(4, false); got != 90 {
		t.Fatalf("hue = %v, want 90", got)
	}
	if got := spec.Hue(20, false); got != 90 {
		t.Fatalf("hue wraps: got %v, want 90", got)
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	SetDir(dir)
	defer SetDir("prefabs")

	if err := os.WriteFile(filepath.Join(dir, "hud.yaml"), []byte("name: custom\ncomponents:\n  hud: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err := LoadEntityBuildSpec("prefabs/hud.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "custom" {
		t.Fatalf("expected disk override, got %q", spec.Name)
	}
	if _, ok := ModTime("hud.yaml"); !ok {
		t.Fatalf("expected mod time for disk prefab")
	}

	// files absent on disk fall back to the embedded copy
	if _, err := LoadEntityBuildSpec("enemy.yaml"); err != nil {
		t.Fatalf("fallback: %v", err)
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    [4]uint8
		wantErr bool
	}{
		{`"#ff8000"`, [4]uint8{255, 128, 0, 255}, false},
		{`"10203040"`, [4]uint8{16, 32, 48, 64}, false},
		{`"#fff"`, [4]uint8{}, true},
		{`"#zz0000"`, [4]uint8{}, true},
	}
	for _, tc := range tests {
		var c YAMLColor
		err := yaml.Unmarshal([]byte(tc.in), &c)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		got := [4]uint8{c.R, c.G, c.B, c.A}
		if got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestScriptPaths(t *testing.T) {
	SetDir("")
	defer SetDir("prefabs")

	for _, name := range []string{"wander.tengo", "scripts/wander.tengo", "prefabs/scripts/wander.tengo"} {
		if _, err := LoadScript(name); err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
	}
	if !IsScriptFile("a/b/wander.TENGO") || IsScriptFile("x.lua") {
		t.Fatalf("script detection wrong")
	}
	if !IsSpecFile("player.yml") {
		t.Fatalf("spec detection wrong")
	}
}

func TestDebouncerWaitsForQuiet(t *testing.T) {
	d := newDebouncer(100 * time.Millisecond)
	t0 := time.Unix(0, 0)

	d.touch("player.yaml", t0)
	d.touch("enemy.yaml", t0.Add(20*time.Millisecond))
	d.touch("player.yaml", t0.Add(60*time.Millisecond))

	if got := d.due(t0.Add(110 * time.Millisecond)); len(got) != 0 {
		t.Fatalf("due too early: %v", got)
	}
	if got := d.due(t0.Add(130 * time.Millisecond)); !slices.Equal(got, []string{"enemy.yaml"}) {
		t.Fatalf("due = %v, want [enemy.yaml]", got)
	}
	if got := d.due(t0.Add(200 * time.Millisecond)); !slices.Equal(got, []string{"player.yaml"}) {
		t.Fatalf("due = %v, want [player.yaml]", got)
	}
	if got := d.due(t0.Add(time.Second)); len(got) != 0 {
		t.Fatalf("reported twice: %v", got)
	}
}

func TestReloadableEvents(t *testing.T) {
	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "prefabs/player.yaml", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "prefabs/scripts/wander.tengo", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "prefabs/player.yaml", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "prefabs/notes.txt", Op: fsnotify.Write}, false},
	}
	for _, tc := range tests {
		if got := reloadable(tc.ev); got != tc.want {
			t.Fatalf("reloadable(%v) = %v, want %v", tc.ev, got, tc.want)
		}
	}
}
