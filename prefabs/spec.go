package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LevelSpec lays out the rooms. Rooms are placed side by side along X.
type LevelSpec struct {
	RoomWidth     float64  `yaml:"room_width"`
	RoomHeight    float64  `yaml:"room_height"`
	Gap           float64  `yaml:"gap"`
	WallThickness float64  `yaml:"wall_thickness"`
	PlayerSpawn   Vec2Spec `yaml:"player_spawn"`
	EnemySpawn    Vec2Spec `yaml:"enemy_spawn"`
	// The first room divides the hue circle by InitialHueSteps, later rooms
	// by HueSteps.
	InitialHueSteps float64 `yaml:"initial_hue_steps"`
	HueSteps        float64 `yaml:"hue_steps"`
	Saturation      float64 `yaml:"saturation"`
	Value           float64 `yaml:"value"`
}

// RoomOffset returns the X offset of a level's room.
func (s LevelSpec) RoomOffset(level int) float64 {
	return float64(level) * (s.RoomWidth + s.Gap)
}

// Hue returns the room hue in degrees. initial selects the first-room
// divisor.
func (s LevelSpec) Hue(level int, initial bool) float64 {
	steps := s.HueSteps
	if initial {
		steps = s.InitialHueSteps
	}
	if steps <= 0 {
		return 0
	}
	h := 360 / steps * float64(level)
	for h >= 360 {
		h -= 360
	}
	return h
}

func LoadLevelSpec() (LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec]("level.yaml")
	if err != nil {
		return LevelSpec{}, err
	}
	if spec.RoomWidth <= 0 || spec.RoomHeight <= 0 {
		return LevelSpec{}, fmt.Errorf("prefabs: level.yaml: room size must be positive")
	}
	return spec, nil
}

type YAMLColor struct {
	color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.NRGBA = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
