package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	BaseSpeed      float64 `yaml:"base_speed"`
	DashMultiplier float64 `yaml:"dash_multiplier"`
	MinDashInput   float64 `yaml:"min_dash_input"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Shape  string    `yaml:"shape"`
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
	Color  YAMLColor `yaml:"color"`
}

type PhysicsBodyComponentSpec struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Radius        float64 `yaml:"radius"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	Damping       float64 `yaml:"damping"`
	Static        bool    `yaml:"static"`
	FixedRotation bool    `yaml:"fixed_rotation"`
	Layer         string  `yaml:"layer"`
	// Impulse is the launch impulse magnitude; the direction is chosen by
	// the spawner.
	Impulse float64 `yaml:"impulse"`
	// SpawnOffset is how far ahead of the spawner the body appears.
	SpawnOffset float64 `yaml:"spawn_offset"`
}

// AbilityCooldownComponentSpec tunes an AbilityCooldown. Times are seconds.
type AbilityCooldownComponentSpec struct {
	CooldownSecs  float64  `yaml:"cooldown_secs"`
	GraceFraction *float64 `yaml:"grace_fraction"`
}

type DashComponentSpec struct {
	AbilityCooldownComponentSpec `yaml:",inline"`

	DurationSecs float64 `yaml:"duration_secs"`
}

type HealthComponentSpec struct {
	Base     int `yaml:"base"`
	PerLevel int `yaml:"per_level"`
}

type TTLComponentSpec struct {
	Secs float64 `yaml:"secs"`
}

type BehaviourComponentSpec struct {
	Script   string  `yaml:"script"`
	Strength float64 `yaml:"strength"`
}

type CameraComponentSpec struct {
	Target            string  `yaml:"target"`
	Yaw               float64 `yaml:"yaw"`
	Zoom              float64 `yaml:"zoom"`
	MinZoom           float64 `yaml:"min_zoom"`
	MaxZoom           float64 `yaml:"max_zoom"`
	RotateSensitivity float64 `yaml:"rotate_sensitivity"`
	WheelSensitivity  float64 `yaml:"wheel_sensitivity"`
	PixelsPerUnit     float64 `yaml:"pixels_per_unit"`
	ReferenceRadius   float64 `yaml:"reference_radius"`
}

type GradientStopSpec struct {
	At    float64   `yaml:"at"`
	Color YAMLColor `yaml:"color"`
}

type ParticleEmitterComponentSpec struct {
	Count        int                `yaml:"count"`
	LifetimeSecs float64            `yaml:"lifetime_secs"`
	SpeedMin     float64            `yaml:"speed_min"`
	SpeedMax     float64            `yaml:"speed_max"`
	Drag         float64            `yaml:"drag"`
	Size         float64            `yaml:"size"`
	Gradient     []GradientStopSpec `yaml:"gradient"`
}

// AudioClipSpec describes a synthesised cue.
type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	Wave   string  `yaml:"wave"`
	Freq   float64 `yaml:"freq"`
	Slide  float64 `yaml:"slide"`
	Secs   float64 `yaml:"secs"`
	Volume float64 `yaml:"volume"`
}

type AudioComponentSpec struct {
	Clips []AudioClipSpec `yaml:"clips"`
}

type HUDComponentSpec struct {
	LevelText  string  `yaml:"level_text"`
	BossHealth float64 `yaml:"boss_health"`
}
