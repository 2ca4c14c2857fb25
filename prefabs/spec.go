package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const PlatformSpecFile = "platforms.yaml"

var ErrNegativeWeight = errors.New("prefabs: negative spawn weight")

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

// PlatformTypeSpec is one catalog entry. Weight is a relative likelihood.
type PlatformTypeSpec struct {
	Key         string    `yaml:"key"`
	DisplayName string    `yaml:"display_name"`
	Color       YAMLColor `yaml:"color"`
	Weight      float64   `yaml:"weight"`
}

type AvoidXSpec struct {
	Enabled bool    `yaml:"enabled"`
	X       float64 `yaml:"x"`
	Radius  float64 `yaml:"radius"`
}

// TuningSpec holds the engine constants. Durations are milliseconds.
type TuningSpec struct {
	ScreenWidth    float64    `yaml:"screen_width"`
	ScreenHeight   float64    `yaml:"screen_height"`
	PlatformWidth  float64    `yaml:"platform_width"`
	PlatformHeight float64    `yaml:"platform_height"`
	SensorHeight   float64    `yaml:"sensor_height"`
	EdgeMargin     float64    `yaml:"edge_margin"`
	MaxY           float64    `yaml:"max_y"`
	AvoidX         AvoidXSpec `yaml:"avoid_x"`
	AvoidAttempts  int        `yaml:"avoid_attempts"`
	MinPlatforms   int        `yaml:"min_platforms"`
	GapMin         float64    `yaml:"gap_min"`
	GapMax         float64    `yaml:"gap_max"`
	DespawnMargin  float64    `yaml:"despawn_margin"`

	MoveChance    float64  `yaml:"move_chance"`
	MoveExclusive []string `yaml:"move_exclusive"`
	MoveAmplitude float64  `yaml:"move_amplitude"`
	MovePeriodMS  int      `yaml:"move_period_ms"`

	BlinkIntervalMS   int     `yaml:"blink_interval_ms"`
	FragileOverlapMS  int     `yaml:"fragile_overlap_ms"`
	FragileBlinkMS    int     `yaml:"fragile_blink_ms"`
	TimedStayMS       int     `yaml:"timed_stay_ms"`
	TimedBlinkMS      int     `yaml:"timed_blink_ms"`
	TimedRespawnMS    int     `yaml:"timed_respawn_ms"`
	DodgerWindowX     float64 `yaml:"dodger_window_x"`
	DodgerMinDY       float64 `yaml:"dodger_min_dy"`
	DodgerMaxDY       float64 `yaml:"dodger_max_dy"`
	DodgerCooldownMS  int     `yaml:"dodger_cooldown_ms"`
	DodgerMinDistance float64 `yaml:"dodger_min_distance"`
	DodgerAttempts    int     `yaml:"dodger_attempts"`
	DodgerFlashMS     int     `yaml:"dodger_flash_ms"`
	DodgerFlashAlpha  float64 `yaml:"dodger_flash_alpha"`
	IceSlipMS         int     `yaml:"ice_slip_ms"`
	BouncyCooldownMS  int     `yaml:"bouncy_cooldown_ms"`
	BouncyFlashMS     int     `yaml:"bouncy_flash_ms"`
	BouncyMultiplier  float64 `yaml:"bouncy_multiplier"`
	JumpImpulse       float64 `yaml:"jump_impulse"`
	InversaSpeed      float64 `yaml:"inversa_speed"`
}

type PlatformSpec struct {
	Name             string             `yaml:"name"`
	Catalog          []PlatformTypeSpec `yaml:"catalog"`
	Tuning           TuningSpec         `yaml:"tuning"`
	DifficultyScript string             `yaml:"difficulty_script"`
}

// Validate rejects negative weights and duplicate keys. Unknown keys are
// left to the engine, which owns the kind list.
func (s *PlatformSpec) Validate() error {
	if s == nil {
		return errors.New("prefabs: nil platform spec")
	}
	if len(s.Catalog) == 0 {
		return errors.New("prefabs: platform catalog is empty")
	}
	seen := make(map[string]struct{}, len(s.Catalog))
	for _, entry := range s.Catalog {
		if entry.Weight < 0 {
			return fmt.Errorf("%w: %s=%g", ErrNegativeWeight, entry.Key, entry.Weight)
		}
		if _, dup := seen[entry.Key]; dup {
			return fmt.Errorf("prefabs: duplicate platform key %q", entry.Key)
		}
		seen[entry.Key] = struct{}{}
	}
	return nil
}

func LoadPlatformSpec() (*PlatformSpec, error) {
	spec, err := LoadSpec[PlatformSpec](PlatformSpecFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", PlatformSpecFile, err)
	}
	return &spec, nil
}

// ParsePlatformSpec decodes and validates raw yaml.
func ParsePlatformSpec(data []byte) (*PlatformSpec, error) {
	var spec PlatformSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal platform spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
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
