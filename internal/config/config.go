package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFamily       = "lorenz"
	DefaultScreenWidth  = 1280
	DefaultScreenHeight = 780
	DefaultNear         = 0.05
	DefaultFar          = 20.0
	DefaultFOV          = 3.5
	DefaultAspect       = 1.0

	RotationPerPoint = "per-point"
	RotationPerFrame = "per-frame"
)

// DefaultPad is the placeholder coordinate used to fill a freshly seeded trail.
var DefaultPad = dynamo.Point3{X: 0.01, Y: 0.01, Z: 0.01}

type Config struct {
	Family   string                  `yaml:"family"`
	Screen   ScreenConfig            `yaml:"screen"`
	Frustum  FrustumConfig           `yaml:"frustum"`
	Render   RenderConfig            `yaml:"render"`
	Gradient GradientConfig          `yaml:"gradient"`
	Families map[string]FamilyConfig `yaml:"families,omitempty"`
}

type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type FrustumConfig struct {
	Near float64 `yaml:"near"`
	Far  float64 `yaml:"far"`
	FOV  float64 `yaml:"fov"`
}

type RenderConfig struct {
	// RotationMode is "per-point" (angles advance once per traversed trail
	// point) or "per-frame".
	RotationMode string  `yaml:"rotation_mode"`
	Aspect       float64 `yaml:"aspect"`
	HeadMarker   bool    `yaml:"head_marker"`
}

type GradientConfig struct {
	Initial [4]int `yaml:"initial,flow"`
	Final   [4]int `yaml:"final,flow"`
}

type FamilyConfig struct {
	Dt        float64        `yaml:"dt"`
	Zoom      float64        `yaml:"zoom"`
	Params    ParamsConfig   `yaml:"params"`
	Initial   Vec3           `yaml:"initial,flow"`
	Midpoint  Vec3           `yaml:"midpoint,flow"`
	Rotation  RotationConfig `yaml:"rotation"`
	MaxLength int            `yaml:"max_length"`
}

type ParamsConfig struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
}

func (p ParamsConfig) Params() dynamo.Params { return dynamo.Params{A: p.A, B: p.B, C: p.C} }

type Vec3 [3]float64

func (v Vec3) Point() dynamo.Point3 { return dynamo.Point3{X: v[0], Y: v[1], Z: v[2]} }

type RotationConfig struct {
	AngleX  float64 `yaml:"angle_x"`
	AngleY  float64 `yaml:"angle_y"`
	AngleZ  float64 `yaml:"angle_z"`
	DAngleX float64 `yaml:"dangle_x"`
	DAngleY float64 `yaml:"dangle_y"`
	DAngleZ float64 `yaml:"dangle_z"`
}

func DefaultConfig() *Config {
	return &Config{
		Family: DefaultFamily,
		Screen: ScreenConfig{Width: DefaultScreenWidth, Height: DefaultScreenHeight},
		Frustum: FrustumConfig{
			Near: DefaultNear,
			Far:  DefaultFar,
			FOV:  DefaultFOV,
		},
		Render: RenderConfig{
			RotationMode: RotationPerPoint,
			Aspect:       DefaultAspect,
			HeadMarker:   true,
		},
		// Yellow to purple.
		Gradient: GradientConfig{
			Initial: [4]int{255, 255, 79, 196},
			Final:   [4]int{117, 11, 255, 255},
		},
		Families: clonePresets(),
	}
}

// Load reads a yaml config. Keys under families are merged over the
// compiled-in presets, so an override only needs the fields it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var raw struct {
		Families map[string]yaml.Node `yaml:"families"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Families = clonePresets()
	for name, node := range raw.Families {
		f, err := physics.ParseFamily(name)
		if err != nil {
			return nil, fmt.Errorf("%w: families.%s: %w", dynamo.ErrInvalidConfig, name, err)
		}
		fc := cfg.Families[f.String()]
		if err := node.Decode(&fc); err != nil {
			return nil, fmt.Errorf("parse %s: families.%s: %w", path, name, err)
		}
		cfg.Families[f.String()] = fc
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FamilyConfig returns the live constants of f: the yaml override if any,
// else the preset.
func (c *Config) FamilyConfig(f physics.Family) FamilyConfig {
	if fc, ok := c.Families[f.String()]; ok {
		return fc
	}
	return Presets[f.String()]
}

// StartFamily resolves the configured starting family.
func (c *Config) StartFamily() (physics.Family, error) {
	return physics.ParseFamily(c.Family)
}

// AspectRatio returns the configured aspect, falling back to the screen ratio.
func (c *Config) AspectRatio() float64 {
	if c.Render.Aspect > 0 {
		return c.Render.Aspect
	}
	return float64(c.Screen.Width) / float64(c.Screen.Height)
}

func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", dynamo.ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if _, err := c.StartFamily(); err != nil {
		return invalid("family: %v", err)
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return invalid("screen must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Frustum.Near <= 0 || c.Frustum.Far <= c.Frustum.Near {
		return invalid("frustum needs 0 < near < far, got near=%g far=%g", c.Frustum.Near, c.Frustum.Far)
	}
	if c.Frustum.FOV <= 0 || c.Frustum.FOV >= 2*math.Pi || math.Tan(c.Frustum.FOV/2) == 0 {
		return invalid("fov out of range: %g", c.Frustum.FOV)
	}
	switch c.Render.RotationMode {
	case RotationPerPoint, RotationPerFrame:
	default:
		return invalid("rotation_mode must be %q or %q, got %q", RotationPerPoint, RotationPerFrame, c.Render.RotationMode)
	}
	for _, ch := range append(c.Gradient.Initial[:], c.Gradient.Final[:]...) {
		if ch < 0 || ch > 255 {
			return invalid("gradient channel out of range: %d", ch)
		}
	}
	for name, fc := range c.Families {
		if _, err := physics.ParseFamily(name); err != nil {
			return invalid("families.%s: unknown family", name)
		}
		if fc.Dt <= 0 {
			return invalid("families.%s: dt must be positive, got %g", name, fc.Dt)
		}
		if fc.Zoom <= 0 {
			return invalid("families.%s: zoom must be positive, got %g", name, fc.Zoom)
		}
		if fc.MaxLength < 1 {
			return invalid("families.%s: max_length must be at least 1, got %d", name, fc.MaxLength)
		}
	}
	return nil
}
