package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gravity/internal/env"
	"gravity/internal/hexcolor"
	"gravity/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the settings file, relative to the process working directory.
const DefaultPath = "config/gravity.yaml"

// EnvPrefix prefixes every environment override (GRAVITY_COUNT, GRAVITY_SEED, ...).
const EnvPrefix = "GRAVITY_"

// Settings holds everything the launcher asks for: the initial-condition
// parameters handed to physics.Seed, window options and debug overlays.
// Persisted across runs.
type Settings struct {
	Count         int     `yaml:"count" toml:"count"`
	G             float32 `yaml:"g" toml:"g"`
	Density       float32 `yaml:"density" toml:"density"`
	SunScale      float32 `yaml:"sun_scale" toml:"sun_scale"`
	LocationSD    float32 `yaml:"location_sd" toml:"location_sd"`
	VelocitySD    float32 `yaml:"velocity_sd" toml:"velocity_sd"`
	RadiusMin     float32 `yaml:"radius_min" toml:"radius_min"`
	RadiusMax     float32 `yaml:"radius_max" toml:"radius_max"`
	LightFraction float32 `yaml:"light_fraction" toml:"light_fraction"`
	Seed          uint64  `yaml:"seed" toml:"seed"`
	Shell         bool    `yaml:"shell" toml:"shell"`

	Ambient    string  `yaml:"ambient" toml:"ambient"` // hex RGB, e.g. "#1a1a24"
	Fullscreen bool    `yaml:"fullscreen" toml:"fullscreen"`
	Width      int     `yaml:"width" toml:"width"`
	Height     int     `yaml:"height" toml:"height"`
	FOV        float32 `yaml:"fov" toml:"fov"`
	Font       string  `yaml:"font,omitempty" toml:"font,omitempty"` // font search term under assets/fonts; empty = raylib default

	// MaxFrameTime caps the seconds one frame may integrate; 0 integrates the raw frame delta.
	MaxFrameTime float32 `yaml:"max_frame_time" toml:"max_frame_time"`

	ShowFPS      bool `yaml:"show_fps" toml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc" toml:"show_memalloc"`
	ShowPanel    bool `yaml:"show_panel" toml:"show_panel"`
}

// Default returns the launcher defaults (debug overlays off, stats panel on).
func Default() Settings {
	p := physics.DefaultConfig()
	return Settings{
		Count:         p.Count,
		G:             p.G,
		Density:       p.Density,
		SunScale:      p.SunScale,
		LocationSD:    p.LocationSD,
		VelocitySD:    p.VelocitySD,
		RadiusMin:     p.RadiusMin,
		RadiusMax:     p.RadiusMax,
		LightFraction: p.LightFraction,
		Seed:          p.Seed,
		Shell:         p.Shell,
		Ambient:       "#1a1a24",
		Width:         1600,
		Height:        1000,
		FOV:           85,
		ShowPanel:     true,
	}
}

// Load reads settings from path. Keys absent from the file keep their
// defaults. A missing file returns Default() without error and does not
// create one. Files ending in .toml are TOML, anything else YAML.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("settings: %w", err)
	}
	if isTOML(path) {
		err = toml.Unmarshal(data, &s)
	} else {
		err = yaml.Unmarshal(data, &s)
	}
	if err != nil {
		return Default(), fmt.Errorf("settings: parse %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path in the format its extension selects, creating the
// directory if needed.
func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(s)
	} else {
		data, err = yaml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv exports the GRAVITY_* keys of dotenv (may be missing) that the
// process environment does not already set, then overrides fields from
// GRAVITY_* variables. Precedence: file < .env < environment.
// It returns the keys taken from dotenv.
func (s *Settings) ApplyEnv(dotenv string) ([]string, error) {
	applied, err := env.Load(dotenv, EnvPrefix)
	if err != nil {
		return applied, fmt.Errorf("settings: %w", err)
	}
	errs := []error{
		env.Int(EnvPrefix+"COUNT", &s.Count),
		env.Float32(EnvPrefix+"G", &s.G),
		env.Float32(EnvPrefix+"DENSITY", &s.Density),
		env.Float32(EnvPrefix+"SUN_SCALE", &s.SunScale),
		env.Float32(EnvPrefix+"LOCATION_SD", &s.LocationSD),
		env.Float32(EnvPrefix+"VELOCITY_SD", &s.VelocitySD),
		env.Float32(EnvPrefix+"RADIUS_MIN", &s.RadiusMin),
		env.Float32(EnvPrefix+"RADIUS_MAX", &s.RadiusMax),
		env.Float32(EnvPrefix+"LIGHT_FRACTION", &s.LightFraction),
		env.Uint64(EnvPrefix+"SEED", &s.Seed),
		env.Bool(EnvPrefix+"SHELL", &s.Shell),
		env.Bool(EnvPrefix+"FULLSCREEN", &s.Fullscreen),
		env.Int(EnvPrefix+"WIDTH", &s.Width),
		env.Int(EnvPrefix+"HEIGHT", &s.Height),
		env.Float32(EnvPrefix+"FOV", &s.FOV),
		env.Float32(EnvPrefix+"MAX_FRAME_TIME", &s.MaxFrameTime),
	}
	env.String(EnvPrefix+"AMBIENT", &s.Ambient)
	env.String(EnvPrefix+"FONT", &s.Font)
	if err := errors.Join(errs...); err != nil {
		return applied, fmt.Errorf("settings: %w", err)
	}
	return applied, nil
}

// Validate reports every problem at once.
func (s Settings) Validate() error {
	var errs []error
	if s.Count < 1 {
		errs = append(errs, fmt.Errorf("count must be at least 1, got %d", s.Count))
	}
	if s.Density <= 0 {
		errs = append(errs, fmt.Errorf("density must be positive, got %g", s.Density))
	}
	if s.SunScale <= 0 {
		errs = append(errs, fmt.Errorf("sun_scale must be positive, got %g", s.SunScale))
	}
	if s.LocationSD < 0 || s.VelocitySD < 0 {
		errs = append(errs, fmt.Errorf("location_sd and velocity_sd must not be negative"))
	}
	if s.RadiusMin <= 0 || s.RadiusMin >= s.RadiusMax {
		errs = append(errs, fmt.Errorf("need 0 < radius_min < radius_max, got %g, %g", s.RadiusMin, s.RadiusMax))
	}
	if s.LightFraction < 0 || s.LightFraction > 1 {
		errs = append(errs, fmt.Errorf("light_fraction must be in [0, 1], got %g", s.LightFraction))
	}
	if _, err := ParseHexColor(s.Ambient); err != nil {
		errs = append(errs, fmt.Errorf("ambient: %w", err))
	}
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", s.Width, s.Height))
	}
	if s.MaxFrameTime < 0 {
		errs = append(errs, fmt.Errorf("max_frame_time must not be negative, got %g", s.MaxFrameTime))
	}
	if s.FOV <= 0 || s.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov must be in (0, 180), got %g", s.FOV))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	return nil
}

// Physics validates s and returns the initial-condition config for physics.Seed.
func (s Settings) Physics() (physics.Config, error) {
	var cfg physics.Config
	if err := s.Validate(); err != nil {
		return cfg, err
	}
	if err := copier.Copy(&cfg, &s); err != nil {
		return cfg, fmt.Errorf("settings: %w", err)
	}
	return cfg, nil
}

// AmbientColor returns the ambient light color in [0,1]. Invalid hex yields black.
func (s Settings) AmbientColor() mgl32.Vec3 {
	c, _ := ParseHexColor(s.Ambient)
	return c
}

// ParseHexColor parses #RGB, #RGBA, #RRGGBB or #RRGGBBAA into [0,1] RGB components.
// Alpha is accepted and ignored.
func ParseHexColor(hex string) (mgl32.Vec3, error) {
	c, err := hexcolor.Parse(strings.TrimSpace(hex))
	if err != nil {
		return mgl32.Vec3{}, err
	}
	r, g, b, _ := c.Floats()
	return mgl32.Vec3{r, g, b}, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
