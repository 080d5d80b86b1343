// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Store backends.
const (
	BackendSlice = "slice"
	BackendECS   = "ecs"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Store     StoreConfig     `yaml:"store"`
	Fire      FireConfig      `yaml:"fire"`
	Ring      RingConfig      `yaml:"ring"`
	Logs      LogsConfig      `yaml:"logs"`
	Ash       AshConfig       `yaml:"ash"`
	Render    RenderConfig    `yaml:"render"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// StoreConfig selects the particle store backend.
type StoreConfig struct {
	Backend         string `yaml:"backend"`          // slice | ecs
	InitialCapacity int    `yaml:"initial_capacity"` // Preallocated slots (slice backend)
}

// FireConfig holds fire particle creation and integration parameters.
type FireConfig struct {
	OriginX          float64 `yaml:"origin_x"`
	OriginY          float64 `yaml:"origin_y"`
	VelocityDamping  float64 `yaml:"velocity_damping"`
	LifetimeScale    float64 `yaml:"lifetime_scale"`
	Decay            float64 `yaml:"decay"`
	Turbulence       float64 `yaml:"turbulence"`
	TurbulenceRange  int     `yaml:"turbulence_range"`
	Buoyancy         float64 `yaml:"buoyancy"`
	DeathAshLifetime float64 `yaml:"death_ash_lifetime"`
}

// RingConfig holds the per-frame fire ring parameters.
type RingConfig struct {
	Count    int     `yaml:"count"`
	Radius   float64 `yaml:"radius"`
	Lifetime float64 `yaml:"lifetime"`
}

// LogsConfig holds the population-capped log burst parameters.
type LogsConfig struct {
	PopulationCap int     `yaml:"population_cap"`
	Count         int     `yaml:"count"`
	Spread        int     `yaml:"spread"`
	Lifetime      float64 `yaml:"lifetime"`
}

// AshConfig holds ash decay and burst parameters.
type AshConfig struct {
	Decay         float64 `yaml:"decay"`
	BurstCount    int     `yaml:"burst_count"`
	BurstLifetime float64 `yaml:"burst_lifetime"`
	BurstSpread   float64 `yaml:"burst_spread"`
	BurstLift     float64 `yaml:"burst_lift"`
	BurstRise     float64 `yaml:"burst_rise"`
	BurstRange    int     `yaml:"burst_range"`
}

// RenderConfig holds window rendering settings.
type RenderConfig struct {
	PointSize int `yaml:"point_size"`
}

// TerminalConfig holds terminal mode settings.
type TerminalConfig struct {
	FPS       int    `yaml:"fps"`
	FireGlyph string `yaml:"fire_glyph"`
	AshGlyph  string `yaml:"ash_glyph"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameDT   float32 // Seconds per frame at the target FPS
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	OriginX32 float32 // Fire.OriginX as float32
	OriginY32 float32 // Fire.OriginY as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// validate rejects settings the simulation cannot run with.
func (c *Config) validate() error {
	var errs []error

	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if c.Screen.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS))
	}
	switch c.Store.Backend {
	case BackendSlice, BackendECS:
	default:
		errs = append(errs, fmt.Errorf("store.backend must be %q or %q, got %q", BackendSlice, BackendECS, c.Store.Backend))
	}
	// Zero decay would make particles immortal and the store unbounded.
	if c.Fire.Decay <= 0 {
		errs = append(errs, fmt.Errorf("fire.decay must be positive, got %v", c.Fire.Decay))
	}
	if c.Ash.Decay <= 0 {
		errs = append(errs, fmt.Errorf("ash.decay must be positive, got %v", c.Ash.Decay))
	}
	if c.Fire.TurbulenceRange < 0 || c.Ash.BurstRange < 0 || c.Logs.Spread < 0 {
		errs = append(errs, errors.New("random ranges must not be negative"))
	}
	if c.Ring.Count < 0 || c.Logs.Count < 0 || c.Ash.BurstCount < 0 || c.Logs.PopulationCap < 0 {
		errs = append(errs, errors.New("spawn counts must not be negative"))
	}
	if c.Telemetry.StatsWindow <= 0 {
		errs = append(errs, fmt.Errorf("telemetry.stats_window must be positive, got %v", c.Telemetry.StatsWindow))
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FrameDT = 1 / float32(c.Screen.TargetFPS)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.OriginX32 = float32(c.Fire.OriginX)
	c.Derived.OriginY32 = float32(c.Fire.OriginY)

	if c.Render.PointSize < 1 {
		c.Render.PointSize = 1
	}
	if c.Terminal.FPS <= 0 {
		c.Terminal.FPS = 30
	}
	if c.Terminal.FireGlyph == "" {
		c.Terminal.FireGlyph = "*"
	}
	if c.Terminal.AshGlyph == "" {
		c.Terminal.AshGlyph = "."
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
