package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration. Zero values are filled from
// Default by Load, so a partial file only overrides what it names.
type Config struct {
	Seed       int64        `yaml:"seed"`
	ViewRadius int          `yaml:"view_radius"` // streaming radius in chunks
	StepHz     int          `yaml:"step_hz"`     // fixed simulation rate
	Player     PlayerConfig `yaml:"player"`
	Log        LogConfig    `yaml:"log"`
}

// PlayerConfig holds body dimensions and movement tuning.
type PlayerConfig struct {
	Radius       float32 `yaml:"radius"`
	Height       float32 `yaml:"height"`
	WalkSpeed    float32 `yaml:"walk_speed"`
	JumpSpeed    float32 `yaml:"jump_speed"`
	Gravity      float32 `yaml:"gravity"`
	MaxFallSpeed float32 `yaml:"max_fall_speed"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Seed:       1,
		ViewRadius: 6,
		StepHz:     60,
		Player: PlayerConfig{
			Radius:       0.3,
			Height:       1.8,
			WalkSpeed:    4.3,
			JumpSpeed:    9.4,
			Gravity:      32.0,
			MaxFallSpeed: 50.0,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML configuration file. An empty path yields Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run safely.
func (c Config) Validate() error {
	if c.ViewRadius < 1 {
		return fmt.Errorf("view_radius must be at least 1, got %d", c.ViewRadius)
	}
	if c.StepHz < 20 {
		return fmt.Errorf("step_hz must be at least 20, got %d", c.StepHz)
	}
	if c.Player.Radius <= 0 || c.Player.Radius >= 0.5 {
		return fmt.Errorf("player radius must be in (0, 0.5), got %g", c.Player.Radius)
	}
	if c.Player.Height <= 0 {
		return fmt.Errorf("player height must be positive, got %g", c.Player.Height)
	}
	if c.Player.WalkSpeed < 0 || c.Player.JumpSpeed < 0 {
		return fmt.Errorf("player speeds must not be negative")
	}
	if c.Player.Gravity <= 0 {
		return fmt.Errorf("gravity must be positive, got %g", c.Player.Gravity)
	}
	// The collision sweep assumes a body never falls through a whole
	// block in one step.
	if c.Player.MaxFallSpeed <= 0 || c.Player.MaxFallSpeed/float32(c.StepHz) >= 1 {
		return fmt.Errorf("max_fall_speed %g exceeds one block per step at %d Hz", c.Player.MaxFallSpeed, c.StepHz)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps the configured level name onto a slog level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", l.Level)
	}
}
