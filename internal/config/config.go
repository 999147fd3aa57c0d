// internal/config/config.go
package config

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	TileSize     = 32.0
	StrokeWidth  = 1.0

	ClickDebounceTime = 100 // ms
	MaxDeltaTime      = 0.06

	// StepInterval: период шага агентов в режиме симуляции, секунды
	StepInterval = 0.4
	// MaxPathIterations ограничивает A* для одного запроса (0 без ограничения)
	MaxPathIterations = 0
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	GrassColor      = color.RGBA{70, 120, 70, 255}
	WaterColor      = color.RGBA{40, 70, 140, 255}
	ShoreColor      = color.RGBA{190, 170, 110, 255}
	SoilColor       = color.RGBA{110, 80, 50, 255}
	StructureColor  = color.RGBA{150, 70, 70, 255}
	SpawnColor      = color.RGBA{0, 255, 0, 255}
	GoalColor       = color.RGBA{255, 0, 0, 255}
	AgentColor      = color.RGBA{0, 0, 0, 255}
	PathColor       = color.RGBA{255, 255, 0, 128}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
)

// Settings holds the runtime options read from a YAML file.
type Settings struct {
	// Level is the tile-map JSON file to open.
	Level string `yaml:"level"`
	// Definitions is the model definitions JSON file.
	Definitions string `yaml:"definitions"`
	// Watch reloads the level when its file changes.
	Watch bool `yaml:"watch"`
	// KeepPathOpen refuses placements that cut every spawn off from every goal.
	KeepPathOpen bool `yaml:"keep_path_open"`
	// MaxPathIterations caps A* expansions per query; 0 is unbounded.
	MaxPathIterations int `yaml:"max_path_iterations"`
	// PathCacheSize bounds the next-step cache; 0 uses the default.
	PathCacheSize int `yaml:"path_cache_size"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns Settings with sensible defaults.
func Default() Settings {
	return Settings{
		Level:             "assets/levels/meadow.json",
		Definitions:       "assets/defs/models.json",
		Watch:             false,
		KeepPathOpen:      true,
		MaxPathIterations: MaxPathIterations,
		LogLevel:          "info",
	}
}

// Load reads settings from path on top of Default. An empty path returns the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if s.Level == "" {
		return fmt.Errorf("settings: level path is empty")
	}
	if s.MaxPathIterations < 0 {
		return fmt.Errorf("settings: max_path_iterations must be >= 0, got %d", s.MaxPathIterations)
	}
	if s.PathCacheSize < 0 {
		return fmt.Errorf("settings: path_cache_size must be >= 0, got %d", s.PathCacheSize)
	}
	switch s.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("settings: unknown log_level %q", s.LogLevel)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level; unknown values fall back to info.
func (s Settings) SlogLevel() slog.Level {
	switch s.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
