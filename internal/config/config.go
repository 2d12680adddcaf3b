// Package config handles reading and writing .sideline/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .sideline/config.yaml.
type Config struct {
	Version int           `yaml:"version"`
	Camera  CameraConfig  `yaml:"camera"`
	Video   VideoConfig   `yaml:"video"`
	Pose    PoseConfig    `yaml:"pose"`
	Storage StorageConfig `yaml:"storage"`
	Cleanup CleanupConfig `yaml:"cleanup"`
}

// CameraConfig selects the capture device and frame geometry.
type CameraConfig struct {
	Index  int `yaml:"index" env:"SIDELINE_CAMERA_INDEX"`
	Width  int `yaml:"width" env:"SIDELINE_FRAME_WIDTH"`
	Height int `yaml:"height" env:"SIDELINE_FRAME_HEIGHT"`
	FPS    int `yaml:"fps" env:"SIDELINE_CAPTURE_FPS"`
}

// VideoConfig controls saving and display of the annotated stream.
type VideoConfig struct {
	Save       bool   `yaml:"save" env:"SIDELINE_SAVE_VIDEO"`
	Display    bool   `yaml:"display" env:"SIDELINE_DISPLAY_HUD"`
	WindowName string `yaml:"window_name" env:"SIDELINE_WINDOW_NAME"`
}

// PoseConfig selects the pose-estimation backend.
type PoseConfig struct {
	Backend       string  `yaml:"backend" env:"SIDELINE_POSE_BACKEND"` // "movenet" | "stub"
	ModelPath     string  `yaml:"model_path" env:"SIDELINE_POSE_MODEL"`
	MinConfidence float64 `yaml:"min_confidence"`
}

// StorageConfig holds the data directory layout.
type StorageConfig struct {
	AthletesDir string `yaml:"athletes_dir"`
	RostersDir  string `yaml:"rosters_dir"`
}

// CleanupConfig controls automatic pruning of old session directories.
type CleanupConfig struct {
	MaxAgeDays int `yaml:"max_age_days"` // 0 disables automatic pruning
}

// configDir is the path relative to the working directory.
const configDir = ".sideline"
const configFile = "config.yaml"

// Dir returns the .sideline directory under dir.
func Dir(dir string) string {
	return filepath.Join(dir, configDir)
}

// ReadConfig reads .sideline/config.yaml from the given directory.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to .sideline/config.yaml in the given directory.
// Creates the .sideline/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ApplyEnv overlays SIDELINE_* environment variables onto cfg.
// Unset variables leave the existing values untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Camera: CameraConfig{
			Index:  0,
			Width:  1280,
			Height: 720,
			FPS:    30,
		},
		Video: VideoConfig{
			Save:       true,
			Display:    true,
			WindowName: "Sideline HUD",
		},
		Pose: PoseConfig{
			Backend:       "movenet",
			ModelPath:     "",
			MinConfidence: 0.5,
		},
		Storage: StorageConfig{
			AthletesDir: filepath.Join("data", "athletes"),
			RostersDir:  filepath.Join("data", "rosters"),
		},
		Cleanup: CleanupConfig{
			MaxAgeDays: 0,
		},
	}
}
