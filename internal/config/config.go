package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration.
type Config struct {
	// FFmpeg settings
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`

	// Edit settings
	Edit EditConfig `yaml:"edit"`

	// Merge settings
	Merge MergeConfig `yaml:"merge"`
}

type FFmpegConfig struct {
	Threads int    `yaml:"threads"`
	Preset  string `yaml:"preset"`
	CRF     int    `yaml:"crf"`
}

type EditConfig struct {
	// WindowSeconds caps how much of the input is edited. Zero means
	// the whole clip.
	WindowSeconds float64 `yaml:"window_seconds"`
}

type MergeConfig struct {
	// AudioSkipSeconds drops the leading seconds of background audio
	// before fitting it under the merged video.
	AudioSkipSeconds float64 `yaml:"audio_skip_seconds"`
}

// Load reads configuration from file or returns defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		FFmpeg: FFmpegConfig{
			Threads: 4,
			Preset:  "medium",
			CRF:     23,
		},
		Edit: EditConfig{
			WindowSeconds: 5,
		},
		Merge: MergeConfig{
			AudioSkipSeconds: 5,
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		"./config.yml",
		filepath.Join(os.Getenv("HOME"), ".vidfx", "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// EditWindow returns the edit cap as a duration, zero for unlimited.
func (c *Config) EditWindow() time.Duration {
	return time.Duration(c.Edit.WindowSeconds * float64(time.Second))
}

// AudioSkip returns the background-audio lead-in to drop.
func (c *Config) AudioSkip() time.Duration {
	return time.Duration(c.Merge.AudioSkipSeconds * float64(time.Second))
}

// WithConfig stores config in context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
