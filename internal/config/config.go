// Package config loads the ludus YAML or JSON configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/ludus/internal/logging"
	"github.com/aretw0/ludus/pkg/command"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the root of the configuration file.
type Config struct {
	TickRate int           `mapstructure:"tick_rate"`
	LogLevel string        `mapstructure:"log_level"`
	Queue    QueueConfig   `mapstructure:"queue"`
	UI       UIConfig      `mapstructure:"ui"`
	Audio    AudioConfig   `mapstructure:"audio"`
	Script   []ScriptEntry `mapstructure:"script"`
}

// QueueConfig configures the command queue.
type QueueConfig struct {
	CompletionDelay time.Duration `mapstructure:"completion_delay"`
	Policy          string        `mapstructure:"policy"`
	Capacity        int           `mapstructure:"capacity"`
}

// UIConfig configures panel fades.
type UIConfig struct {
	FadeIn  time.Duration `mapstructure:"fade_in"`
	FadeOut time.Duration `mapstructure:"fade_out"`
}

// AudioConfig holds the initial output volumes, in dB.
type AudioConfig struct {
	MusicVolume  float64 `mapstructure:"music_volume"`
	EffectVolume float64 `mapstructure:"effect_volume"`
}

// ScriptEntry names a registered command and its arguments.
type ScriptEntry struct {
	Name string         `mapstructure:"name"`
	Args map[string]any `mapstructure:"args"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		TickRate: 60,
		LogLevel: "info",
		Queue:    QueueConfig{Policy: command.ContinueOnError.String()},
		UI:       UIConfig{FadeIn: 100 * time.Millisecond, FadeOut: 100 * time.Millisecond},
		Script: []ScriptEntry{
			{Name: "count", Args: map[string]any{"value": 0, "steps": 3, "interval": "1s"}},
		},
	}
}

// Load reads path on top of Default. A missing file (or an empty path)
// yields the defaults. Files ending in .json are parsed as JSON, anything
// else as YAML.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if _, ok := raw["script"]; ok {
		cfg.Script = nil
	}
	if err := decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

func decode(raw map[string]any, out *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// Validate checks values that cannot be expressed by types alone.
func (c Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.TickRate))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := command.ParsePolicy(c.Queue.Policy); err != nil {
		errs = append(errs, err)
	}
	if c.Queue.CompletionDelay < 0 {
		errs = append(errs, fmt.Errorf("queue.completion_delay must not be negative"))
	}
	for i, s := range c.Script {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("script[%d]: missing name", i))
		}
	}
	return errors.Join(errs...)
}

// QueueOptions translates the queue section into command.Queue options.
func (c Config) QueueOptions() ([]command.Option, error) {
	policy, err := command.ParsePolicy(c.Queue.Policy)
	if err != nil {
		return nil, err
	}
	return []command.Option{
		command.WithPolicy(policy),
		command.WithCompletionDelay(c.Queue.CompletionDelay),
		command.WithCapacity(c.Queue.Capacity),
	}, nil
}
