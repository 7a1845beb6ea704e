package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Source names where a configuration came from.
type Source string

const (
	SourceFlag     Source = "flag"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// LocalPath is the project-local config location.
const LocalPath = "configs/t2048.yaml"

// Load reads configuration, applies T2048_* environment overrides, fills the
// spawn probability from the preset and validates the result.
// Search order: customPath -> ~/.t2048/config.yaml -> ./configs/t2048.yaml -> embedded default
func Load(customPath string) (Config, Source, error) {
	cfg, src, err := loadFile(customPath)
	if err != nil {
		return cfg, src, err
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, src, fmt.Errorf("config: read environment: %w", err)
	}

	if err := cfg.Normalize(); err != nil {
		return cfg, src, err
	}
	return cfg, src, nil
}

// loadFile returns the first configuration file found in the search order.
func loadFile(customPath string) (Config, Source, error) {
	// An explicit path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, SourceFlag, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, SourceFlag, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, SourceFlag, nil
	}

	// Broken optional files are skipped
	if p := UserConfigPath(); p != "" {
		if cfg, ok := tryFile(p); ok {
			return cfg, SourceUser, nil
		}
	}

	if cfg, ok := tryFile(LocalPath); ok {
		return cfg, SourceLocal, nil
	}

	if cfg, err := parse(defaultYAML); err == nil {
		return cfg, SourceEmbedded, nil
	}
	return Default(), SourceBuiltin, nil
}

func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg, err := parse(data)
	if err != nil {
		log.Warn("ignoring invalid config file", "path", path, "error", err)
		return Config{}, false
	}
	return cfg, true
}

// parse decodes YAML on top of the built-in defaults so partial files work.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize fills derived values and validates the configuration.
func (c *Config) Normalize() error {
	p, err := ParsePreset(c.Preset)
	if err != nil {
		return err
	}
	c.Preset = string(p)
	if c.Rules.Spawn4Prob == 0 {
		c.Rules.Spawn4Prob = p.Spawn4Prob()
	}
	return c.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	var errs []error

	if c.Rules.Size != 0 && (c.Rules.Size < MinSize || c.Rules.Size > MaxSize) {
		errs = append(errs, fmt.Errorf("rules.size must be between %d and %d, got %d", MinSize, MaxSize, c.Rules.Size))
	}
	if c.Rules.WinTile < 0 {
		errs = append(errs, fmt.Errorf("rules.win_tile must not be negative, got %d", c.Rules.WinTile))
	} else if c.Rules.WinTile > 0 && c.Rules.WinTile&(c.Rules.WinTile-1) != 0 {
		errs = append(errs, fmt.Errorf("rules.win_tile must be a power of two, got %d", c.Rules.WinTile))
	}
	if c.Rules.Spawn4Prob < 0 || c.Rules.Spawn4Prob > 1 {
		errs = append(errs, fmt.Errorf("rules.spawn4_prob must be within [0, 1], got %g", c.Rules.Spawn4Prob))
	}
	if c.Scores.Limit < 1 {
		errs = append(errs, fmt.Errorf("scores.limit must be positive, got %d", c.Scores.Limit))
	}
	if c.Input.TickRate < 1 || c.Input.TickRate > 240 {
		errs = append(errs, fmt.Errorf("input.tick_rate must be between 1 and 240, got %d", c.Input.TickRate))
	}
	if c.Input.SwipeThreshold < 1 {
		errs = append(errs, fmt.Errorf("input.swipe_threshold must be positive, got %d", c.Input.SwipeThreshold))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Marshal encodes the configuration as YAML.
func Marshal(c Config) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// Dir returns ~/.t2048, or empty if home is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048")
}

// UserConfigPath returns the path to the user config file, or empty if home is unavailable.
func UserConfigPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
