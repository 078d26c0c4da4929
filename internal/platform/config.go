package platform

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/journal/pkg/core"
)

// ConfigFile is the name of the optional YAML config inside the data directory.
const ConfigFile = "journal.yaml"

// FileConfig is the content of ConfigFile. Zero values mean "use the default".
//
//	adapter: sqlite
//	format: json
//	seed: false
//	theme_hint: dark
//	log_level: debug
type FileConfig struct {
	Adapter   string `yaml:"adapter,omitempty"`
	Format    string `yaml:"format,omitempty"`
	Seed      *bool  `yaml:"seed,omitempty"`
	ThemeHint string `yaml:"theme_hint,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
}

// LoadConfig reads ConfigFile from dataDir. A missing file yields a zero config.
func LoadConfig(dataDir string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(filepath.Join(dataDir, ConfigFile))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	if _, err := cfg.Level(); err != nil {
		return cfg, err
	}
	if cfg.ThemeHint != "" {
		if _, err := core.ParseTheme(cfg.ThemeHint); err != nil {
			return cfg, fmt.Errorf("invalid theme_hint in %s: %w", ConfigFile, err)
		}
	}
	return cfg, nil
}

// Options converts the file config to functional options.
// They are meant to be applied before command-line overrides.
func (c FileConfig) Options() []Option {
	var opts []Option
	if c.Adapter != "" {
		opts = append(opts, WithAdapter(c.Adapter))
	}
	if c.Format != "" {
		opts = append(opts, WithFormat(c.Format))
	}
	if c.Seed != nil {
		opts = append(opts, WithSeeding(*c.Seed))
	}
	if t, err := core.ParseTheme(c.ThemeHint); err == nil {
		opts = append(opts, WithThemeHint(func() (core.Theme, bool) { return t, true }))
	}
	return opts
}

// Level parses LogLevel; empty means Info.
func (c FileConfig) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Save writes the config to dataDir. The file is replaced atomically, so a
// concurrent reader sees either the old or the new config.
func (c FileConfig) Save(dataDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	path := filepath.Join(dataDir, ConfigFile)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return err
	}
	return os.Chmod(path, 0644)
}
