// Package config loads smedit settings from an optional TOML or YAML file
// and SMEDIT_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/smedit/decorate"
	"github.com/iw2rmb/smedit/engine"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type Engine struct {
	Path    string
	Args    []string
	Timeout time.Duration
}

type Config struct {
	Engine Engine
	Theme  Theme

	// Undo depth of the document buffer; negative disables undo.
	HistoryLimit int
	// Grid snapshots kept per table editing session.
	TableHistoryLimit int

	// Addr is the listen address of smedit-server.
	Addr string

	ClassPrefix string
}

func Default() Config {
	return Config{
		Engine:            Engine{Path: "sevenmark", Timeout: engine.DefaultTimeout},
		Theme:             ThemeLight,
		HistoryLimit:      1000,
		TableHistoryLimit: 100,
		Addr:              ":8095",
		ClassPrefix:       decorate.DefaultClassPrefix,
	}
}

// file mirrors Config in the on-disk formats. Durations are strings ("5s").
type file struct {
	Engine struct {
		Path    string   `toml:"path" yaml:"path"`
		Args    []string `toml:"args" yaml:"args"`
		Timeout string   `toml:"timeout" yaml:"timeout"`
	} `toml:"engine" yaml:"engine"`
	Theme             string `toml:"theme" yaml:"theme"`
	HistoryLimit      *int   `toml:"history_limit" yaml:"history_limit"`
	TableHistoryLimit *int   `toml:"table_history_limit" yaml:"table_history_limit"`
	Addr              string `toml:"addr" yaml:"addr"`
	ClassPrefix       string `toml:"class_prefix" yaml:"class_prefix"`
}

// Load returns the defaults, overlaid with path (when non-empty) and then
// the environment. The format follows the file extension.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decode(path, data, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	var f file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config %s: unsupported format %q", path, ext)
	}

	if f.Engine.Path != "" {
		cfg.Engine.Path = f.Engine.Path
	}
	if f.Engine.Args != nil {
		cfg.Engine.Args = f.Engine.Args
	}
	if f.Engine.Timeout != "" {
		d, err := time.ParseDuration(f.Engine.Timeout)
		if err != nil {
			return fmt.Errorf("config %s: engine.timeout: %w", path, err)
		}
		cfg.Engine.Timeout = d
	}
	if f.Theme != "" {
		cfg.Theme = Theme(f.Theme)
	}
	if f.HistoryLimit != nil {
		cfg.HistoryLimit = *f.HistoryLimit
	}
	if f.TableHistoryLimit != nil {
		cfg.TableHistoryLimit = *f.TableHistoryLimit
	}
	if f.Addr != "" {
		cfg.Addr = f.Addr
	}
	if f.ClassPrefix != "" {
		cfg.ClassPrefix = f.ClassPrefix
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Engine.Path = envOr("SMEDIT_ENGINE", cfg.Engine.Path)
	if v := os.Getenv("SMEDIT_ENGINE_ARGS"); v != "" {
		cfg.Engine.Args = strings.Fields(v)
	}
	cfg.Theme = Theme(envOr("SMEDIT_THEME", string(cfg.Theme)))
	cfg.Addr = envOr("SMEDIT_ADDR", cfg.Addr)
	cfg.ClassPrefix = envOr("SMEDIT_CLASS_PREFIX", cfg.ClassPrefix)

	var err error
	if cfg.HistoryLimit, err = envInt("SMEDIT_HISTORY_LIMIT", cfg.HistoryLimit); err != nil {
		return err
	}
	if cfg.TableHistoryLimit, err = envInt("SMEDIT_TABLE_HISTORY_LIMIT", cfg.TableHistoryLimit); err != nil {
		return err
	}
	if cfg.Engine.Timeout, err = envDuration("SMEDIT_ENGINE_TIMEOUT", cfg.Engine.Timeout); err != nil {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	if c.Engine.Path == "" {
		return fmt.Errorf("engine path is required")
	}
	if c.Engine.Timeout <= 0 {
		return fmt.Errorf("engine timeout must be positive, got %s", c.Engine.Timeout)
	}
	if c.Theme != ThemeLight && c.Theme != ThemeDark {
		return fmt.Errorf("theme must be %q or %q, got %q", ThemeLight, ThemeDark, c.Theme)
	}
	if c.TableHistoryLimit < 0 {
		return fmt.Errorf("table history limit must not be negative")
	}
	return nil
}

// EngineCommand builds the engine runner described by the config.
func (c Config) EngineCommand() engine.Command {
	return engine.Command{Path: c.Engine.Path, Args: c.Engine.Args, Timeout: c.Engine.Timeout}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
