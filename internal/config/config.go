// Package config loads lapse settings from ~/.config/lapse/config.toml and
// the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds user settings. Zero values in the file fall back to defaults.
type Config struct {
	// DBPath is the SQLite file backing the key-value store.
	DBPath string `toml:"db_path"`
	// Timezone is an IANA zone name used for set names and period
	// bucketing. Empty means the system local zone.
	Timezone string `toml:"timezone"`
	// LogUseCases enables structured use-case logging on stderr.
	LogUseCases bool `toml:"log_use_cases"`
	// Confirm controls whether destructive commands prompt.
	Confirm bool `toml:"confirm"`
}

// Default returns the configuration used when no file exists.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return Config{
		DBPath:  filepath.Join(home, ".lapse", "lapse.db"),
		Confirm: true,
	}, nil
}

// Path returns the location of the global config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "lapse", "config.toml"), nil
}

// Load reads the global config file and applies environment overrides.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults, then applies LAPSE_DB, LAPSE_TZ
// and LAPSE_LOG. A missing file is not an error.
func LoadFile(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	default:
		if err := decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(data string, cfg *Config) error {
	var file Config
	meta, err := toml.Decode(data, &file)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("db_path") {
		cfg.DBPath = expandHome(strings.TrimSpace(file.DBPath))
	}
	if meta.IsDefined("timezone") {
		cfg.Timezone = strings.TrimSpace(file.Timezone)
	}
	if meta.IsDefined("log_use_cases") {
		cfg.LogUseCases = file.LogUseCases
	}
	if meta.IsDefined("confirm") {
		cfg.Confirm = file.Confirm
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LAPSE_DB"); v != "" {
		cfg.DBPath = expandHome(v)
	}
	if v := os.Getenv("LAPSE_TZ"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("LAPSE_LOG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
}

// Location resolves Timezone, defaulting to time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
