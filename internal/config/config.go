package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/RowanDark/cipherdeck/internal/cipher"
	"github.com/RowanDark/cipherdeck/internal/env"
)

const (
	// HomeDirName is the per-user configuration directory under $HOME.
	HomeDirName = ".cipherdeck"
	// HomeFileName is the configuration file inside HomeDirName.
	HomeFileName = "config.yaml"
	// LocalFileName is looked up in the working directory.
	LocalFileName = "cipherdeck.yml"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config captures the cipherdeck configuration resolved from defaults, optional
// files, and environment overrides.
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Batch    BatchConfig    `yaml:"batch"`
	Log      LogConfig      `yaml:"log"`
}

// DefaultsConfig holds the parameter values used when a request omits them.
type DefaultsConfig struct {
	Shift     int    `yaml:"shift"`
	Key       string `yaml:"key"`
	Rails     int    `yaml:"rails"`
	Intensity int    `yaml:"intensity"`
	Cover     string `yaml:"cover"`
	Mode      string `yaml:"mode"`
}

// BatchConfig controls the batch driver.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// LogConfig controls the JSON event log.
type LogConfig struct {
	File    string `yaml:"file"`
	Verbose bool   `yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := cipher.DefaultParams()
	return Config{
		Defaults: DefaultsConfig{
			Shift:     p.Shift,
			Key:       p.Key,
			Rails:     p.Rails,
			Intensity: p.Intensity,
			Cover:     p.Cover,
			Mode:      string(p.Mode),
		},
		Batch: BatchConfig{Workers: 4},
	}
}

// Load resolves the configuration using defaults, configuration files, and
// environment overrides. The lookup order for configuration files is:
//  1. ~/.cipherdeck/config.yaml
//  2. ./cipherdeck.yml
//
// Environment variables prefixed with CIPHERDECK_ have the highest precedence.
func Load() (Config, error) {
	cfg := Default()

	if err := loadHomeConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadLocalConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile resolves the configuration from defaults, the file at path, and
// environment overrides. Home and working directory files are skipped.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	found, err := applyFile(&cfg, path)
	if err != nil {
		return Config{}, err
	}
	if !found {
		return Config{}, fmt.Errorf("read config %s: %w", path, fs.ErrNotExist)
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadHomeConfig(cfg *Config) error {
	home, err := os.UserHomeDir()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("determine home directory: %w", err)
	}
	_, err = applyFile(cfg, filepath.Join(home, HomeDirName, HomeFileName))
	return err
}

func loadLocalConfig(cfg *Config) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}
	_, err = applyFile(cfg, filepath.Join(wd, LocalFileName))
	return err
}

// applyFile overlays the YAML file at path onto cfg. A missing file is not an
// error and reports found == false.
func applyFile(cfg *Config, path string) (found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := applyFileConfig(cfg, data); err != nil {
		return true, fmt.Errorf("parse config %s: %w", path, err)
	}
	return true, nil
}

type fileConfig struct {
	Defaults *fileDefaultsConfig `yaml:"defaults"`
	Batch    *fileBatchConfig    `yaml:"batch"`
	Log      *fileLogConfig      `yaml:"log"`
}

type fileDefaultsConfig struct {
	Shift     *int    `yaml:"shift"`
	Key       *string `yaml:"key"`
	Rails     *int    `yaml:"rails"`
	Intensity *int    `yaml:"intensity"`
	Cover     *string `yaml:"cover"`
	Mode      *string `yaml:"mode"`
}

type fileBatchConfig struct {
	Workers *int `yaml:"workers"`
}

type fileLogConfig struct {
	File    *string `yaml:"file"`
	Verbose *bool   `yaml:"verbose"`
}

func applyFileConfig(cfg *Config, data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if d := fc.Defaults; d != nil {
		if d.Shift != nil {
			cfg.Defaults.Shift = *d.Shift
		}
		if d.Key != nil {
			cfg.Defaults.Key = strings.TrimSpace(*d.Key)
		}
		if d.Rails != nil {
			cfg.Defaults.Rails = *d.Rails
		}
		if d.Intensity != nil {
			cfg.Defaults.Intensity = *d.Intensity
		}
		if d.Cover != nil {
			cfg.Defaults.Cover = *d.Cover
		}
		if d.Mode != nil {
			cfg.Defaults.Mode = strings.TrimSpace(*d.Mode)
		}
	}
	if fc.Batch != nil && fc.Batch.Workers != nil {
		cfg.Batch.Workers = *fc.Batch.Workers
	}
	if l := fc.Log; l != nil {
		if l.File != nil {
			cfg.Log.File = strings.TrimSpace(*l.File)
		}
		if l.Verbose != nil {
			cfg.Log.Verbose = *l.Verbose
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	ints := []struct {
		name   string
		legacy []string
		dst    *int
	}{
		{name: "shift", dst: &cfg.Defaults.Shift},
		{name: "rails", dst: &cfg.Defaults.Rails},
		{name: "intensity", dst: &cfg.Defaults.Intensity},
		{name: "workers", legacy: []string{"CIPHERDECK_BATCH_WORKERS"}, dst: &cfg.Batch.Workers},
	}
	for _, o := range ints {
		n, ok, err := env.Int(env.Key(o.name), o.legacy...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if ok {
			*o.dst = n
		}
	}

	if val, ok := env.Lookup(env.Key("key")); ok && strings.TrimSpace(val) != "" {
		cfg.Defaults.Key = strings.TrimSpace(val)
	}
	if val, ok := env.Lookup(env.Key("cover")); ok && val != "" {
		cfg.Defaults.Cover = val
	}
	if val, ok := env.Lookup(env.Key("reverse_mode")); ok && strings.TrimSpace(val) != "" {
		cfg.Defaults.Mode = strings.TrimSpace(val)
	}
	if val, ok := env.Lookup(env.Key("log_file")); ok && strings.TrimSpace(val) != "" {
		cfg.Log.File = strings.TrimSpace(val)
	}
	if val, ok := env.Lookup(env.Key("verbose")); ok && strings.TrimSpace(val) != "" {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			cfg.Log.Verbose = parsed
		}
	}
	return nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	if c.Defaults.Rails < 0 {
		return fmt.Errorf("%w: rails must not be negative, got %d", ErrInvalidConfig, c.Defaults.Rails)
	}
	if c.Defaults.Intensity < cipher.MinZalgoIntensity || c.Defaults.Intensity > cipher.MaxZalgoIntensity {
		return fmt.Errorf("%w: intensity must be between %d and %d, got %d",
			ErrInvalidConfig, cipher.MinZalgoIntensity, cipher.MaxZalgoIntensity, c.Defaults.Intensity)
	}
	if _, err := cipher.ParseReverseMode(c.Defaults.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Batch.Workers)
	}
	return nil
}

// Params converts the configured defaults into cipher parameters. Every
// field is explicit, so a configured shift of 0 or an empty key is kept.
func (c Config) Params() cipher.Params {
	mode, _ := cipher.ParseReverseMode(c.Defaults.Mode)
	return cipher.Params{
		Shift:     c.Defaults.Shift,
		Key:       c.Defaults.Key,
		Rails:     c.Defaults.Rails,
		Intensity: c.Defaults.Intensity,
		Cover:     c.Defaults.Cover,
		Mode:      mode,
		Explicit:  cipher.AllParams(),
	}
}
