package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/menta2k/logo-normalizer/pkg/normalizer"
)

// EnvPrefix prefixes every environment variable the loader reads
const EnvPrefix = "LOGO_NORMALIZER_"

// Config holds the normalization parameters for one invocation
type Config struct {
	Directory    string  `koanf:"directory"      validate:"required"`
	CanvasSize   int     `koanf:"canvas_size"    validate:"gt=0"`
	MaxLogoScale float64 `koanf:"max_logo_scale" validate:"gt=0,lte=1"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Directory:    filepath.Join("public", "logos"),
		CanvasSize:   normalizer.DefaultCanvasSize,
		MaxLogoScale: normalizer.DefaultMaxLogoScale,
	}
}

// Load builds the configuration from defaults, then LOGO_NORMALIZER_*
// environment variables, then overrides keyed by koanf path
// ("directory", "canvas_size", "max_logo_scale"). The directory is
// resolved to an absolute path.
func Load(overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply override %s: %w", key, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve makes Directory absolute
func (c *Config) Resolve() error {
	if c.Directory == "" {
		return nil
	}
	abs, err := filepath.Abs(c.Directory)
	if err != nil {
		return fmt.Errorf("failed to resolve directory %s: %w", c.Directory, err)
	}
	c.Directory = abs
	return nil
}

var validate = validator.New()

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := c.Options().Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Options returns the geometry parameters for the normalizer
func (c *Config) Options() normalizer.Options {
	return normalizer.Options{
		CanvasSize:   c.CanvasSize,
		MaxLogoScale: c.MaxLogoScale,
	}
}
