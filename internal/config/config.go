// Package config loads and validates the scoring engine configuration.
//
// Precedence is defaults, then an optional YAML file, then environment
// variables prefixed GEOPULSE_. The engines themselves take plain parameter
// structs; this package is the composition root's way of building them once
// at startup. The high-risk theme registry loaded here is immutable for the
// process lifetime.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"geopulse/internal/correlation"
	apperrors "geopulse/internal/errors"
	"geopulse/internal/risk"
	"geopulse/internal/spikes"
)

// envPrefix is the prefix of all environment overrides, e.g.
// GEOPULSE_CORRELATION_ALPHA.
const envPrefix = "GEOPULSE"

// Config is the complete engine configuration.
type Config struct {
	Correlation CorrelationConfig `yaml:"correlation"`
	Risk        RiskConfig        `yaml:"risk"`
	Spikes      SpikeConfig       `yaml:"spikes"`
}

// CorrelationConfig parameterizes the correlation engine.
type CorrelationConfig struct {
	Method            string  `yaml:"method" envconfig:"METHOD" validate:"oneof=pearson spearman"`
	Alpha             float64 `yaml:"alpha" envconfig:"ALPHA" validate:"gt=0,lt=1"`
	MinEffectSize     float64 `yaml:"min_effect_size" envconfig:"MIN_EFFECT_SIZE" validate:"gte=0,lte=1"`
	CheckStationarity bool    `yaml:"check_stationarity" envconfig:"CHECK_STATIONARITY"`
}

// RiskConfig parameterizes the risk scorer.
type RiskConfig struct {
	Weights        risk.Weights `yaml:"weights"`
	HighRiskThemes []string     `yaml:"high_risk_themes" envconfig:"HIGH_RISK_THEMES"`
}

// SpikeConfig parameterizes spike baseline preparation.
type SpikeConfig struct {
	WindowDays int `yaml:"window_days" envconfig:"WINDOW_DAYS" validate:"gte=2"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Correlation: CorrelationConfig{
			Method:            string(correlation.MethodPearson),
			Alpha:             0.05,
			MinEffectSize:     0.7,
			CheckStationarity: true,
		},
		Risk: RiskConfig{
			Weights:        risk.DefaultWeights(),
			HighRiskThemes: risk.DefaultHighRiskTokens(),
		},
		Spikes: SpikeConfig{
			WindowDays: spikes.DefaultWindowDays,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path (empty path skips the file), and environment overrides, then
// validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

var structValidator = validator.New()

// Validate checks ranges and the risk weight sum constraint.
func (c *Config) Validate() error {
	if err := structValidator.Struct(c); err != nil {
		return apperrors.NewConfigError("invalid engine configuration", err)
	}
	if err := c.Risk.Weights.Validate(); err != nil {
		return err
	}
	return nil
}

// CorrelationOptions maps the configuration onto engine options.
func (c *Config) CorrelationOptions() correlation.Options {
	return correlation.Options{
		Method:            correlation.Method(c.Correlation.Method),
		Alpha:             c.Correlation.Alpha,
		MinEffectSize:     c.Correlation.MinEffectSize,
		CheckStationarity: c.Correlation.CheckStationarity,
	}
}

// ThemeRegistry builds the immutable high-risk theme lookup table.
func (c *Config) ThemeRegistry() *risk.ThemeRegistry {
	return risk.NewThemeRegistry(c.Risk.HighRiskThemes)
}
