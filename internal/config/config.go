package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"netcoverage-sim/internal/experiment"
	"netcoverage-sim/internal/network"
	"netcoverage-sim/internal/simulation"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	// ErrConfigNotFound is returned when the config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrUnsupportedFormat is returned for file extensions other than .toml, .yaml and .yml.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	validate = validator.New()
)

// Config is the sweep configuration as read from a file or flags.
// Range steps are not validated: a non-positive step yields an empty axis.
type Config struct {
	Nodes    experiment.Range `toml:"nodes" yaml:"nodes"`
	Radius   experiment.Range `toml:"radius" yaml:"radius"`
	Sigma    float64          `toml:"sigma" yaml:"sigma" validate:"gte=0"`
	Area     float64          `toml:"area" yaml:"area" validate:"gt=0"`
	Trials   int              `toml:"trials" yaml:"trials" validate:"gte=1"`
	EdgeMode string           `toml:"edge_mode" yaml:"edge_mode" validate:"oneof=symmetric legacy"`
	Workers  int              `toml:"workers" yaml:"workers" validate:"gte=1"`
	Seed     uint64           `toml:"seed" yaml:"seed"`
	LogLevel string           `toml:"log_level" yaml:"log_level" validate:"oneof=panic fatal error warn warning info debug trace"`
	LogFile  string           `toml:"log_file" yaml:"log_file"`
}

// Default returns the stock sweep: 10..100 nodes, mean radius 0..100, sigma 5.
func Default() Config {
	return Config{
		Nodes:    experiment.Range{Start: 10, End: 100, Step: 10},
		Radius:   experiment.Range{Start: 0, End: 100, Step: 10},
		Sigma:    5,
		Area:     simulation.DefaultArea,
		Trials:   experiment.DefaultTrials,
		EdgeMode: network.EdgeSymmetric.String(),
		Workers:  1,
		LogLevel: "info",
	}
}

// Load reads the file at path on top of Default() and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Sweep converts the configuration into the engine's sweep parameters.
func (c *Config) Sweep() (experiment.SweepConfig, error) {
	mode, err := network.ParseEdgeMode(c.EdgeMode)
	if err != nil {
		return experiment.SweepConfig{}, err
	}
	return experiment.SweepConfig{
		Nodes:    c.Nodes,
		Radius:   c.Radius,
		Sigma:    c.Sigma,
		Area:     c.Area,
		Trials:   c.Trials,
		EdgeMode: mode,
		Workers:  c.Workers,
		Seed:     c.Seed,
	}, nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Report the first failing field.
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s], got %v", field, param, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
