package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/colloc/internal/analysis"
	"github.com/san-kum/colloc/internal/collocation"
)

const (
	DefaultSize         = 5
	DefaultDistribution = "uniform"
	DefaultPrecision    = "float64"
	DefaultFunction     = "sin"
	DefaultSweepMin     = 2
	DefaultSweepMax     = 24
	DefaultFormat       = "csv"
	DefaultDigits       = 4
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Size         int          `yaml:"size"`
	Distribution string       `yaml:"distribution"`
	Precision    string       `yaml:"precision"`
	Function     string       `yaml:"function"`
	Sweep        SweepConfig  `yaml:"sweep"`
	Output       OutputConfig `yaml:"output"`
}

type SweepConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
	Digits int    `yaml:"digits"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:         DefaultSize,
		Distribution: DefaultDistribution,
		Precision:    DefaultPrecision,
		Function:     DefaultFunction,
		Sweep: SweepConfig{
			Min: DefaultSweepMin,
			Max: DefaultSweepMax,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
			Digits: DefaultDigits,
		},
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("%w: size %d", ErrInvalidConfig, c.Size)
	}
	if _, err := collocation.LookupDistribution(c.Distribution); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Precision {
	case "float64", "float32":
	default:
		return fmt.Errorf("%w: precision %q (want float64 or float32)", ErrInvalidConfig, c.Precision)
	}
	if _, err := analysis.LookupFunction(c.Function); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Sweep.Min < 1 || c.Sweep.Max < c.Sweep.Min {
		return fmt.Errorf("%w: sweep range [%d, %d]", ErrInvalidConfig, c.Sweep.Min, c.Sweep.Max)
	}
	switch c.Output.Format {
	case "csv", "json", "svg":
	default:
		return fmt.Errorf("%w: output format %q", ErrInvalidConfig, c.Output.Format)
	}
	if c.Output.Digits < 0 || c.Output.Digits > 17 {
		return fmt.Errorf("%w: output digits %d", ErrInvalidConfig, c.Output.Digits)
	}
	return nil
}

// DistributionStrategy resolves the configured distribution name.
func (c *Config) DistributionStrategy() (collocation.Distribution, error) {
	return collocation.LookupDistribution(c.Distribution)
}

func (c *Config) TestFunction() (analysis.Function, error) {
	return analysis.LookupFunction(c.Function)
}
