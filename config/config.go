package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/etnz/savings/wave"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces the environment variables overriding the configuration.
const EnvPrefix = "SAVINGS"

// Config is the configuration of a panel run.
type Config struct {
	// YearsToInclude are the survey years of the analysis, ascending. Every
	// consecutive pair is a timespan.
	YearsToInclude []int `yaml:"years_to_include" envconfig:"YEARS_TO_INCLUDE" validate:"min=2,dive,gte=1968"`
	// ToYear expresses every amount in the dollars of that year. Zero keeps
	// nominal amounts.
	ToYear int `yaml:"to_year" envconfig:"TO_YEAR" validate:"omitempty,gte=1968"`

	ExcludeRetirementSavings bool `yaml:"exclude_retirement_savings" envconfig:"EXCLUDE_RETIREMENT_SAVINGS"`
	UseOriginalSampleOnly    bool `yaml:"use_original_sample_only" envconfig:"USE_ORIGINAL_SAMPLE_ONLY"`
	// DropAllNon1968Families is the former name of UseOriginalSampleOnly.
	DropAllNon1968Families bool `yaml:"drop_all_non_1968_families" envconfig:"DROP_ALL_NON_1968_FAMILIES"`
	UseCleanedDataOnly     bool `yaml:"use_cleaned_data_only" envconfig:"USE_CLEANED_DATA_ONLY"`
	ForceReload            bool `yaml:"force_reload" envconfig:"FORCE_RELOAD"`

	// BaseName prefixes every output file name.
	BaseName string `yaml:"base_name" envconfig:"BASE_NAME"`

	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// PathsConfig locates the inputs and outputs of a run.
type PathsConfig struct {
	ExtractDir  string `yaml:"extract_dir" envconfig:"EXTRACT_DIR" validate:"required"`
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	Crosswalk   string `yaml:"crosswalk" envconfig:"CROSSWALK" validate:"required"`
	PriceLevels string `yaml:"price_levels" envconfig:"PRICE_LEVELS" validate:"required"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json console"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		YearsToInclude: []int{1999, 2001, 2003, 2005, 2007},
		ToYear:         0,
		BaseName:       "psid_",
		Paths: PathsConfig{
			ExtractDir:  "extract",
			OutputDir:   "output",
			Crosswalk:   "crosswalk.xlsx",
			PriceLevels: "price_levels.csv",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load returns the default configuration, overlaid by the YAML file path (if
// not empty), then by the environment variables. A .env file in the working
// directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// OriginalSampleOnly reports whether the run is restricted to the original
// 1968 families, under either name.
func (c *Config) OriginalSampleOnly() bool {
	return c.UseOriginalSampleOnly || c.DropAllNon1968Families
}

// Spans returns the timespans of the run.
func (c *Config) Spans() []wave.Span { return wave.Spans(c.YearsToInclude) }

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if !slices.IsSorted(c.YearsToInclude) || len(slices.Compact(slices.Clone(c.YearsToInclude))) != len(c.YearsToInclude) {
		return fmt.Errorf("years_to_include must be strictly ascending: %v", c.YearsToInclude)
	}
	for _, s := range c.Spans() {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("years_to_include: %w", err)
		}
	}
	return nil
}
