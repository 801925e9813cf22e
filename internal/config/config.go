// =============================================================================
// Purchase Parser - Configuration Module
// =============================================================================
//
// This module loads the application configuration. Values come from four
// layers, later layers winning:
//   1. Built-in defaults
//   2. The YAML configuration file (config.yaml)
//   3. PURCHASE_* entries of a .env file in the working directory
//   4. PURCHASE_* process environment variables
//
// EXAMPLE config.yaml:
//
//   input_dir: ./input
//   output_dir: ./output
//   input_pattern: "*.txt"
//   output_format: xml
//   name_format: "{original}_{uuid}"
//   log_level: debug
//   max_concurrency: 8
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/purchase-parser/internal/logging"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PURCHASE_"

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = "config.yaml"

// DotEnvFile is read for environment overrides when it exists.
const DotEnvFile = ".env"

// =============================================================================
// OUTPUT FORMATS
// =============================================================================

// OutputFormat is the rendering written for each parsed purchase.
type OutputFormat string

const (
	// FormatText is the canonical multi-line text form.
	FormatText OutputFormat = "text"
	// FormatXML is an XML document (see internal/xmlwriter).
	FormatXML OutputFormat = "xml"
	// FormatYAML is a YAML document.
	FormatYAML OutputFormat = "yaml"
	// FormatXLSX is an Excel workbook (see internal/workbook).
	FormatXLSX OutputFormat = "xlsx"
)

// OutputFormats lists every supported output format.
var OutputFormats = []OutputFormat{FormatText, FormatXML, FormatYAML, FormatXLSX}

// Extension returns the file extension used for the format, with the dot.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatXML:
		return ".xml"
	case FormatYAML:
		return ".yaml"
	case FormatXLSX:
		return ".xlsx"
	default:
		return ".txt"
	}
}

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned by the process command for purchase files.
	// Default: "./input"
	InputDir string `yaml:"input_dir" env:"INPUT_DIR"`

	// OutputDir receives one rendered file per parsed purchase.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" env:"OUTPUT_DIR"`

	// InputArchiveDir receives input files after they were converted.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir" env:"INPUT_ARCHIVE_DIR"`

	// OutputArchiveDir receives a copy of every output file written.
	// Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir" env:"OUTPUT_ARCHIVE_DIR"`

	// InputPattern is the glob matched against file names in InputDir.
	// Default: "*.txt"
	InputPattern string `yaml:"input_pattern" env:"INPUT_PATTERN"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputFormat is one of "text", "xml", "yaml", "xlsx".
	// Default: "text"
	OutputFormat OutputFormat `yaml:"output_format" env:"OUTPUT_FORMAT"`

	// NameFormat defines output file names. Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {time}      - Current time (HHMMSS)
	//   {original}  - Input file name without extension
	// The extension of OutputFormat is appended.
	// Default: "{original}_{uuid}"
	NameFormat string `yaml:"name_format" env:"NAME_FORMAT"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel is one of "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// LogFormat is "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files converted at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency" env:"MAX_CONCURRENCY"`

	// ContinueOnError keeps converting other files after one fails.
	// Default: true
	ContinueOnError *bool `yaml:"continue_on_error" env:"CONTINUE_ON_ERROR"`

	// ArchiveOnSuccess moves converted input files to InputArchiveDir.
	// Default: true
	ArchiveOnSuccess *bool `yaml:"archive_on_success" env:"ARCHIVE_ON_SUCCESS"`
}

// ShouldContinueOnError reports the effective ContinueOnError setting.
func (c *MainConfig) ShouldContinueOnError() bool {
	return c.ContinueOnError == nil || *c.ContinueOnError
}

// ShouldArchive reports the effective ArchiveOnSuccess setting.
func (c *MainConfig) ShouldArchive() bool {
	return c.ArchiveOnSuccess == nil || *c.ArchiveOnSuccess
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration with every default applied.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// LoadMainConfig loads the configuration from a YAML file and applies
// environment overrides.
//
// A missing file is not an error when configPath is DefaultConfigFile; the
// defaults are used instead. An explicitly named file must exist.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && configPath == DefaultConfigFile:
		// No config file; defaults and environment only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Environment variables override file values.
	environment, err := loadEnvironment(DotEnvFile)
	if err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(&config, env.Options{
		Prefix:      EnvPrefix,
		Environment: environment,
	}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Apply default values.
	applyMainConfigDefaults(&config)

	// Validate the configuration.
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvironment returns the process environment merged over the entries of
// dotEnvPath. Process variables win; a missing file is ignored.
func loadEnvironment(dotEnvPath string) (map[string]string, error) {
	environment := env.ToMap(os.Environ())

	values, err := godotenv.Read(dotEnvPath)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		return environment, nil
	default:
		return nil, fmt.Errorf("failed to read %s: %w", dotEnvPath, err)
	}

	for key, value := range values {
		if _, ok := environment[key]; !ok {
			environment[key] = value
		}
	}

	return environment, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if config.InputPattern == "" {
		config.InputPattern = "*.txt"
	}
	if config.OutputFormat == "" {
		config.OutputFormat = FormatText
	}
	if config.NameFormat == "" {
		config.NameFormat = "{original}_{uuid}"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = string(logging.FormatText)
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
}

// Validate checks that enumerated settings hold known values.
func (c *MainConfig) Validate() error {
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("unknown output_format %q", c.OutputFormat)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch logging.Format(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}

	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", c.MaxConcurrency)
	}

	return nil
}
