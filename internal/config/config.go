// =============================================================================
// NetBox to Darkbot - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
// Every setting has a default that reproduces the stock NetBox export layout
// and the stock Darkbot database format, so the configuration file is
// optional.
//
// CONFIGURATION SOURCES (in order of precedence):
//   1. Environment variables (NETBOX2DARKBOT_*), optionally from a .env file
//   2. The YAML configuration file (netbox2darkbot.yaml)
//   3. Built-in defaults
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/netbox2darkbot/internal/types"
)

// =============================================================================
// ENVIRONMENT
// =============================================================================

const (
	// DefaultConfigFile is used when --config is not given.
	DefaultConfigFile = "netbox2darkbot.yaml"

	// EnvConfigFile overrides the default configuration file path.
	EnvConfigFile = "NETBOX2DARKBOT_CONFIG"

	// EnvLogLevel overrides the configured log level.
	EnvLogLevel = "NETBOX2DARKBOT_LOG_LEVEL"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// CSVSettings contains settings for parsing CSV sources.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// XLSXSettings contains settings for reading XLSX sources.
	XLSXSettings XLSXSettings `yaml:"xlsx_settings"`

	// Columns maps record fields to 0-based source columns.
	Columns types.Columns `yaml:"columns"`

	// Darkbot controls the text of the generated database.
	Darkbot DarkbotSettings `yaml:"darkbot"`

	// OutputNameFormat is the file name template used with --output-dir.
	// Placeholders:
	//   {type}      - Content type (ips, reverse)
	//   {source}    - Source file name without extension
	//   {date}      - Current date (YYYYMMDD)
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "{type}.db"
	OutputNameFormat string `yaml:"output_name_format"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields.
	// Accepts a single character or one of: "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the file. Only UTF-8 is
	// supported.
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`
}

// XLSXSettings contains settings for reading spreadsheet exports.
type XLSXSettings struct {
	// Sheet is the name of the sheet to read. The first sheet is used
	// when empty.
	Sheet string `yaml:"sheet"`
}

// DarkbotSettings controls the wording of the generated entries.
type DarkbotSettings struct {
	// ActiveStatus is the status that gets no "[status]" annotation.
	// Default: "active"
	ActiveStatus string `yaml:"active_status"`

	// UndocumentedText is written for addresses with nothing to describe
	// them.
	// Default: "Undocumented IP on NetBox"
	UndocumentedText string `yaml:"undocumented_text"`

	// Separator joins fragments and grouped addresses.
	// Default: " / "
	Separator string `yaml:"separator"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadEnv loads a .env file from the working directory when one exists.
// A missing file is not an error.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// ResolvePath returns the configuration file to read and whether the caller
// asked for it explicitly. An explicit --config wins over the environment,
// which wins over the default file name.
func ResolvePath(flagValue string, flagChanged bool) (string, bool) {
	if flagChanged {
		return flagValue, true
	}
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path, true
	}
	return DefaultConfigFile, false
}

// Load reads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - required: When false, a missing file yields the defaults.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed, or is invalid.
func Load(configPath string, required bool) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.CSVSettings.Delimiter == "" {
		cfg.CSVSettings.Delimiter = ","
	}
	if cfg.CSVSettings.Encoding == "" {
		cfg.CSVSettings.Encoding = "UTF-8"
	}
	if cfg.Columns == (types.Columns{}) {
		cfg.Columns = types.DefaultColumns()
	}
	if cfg.Darkbot.ActiveStatus == "" {
		cfg.Darkbot.ActiveStatus = "active"
	}
	if cfg.Darkbot.UndocumentedText == "" {
		cfg.Darkbot.UndocumentedText = "Undocumented IP on NetBox"
	}
	if cfg.Darkbot.Separator == "" {
		cfg.Darkbot.Separator = " / "
	}
	if cfg.OutputNameFormat == "" {
		cfg.OutputNameFormat = "{type}.db"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// applyEnv applies environment overrides.
func applyEnv(cfg *Config) {
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
}

// validate checks the configuration for values the pipeline cannot use.
func validate(cfg *Config) error {
	if !strings.EqualFold(cfg.CSVSettings.Encoding, "UTF-8") && !strings.EqualFold(cfg.CSVSettings.Encoding, "UTF8") {
		return fmt.Errorf("unsupported encoding %q", cfg.CSVSettings.Encoding)
	}

	cols := cfg.Columns
	positions := map[string]int{
		"address":     cols.Address,
		"dns_name":    cols.DNSName,
		"description": cols.Description,
		"status":      cols.Status,
	}
	seen := make(map[int]string, len(positions))
	for _, name := range []string{"address", "dns_name", "description", "status"} {
		idx := positions[name]
		if idx < 0 {
			return fmt.Errorf("column %s must not be negative", name)
		}
		if other, dup := seen[idx]; dup {
			return fmt.Errorf("columns %s and %s share position %d", other, name, idx)
		}
		seen[idx] = name
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	return nil
}
