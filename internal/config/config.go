package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// PipelineConfig contains knobs for data generation and integration
type PipelineConfig struct {
	NumVessels    int   `yaml:"num_vessels" envconfig:"NUM_VESSELS" validate:"min=1,max=500"`
	NavRecords    int   `yaml:"nav_records" envconfig:"NAV_RECORDS" validate:"min=1,max=100000"`
	Seed          int64 `yaml:"seed" envconfig:"SEED"`
	ExcelRowLimit int   `yaml:"excel_row_limit" envconfig:"EXCEL_ROW_LIMIT" validate:"min=1"`
	Workers       int   `yaml:"workers" envconfig:"WORKERS" validate:"min=0"`
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/fleet.log",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ReportsDir: "output",
			LogsDir:    "logs",
		},
		Pipeline: PipelineConfig{
			NumVessels:    50,
			NavRecords:    5000,
			Seed:          42,
			ExcelRowLimit: 1000,
			Workers:       0, // 0 means one worker per CPU
		},
	}
}

// Load builds the configuration in precedence order: built-in defaults,
// then the optional YAML file, then FLEET_* environment variables.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if err := envconfig.Process("FLEET", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML file values onto cfg
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
