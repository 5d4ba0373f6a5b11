package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "campaignclean/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// PipelineConfig contains the locations and knobs of one cleaning run
type PipelineConfig struct {
	InputDir     string `yaml:"input_dir" envconfig:"INPUT_DIR" default:"files/input/" validate:"required"`
	OutputDir    string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"files/output/" validate:"required"`
	Pattern      string `yaml:"pattern" envconfig:"PATTERN" default:"*" validate:"required,glob"`
	Workers      int    `yaml:"workers" envconfig:"WORKERS" default:"4" validate:"min=1,max=64"`
	ContactYear  int    `yaml:"contact_year" envconfig:"CONTACT_YEAR" default:"2022" validate:"min=1,max=9999"`
	WorkbookPath string `yaml:"workbook_path" envconfig:"WORKBOOK_PATH"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/campaign-cleaner.log"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"none" validate:"oneof=none stdout"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load loads configuration from defaults, environment variables and an
// optional YAML file. Values present in the file override the environment.
// An empty filePath falls back to CAMPAIGN_CONFIG_FILE and then to the
// well-known locations.
func Load(filePath string) (*Config, error) {
	var cfg Config

	// Defaults and environment variables first
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if filePath == "" {
		filePath = os.Getenv(ConfigFileEnv)
	}
	if filePath == "" {
		filePath = getConfigFilePath()
	}

	if filePath != "" {
		if err := loadFromFile(filePath, &cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", filePath)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration a run uses when nothing is overridden
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			InputDir:    DefaultInputDir,
			OutputDir:   DefaultOutputDir,
			Pattern:     DefaultPattern,
			Workers:     DefaultWorkers,
			ContactYear: DefaultContactYear,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/campaign-cleaner.log",
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
		},
	}
}

// loadFromFile overlays the keys present in a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("invalid yaml: %w", err)
	}

	return nil
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.RegisterValidation("glob", isValidGlob); err != nil {
		return apperrors.NewConfigError("failed to register validators", err)
	}

	if err := v.Struct(c); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperrors.NewConfigError("config validation failed", err)
		}

		var msgs []string
		for _, fe := range validationErrors {
			msgs = append(msgs, formatValidationError(fe))
		}
		return apperrors.NewConfigError("config validation failed", fmt.Errorf("%s", strings.Join(msgs, "; ")))
	}

	return nil
}

// formatValidationError renders a single field error
func formatValidationError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "glob":
		return fmt.Sprintf("%s is not a valid glob pattern", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// isValidGlob validates a filepath.Match pattern
func isValidGlob(fl validator.FieldLevel) bool {
	_, err := filepath.Match(fl.Field().String(), "")
	return err == nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"campaign-cleaner.yaml",
		"configs/campaign-cleaner.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}
