package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "campaignclean/internal/errors"
)

var configEnvVars = []string{
	"CAMPAIGN_PIPELINE_INPUT_DIR", "CAMPAIGN_PIPELINE_OUTPUT_DIR", "CAMPAIGN_PIPELINE_PATTERN",
	"CAMPAIGN_PIPELINE_WORKERS", "CAMPAIGN_PIPELINE_CONTACT_YEAR", "CAMPAIGN_PIPELINE_WORKBOOK_PATH",
	"CAMPAIGN_LOGGING_LEVEL", "CAMPAIGN_LOGGING_OUTPUT", "CAMPAIGN_LOGGING_FILE_PATH",
	"CAMPAIGN_TELEMETRY_TRACE_EXPORTER", "CAMPAIGN_TELEMETRY_METRICS_FILE",
	ConfigFileEnv,
}

// clearEnv unsets the config variables for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "campaign-cleaner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "environment overrides defaults",
			env: map[string]string{
				"CAMPAIGN_PIPELINE_INPUT_DIR":  "/data/in",
				"CAMPAIGN_PIPELINE_OUTPUT_DIR": "/data/out",
				"CAMPAIGN_PIPELINE_WORKERS":    "8",
				"CAMPAIGN_LOGGING_LEVEL":       "debug",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/data/in", cfg.Pipeline.InputDir)
				assert.Equal(t, "/data/out", cfg.Pipeline.OutputDir)
				assert.Equal(t, 8, cfg.Pipeline.Workers)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, 2022, cfg.Pipeline.ContactYear)
			},
		},
		{
			name: "file overrides environment",
			env: map[string]string{
				"CAMPAIGN_PIPELINE_INPUT_DIR": "/env/in",
				"CAMPAIGN_LOGGING_LEVEL":      "warn",
			},
			file: `
pipeline:
  input_dir: /file/in
  workbook_path: /file/out/campaign.xlsx
telemetry:
  trace_exporter: stdout
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/file/in", cfg.Pipeline.InputDir)
				assert.Equal(t, "/file/out/campaign.xlsx", cfg.Pipeline.WorkbookPath)
				assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
				// keys absent from the file keep their env/default value
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "files/output/", cfg.Pipeline.OutputDir)
			},
		},
		{
			name:    "invalid env value",
			env:     map[string]string{"CAMPAIGN_PIPELINE_WORKERS": "many"},
			wantErr: true,
		},
		{
			name:    "validation failure",
			env:     map[string]string{"CAMPAIGN_PIPELINE_WORKERS": "0"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "pipeline: [unterminated",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsConfigError(err))
				return
			}

			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "pipeline:\n  output_dir: /from/env/file\n")
	t.Setenv(ConfigFileEnv, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/from/env/file", cfg.Pipeline.OutputDir)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsConfigError(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{
			name:        "missing input dir",
			mutate:      func(c *Config) { c.Pipeline.InputDir = "" },
			errContains: "InputDir is required",
		},
		{
			name:        "missing output dir",
			mutate:      func(c *Config) { c.Pipeline.OutputDir = "" },
			errContains: "OutputDir is required",
		},
		{
			name:        "bad glob",
			mutate:      func(c *Config) { c.Pipeline.Pattern = "[" },
			errContains: "Pattern is not a valid glob pattern",
		},
		{
			name:        "too many workers",
			mutate:      func(c *Config) { c.Pipeline.Workers = 65 },
			errContains: "Workers must be at most 64",
		},
		{
			name:        "bad contact year",
			mutate:      func(c *Config) { c.Pipeline.ContactYear = 0 },
			errContains: "ContactYear must be at least 1",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.Logging.Level = "trace" },
			errContains: "Level must be one of",
		},
		{
			name:        "unknown log output",
			mutate:      func(c *Config) { c.Logging.Output = "syslog" },
			errContains: "Output must be one of",
		},
		{
			name:        "unknown trace exporter",
			mutate:      func(c *Config) { c.Telemetry.TraceExporter = "otlp" },
			errContains: "TraceExporter must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, apperrors.IsConfigError(err))
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
