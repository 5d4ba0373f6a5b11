// Package config provides configuration management for the campaign cleaner.
// It loads configuration from several sources, validates it, and derives the
// concrete file locations a run reads and writes.
//
// # Configuration Sources
//
// Configuration is resolved in the following order, later sources winning:
//
//	1. Struct tag defaults
//	2. Environment variables (CAMPAIGN_* namespace)
//	3. YAML configuration file
//	4. Command line flags (applied by the CLI)
//
// # Environment Variables
//
//	CAMPAIGN_PIPELINE_INPUT_DIR=files/input/
//	CAMPAIGN_PIPELINE_OUTPUT_DIR=files/output/
//	CAMPAIGN_PIPELINE_PATTERN=*
//	CAMPAIGN_PIPELINE_WORKERS=4
//	CAMPAIGN_PIPELINE_WORKBOOK_PATH=files/output/campaign.xlsx
//	CAMPAIGN_LOGGING_LEVEL=info
//	CAMPAIGN_TELEMETRY_TRACE_EXPORTER=none
//	CAMPAIGN_TELEMETRY_METRICS_FILE=metrics/campaign.prom
//	CAMPAIGN_CONFIG_FILE=configs/campaign-cleaner.yaml
//
// # Configuration File
//
//	pipeline:
//	  input_dir: files/input/
//	  output_dir: files/output/
//	logging:
//	  level: debug
//
// # Path Management
//
// Paths derives the three output table locations from a PipelineConfig:
//
//	paths := config.NewPaths(cfg.Pipeline)
//	paths.ClientCSV // files/output/client.csv
package config
