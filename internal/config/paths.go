package config

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains every file location a cleaning run touches.
// Relative locations are resolved against the working directory.
type Paths struct {
	InputDir  string
	OutputDir string

	// Output tables
	ClientCSV    string
	CampaignCSV  string
	EconomicsCSV string

	// Optional workbook, empty when disabled
	WorkbookFile string
}

// NewPaths derives the concrete paths of a run from its pipeline configuration
func NewPaths(cfg PipelineConfig) *Paths {
	inputDir := filepath.Clean(cfg.InputDir)
	outputDir := filepath.Clean(cfg.OutputDir)

	workbook := ""
	if cfg.WorkbookPath != "" {
		workbook = filepath.Clean(cfg.WorkbookPath)
	}

	return &Paths{
		InputDir:     inputDir,
		OutputDir:    outputDir,
		ClientCSV:    filepath.Join(outputDir, ClientFileName),
		CampaignCSV:  filepath.Join(outputDir, CampaignFileName),
		EconomicsCSV: filepath.Join(outputDir, EconomicsFileName),
		WorkbookFile: workbook,
	}
}

// GetOutputPath returns the path of a file inside the output directory
func (p *Paths) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// OutputFiles returns the three table files in write order
func (p *Paths) OutputFiles() []string {
	return []string{p.ClientCSV, p.CampaignCSV, p.EconomicsCSV}
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("input", p.InputDir),
			slog.String("output", p.OutputDir),
		),
		slog.Group("output_files",
			slog.String("client_csv", p.ClientCSV),
			slog.String("campaign_csv", p.CampaignCSV),
			slog.String("economics_csv", p.EconomicsCSV),
			slog.String("workbook", p.WorkbookFile),
		))
}
