package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignclean/internal/config"
	apperrors "campaignclean/internal/errors"
	"campaignclean/internal/infrastructure"
	"campaignclean/internal/operations"
)

const header = ",client_id,age,job,marital,education,credit_default,mortgage,month,day," +
	"contact_duration,number_contacts,previous_campaign_contacts,previous_outcome,cons_price_idx,euribor_three_months,campaign_outcome\n"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Pipeline.InputDir = filepath.Join(root, "files", "input")
	cfg.Pipeline.OutputDir = filepath.Join(root, "files", "output")
	require.NoError(t, os.MkdirAll(cfg.Pipeline.InputDir, 0755))
	return cfg
}

func writeInput(t *testing.T, cfg *config.Config, name string, rows ...string) {
	t.Helper()
	var b strings.Builder
	b.WriteString(header)
	for _, row := range rows {
		b.WriteString(row + "\n")
	}
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Pipeline.InputDir, name), []byte(b.String()), 0644))
}

func run(t *testing.T, cfg *config.Config) (*operations.Summary, error) {
	t.Helper()
	application, err := NewApplication(cfg, infrastructure.NewLogger("error", io.Discard))
	require.NoError(t, err)
	defer application.Close(context.Background())
	return application.Run(context.Background())
}

func readOutputs(t *testing.T, cfg *config.Config) map[string]string {
	t.Helper()
	out := make(map[string]string)
	for _, path := range config.NewPaths(cfg.Pipeline).OutputFiles() {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		out[filepath.Base(path)] = string(content)
	}
	return out
}

func sampleRow(id int, month, day string) string {
	return fmt.Sprintf("%d,%d,35,technician,single,professional.course,no,no,%s,%s,120,2,0,nonexistent,93.918,4.96,no",
		id, id, month, day)
}

func TestApplication_RunIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	writeInput(t, cfg, "bank-marketing-campaing-0.csv", sampleRow(0, "may", "5"), sampleRow(1, "aug", "21"))
	writeInput(t, cfg, "bank-marketing-campaing-1.csv", sampleRow(0, "oct", "1"))

	_, err := run(t, cfg)
	require.NoError(t, err)
	first := readOutputs(t, cfg)

	_, err = run(t, cfg)
	require.NoError(t, err)
	second := readOutputs(t, cfg)

	assert.Equal(t, first, second)

	entries, err := os.ReadDir(cfg.Pipeline.OutputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestApplication_RowCountsMatch(t *testing.T) {
	cfg := testConfig(t)
	var rows []string
	for i := 0; i < 40; i++ {
		rows = append(rows, sampleRow(i, "jul", fmt.Sprint(i%28+1)))
	}
	writeInput(t, cfg, "part-a.csv", rows[:15]...)
	writeInput(t, cfg, "part-b.csv", rows[15:]...)

	summary, err := run(t, cfg)
	require.NoError(t, err)

	assert.Equal(t, 40, summary.UnifiedRows)
	for name, content := range readOutputs(t, cfg) {
		lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
		assert.Len(t, lines, 41, name)
	}
}

func TestApplication_EmptyInputWritesHeaders(t *testing.T) {
	cfg := testConfig(t)

	summary, err := run(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Fragments)

	assert.Equal(t, map[string]string{
		"client.csv":    "client_id,age,job,marital,education,credit_default,mortgage\n",
		"campaign.csv":  "client_id,number_contacts,contact_duration,previous_campaign_contacts,previous_outcome,campaign_outcome,last_contact_date\n",
		"economics.csv": "client_id,cons_price_idx,euribor_three_months\n",
	}, readOutputs(t, cfg))
}

func TestApplication_InvalidDateFails(t *testing.T) {
	cfg := testConfig(t)
	writeInput(t, cfg, "part.csv", sampleRow(0, "may", "5"), sampleRow(7, "feb", "30"))

	summary, err := run(t, cfg)

	require.Error(t, err)
	assert.True(t, apperrors.IsDateConstructionError(err))
	assert.Contains(t, err.Error(), "client_id 7")
	assert.Equal(t, operations.RunStatusFailed, summary.Status)
}

func TestApplication_MetricsFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.MetricsFile = filepath.Join(t.TempDir(), "metrics", "campaign.prom")
	writeInput(t, cfg, "part.csv", sampleRow(0, "may", "5"))

	_, err := run(t, cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(cfg.Telemetry.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "campaign_rows_unified_total")
	assert.Contains(t, string(content), "campaign_step_duration")
}

func TestApplication_Workbook(t *testing.T) {
	cfg := testConfig(t)
	cfg.Pipeline.WorkbookPath = filepath.Join(cfg.Pipeline.OutputDir, "campaign.xlsx")
	writeInput(t, cfg, "part.csv", sampleRow(0, "may", "5"))

	summary, err := run(t, cfg)
	require.NoError(t, err)

	assert.Contains(t, summary.WrittenFiles, cfg.Pipeline.WorkbookPath)
	assert.FileExists(t, cfg.Pipeline.WorkbookPath)
}

func TestNewApplication_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Pipeline.Workers = 0

	_, err := NewApplication(cfg, infrastructure.NewLogger("error", io.Discard))
	require.Error(t, err)
	assert.True(t, apperrors.IsConfigError(err))
}
