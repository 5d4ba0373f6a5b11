package operations

import (
	"context"
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
)

const fragmentHeader = ",client_id,age,job,marital,education,credit_default,mortgage,month,day," +
	"contact_duration,number_contacts,previous_campaign_contacts,previous_outcome,cons_price_idx,euribor_three_months,campaign_outcome\n"

func writeFragment(t *testing.T, dir, name string, rows ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := fragmentHeader + strings.Join(rows, "\n")
	if len(rows) > 0 {
		content += "\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func newTestDeps(t *testing.T, workbook bool) (PipelineDependencies, *infrastructure.OTelProviders) {
	t.Helper()
	root := t.TempDir()
	pipeline := config.PipelineConfig{
		InputDir:  filepath.Join(root, "input"),
		OutputDir: filepath.Join(root, "output"),
	}
	if workbook {
		pipeline.WorkbookPath = filepath.Join(root, "output", "campaign.xlsx")
	}

	logger := infrastructure.NewLogger("error", io.Discard)
	providers, err := infrastructure.InitializeOTel(nil, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = providers.Shutdown(context.Background()) })

	tracer, err := NewOperationTracerFromProviders(providers)
	require.NoError(t, err)

	return PipelineDependencies{
		Paths:       config.NewPaths(pipeline),
		Pattern:     "*",
		Workers:     2,
		ContactYear: 2022,
		Logger:      logger,
		Tracer:      tracer,
	}, providers
}

func runPipeline(t *testing.T, deps PipelineDependencies) (*Summary, error) {
	t.Helper()
	runner, err := NewRunnerWithSteps(NewPipelineSteps(deps), deps.Tracer, deps.Logger)
	require.NoError(t, err)
	return runner.Run(context.Background())
}

func TestNewPipelineSteps_Order(t *testing.T) {
	deps, _ := newTestDeps(t, false)
	var ids []string
	for _, step := range NewPipelineSteps(deps) {
		ids = append(ids, step.ID())
	}
	assert.Equal(t, []string{
		StepIDPrepareOutput, StepIDLoadFragments, StepIDUnify, StepIDNormalizeClient,
		StepIDNormalizeCampaign, StepIDProjectEconomics, StepIDWriteTables,
	}, ids)

	deps, _ = newTestDeps(t, true)
	steps := NewPipelineSteps(deps)
	assert.Equal(t, StepIDExportWorkbook, steps[len(steps)-1].ID())
}

func TestPipeline_EndToEnd(t *testing.T) {
	deps, providers := newTestDeps(t, true)
	writeFragment(t, deps.Paths.InputDir, "bank-marketing-campaing-0.csv",
		"0,1,56,admin.,married,basic.4y,no,yes,may,5,261,1,0,nonexistent,93.994,4.857,no",
		"1,2,57,blue-collar,married,unknown,yes,no,jun,12,149,2,1,success,94.465,4.961,yes",
	)
	writeFragment(t, deps.Paths.InputDir, "bank-marketing-campaing-1.csv",
		"0,3,41,self-employed,married,,no,no,11,03,226,1,0,failure,93.2,,no",
	)
	require.NoError(t, os.MkdirAll(deps.Paths.OutputDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(deps.Paths.OutputDir, "stale.csv"), []byte("old"), 0644))

	summary, err := runPipeline(t, deps)
	require.NoError(t, err)

	assert.Equal(t, RunStatusCompleted, summary.Status)
	assert.Equal(t, 1, summary.RemovedFiles)
	assert.Equal(t, 2, summary.Fragments)
	assert.Equal(t, 3, summary.UnifiedRows)
	assert.Equal(t, map[string]int{"client": 3, "campaign": 3, "economics": 3}, summary.TableRows)
	assert.Equal(t, append(deps.Paths.OutputFiles(), deps.Paths.WorkbookFile), summary.WrittenFiles)
	assert.NoFileExists(t, filepath.Join(deps.Paths.OutputDir, "stale.csv"))

	client, err := os.ReadFile(deps.Paths.ClientCSV)
	require.NoError(t, err)
	assert.Equal(t,
		"client_id,age,job,marital,education,credit_default,mortgage\n"+
			"1,56,admin,married,basic_4y,0,1\n"+
			"2,57,blue_collar,married,,1,0\n"+
			"3,41,self_employed,married,,0,0\n",
		string(client))

	campaign, err := os.ReadFile(deps.Paths.CampaignCSV)
	require.NoError(t, err)
	assert.Equal(t,
		"client_id,number_contacts,contact_duration,previous_campaign_contacts,previous_outcome,campaign_outcome,last_contact_date\n"+
			"1,1,261,0,0,0,2022-05-05\n"+
			"2,2,149,1,1,1,2022-06-12\n"+
			"3,1,226,0,0,0,2022-11-03\n",
		string(campaign))

	economics, err := os.ReadFile(deps.Paths.EconomicsCSV)
	require.NoError(t, err)
	assert.Equal(t,
		"client_id,cons_price_idx,euribor_three_months\n"+
			"1,93.994,4.857\n"+
			"2,94.465,4.961\n"+
			"3,93.2,\n",
		string(economics))

	assert.FileExists(t, deps.Paths.WorkbookFile)

	families, err := providers.Registry.Gather()
	require.NoError(t, err)
	var names []string
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "campaign_fragments_loaded_total")
	assert.Contains(t, names, "campaign_rows_written_total")
}

func TestPipeline_EmptyInput(t *testing.T) {
	deps, _ := newTestDeps(t, false)

	summary, err := runPipeline(t, deps)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.UnifiedRows)

	economics, err := os.ReadFile(deps.Paths.EconomicsCSV)
	require.NoError(t, err)
	assert.Equal(t, "client_id,cons_price_idx,euribor_three_months\n", string(economics))
}

func TestPipeline_InvalidDateAborts(t *testing.T) {
	deps, _ := newTestDeps(t, false)
	writeFragment(t, deps.Paths.InputDir, "part.csv",
		"0,1,56,admin.,married,basic.4y,no,yes,feb,30,261,1,0,nonexistent,93.994,4.857,no",
	)

	summary, err := runPipeline(t, deps)

	require.Error(t, err)
	assert.True(t, apperrors.IsDateConstructionError(err))
	assert.Equal(t, StepIDNormalizeCampaign, FailedStep(err))
	assert.Equal(t, RunStatusFailed, summary.Status)
	assert.NoFileExists(t, deps.Paths.ClientCSV)
}

func TestPipeline_DecodeErrorAborts(t *testing.T) {
	deps, _ := newTestDeps(t, false)
	require.NoError(t, os.MkdirAll(deps.Paths.InputDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(deps.Paths.InputDir, "broken.csv.zip"), []byte("not a zip"), 0644))

	_, err := runPipeline(t, deps)

	require.Error(t, err)
	assert.True(t, apperrors.IsDecodeError(err))
	assert.Equal(t, StepIDLoadFragments, FailedStep(err))
}
