package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignclean/internal/config"
)

func newTestProviders(t *testing.T, exporter string, w io.Writer) *OTelProviders {
	t.Helper()
	cfg := NewOTelConfig(config.TelemetryConfig{TraceExporter: exporter})
	cfg.TraceWriter = w

	providers, err := InitializeOTel(cfg, NewLogger("error", io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = providers.Shutdown(context.Background())
	})
	return providers
}

func TestOTelInitialization(t *testing.T) {
	providers := newTestProviders(t, "none", nil)

	assert.NotNil(t, providers.Tracer)
	assert.Nil(t, providers.TracerProvider)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Registry)
}

func TestOTelInitialization_UnsupportedExporter(t *testing.T) {
	cfg := NewOTelConfig(config.TelemetryConfig{TraceExporter: "otlp"})

	_, err := InitializeOTel(cfg, NewLogger("error", io.Discard))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported trace exporter")
}

func TestStdoutTracing(t *testing.T) {
	var buf bytes.Buffer
	providers := newTestProviders(t, "stdout", &buf)
	require.NotNil(t, providers.TracerProvider)

	ctx, span := providers.Tracer.Start(context.Background(), "unify")
	RecordError(ctx, errors.New("boom"))
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"Name": "unify"`)
	assert.Contains(t, buf.String(), "boom")
}

func TestPipelineMetrics_WriteMetricsFile(t *testing.T) {
	providers := newTestProviders(t, "none", nil)

	metrics, err := CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.FragmentsLoaded.Add(ctx, 2)
	metrics.RowsUnified.Add(ctx, 10)
	metrics.RecordRowsWritten(ctx, "client", 10)
	metrics.RecordStep(ctx, "unify", 15*time.Millisecond, nil)
	metrics.RecordStep(ctx, "load_fragments", time.Millisecond, errors.New("bad zip"))

	path := filepath.Join(t.TempDir(), "metrics", "campaign.prom")
	require.NoError(t, providers.WriteMetricsFile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "campaign_fragments_loaded_total")
	assert.Contains(t, text, "campaign_rows_unified_total")
	assert.Contains(t, text, `campaign_rows_written_total{`)
	assert.Contains(t, text, `table="client"`)
	assert.Contains(t, text, "campaign_step_duration_seconds_bucket")
	assert.Contains(t, text, `campaign_step_failures_total{`)
	assert.Contains(t, text, `step="load_fragments"`)
}

func TestPipelineMetrics_NilSafe(t *testing.T) {
	var metrics *PipelineMetrics

	assert.NotPanics(t, func() {
		metrics.RecordStep(context.Background(), "unify", time.Second, nil)
		metrics.RecordRowsWritten(context.Background(), "client", 1)
	})
}

func TestRecordError_NoSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordError(context.Background(), errors.New("no span"))
	})
}
