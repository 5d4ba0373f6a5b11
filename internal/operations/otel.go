package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"campaignclean/internal/infrastructure"
)

const (
	TracerName = "campaignclean.operation"
)

// OperationTracer provides OpenTelemetry instrumentation for runs and steps
type OperationTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewOperationTracer creates a tracer recording spans on tracer and
// instruments on metrics. Either may be nil.
func NewOperationTracer(tracer trace.Tracer, metrics *infrastructure.PipelineMetrics) *OperationTracer {
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(TracerName)
	}
	return &OperationTracer{tracer: tracer, metrics: metrics}
}

// NewOperationTracerFromProviders wires the tracer to initialized providers
func NewOperationTracerFromProviders(providers *infrastructure.OTelProviders) (*OperationTracer, error) {
	if providers == nil {
		return NewOperationTracer(nil, nil), nil
	}
	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}
	return NewOperationTracer(providers.Tracer, metrics), nil
}

// TraceRun creates a span for the entire run
func (pt *OperationTracer) TraceRun(ctx context.Context, runID string) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "operation.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("operation.id", runID)),
	)
}

// TraceStep creates a span for one step
func (pt *OperationTracer) TraceStep(ctx context.Context, runID string, step Step) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, fmt.Sprintf("operation.step.%s", step.ID()),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", runID),
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
		),
	)
}

// RecordStepCompletion ends a step span and records its duration and outcome
func (pt *OperationTracer) RecordStepCompletion(ctx context.Context, span trace.Span, stepID string, duration time.Duration, err error) {
	span.SetAttributes(attribute.Float64("step.duration_seconds", duration.Seconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()

	pt.metrics.RecordStep(ctx, stepID, duration, err)
}

// RecordRunCompletion ends the run span
func (pt *OperationTracer) RecordRunCompletion(span trace.Span, status RunStatus, duration time.Duration, err error) {
	span.SetAttributes(
		attribute.String("operation.status", string(status)),
		attribute.Float64("operation.duration_seconds", duration.Seconds()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// RecordFragmentsLoaded counts decoded fragments
func (pt *OperationTracer) RecordFragmentsLoaded(ctx context.Context, count int) {
	if pt.metrics == nil {
		return
	}
	pt.metrics.FragmentsLoaded.Add(ctx, int64(count))
}

// RecordRowsUnified counts rows of the unified record set
func (pt *OperationTracer) RecordRowsUnified(ctx context.Context, rows int) {
	if pt.metrics == nil {
		return
	}
	pt.metrics.RowsUnified.Add(ctx, int64(rows))
}

// RecordRowsWritten counts rows written for one table
func (pt *OperationTracer) RecordRowsWritten(ctx context.Context, table string, rows int) {
	pt.metrics.RecordRowsWritten(ctx, table, rows)
}
