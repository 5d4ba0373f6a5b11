package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campaignclean/internal/infrastructure"
)

// StepSummary reports how one step ended
type StepSummary struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Status   StepStatus    `json:"status"`
	Duration time.Duration `json:"duration"`
}

// Summary describes a finished run
type Summary struct {
	RunID        string         `json:"run_id"`
	Status       RunStatus      `json:"status"`
	RemovedFiles int            `json:"removed_files"`
	Fragments    int            `json:"fragments"`
	UnifiedRows  int            `json:"unified_rows"`
	TableRows    map[string]int `json:"table_rows"`
	WrittenFiles []string       `json:"written_files"`
	Duration     time.Duration  `json:"duration"`
	Steps        []StepSummary  `json:"steps"`
}

// Runner executes registered steps sequentially, stopping at the first failure
type Runner struct {
	registry *Registry
	tracer   *OperationTracer
	logger   *slog.Logger
}

// NewRunner creates a runner over the steps of registry
func NewRunner(registry *Registry, tracer *OperationTracer, logger *slog.Logger) *Runner {
	if tracer == nil {
		tracer = NewOperationTracer(nil, nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		registry: registry,
		tracer:   tracer,
		logger:   logger.With(slog.String("component", "runner")),
	}
}

// NewRunnerWithSteps registers steps in order and returns a runner over them
func NewRunnerWithSteps(steps []Step, tracer *OperationTracer, logger *slog.Logger) (*Runner, error) {
	registry := NewRegistry()
	for _, step := range steps {
		if err := registry.Register(step); err != nil {
			return nil, fmt.Errorf("failed to register step: %w", err)
		}
	}
	return NewRunner(registry, tracer, logger), nil
}

// Run executes every step in order. On failure the failing step is marked
// failed, later steps are skipped and an *OperationError wrapping the cause
// is returned together with the partial summary.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)

	steps := r.registry.List()
	state := NewRunState(runID)
	for _, step := range steps {
		state.AddStep(NewStepState(step.ID(), step.Name()))
	}

	ctx, span := r.tracer.TraceRun(ctx, runID)
	state.Start()

	r.logger.InfoContext(ctx, "Run started",
		slog.String("run_id", runID),
		slog.Int("step_count", len(steps)))

	err := r.executeSequential(ctx, state, steps)
	switch {
	case err == nil:
		state.Complete()
	case IsCancellation(err):
		state.Cancel(err)
	default:
		state.Fail(err)
	}

	summary := r.summarize(state)
	r.tracer.RecordRunCompletion(span, state.Status, summary.Duration, err)

	if err != nil {
		r.logger.ErrorContext(ctx, "Run failed",
			slog.String("run_id", runID),
			slog.String("step", FailedStep(err)),
			slog.String("error", err.Error()))
		return summary, err
	}

	r.logger.InfoContext(ctx, "Run completed",
		slog.String("run_id", runID),
		slog.Int("fragments", summary.Fragments),
		slog.Int("rows", summary.UnifiedRows),
		slog.Any("written_files", summary.WrittenFiles),
		slog.Duration("duration", summary.Duration))

	return summary, nil
}

// executeSequential runs steps one after the other
func (r *Runner) executeSequential(ctx context.Context, state *RunState, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			r.logger.WarnContext(ctx, "Run cancelled",
				slog.String("run_id", state.ID),
				slog.String("step", step.ID()))
			r.skipRemaining(state, steps[i:], "run cancelled")
			return NewCancellationError(step.ID(), err)
		}

		if err := r.executeStep(ctx, state, step, i+1, len(steps)); err != nil {
			r.skipRemaining(state, steps[i+1:], fmt.Sprintf("previous step %s failed", step.ID()))
			return NewExecutionError(step.ID(), err)
		}
	}
	return nil
}

// executeStep runs one step inside its own span
func (r *Runner) executeStep(ctx context.Context, state *RunState, step Step, number, total int) error {
	stepState := state.GetStep(step.ID())

	r.logger.InfoContext(ctx, "Executing step",
		slog.String("run_id", state.ID),
		slog.String("step", step.ID()),
		slog.Int("step_number", number),
		slog.Int("total_steps", total))

	stepCtx, span := r.tracer.TraceStep(ctx, state.ID, step)
	stepState.Start()
	start := time.Now()

	err := step.Execute(stepCtx, state)
	duration := time.Since(start)
	r.tracer.RecordStepCompletion(stepCtx, span, step.ID(), duration, err)

	if err != nil {
		stepState.Fail(err)
		r.logger.ErrorContext(ctx, "Step failed",
			slog.String("run_id", state.ID),
			slog.String("step", step.ID()),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return err
	}

	stepState.Complete()
	r.logger.DebugContext(ctx, "Step completed",
		slog.String("run_id", state.ID),
		slog.String("step", step.ID()),
		slog.Duration("duration", duration))
	return nil
}

// skipRemaining marks steps that will not run
func (r *Runner) skipRemaining(state *RunState, steps []Step, reason string) {
	for _, step := range steps {
		if s := state.GetStep(step.ID()); s != nil {
			s.Skip(reason)
		}
	}
}

// summarize reports the outcome of a run
func (r *Runner) summarize(state *RunState) *Summary {
	summary := &Summary{
		RunID:        state.ID,
		Status:       state.Status,
		RemovedFiles: state.RemovedFiles,
		Fragments:    len(state.Fragments),
		TableRows:    make(map[string]int, len(state.Tables)),
		WrittenFiles: state.WrittenFiles,
		Duration:     state.Duration(),
	}
	if state.Unified != nil {
		summary.UnifiedRows = state.Unified.Len()
	}
	for _, table := range state.Tables {
		summary.TableRows[table.Name] = len(table.Records)
	}
	for _, s := range state.OrderedSteps() {
		summary.Steps = append(summary.Steps, StepSummary{
			ID:       s.ID,
			Name:     s.Name,
			Status:   s.GetStatus(),
			Duration: s.Duration(),
		})
	}
	return summary
}
