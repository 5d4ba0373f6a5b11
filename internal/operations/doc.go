// Package operations executes a cleaning run as an ordered list of steps.
//
// Core Components:
//
// Step: one unit of work. Steps share a RunState through which each hands
// its output to the next (discovered files, fragments, the unified table,
// the projected records, the written tables).
//
// Registry: holds the steps of a run in registration order and rejects
// duplicate IDs.
//
// Runner: executes the registered steps sequentially inside a run span, one
// child span per step. The first failing step stops the run; later steps are
// marked skipped and the caller receives an *OperationError naming the step
// and wrapping its cause.
//
// Example usage:
//
//	steps := operations.NewPipelineSteps(operations.PipelineDependencies{
//		Paths:       config.NewPaths(cfg.Pipeline),
//		Pattern:     cfg.Pipeline.Pattern,
//		Workers:     cfg.Pipeline.Workers,
//		ContactYear: cfg.Pipeline.ContactYear,
//		Logger:      logger,
//		Tracer:      tracer,
//	})
//	runner, err := operations.NewRunnerWithSteps(steps, tracer, logger)
//	summary, err := runner.Run(ctx)
package operations
