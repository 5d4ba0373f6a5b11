package app

import (
	"context"
	"fmt"
	"log/slog"

	"campaignclean/internal/config"
	apperrors "campaignclean/internal/errors"
	"campaignclean/internal/infrastructure"
	"campaignclean/internal/operations"
	"campaignclean/pkg/contracts"
)

// Application wires configuration, telemetry and the step runner of one
// cleaning run.
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Tracer        *operations.OperationTracer
	Runner        *operations.Runner
}

// NewApplication creates an application from a validated configuration.
// A nil logger initializes the process logger from cfg.Logging.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		var err error
		logger, err = infrastructure.InitializeLogger(cfg.Logging)
		if err != nil {
			return nil, apperrors.NewConfigError("failed to initialize logger", err)
		}
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version))

	paths := config.NewPaths(cfg.Pipeline)
	paths.LogPathResolution(logger)

	otelConfig := infrastructure.NewOTelConfig(cfg.Telemetry)
	providers, err := infrastructure.InitializeOTel(otelConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	tracer, err := operations.NewOperationTracerFromProviders(providers)
	if err != nil {
		_ = providers.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize operation tracer: %w", err)
	}

	steps := operations.NewPipelineSteps(operations.PipelineDependencies{
		Paths:       paths,
		Pattern:     cfg.Pipeline.Pattern,
		Workers:     cfg.Pipeline.Workers,
		ContactYear: cfg.Pipeline.ContactYear,
		Logger:      logger,
		Tracer:      tracer,
	})

	runner, err := operations.NewRunnerWithSteps(steps, tracer, logger)
	if err != nil {
		_ = providers.Shutdown(context.Background())
		return nil, err
	}

	return &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: providers,
		Tracer:        tracer,
		Runner:        runner,
	}, nil
}

// Run executes one cleaning run. When a metrics file is configured it is
// written after the run, whatever its outcome.
func (a *Application) Run(ctx context.Context) (*operations.Summary, error) {
	summary, runErr := a.Runner.Run(ctx)

	if path := a.Config.Telemetry.MetricsFile; path != "" {
		if err := a.OTelProviders.WriteMetricsFile(path); err != nil {
			a.Logger.ErrorContext(ctx, "Failed to write metrics file",
				slog.String("path", path),
				slog.String("error", err.Error()))
			if runErr == nil {
				return summary, apperrors.NewIOError("failed to write metrics file", err).WithContext("path", path)
			}
		} else {
			a.Logger.DebugContext(ctx, "Metrics file written", slog.String("path", path))
		}
	}

	return summary, runErr
}

// Close flushes telemetry and releases the log file
func (a *Application) Close(ctx context.Context) error {
	var errs []error
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}
