package operations

import (
	"context"
	"log/slog"

	"campaignclean/internal/config"
	"campaignclean/internal/dataprocessing"
	apperrors "campaignclean/internal/errors"
	"campaignclean/internal/exporter"
	"campaignclean/internal/files"
	"campaignclean/pkg/contracts/domain"
)

// Step IDs, in execution order
const (
	StepIDPrepareOutput     = "prepare_output"
	StepIDLoadFragments     = "load_fragments"
	StepIDUnify             = "unify"
	StepIDNormalizeClient   = "normalize_client"
	StepIDNormalizeCampaign = "normalize_campaign"
	StepIDProjectEconomics  = "project_economics"
	StepIDWriteTables       = "write_tables"
	StepIDExportWorkbook    = "export_workbook"
)

// PipelineDependencies are the collaborators shared by the pipeline steps
type PipelineDependencies struct {
	Paths       *config.Paths
	Pattern     string
	Workers     int
	ContactYear int
	Logger      *slog.Logger
	Tracer      *OperationTracer
}

// NewPipelineSteps builds the steps of a cleaning run in execution order.
// The workbook export is included only when a workbook path is configured.
func NewPipelineSteps(deps PipelineDependencies) []Step {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := deps.Tracer
	if tracer == nil {
		tracer = NewOperationTracer(nil, nil)
	}

	steps := []Step{
		&PrepareOutputStep{
			BaseStage: NewBaseStage(StepIDPrepareOutput, "Prepare output directory"),
			manager:   files.NewManager(logger),
			outputDir: deps.Paths.OutputDir,
		},
		&LoadFragmentsStep{
			BaseStage: NewBaseStage(StepIDLoadFragments, "Load fragments"),
			discovery: files.NewDiscovery(logger),
			loader:    dataprocessing.NewLoader(logger, deps.Workers),
			inputDir:  deps.Paths.InputDir,
			pattern:   deps.Pattern,
			tracer:    tracer,
		},
		&UnifyStep{
			BaseStage: NewBaseStage(StepIDUnify, "Unify fragments"),
			unifier:   dataprocessing.NewUnifier(logger),
			tracer:    tracer,
		},
		&NormalizeClientStep{
			BaseStage: NewBaseStage(StepIDNormalizeClient, "Normalize client attributes"),
		},
		&NormalizeCampaignStep{
			BaseStage:  NewBaseStage(StepIDNormalizeCampaign, "Normalize campaign interactions"),
			normalizer: dataprocessing.NewCampaignNormalizer(deps.ContactYear),
		},
		&ProjectEconomicsStep{
			BaseStage: NewBaseStage(StepIDProjectEconomics, "Project economic indicators"),
		},
		&WriteTablesStep{
			BaseStage: NewBaseStage(StepIDWriteTables, "Write output tables"),
			writer:    exporter.NewCSVWriter(deps.Paths, logger),
			tracer:    tracer,
		},
	}

	if deps.Paths.WorkbookFile != "" {
		steps = append(steps, &ExportWorkbookStep{
			BaseStage: NewBaseStage(StepIDExportWorkbook, "Export workbook"),
			writer:    exporter.NewWorkbookWriter(logger),
			path:      deps.Paths.WorkbookFile,
		})
	}

	return steps
}

// PrepareOutputStep empties or creates the output directory
type PrepareOutputStep struct {
	BaseStage
	manager   *files.Manager
	outputDir string
}

// Execute implements Step
func (s *PrepareOutputStep) Execute(ctx context.Context, state *RunState) error {
	removed, err := s.manager.ResetDirectory(s.outputDir)
	if err != nil {
		return apperrors.NewIOError("failed to prepare output directory", err).WithContext("path", s.outputDir)
	}
	state.RemovedFiles = removed
	s.record(state, "removed_files", removed)
	return nil
}

// LoadFragmentsStep discovers and decodes the input fragments
type LoadFragmentsStep struct {
	BaseStage
	discovery *files.Discovery
	loader    *dataprocessing.Loader
	inputDir  string
	pattern   string
	tracer    *OperationTracer
}

// Execute implements Step
func (s *LoadFragmentsStep) Execute(ctx context.Context, state *RunState) error {
	discovered, err := s.discovery.FindFragments(s.inputDir, s.pattern)
	if err != nil {
		return apperrors.NewDecodeError("failed to discover fragments", err).WithContext("path", s.inputDir)
	}

	fragments, err := s.loader.LoadAll(ctx, discovered)
	if err != nil {
		return err
	}

	state.Discovered = discovered
	state.Fragments = fragments
	s.record(state, "fragments", len(fragments))
	s.tracer.RecordFragmentsLoaded(ctx, len(fragments))
	return nil
}

// UnifyStep concatenates the fragments into the unified record set
type UnifyStep struct {
	BaseStage
	unifier *dataprocessing.Unifier
	tracer  *OperationTracer
}

// Execute implements Step
func (s *UnifyStep) Execute(ctx context.Context, state *RunState) error {
	state.Unified = s.unifier.Unify(state.Fragments)
	s.record(state, "rows", state.Unified.Len())
	s.tracer.RecordRowsUnified(ctx, state.Unified.Len())
	return nil
}

// NormalizeClientStep derives the client table
type NormalizeClientStep struct {
	BaseStage
}

// Execute implements Step
func (s *NormalizeClientStep) Execute(ctx context.Context, state *RunState) error {
	if state.Unified == nil {
		return NewInvalidStateError(s.ID(), "unified record set not available")
	}
	clients, err := dataprocessing.NormalizeClients(state.Unified)
	if err != nil {
		return err
	}
	state.Clients = clients
	return nil
}

// NormalizeCampaignStep derives the campaign table
type NormalizeCampaignStep struct {
	BaseStage
	normalizer *dataprocessing.CampaignNormalizer
}

// Execute implements Step
func (s *NormalizeCampaignStep) Execute(ctx context.Context, state *RunState) error {
	if state.Unified == nil {
		return NewInvalidStateError(s.ID(), "unified record set not available")
	}
	campaigns, err := s.normalizer.Normalize(state.Unified)
	if err != nil {
		return err
	}
	state.Campaigns = campaigns
	s.record(state, "contact_year", s.normalizer.Year())
	return nil
}

// ProjectEconomicsStep derives the economics table
type ProjectEconomicsStep struct {
	BaseStage
}

// Execute implements Step
func (s *ProjectEconomicsStep) Execute(ctx context.Context, state *RunState) error {
	if state.Unified == nil {
		return NewInvalidStateError(s.ID(), "unified record set not available")
	}
	economics, err := dataprocessing.ProjectEconomics(state.Unified)
	if err != nil {
		return err
	}
	state.Economics = economics
	return nil
}

// WriteTablesStep serializes the three tables as CSV files
type WriteTablesStep struct {
	BaseStage
	writer *exporter.CSVWriter
	tracer *OperationTracer
}

// Execute implements Step
func (s *WriteTablesStep) Execute(ctx context.Context, state *RunState) error {
	tables := []domain.OutputTable{
		exporter.ClientTable(state.Clients),
		exporter.CampaignTable(state.Campaigns),
		exporter.EconomicsTable(state.Economics),
	}

	written, err := s.writer.WriteTables(tables)
	state.WrittenFiles = append(state.WrittenFiles, written...)
	if err != nil {
		return err
	}

	for _, table := range tables {
		s.record(state, table.Name+"_rows", len(table.Records))
		s.tracer.RecordRowsWritten(ctx, table.Name, len(table.Records))
	}
	state.Tables = tables
	return nil
}

// ExportWorkbookStep writes the tables as sheets of one workbook
type ExportWorkbookStep struct {
	BaseStage
	writer *exporter.WorkbookWriter
	path   string
}

// Execute implements Step
func (s *ExportWorkbookStep) Execute(ctx context.Context, state *RunState) error {
	if len(state.Tables) == 0 {
		return NewInvalidStateError(s.ID(), "output tables not written")
	}
	if err := s.writer.WriteWorkbook(s.path, state.Tables); err != nil {
		return err
	}
	state.WrittenFiles = append(state.WrittenFiles, s.path)
	return nil
}
