package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"campaignclean/internal/app"
	"campaignclean/internal/config"
	"campaignclean/internal/infrastructure"
	"campaignclean/pkg/contracts"
)

// cliOptions holds the command line overrides of the configuration
type cliOptions struct {
	configFile string
	inputDir   string
	outputDir  string
	pattern    string
	workers    int
	workbook   string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Split bank marketing campaign fragments into client, campaign and economics tables",
		Long: `Reads every fragment file of the input directory, concatenates them and
writes three normalized CSV tables to the output directory:

  client.csv     client attributes
  campaign.csv   campaign interactions with the last contact date
  economics.csv  economic indicators

The output directory is emptied of files before the tables are written.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	flags.StringVar(&opts.inputDir, "input-dir", config.DefaultInputDir, "directory holding the fragment files")
	flags.StringVar(&opts.outputDir, "output-dir", config.DefaultOutputDir, "directory receiving the output tables")
	flags.StringVar(&opts.pattern, "pattern", config.DefaultPattern, "glob selecting fragment files by name")
	flags.IntVar(&opts.workers, "workers", config.DefaultWorkers, "number of fragments decoded in parallel")
	flags.StringVar(&opts.workbook, "workbook", "", "also write the tables as sheets of this xlsx workbook")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
		},
	}
}

// loadConfig applies the flags the user set on top of file and environment
func loadConfig(cmd *cobra.Command, opts *cliOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("input-dir") {
		cfg.Pipeline.InputDir = opts.inputDir
	}
	if flags.Changed("output-dir") {
		cfg.Pipeline.OutputDir = opts.outputDir
	}
	if flags.Changed("pattern") {
		cfg.Pipeline.Pattern = opts.pattern
	}
	if flags.Changed("workers") {
		cfg.Pipeline.Workers = opts.workers
	}
	if flags.Changed("workbook") {
		cfg.Pipeline.WorkbookPath = opts.workbook
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}

	return cfg, cfg.Validate()
}

func runClean(cmd *cobra.Command, opts *cliOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close(context.Background())

	summary, err := application.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Cleaned %d rows from %d fragments into %s\n",
		summary.UnifiedRows, summary.Fragments, application.Paths.OutputDir)
	return nil
}
