package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jonathan/job-autoapply/internal/config"
	"github.com/jonathan/job-autoapply/internal/coverletter"
	"github.com/jonathan/job-autoapply/internal/db"
	"github.com/jonathan/job-autoapply/internal/jobboard"
	"github.com/jonathan/job-autoapply/internal/observability"
	"github.com/jonathan/job-autoapply/internal/pipeline"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run one search-and-apply pass over the active profiles",
	Long: `Loads the run mode and search profiles, searches the job board for each active
profile, filters and deduplicates vacancies, drafts cover letters, applies (or
simulates) and logs every attempt. Stops as soon as max_applications is reached.

--dry-run / --no-dry-run override the mode file's dry_run for this run.
--events writes every run decision to stdout as a JSON line.`,
	RunE: runOnceCmd,
}

var (
	runDryRun   bool
	runNoDryRun bool
	runEvents   bool
)

func init() {
	runCommand.Flags().BoolVar(&runDryRun, "dry-run", false, "Force dry-run mode (no network calls, simulated apply)")
	runCommand.Flags().BoolVar(&runNoDryRun, "no-dry-run", false, "Disable dry-run mode")
	runCommand.MarkFlagsMutuallyExclusive("dry-run", "no-dry-run")
	runCommand.Flags().BoolVar(&runEvents, "events", false, "Write run progress events as JSON lines")

	rootCmd.AddCommand(runCommand)
}

// dryRunOverride returns the explicit dry-run choice, or nil when neither flag was given.
func dryRunOverride(cmd *cobra.Command) *bool {
	var v bool
	switch {
	case cmd.Flags().Changed("dry-run"):
		v = runDryRun
	case cmd.Flags().Changed("no-dry-run"):
		v = !runNoDryRun
	default:
		return nil
	}
	return &v
}

// newJobBoardClient builds the job board client. It runs offline exactly when
// the run's effective dry-run is on: the override if given, else the mode file,
// else the DRY_RUN default.
func newJobBoardClient(s *config.Settings, override *bool, logger *slog.Logger) (*jobboard.Client, error) {
	dryRun := s.DryRun
	if override != nil {
		dryRun = *override
	} else {
		mode, err := config.LoadRunMode(s.ActiveModePath, s.DryRun)
		if err != nil {
			return nil, err
		}
		dryRun = mode.DryRun
	}

	jobs := jobboard.NewClient(jobboard.Config{
		BaseURL:     s.JobBoardBaseURL,
		AccessToken: s.JobBoardAccessToken,
		Offline:     dryRun,
		Logger:      logger,
	})
	logger.Debug("job board client ready", "base_url", s.JobBoardBaseURL, "offline", jobs.Offline())
	return jobs, nil
}

// progressWriter encodes each progress event as one JSON line on w.
func progressWriter(w io.Writer) pipeline.ProgressCallback {
	enc := json.NewEncoder(w)
	return func(e pipeline.ProgressEvent) {
		_ = enc.Encode(e)
	}
}

func runOnceCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	override := dryRunOverride(cmd)
	if override != nil {
		settings.DryRun = *override
	}
	logger := newLogger(os.Stderr, settings)

	if settings.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	appLog, err := db.Open(ctx, settings.DatabaseURL)
	if err != nil {
		return err
	}
	defer appLog.Close()

	jobs, err := newJobBoardClient(settings, override, logger)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, settings, logger)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	var printer *observability.Printer
	if settings.Verbose {
		printer = observability.NewPrinter(cmd.OutOrStdout())
	}
	var onProgress pipeline.ProgressCallback
	if runEvents {
		onProgress = progressWriter(cmd.OutOrStdout())
	}

	summary, err := pipeline.RunOnce(ctx, pipeline.RunOptions{
		SearchConfigPath: settings.SearchConfigPath,
		ModeConfigPath:   settings.ActiveModePath,
		DefaultDryRun:    settings.DryRun,
		Jobs:             jobs,
		Letters:          coverletter.NewGenerator(client, logger),
		Log:              appLog,
		Logger:           logger,
		Printer:          printer,
		OnProgress:       onProgress,
	}, override)
	if err != nil {
		return fmt.Errorf("run failed after processing %d vacancies: %w", summary.Processed, err)
	}

	printer.PrintSummary(summary)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Processed: %d | Logged: %d\n", summary.Processed, summary.Logged)
	return nil
}
