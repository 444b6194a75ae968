package main

import (
	"fmt"

	"github.com/jonathan/job-autoapply/internal/db"
	"github.com/jonathan/job-autoapply/internal/observability"
	"github.com/spf13/cobra"
)

var historyCommand = &cobra.Command{
	Use:   "history",
	Short: "Show logged application attempts, newest first",
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCommand.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	rootCmd.AddCommand(historyCommand)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	if settings.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	appLog, err := db.Open(ctx, settings.DatabaseURL)
	if err != nil {
		return err
	}
	defer appLog.Close()

	entries, err := appLog.List(ctx, historyLimit)
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintHistory(entries)
	return nil
}
