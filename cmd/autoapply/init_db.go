package main

import (
	"fmt"

	"github.com/jonathan/job-autoapply/internal/db"
	"github.com/spf13/cobra"
)

var initDBCommand = &cobra.Command{
	Use:   "init-db",
	Short: "Create the application log storage",
	Long:  "Creates the applications table if it does not exist. With --demo, also loads the demo rows (demo-1001, demo-1002).",
	RunE:  runInitDB,
}

var initDBDemo bool

func init() {
	initDBCommand.Flags().BoolVar(&initDBDemo, "demo", false, "Load demo data after schema init")
	rootCmd.AddCommand(initDBCommand)
}

func runInitDB(cmd *cobra.Command, _ []string) error {
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

	if err := appLog.Initialize(ctx); err != nil {
		return err
	}
	if !initDBDemo {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Initialized schema.")
		return nil
	}

	if err := appLog.SeedDemo(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Initialized schema and loaded demo data.")
	return nil
}
