// Package main provides the entry point for the job search and auto-apply CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autoapply",
	Short: "Job board search and auto-apply",
	Long: `autoapply searches a job board for vacancies matching the configured profiles,
drafts cover letters, applies (or simulates applying) and records every attempt
in a durable log so a vacancy is never attempted twice.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagDatabaseURL  string
	flagSearchConfig string
	flagModeConfig   string
	flagAPIKey       string
	flagVerbose      bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDatabaseURL, "db-url", "", "Application log URL, postgres:// or redis:// (defaults to DATABASE_URL env var)")
	rootCmd.PersistentFlags().StringVar(&flagSearchConfig, "search-config", "", "Path to search profiles JSON (defaults to SEARCH_CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagModeConfig, "mode-config", "", "Path to run mode JSON (defaults to ACTIVE_MODE_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "LLM API key for the configured provider (defaults to GEMINI_API_KEY or OPENAI_API_KEY)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
