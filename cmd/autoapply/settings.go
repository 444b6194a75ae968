package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/jonathan/job-autoapply/internal/config"
	"github.com/jonathan/job-autoapply/internal/llm"
	"github.com/spf13/cobra"
)

// resolveSettings loads settings from the environment and applies the flags
// that were explicitly set on the command line.
func resolveSettings(cmd *cobra.Command) (*config.Settings, error) {
	s, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("db-url") {
		s.DatabaseURL = flagDatabaseURL
	}
	if cmd.Flags().Changed("search-config") {
		s.SearchConfigPath = flagSearchConfig
	}
	if cmd.Flags().Changed("mode-config") {
		s.ActiveModePath = flagModeConfig
	}
	if cmd.Flags().Changed("api-key") {
		if s.LLMProvider == config.ProviderOpenAI {
			s.OpenAIAPIKey = flagAPIKey
		} else {
			s.GeminiAPIKey = flagAPIKey
		}
	}
	if cmd.Flags().Changed("verbose") {
		s.Verbose = flagVerbose
	}
	return s, nil
}

// newLogger builds the process logger. Verbose mode forces debug level.
func newLogger(w io.Writer, s *config.Settings) *slog.Logger {
	level := slog.LevelInfo
	switch s.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if s.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// llmConfig returns the provider defaults, with LLM_MODEL replacing the
// standard-tier model used for cover letters.
func llmConfig(s *config.Settings) *llm.Config {
	cfg := llm.ConfigFor(s.LLMProvider)
	if s.LLMModel != "" {
		cfg = cfg.WithModel(llm.TierStandard, s.LLMModel)
	}
	return cfg
}

// newLLMClient returns nil when no API key is configured; letters are then simulated.
func newLLMClient(ctx context.Context, s *config.Settings, logger *slog.Logger) (llm.Client, error) {
	key := s.LLMAPIKey()
	if key == "" {
		logger.Info("no LLM API key configured, cover letters will be simulated", "provider", s.LLMProvider)
		return nil, nil
	}
	return llm.NewClient(ctx, llmConfig(s), key)
}
