// Package config provides settings resolution and loading of the run configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Default locations and endpoints used when the environment leaves them unset.
const (
	DefaultConfigDir       = "config"
	DefaultSearchConfig    = "search_profiles.json"
	DefaultModeConfig      = "run_mode.json"
	DefaultJobBoardBaseURL = "https://api.example.com"
	DefaultLogLevel        = "info"
)

// LLM provider names accepted in LLM_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Settings is the resolved process configuration. It is built once at startup
// and passed explicitly to the run and to the capability clients.
type Settings struct {
	DatabaseURL         string
	ConfigDir           string
	SearchConfigPath    string
	ActiveModePath      string
	JobBoardBaseURL     string
	JobBoardAccessToken string
	LLMProvider         string
	LLMModel            string
	GeminiAPIKey        string
	OpenAIAPIKey        string
	DryRun              bool
	LogLevel            string
	Verbose             bool
}

// Load reads environment variables and returns Settings with defaults applied.
func Load() (*Settings, error) {
	configDir := envOr("CONFIG_DIR", DefaultConfigDir)

	s := &Settings{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		ConfigDir:           configDir,
		SearchConfigPath:    envOr("SEARCH_CONFIG_PATH", filepath.Join(configDir, DefaultSearchConfig)),
		ActiveModePath:      envOr("ACTIVE_MODE_PATH", filepath.Join(configDir, DefaultModeConfig)),
		JobBoardBaseURL:     strings.TrimRight(envOr("JOB_BOARD_API_BASE_URL", DefaultJobBoardBaseURL), "/"),
		JobBoardAccessToken: os.Getenv("JOB_BOARD_ACCESS_TOKEN"),
		LLMProvider:         strings.ToLower(envOr("LLM_PROVIDER", ProviderGemini)),
		LLMModel:            strings.TrimSpace(os.Getenv("LLM_MODEL")),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		DryRun:              ParseBool(os.Getenv("DRY_RUN"), true),
		LogLevel:            strings.ToLower(envOr("LOG_LEVEL", DefaultLogLevel)),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the settings have valid values.
func (s *Settings) Validate() error {
	switch s.LLMProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("config error: unsupported LLM_PROVIDER %q", s.LLMProvider)
	}

	if s.JobBoardBaseURL == "" {
		return fmt.Errorf("config error: JOB_BOARD_API_BASE_URL must not be empty")
	}

	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unsupported LOG_LEVEL %q", s.LogLevel)
	}
	return nil
}

// LLMAPIKey returns the API key for the configured provider.
func (s *Settings) LLMAPIKey() string {
	if s.LLMProvider == ProviderOpenAI {
		return s.OpenAIAPIKey
	}
	return s.GeminiAPIKey
}

// ParseBool interprets 1/true/yes/on (case-insensitive) as true.
// An unset value yields def.
func ParseBool(value string, def bool) bool {
	if value == "" {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
