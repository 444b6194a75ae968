// Package llm provides centralized LLM configuration and client abstractions.
// The Gemini and OpenAI providers share one Client interface.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: short drafting, classification
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: cover letters, summaries
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider
	ProviderOpenAI Provider = "openai"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// ConfigFor returns the default configuration of a provider by name.
// Unknown names fall back to Gemini.
func ConfigFor(provider string) *Config {
	if Provider(provider) == ProviderOpenAI {
		return DefaultOpenAIConfig()
	}
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o-mini",
			TierAdvanced: "gpt-4o",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
