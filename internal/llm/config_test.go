package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestConfigFor(t *testing.T) {
	assert.Equal(t, ProviderOpenAI, ConfigFor("openai").Provider)
	assert.Equal(t, "gpt-4o-mini", ConfigFor("openai").GetModel(TierStandard))
	assert.Equal(t, ProviderGemini, ConfigFor("gemini").Provider)
	assert.Equal(t, ProviderGemini, ConfigFor("unknown").Provider)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash-lite", newConfig.GetModel(TierLite))
}

func TestApplyOptions(t *testing.T) {
	o := ApplyOptions()
	assert.InDelta(t, 0.1, o.Temperature, 1e-6)
	assert.Zero(t, o.MaxTokens)

	o = ApplyOptions(WithSystemPrompt("be brief"), WithTemperature(0.3), WithMaxTokens(320))
	assert.Equal(t, "be brief", o.SystemPrompt)
	assert.InDelta(t, 0.3, o.Temperature, 1e-6)
	assert.Equal(t, 320, o.MaxTokens)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), DefaultGeminiConfig(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")

	_, err = NewClient(context.Background(), DefaultOpenAIConfig(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestNewClient_OpenAI(t *testing.T) {
	client, err := NewClient(context.Background(), DefaultOpenAIConfig(), "sk-test")
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.IsType(t, &OpenAIClient{}, client)
	assert.Equal(t, "gpt-4o", client.GetModel(TierAdvanced))
}

func TestModelTierConstants(t *testing.T) {
	assert.Equal(t, ModelTier("lite"), TierLite)
	assert.Equal(t, ModelTier("standard"), TierStandard)
	assert.Equal(t, ModelTier("advanced"), TierAdvanced)
}

func TestProviderConstants(t *testing.T) {
	assert.Equal(t, Provider("gemini"), ProviderGemini)
	assert.Equal(t, Provider("openai"), ProviderOpenAI)
}
