package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"google.golang.org/api/option"
)

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates text content using the specified model tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier, opts ...Option) (string, error)
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(config, apiKey)
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier, opts ...Option) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	o := ApplyOptions(opts...)
	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(o.Temperature)
	if o.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(o.MaxTokens))
	}
	if o.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(o.SystemPrompt)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.TrimSpace(strings.Join(parts, "")), nil
}

// OpenAIClient implements Client for OpenAI chat completions via langchaingo.
type OpenAIClient struct {
	llm    *openai.LLM
	config *Config
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(config.GetModel(TierStandard)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &OpenAIClient{llm: model, config: config}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier, opts ...Option) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	o := ApplyOptions(opts...)
	messages := make([]llms.MessageContent, 0, 2)
	if o.SystemPrompt != "" {
		messages = append(messages, llms.TextParts(schema.ChatMessageTypeSystem, o.SystemPrompt))
	}
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, prompt))

	callOpts := []llms.CallOption{
		llms.WithModel(modelName),
		llms.WithTemperature(float64(o.Temperature)),
	}
	if o.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(o.MaxTokens))
	}

	resp, err := c.llm.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the langchaingo client holds no long-lived resources.
func (c *OpenAIClient) Close() error {
	return nil
}
