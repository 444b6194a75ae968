package llm

// GenerateOptions tunes a single generation call.
type GenerateOptions struct {
	SystemPrompt string
	Temperature  float32
	MaxTokens    int
}

// Option mutates GenerateOptions.
type Option func(*GenerateOptions)

// defaultTemperature keeps output stable between runs.
const defaultTemperature = 0.1

// WithSystemPrompt sets the system instruction.
func WithSystemPrompt(prompt string) Option {
	return func(o *GenerateOptions) { o.SystemPrompt = prompt }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(o *GenerateOptions) { o.Temperature = t }
}

// WithMaxTokens caps the output length. Zero leaves the provider default.
func WithMaxTokens(n int) Option {
	return func(o *GenerateOptions) { o.MaxTokens = n }
}

// ApplyOptions resolves options over the defaults.
func ApplyOptions(opts ...Option) GenerateOptions {
	o := GenerateOptions{Temperature: defaultTemperature}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
