// Package coverletter drafts cover letters for vacancies, either with a
// language model or as a deterministic demo text.
package coverletter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/job-autoapply/internal/llm"
	"github.com/jonathan/job-autoapply/internal/prompts"
	"github.com/jonathan/job-autoapply/internal/types"
)

const (
	promptFile        = "cover_letter.json"
	systemPromptKey   = "system"
	userTemplateKey   = "user-template"
	noDescriptionText = "No description provided."

	temperature = 0.3
	maxTokens   = 320
)

// Generator produces cover letters. A nil LLM client makes the generator
// unavailable, in which case every letter is simulated.
type Generator struct {
	client llm.Client
	tier   llm.ModelTier
	logger *slog.Logger
}

// NewGenerator creates a generator. client may be nil.
func NewGenerator(client llm.Client, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{client: client, tier: llm.TierStandard, logger: logger}
}

// Available reports whether real generation is possible.
func (g *Generator) Available() bool {
	return g != nil && g.client != nil
}

// Generate returns a cover letter for the vacancy. When simulate is true or
// no model is configured the deterministic demo text is returned and no
// external call is made.
func (g *Generator) Generate(ctx context.Context, vacancy types.Vacancy, candidate string, simulate bool) (string, error) {
	if simulate || !g.Available() {
		return DemoLetter(vacancy, candidate), nil
	}

	system, err := prompts.Get(promptFile, systemPromptKey)
	if err != nil {
		return "", fmt.Errorf("failed to load system prompt: %w", err)
	}
	prompt, err := prompts.Render(promptFile, userTemplateKey, map[string]string{
		"VacancyTitle":       vacancy.Title,
		"CompanyName":        vacancy.CompanyName,
		"VacancyDescription": vacancy.DescriptionOr(noDescriptionText),
		"CandidateProfile":   candidate,
	})
	if err != nil {
		return "", fmt.Errorf("failed to load user prompt: %w", err)
	}

	g.logger.Debug("generating cover letter", "vacancy_id", vacancy.ID, "model", g.client.GetModel(g.tier))
	text, err := g.client.GenerateContent(ctx, prompt, g.tier,
		llm.WithSystemPrompt(system),
		llm.WithTemperature(temperature),
		llm.WithMaxTokens(maxTokens),
	)
	if err != nil {
		return "", &GenerationError{VacancyID: vacancy.ID, Message: "model call failed", Cause: err}
	}

	return strings.TrimSpace(text), nil
}

// DemoLetter is the deterministic letter used in simulation.
func DemoLetter(vacancy types.Vacancy, candidate string) string {
	return fmt.Sprintf("This is a demo cover letter for %s at %s. Candidate profile: %s.",
		vacancy.Title, vacancy.CompanyName, candidate)
}
