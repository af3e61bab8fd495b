package resume

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const DefaultModel = "gemini-1.5-flash"

var errGeneratorDisabled = errors.New("generative model is not configured")

// LLMGenerator sends a single prompt to a langchaingo model and returns
// the first text response.
type LLMGenerator struct {
	Model llms.Model
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*LLMGenerator, error) {
	if model == "" {
		model = DefaultModel
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &LLMGenerator{Model: llm}, nil
}

func (g *LLMGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.Model, prompt)
}

// DisabledGenerator fails every call. It stands in when no API key is
// configured so the rest of the server still starts.
type DisabledGenerator struct{}

func (DisabledGenerator) Generate(context.Context, string) (string, error) {
	return "", errGeneratorDisabled
}
