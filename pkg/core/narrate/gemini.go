package narrate

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"filing_health/pkg/core/calc"
)

const narratorSystemPrompt = `You are a financial analyst summarizing the health of a company from computed metrics.
Respond with a JSON object of the form {"statement": "..."} where the statement is one or two plain sentences.
Do not include figures that are not in the metrics you were given.`

// GeminiNarrator implements Narrator on Google's Gemini models via the GenAI
// SDK. The API key comes from the GEMINI_API_KEY environment variable.
type GeminiNarrator struct {
	Model string // e.g. "gemini-2.0-flash-exp"
}

var _ Narrator = (*GeminiNarrator)(nil)

// Summarize implements Narrator.
func (n *GeminiNarrator) Summarize(ctx context.Context, metrics calc.Metrics, score float64) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	model := n.Model
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create GenAI client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.4)),
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: narratorSystemPrompt},
			},
		},
	}

	result, err := client.Models.GenerateContent(
		ctx,
		model,
		genai.Text(buildPrompt(metrics, score)),
		config,
	)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	statement, err := parseValidatedStatement(result.Text())
	if err != nil {
		return "", err
	}
	return statement, nil
}
