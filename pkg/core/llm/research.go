package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	aigenai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ResearchAgent produces grounded market commentary through the
// generative-ai SDK, which carries the client-side tooling hooks the plain
// chat providers lack. It is used for the report's recent-developments
// section, where a persistent client across several prompts pays off.
type ResearchAgent struct {
	client    *aigenai.Client
	modelName string
}

// NewResearchAgent connects to the Gemini API with the key from the
// environment. Close must be called when done.
func NewResearchAgent(ctx context.Context, modelName string) (*ResearchAgent, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := aigenai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create research client: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-2.0-flash-exp"
	}
	return &ResearchAgent{client: client, modelName: modelName}, nil
}

// Close releases the underlying API client.
func (a *ResearchAgent) Close() error {
	return a.client.Close()
}

// Summarize asks the model to condense scraped headlines into a short
// qualitative assessment for the report.
func (a *ResearchAgent) Summarize(ctx context.Context, companyName string, headlines []string) (string, error) {
	if len(headlines) == 0 {
		return "", nil
	}

	model := a.client.GenerativeModel(a.modelName)
	model.SetTemperature(0.7)

	prompt := fmt.Sprintf(
		"You are an equity research analyst. Summarize the recent developments for %s "+
			"in 2-3 short paragraphs based on these headlines. Stay factual, no investment advice.\n\n%s",
		companyName, strings.Join(headlines, "\n"))

	resp, err := model.GenerateContent(ctx, aigenai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("research generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(aigenai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
