package report

import (
	"context"
	"encoding/json"
	"fmt"

	"equity_research/pkg/core/llm"
)

// narrativeSystemPrompt keeps the model inside the analyst register and away
// from advice language.
const narrativeSystemPrompt = `You are an equity research analyst writing the commentary section of a report.
Write in a neutral, factual tone. Reference the supplied numbers rather than inventing new ones.
Do not give investment advice. Respond with a JSON object: {"commentary": "<markdown text>"}.`

// narrativeResponse is the schema the model is asked to fill.
type narrativeResponse struct {
	Commentary string `json:"commentary"`
}

// NarrativeWriter turns the quantitative sections into prose through an LLM.
type NarrativeWriter struct {
	provider llm.Provider
}

// NewNarrativeWriter wraps a provider. A nil provider yields a writer whose
// Write returns empty commentary, so the pipeline can run without an LLM.
func NewNarrativeWriter(provider llm.Provider) *NarrativeWriter {
	return &NarrativeWriter{provider: provider}
}

// Write generates analyst commentary from the report data. The model sees a
// JSON dump of the computed sections; its output is parsed leniently and
// cleaned before use.
func (w *NarrativeWriter) Write(ctx context.Context, d Data) (string, error) {
	if w.provider == nil {
		return "", nil
	}

	facts, err := json.MarshalIndent(struct {
		Profile    any `json:"profile"`
		Trends     any `json:"ratio_trends,omitempty"`
		Beta       any `json:"risk,omitempty"`
		CAPM       any `json:"capm,omitempty"`
		WACC       any `json:"wacc,omitempty"`
		Valuations any `json:"valuations,omitempty"`
		Headlines  any `json:"headlines,omitempty"`
	}{d.Profile, d.Trends, d.Beta, d.CAPM, d.WACC, d.Valuations, d.Headlines}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report facts: %w", err)
	}

	prompt := fmt.Sprintf("Write the commentary for %s based on this analysis:\n\n%s",
		d.Profile.Ticker, string(facts))

	raw, err := w.provider.GenerateResponse(ctx, prompt, narrativeSystemPrompt, llm.Options{JSONMode: true})
	if err != nil {
		return "", fmt.Errorf("narrative generation failed: %w", err)
	}

	var parsed narrativeResponse
	if err := SmartParse(raw, &parsed); err != nil {
		// Some models ignore the JSON instruction and answer in prose.
		// Treat the whole response as commentary rather than failing.
		return CleanMarkdown(raw), nil
	}
	return CleanMarkdown(parsed.Commentary), nil
}
