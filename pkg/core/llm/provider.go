// Package llm wraps the chat-completion providers used for report
// narratives. Providers share one interface so the active model is a config
// switch, not a code change.
package llm

import (
	"context"
	"fmt"
)

// Options tunes a single generation request.
type Options struct {
	// Model overrides the provider's default model name.
	Model string
	// JSONMode requests a JSON object response where the provider supports it.
	JSONMode bool
}

// Provider generates a completion for a prompt under a system instruction.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt, systemPrompt string, opts Options) (string, error)
}

// NewProvider returns the provider registered under name. The model argument
// may be empty to use the provider's default.
func NewProvider(name, model string) (Provider, error) {
	switch name {
	case "gemini":
		return &GeminiProvider{Model: model}, nil
	case "deepseek":
		return &DeepSeekProvider{Model: model}, nil
	case "qwen":
		return &QwenProvider{Model: model}, nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", name)
}
