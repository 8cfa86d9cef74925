package llm

import "context"

// Provider generates a single free-text completion. Prompt construction is
// the synthesizer's job; implementations only carry the text to the model.
type Provider interface {
	Generate(ctx context.Context, systemText string, userText string) (string, error)
}
