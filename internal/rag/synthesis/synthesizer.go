package synthesis

import (
	"context"
	"strings"

	"github.com/docuchat/docuchat/internal/rag/llm"
	"github.com/docuchat/docuchat/internal/rag/llm/prompt"
	"github.com/docuchat/docuchat/pkg/applog"
)

// NoMatchAnswer is the fixed response for grounded questions with zero
// retrieved passages. It is returned without a model call so an empty
// context window can never be hallucinated over.
const NoMatchAnswer = "I don't know the answer to this question based on the selected document."

// Synthesizer builds a mode-scoped prompt and invokes the model once.
// It holds no state between invocations beyond the injected provider.
type Synthesizer struct {
	provider llm.Provider
	logger   *applog.Logger
}

func New(provider llm.Provider) *Synthesizer {
	return &Synthesizer{
		provider: provider,
		logger:   applog.NewLogger("Synthesizer"),
	}
}

// AnswerGrounded answers from the retrieved passages only. Empty passages
// short-circuit to NoMatchAnswer.
func (s *Synthesizer) AnswerGrounded(ctx context.Context, question string, passages []string) (string, error) {
	if len(passages) == 0 {
		s.logger.WithTrace(ctx).Debug("No passages retrieved, returning fixed answer")
		return NoMatchAnswer, nil
	}
	systemText, userText := prompt.Build(prompt.ModeGrounded, question, strings.Join(passages, "\n"))
	return s.provider.Generate(ctx, systemText, userText)
}

// AnswerGeneral handles the ungrounded path with no external context.
func (s *Synthesizer) AnswerGeneral(ctx context.Context, question string) (string, error) {
	systemText, userText := prompt.Build(prompt.ModeGeneral, question, "")
	return s.provider.Generate(ctx, systemText, userText)
}

// Summarize produces the one-time ingestion summary from a document excerpt.
func (s *Synthesizer) Summarize(ctx context.Context, excerpt string) (string, error) {
	systemText, userText := prompt.Build(prompt.ModeSummary, "", excerpt)
	return s.provider.Generate(ctx, systemText, userText)
}
