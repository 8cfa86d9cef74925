// Package prompt holds the single prompt-template capability for the three
// generation modes. Building a prompt is a pure function of its inputs, so
// the contracts can be tested without touching a model.
package prompt

import (
	"fmt"
	"strings"
)

type Mode string

const (
	// ModeGeneral is the open-domain framing used when no document is selected.
	ModeGeneral Mode = "general"
	// ModeGrounded restricts the model to the supplied passages.
	ModeGrounded Mode = "grounded"
	// ModeSummary is the ingestion-time summarization framing.
	ModeSummary Mode = "summary"
)

const generalSystem = `You are a helpful and knowledgeable assistant. Keep the tone professional and calm.`

const groundedSystem = `You are a document question answering assistant.
Answer strictly from the context supplied below.
- Do not use outside knowledge and do not invent facts.
- If the context does not contain the information needed, say that the information is not available in the document.
- When the context carries page numbers or headings, reference them in your answer.`

const summarySystem = `You are a document summarizer.
Summarize the key points of the supplied document text in a clear, structured format.
- Do not make up any facts; state only what is written in the document.
- If information is not available, say that it is not available.
- Mention the heading, clause or page number of what you are summarizing when present.
- If the text contains a list, extract and simplify it.
- Keep the tone professional and calm.`

// Build returns the system instruction and user prompt for a mode.
// contextText is the joined retrieved passages in grounded mode and the
// document excerpt in summary mode; it is ignored in general mode.
func Build(mode Mode, question string, contextText string) (systemText string, userText string) {
	switch mode {
	case ModeGrounded:
		return groundedSystem, fmt.Sprintf("Context:\n%s\n\nQuestion: %s\nAnswer:", contextText, question)
	case ModeSummary:
		return summarySystem, fmt.Sprintf("Document text:\n%s", contextText)
	default:
		return generalSystem, fmt.Sprintf("The user asked: %s\n\nAnswer:", strings.TrimSpace(question))
	}
}
