package prompt

import (
	"strings"
	"testing"
)

func TestBuild_Grounded(t *testing.T) {
	systemText, userText := Build(ModeGrounded, "what is clause 4?", "clause 4 limits liability")

	if !strings.Contains(systemText, "strictly from the context") {
		t.Errorf("Grounded system instruction missing restriction: %q", systemText)
	}
	if !strings.Contains(userText, "clause 4 limits liability") {
		t.Error("Grounded prompt missing the context")
	}
	if !strings.Contains(userText, "what is clause 4?") {
		t.Error("Grounded prompt missing the question")
	}
}

func TestBuild_Summary(t *testing.T) {
	systemText, userText := Build(ModeSummary, "", "the document text")

	if !strings.Contains(systemText, "Do not make up any facts") {
		t.Errorf("Summary system instruction missing grounding rule: %q", systemText)
	}
	if !strings.Contains(userText, "the document text") {
		t.Error("Summary prompt missing the excerpt")
	}
}

func TestBuild_General(t *testing.T) {
	systemText, userText := Build(ModeGeneral, "  what is Go?  ", "ignored context")

	if strings.Contains(userText, "ignored context") {
		t.Error("General prompt must ignore contextText")
	}
	if !strings.Contains(userText, "what is Go?") {
		t.Error("General prompt missing the question")
	}
	if strings.Contains(systemText, "document") {
		t.Errorf("General system instruction should not be document scoped: %q", systemText)
	}
}

func TestBuild_UnknownModeFallsBackToGeneral(t *testing.T) {
	systemA, _ := Build(Mode("bogus"), "q", "")
	systemB, _ := Build(ModeGeneral, "q", "")
	if systemA != systemB {
		t.Error("Unknown modes must fall back to the general framing")
	}
}
