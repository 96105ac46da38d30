package inference

import (
	"strings"
	"testing"
)

func TestBuildPromptBasic(t *testing.T) {
	got := BuildPrompt("English", "Spanish", "Hello world", "", false)

	want := `You are a professional translator. Translate the text below.

From: English
To: Spanish

Rules:
- Output ONLY the Spanish translation
- No explanations or commentary
- Do NOT include any English words in your response
- Do not repeat these instructions

Text to translate:
Hello world

Spanish translation:`

	if got != want {
		t.Errorf("prompt mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildPromptSameLanguageOmitsAvoidRule(t *testing.T) {
	got := BuildPrompt("English", "english", "Hello", "", false)
	if strings.Contains(got, "Do NOT include") {
		t.Error("avoid-source rule should be omitted when languages match")
	}
}

func TestBuildPromptDocumentMode(t *testing.T) {
	got := BuildPrompt("English", "French", "Report body", "", true)
	if !strings.Contains(got, "Translate this document. Preserve all formatting") {
		t.Error("document mode hint missing")
	}
	if strings.Contains(got, "Translate the text below.") {
		t.Error("standard hint should be replaced in document mode")
	}
}

func TestBuildPromptContextSection(t *testing.T) {
	got := BuildPrompt("English", "German", "Next sentence", "Earlier sentence -> Früherer Satz", false)
	if !strings.Contains(got, "Context from previous translations:\nEarlier sentence -> Früherer Satz") {
		t.Error("context section missing or malformed")
	}
}

func TestSystemPrompt(t *testing.T) {
	got := SystemPrompt("Japanese")
	want := "You are a professional Japanese translator. Respond only with translations, never explanations."
	if got != want {
		t.Errorf("SystemPrompt = %q, want %q", got, want)
	}
}
