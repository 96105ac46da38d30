package reliability

import (
	"strings"
	"testing"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		sourceText string
		translated string
		sourceLang string
		targetLang string
		reliable   bool
	}{
		{
			name:       "empty_translation",
			sourceText: "Hello",
			translated: "",
			sourceLang: "en",
			targetLang: "zh",
			reliable:   true,
		},
		{
			name:       "empty_source",
			sourceText: "",
			translated: "你好",
			sourceLang: "en",
			targetLang: "zh",
			reliable:   true,
		},
		{
			name:       "same_language",
			sourceText: "Hola",
			translated: "Hola",
			sourceLang: "es",
			targetLang: "es",
			reliable:   true,
		},
		{
			name:       "same_language_case_insensitive",
			sourceText: "Hola",
			translated: "Hola",
			sourceLang: "ES",
			targetLang: "es",
			reliable:   true,
		},
		{
			name:       "untranslated_to_chinese",
			sourceText: "Hello world test",
			translated: "Hello world test",
			sourceLang: "en",
			targetLang: "zh",
			reliable:   false,
		},
		{
			name:       "good_chinese_output",
			sourceText: "Hello world",
			translated: "你好，世界",
			sourceLang: "en",
			targetLang: "zh",
			reliable:   true,
		},
		{
			name:       "latin_echo",
			sourceText: "Good morning",
			translated: "Good morning",
			sourceLang: "en",
			targetLang: "es",
			reliable:   false,
		},
		{
			name:       "latin_echo_whitespace_and_case",
			sourceText: "  Good Morning ",
			translated: "good morning",
			sourceLang: "en",
			targetLang: "es",
			reliable:   false,
		},
		{
			name:       "latin_translated",
			sourceText: "Good morning",
			translated: "Buenos días",
			sourceLang: "en",
			targetLang: "es",
			reliable:   true,
		},
		{
			name:       "russian_to_latin_echo_not_flagged",
			sourceText: "Привет",
			translated: "Привет",
			sourceLang: "ru",
			targetLang: "en",
			reliable:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reliable, warning := Check(tt.sourceText, tt.translated, tt.sourceLang, tt.targetLang)
			if reliable != tt.reliable {
				t.Errorf("Check() reliable = %v, want %v (warning %q)", reliable, tt.reliable, warning)
			}
			if reliable && warning != "" {
				t.Errorf("Reliable result should carry no warning, got %q", warning)
			}
			if !reliable && warning == "" {
				t.Error("Unreliable result should carry a warning")
			}
		})
	}
}

func TestCheck_WarningNamesSourceLanguage(t *testing.T) {
	_, warning := Check("Hello world test", "Hello world test", "en", "zh")
	if !strings.Contains(warning, "English") {
		t.Errorf("Warning should name the source language, got %q", warning)
	}
}

func TestCheck_EchoWarning(t *testing.T) {
	_, warning := Check("Good morning", "Good morning", "en", "fr")
	if !strings.Contains(warning, "output matches input") {
		t.Errorf("Expected echo warning, got %q", warning)
	}
}
