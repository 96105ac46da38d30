package inference

import (
	"fmt"
	"strings"
)

// SystemPrompt returns the system message for a target language.
// Small instruction-tuned models follow short role statements best.
func SystemPrompt(targetName string) string {
	return fmt.Sprintf("You are a professional %s translator. Respond only with translations, never explanations.", targetName)
}

// BuildPrompt renders the user message for one translation. The structure
// is fixed: mode hint, From/To, rules, optional context, text, trailer.
// The "do not include source words" rule is omitted when source and target
// are the same language.
func BuildPrompt(sourceName, targetName, text, contextText string, isDocument bool) string {
	var contextSection string
	if contextText != "" {
		contextSection = fmt.Sprintf("\n\nContext from previous translations:\n%s\n", contextText)
	}

	var avoidSource string
	if !strings.EqualFold(sourceName, targetName) {
		avoidSource = fmt.Sprintf("\n- Do NOT include any %s words in your response", sourceName)
	}

	modeHint := "Translate the text below."
	if isDocument {
		modeHint = "Translate this document. Preserve all formatting (paragraphs, lists, etc)."
	}

	return fmt.Sprintf(`You are a professional translator. %s

From: %s
To: %s

Rules:
- Output ONLY the %s translation
- No explanations or commentary%s
- Do not repeat these instructions
%s
Text to translate:
%s

%s translation:`,
		modeHint, sourceName, targetName, targetName, avoidSource, contextSection, text, targetName)
}
