// Package reliability flags likely mistranslations by comparing the
// detected script of model output against the requested target language.
// It is a heuristic safety net: false negatives are acceptable, false
// positives should be rare.
package reliability

import (
	"fmt"
	"strings"

	"github.com/lingobridge/lingobridge/internal/language"
)

// nonLatinTargets are the languages whose script the detector can identify,
// which makes a wrong-language output detectable.
var nonLatinTargets = map[string]bool{
	"zh": true,
	"ja": true,
	"ko": true,
	"ar": true,
	"ru": true,
	"el": true,
	"he": true,
	"th": true,
}

// Check inspects a finished translation and reports whether it looks
// plausible, with a human-readable warning when it does not. Rules are
// evaluated in order and the first match wins.
func Check(sourceText, translatedText, sourceLang, targetLang string) (bool, string) {
	if translatedText == "" || sourceText == "" {
		return true, ""
	}

	src := strings.ToLower(sourceLang)
	tgt := strings.ToLower(targetLang)

	// Same-language requests cannot fail this check
	if src == tgt {
		return true, ""
	}

	if nonLatinTargets[tgt] {
		detectedOutput := language.Detect(translatedText)
		detectedInput := language.Detect(sourceText)

		if detectedOutput != tgt && detectedOutput == detectedInput {
			return false, fmt.Sprintf(
				"Translation may be unreliable - output appears to still be in %s",
				language.Name(sourceLang))
		}
		return true, ""
	}

	// Latin-to-Latin: the detector cannot tell languages apart, so the only
	// detectable failure is the model echoing its input back
	if !nonLatinTargets[src] {
		if strings.EqualFold(strings.TrimSpace(sourceText), strings.TrimSpace(translatedText)) {
			return false, "Translation may be unreliable - output matches input"
		}
	}

	return true, ""
}
