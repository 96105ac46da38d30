// Package language provides script-based language detection and the
// supported language registry used for routing and prompt construction.
package language

import "strings"

// scriptRange maps a contiguous Unicode block to a language code
type scriptRange struct {
	lo, hi rune
	code   string
}

// Checked in order; the first range containing any rune of the text decides
// the result, so CJK wins over kana for mixed Japanese text and so on.
var scriptRanges = []scriptRange{
	{0x4E00, 0x9FFF, "zh"}, // CJK Unified Ideographs
	{0x3040, 0x309F, "ja"}, // Hiragana
	{0x30A0, 0x30FF, "ja"}, // Katakana
	{0xAC00, 0xD7AF, "ko"}, // Hangul Syllables
	{0x0600, 0x06FF, "ar"}, // Arabic
	{0x0400, 0x04FF, "ru"}, // Cyrillic
	{0x0370, 0x03FF, "el"}, // Greek
	{0x0590, 0x05FF, "he"}, // Hebrew
	{0x0E00, 0x0E7F, "th"}, // Thai
}

// Detect returns the language code for text based on its script, or "auto"
// when the text is too short or uses only Latin script. Latin-script
// languages are not distinguished; that is a documented limitation of the
// heuristic, not a defect.
func Detect(text string) string {
	if len(strings.TrimSpace(text)) < 3 {
		return "auto"
	}

	for _, sr := range scriptRanges {
		for _, r := range text {
			if r >= sr.lo && r <= sr.hi {
				return sr.code
			}
		}
	}

	return "auto"
}
