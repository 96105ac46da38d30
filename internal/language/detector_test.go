package language

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "empty", text: "", want: "auto"},
		{name: "whitespace_only", text: "   \n\t ", want: "auto"},
		{name: "too_short", text: "ab", want: "auto"},
		{name: "latin", text: "Hello", want: "auto"},
		{name: "latin_sentence", text: "The quick brown fox", want: "auto"},
		{name: "chinese", text: "你好", want: "zh"},
		{name: "chinese_sentence", text: "你好，世界", want: "zh"},
		{name: "japanese_hiragana", text: "こんにちは", want: "ja"},
		{name: "japanese_katakana", text: "コンピュータ", want: "ja"},
		{name: "korean", text: "안녕하세요", want: "ko"},
		{name: "arabic", text: "مرحبا بالعالم", want: "ar"},
		{name: "russian", text: "Привет мир", want: "ru"},
		{name: "greek", text: "Γειά σου Κόσμε", want: "el"},
		{name: "hebrew", text: "שלום עולם", want: "he"},
		{name: "thai", text: "สวัสดีครับ", want: "th"},
		{name: "mixed_latin_chinese", text: "hello 世界", want: "zh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.text)
			if got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetect_CJKPriorityOverKana(t *testing.T) {
	// Japanese text that opens with a kanji still reports zh because the
	// CJK block is checked first; callers pass explicit source languages
	// when that distinction matters.
	got := Detect("日本語のテキスト")
	if got != "zh" {
		t.Errorf("Detect = %q, want %q (CJK block has priority)", got, "zh")
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"en", "English"},
		{"es", "Spanish"},
		{"zh", "Chinese"},
		{"auto", "Auto-detect"},
		{"yo", "Yoruba"},
		{"xx", "Unknown"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		if got := Name(tt.code); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestIsSupported(t *testing.T) {
	if !IsSupported("en") {
		t.Error("Expected en to be supported")
	}
	if IsSupported("klingon") {
		t.Error("Expected klingon to be unsupported")
	}
}
