package language

// Supported maps language codes to display names. The names are what the
// inference prompt uses, so changing them changes cache keys too.
var Supported = map[string]string{
	"auto": "Auto-detect",
	"en":   "English",
	"es":   "Spanish",
	"fr":   "French",
	"de":   "German",
	"it":   "Italian",
	"pt":   "Portuguese",
	"zh":   "Chinese",
	"ja":   "Japanese",
	"ko":   "Korean",
	"ar":   "Arabic",
	"ru":   "Russian",
	"hi":   "Hindi",
	"tr":   "Turkish",
	"pl":   "Polish",
	"nl":   "Dutch",
	"sv":   "Swedish",
	"no":   "Norwegian",
	"da":   "Danish",
	"fi":   "Finnish",
	"el":   "Greek",
	"he":   "Hebrew",
	"th":   "Thai",
	"vi":   "Vietnamese",
	"id":   "Indonesian",
	"ms":   "Malay",
	"yo":   "Yoruba",
	"ig":   "Igbo",
}

// Name returns the display name for a language code
func Name(code string) string {
	if name, ok := Supported[code]; ok {
		return name
	}
	return "Unknown"
}

// IsSupported reports whether code is a known language code
func IsSupported(code string) bool {
	_, ok := Supported[code]
	return ok
}
