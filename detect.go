package textmood

import (
	"strings"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
)

// minDetectRunes is the shortest text worth running detection on.
const minDetectRunes = 10

// LanguageDetector provides language detection capabilities
type LanguageDetector struct {
	options whatlanggo.Options
}

// NewLanguageDetector creates a detector. When langs is not empty, detection
// is restricted to those languages.
func NewLanguageDetector(langs ...Language) *LanguageDetector {
	ld := &LanguageDetector{}
	if len(langs) == 0 {
		return ld
	}

	ld.options.Whitelist = make(map[whatlanggo.Lang]bool, len(langs))
	for _, lang := range langs {
		if l, ok := whatlangCodes[lang]; ok {
			ld.options.Whitelist[l] = true
		}
	}
	return ld
}

// DetectLanguage returns the language of text and the detector's confidence.
// Text that is too short or that cannot be identified reliably yields Unknown.
func (ld *LanguageDetector) DetectLanguage(text string) (Language, float64) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minDetectRunes {
		return Unknown, 0
	}

	info := whatlanggo.DetectWithOptions(text, ld.options)
	if !info.IsReliable() {
		return Unknown, info.Confidence
	}
	return Language(info.Lang.Iso6391()), info.Confidence
}

var defaultDetector = NewLanguageDetector()

// DetectLanguage runs an unrestricted LanguageDetector over text.
func DetectLanguage(text string) (Language, float64) {
	return defaultDetector.DetectLanguage(text)
}

var whatlangCodes = map[Language]whatlanggo.Lang{
	English: whatlanggo.Eng,
	Spanish: whatlanggo.Spa,
	French:  whatlanggo.Fra,
	German:  whatlanggo.Deu,
}

// IsSupported reports whether lang has built-in lexicon or stopword data.
func IsSupported(lang Language) bool {
	for _, supported := range SupportedStopwordLanguages() {
		if lang == supported {
			return true
		}
	}
	return false
}
