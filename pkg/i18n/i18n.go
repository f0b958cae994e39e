// Package i18n provides static UI string localization for the student portal.
// Lookup order: active language → English → the key itself.
// No external dependencies — translations are compiled into the binary.
// No interpolation and no plural rules: substitution is purely static.
package i18n

// Language is a supported UI language code.
type Language string

const (
	// LangEnglish is the default language.
	LangEnglish Language = "en"
	// LangAmharic is the Amharic UI language.
	LangAmharic Language = "am"
)

// DefaultLang is the fallback language used when a key or language is not found.
const DefaultLang = LangEnglish

// IsSupported reports whether code is a known language.
func IsSupported(code Language) bool {
	return code == LangEnglish || code == LangAmharic
}

// Toggle flips between the two supported languages. Unknown input maps to
// the default so a toggle from a corrupt stored value still lands somewhere
// valid.
func Toggle(code Language) Language {
	if code == LangEnglish {
		return LangAmharic
	}
	return LangEnglish
}

// Translate returns the localized string for key in lang.
// Missing keys fall back to English; a key absent from both dictionaries is
// returned unchanged so nothing is silently swallowed. Never fails.
func Translate(key string, lang Language) string {
	if dict, ok := translations[lang]; ok {
		if s, ok := dict[key]; ok {
			return s
		}
	}
	if s, ok := translations[DefaultLang][key]; ok {
		return s
	}
	return key
}
