// Package lang classifies free text into one of the supported locales
// using character-set heuristics.
package lang

import (
	"strings"

	"github.com/mindprobe/MindProbe/internal/models"
)

// englishMarkers are lowercase words whose presence marks English text when
// neither Hebrew nor Cyrillic script is found.
var englishMarkers = []string{
	"the", "and", "you", "are", "is", "my", "me", "hello", "hi", "what", "how", "why", "yes",
}

// Detect returns the locale tag for the given text. Bare slash-commands
// short-circuit to the default language. The function is pure and total:
// it always returns a supported tag, falling back to the default.
func Detect(text string) models.Language {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.HasPrefix(trimmed, "/") {
		return models.DefaultLanguage
	}

	for _, r := range trimmed {
		if r >= 0x0590 && r <= 0x05FF {
			return models.LanguageHebrew
		}
	}
	for _, r := range trimmed {
		if r >= 0x0400 && r <= 0x04FF {
			return models.LanguageRussian
		}
	}

	lower := strings.ToLower(trimmed)
	for _, word := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z')
	}) {
		for _, marker := range englishMarkers {
			if word == marker {
				return models.LanguageEnglish
			}
		}
	}

	return models.DefaultLanguage
}
