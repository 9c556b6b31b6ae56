package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mindprobe/MindProbe/internal/models"
)

// Speech-style heuristics embedded into the full analysis prompt.

var emotionalMarkers = regexp.MustCompile(`[!?]{1,3}`)

var pronounPatterns = map[models.Language]*regexp.Regexp{
	models.LanguageRussian: regexp.MustCompile(`(?i)\b(я|мне|мой|моя|мои|меня|мной)\b`),
	models.LanguageHebrew:  regexp.MustCompile(`(אני|שלי|אותי)`),
	models.LanguageEnglish: regexp.MustCompile(`(?i)\b(i|me|my|mine|myself)\b`),
}

var speechTemplates = map[models.Language]string{
	models.LanguageRussian: "📊 Анализ речи:\n• Объём текста: %d слов\n• Сложность речи: %s\n• Эмоциональность: %s\n• Самофокусированность: %s",
	models.LanguageHebrew:  "📊 ניתוח דיבור:\n• נפח טקסט: %d מילים\n• מורכבות דיבור: %s\n• רגשיות: %s\n• מיקוד עצמי: %s",
	models.LanguageEnglish: "📊 Speech analysis:\n• Text volume: %d words\n• Speech complexity: %s\n• Emotionality: %s\n• Self-focus: %s",
}

var speechLevels = map[models.Language]struct {
	high, medium, low, moderate string
}{
	models.LanguageRussian: {"высокая", "средняя", "низкая", "умеренная"},
	models.LanguageHebrew:  {"גבוהה", "בינונית", "נמוכה", "בינונית"},
	models.LanguageEnglish: {"high", "medium", "low", "moderate"},
}

// SpeechStyle produces a localized short profile of the writing style:
// volume, complexity, emotionality and self-focus.
func SpeechStyle(text string, language models.Language) string {
	if _, ok := speechTemplates[language]; !ok {
		language = models.DefaultLanguage
	}
	levels := speechLevels[language]

	words := len(strings.Fields(text))
	complexity := levels.low
	switch {
	case words > 200:
		complexity = levels.high
	case words > 100:
		complexity = levels.medium
	}

	emotionality := levels.moderate
	if len(emotionalMarkers.FindAllString(text, -1)) > 5 {
		emotionality = levels.high
	}

	selfFocus := levels.moderate
	if pattern, ok := pronounPatterns[language]; ok {
		if len(pattern.FindAllString(text, -1)) > 10 {
			selfFocus = levels.high
		}
	}

	return fmt.Sprintf(speechTemplates[language], words, complexity, emotionality, selfFocus)
}
