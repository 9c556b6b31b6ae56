package analysis

import (
	"fmt"

	"github.com/mindprobe/MindProbe/internal/models"
)

// Localized failure and delivery texts. Raw provider errors never reach the
// user; each failure kind maps to a short apology naming the retry action.

var timeoutApology = map[models.Language]string{
	models.LanguageRussian: "⏳ Анализ занял слишком много времени и был прерван. Попробуйте /start немного позже.",
	models.LanguageHebrew:  "⏳ הניתוח לקח יותר מדי זמן והופסק. נסו /start מעט מאוחר יותר.",
	models.LanguageEnglish: "⏳ The analysis took too long and was interrupted. Please try /start again a bit later.",
}

var quotaApology = map[models.Language]string{
	models.LanguageRussian: "🚦 Сервис анализа сейчас перегружен. Попробуйте /start немного позже.",
	models.LanguageHebrew:  "🚦 שירות הניתוח עמוס כרגע. נסו /start מעט מאוחר יותר.",
	models.LanguageEnglish: "🚦 The analysis service is overloaded right now. Please try /start again a bit later.",
}

var genericApology = map[models.Language]string{
	models.LanguageRussian: "😔 Извините, произошла ошибка при обработке запроса. Попробуйте /start позже.",
	models.LanguageHebrew:  "😔 מצטערים, אירעה שגיאה בעיבוד הבקשה. נסו /start מאוחר יותר.",
	models.LanguageEnglish: "😔 Sorry, an error occurred while processing the request. Please try /start later.",
}

var partHeader = map[models.Language]string{
	models.LanguageRussian: "**Анализ (часть %d):**\n\n",
	models.LanguageHebrew:  "**ניתוח (חלק %d):**\n\n",
	models.LanguageEnglish: "**Analysis (part %d):**\n\n",
}

var fullDoneText = map[models.Language]string{
	models.LanguageRussian: "✅ **Анализ завершён!**\n\nСпасибо за доверие. Для нового анализа используйте /start",
	models.LanguageHebrew:  "✅ **הניתוח הושלם!**\n\nתודה על האמון. לניתוח חדש השתמשו ב-/start",
	models.LanguageEnglish: "✅ **Analysis complete!**\n\nThank you for your trust. Use /start for a new analysis",
}

func apologyText(table map[models.Language]string, language models.Language) string {
	if text, ok := table[language]; ok {
		return text
	}
	return table[models.DefaultLanguage]
}

func partHeaderText(language models.Language, part int) string {
	return fmt.Sprintf(apologyText(partHeader, language), part)
}
