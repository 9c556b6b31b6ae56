package survey

import (
	"fmt"

	"github.com/mindprobe/MindProbe/internal/models"
	"github.com/mindprobe/MindProbe/internal/validate"
)

// Localized user-facing texts. Lookups fall back to the default language.

var surveyIntro = map[models.Language]string{
	models.LanguageRussian: "📋 Начинаем полный анализ личности. Впереди 7 вопросов — отвечайте развёрнуто, чем больше текста, тем точнее результат.",
	models.LanguageHebrew:  "📋 מתחילים ניתוח אישיות מלא. לפניכם 7 שאלות - ענו בפירוט, ככל שיש יותר טקסט התוצאה מדויקת יותר.",
	models.LanguageEnglish: "📋 Starting the full personality analysis. There are 7 questions ahead - answer in detail, the more text the more accurate the result.",
}

var questionHeader = map[models.Language]string{
	models.LanguageRussian: "Вопрос %d из %d:",
	models.LanguageHebrew:  "שאלה %d מתוך %d:",
	models.LanguageEnglish: "Question %d of %d:",
}

var backButtonLabel = map[models.Language]string{
	models.LanguageRussian: "⬅️ Назад",
	models.LanguageHebrew:  "⬅️ אחורה",
	models.LanguageEnglish: "⬅️ Back",
}

var backPrompt = map[models.Language]string{
	models.LanguageRussian: "⬅️ Вы вернулись к вопросу %d. Дайте новый ответ:",
	models.LanguageHebrew:  "⬅️ חזרתם לשאלה %d. תנו תשובה חדשה:",
	models.LanguageEnglish: "⬅️ You returned to question %d. Give a new answer:",
}

var processingText = map[models.Language]string{
	models.LanguageRussian: "🔄 Анализирую ваши ответы... Это займёт несколько секунд.",
	models.LanguageHebrew:  "🔄 מנתח את התשובות שלכם... זה ייקח כמה שניות.",
	models.LanguageEnglish: "🔄 Analyzing your answers... This will take a few seconds.",
}

var incompleteText = map[models.Language]string{
	models.LanguageRussian: "❌ Ошибка: не все ответы получены. Попробуйте начать заново с /start",
	models.LanguageHebrew:  "❌ שגיאה: לא כל התשובות התקבלו. נסו להתחיל מחדש עם /start",
	models.LanguageEnglish: "❌ Error: not all answers received. Try starting over with /start",
}

var cancelText = map[models.Language]string{
	models.LanguageRussian: "Анализ отменён. Для нового анализа используйте /start",
	models.LanguageHebrew:  "הניתוח בוטל. לניתוח חדש השתמשו ב-/start",
	models.LanguageEnglish: "Analysis cancelled. Use /start for a new analysis",
}

var validationErrors = map[models.Language]map[validate.ReasonCode]string{
	models.LanguageRussian: {
		validate.ReasonEmpty:         "❌ Вы не написали ответ. Пожалуйста, ответьте на вопрос.",
		validate.ReasonTooShortWords: "❌ Пожалуйста, дайте более развёрнутый ответ (минимум 3 слова).\n\n💡 Пример хорошего ответа: \"Я считаю себя целеустремленным человеком, который всегда доводит дела до конца\"",
		validate.ReasonTooShortChars: "❌ Ответ слишком короткий. Напишите минимум 10 символов.\n\n💡 Постарайтесь раскрыть свои мысли подробнее",
		validate.ReasonMeaningless:   "❌ Пожалуйста, дайте осмысленный ответ.\n\n💡 Опишите свои мысли, чувства или опыт по данному вопросу",
	},
	models.LanguageHebrew: {
		validate.ReasonEmpty:         "❌ לא כתבתם תשובה. אנא ענו על השאלה.",
		validate.ReasonTooShortWords: "❌ אנא תנו תשובה מפורטת יותר (מינימום 3 מילים).\n\n💡 דוגמה לתשובה טובה: \"אני רואה את עצמי כאדם נחוש שתמיד מביא דברים לסיום\"",
		validate.ReasonTooShortChars: "❌ התשובה קצרה מדי. כתבו לפחות 10 תווים.\n\n💡 נסו לפרט את המחשבות שלכם יותר",
		validate.ReasonMeaningless:   "❌ אנא תנו תשובה משמעותית.\n\n💡 תארו את המחשבות, הרגשות או הניסיון שלכם בנושא זה",
	},
	models.LanguageEnglish: {
		validate.ReasonEmpty:         "❌ You didn't write an answer. Please respond to the question.",
		validate.ReasonTooShortWords: "❌ Please provide a more detailed answer (minimum 3 words).\n\n💡 Example of good answer: \"I consider myself a determined person who always sees things through\"",
		validate.ReasonTooShortChars: "❌ Answer is too short. Write at least 10 characters.\n\n💡 Try to elaborate on your thoughts more",
		validate.ReasonMeaningless:   "❌ Please provide a meaningful answer.\n\n💡 Describe your thoughts, feelings or experience on this topic",
	},
}

func localized(table map[models.Language]string, language models.Language) string {
	if text, ok := table[language]; ok {
		return text
	}
	return table[models.DefaultLanguage]
}

func validationError(language models.Language, reason validate.ReasonCode) string {
	table, ok := validationErrors[language]
	if !ok {
		table = validationErrors[models.DefaultLanguage]
	}
	if text, ok := table[reason]; ok {
		return text
	}
	return table[validate.ReasonTooShortWords]
}

func questionText(cfg *Config, language models.Language, i int) string {
	header := fmt.Sprintf(localized(questionHeader, language), i+1, models.SurveyQuestionCount)
	return header + "\n" + cfg.Question(language, i)
}
