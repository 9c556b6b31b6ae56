package engine

import "github.com/mindprobe/MindProbe/internal/models"

var greetingTexts = map[models.Language]string{
	models.LanguageRussian: "Привет! Я карьерный психоаналитик. Расскажите о себе и своей работе, " +
		"и я помогу разобраться, что вами движет. Можно просто пообщаться, а можно пройти " +
		"полный тест из 7 вопросов. Напишите /help, чтобы узнать больше.",
	models.LanguageHebrew: "שלום! אני פסיכואנליטיקאי קריירה. ספרו לי על עצמכם ועל העבודה שלכם, " +
		"ואעזור להבין מה מניע אתכם. אפשר פשוט לשוחח, או לעבור מבחן מלא של 7 שאלות. " +
		"כתבו /help למידע נוסף.",
	models.LanguageEnglish: "Hi! I am a career psychoanalyst. Tell me about yourself and your work, " +
		"and I will help you understand what drives you. We can just chat, or you can take " +
		"the full 7-question assessment. Send /help to learn more.",
}

var helpTexts = map[models.Language]string{
	models.LanguageRussian: "Что я умею:\n" +
		"• просто пишите мне, и мы поговорим о вашей карьере\n" +
		"• после нескольких сообщений я предложу экспресс-анализ или полный тест\n" +
		"• /start — начать заново\n" +
		"• /cancel — прервать текущий тест",
	models.LanguageHebrew: "מה אני יודע לעשות:\n" +
		"• פשוט כתבו לי ונשוחח על הקריירה שלכם\n" +
		"• אחרי כמה הודעות אציע ניתוח מהיר או מבחן מלא\n" +
		"• /start — להתחיל מחדש\n" +
		"• /cancel — לבטל את המבחן הנוכחי",
	models.LanguageEnglish: "What I can do:\n" +
		"• just write to me and we will talk about your career\n" +
		"• after a few messages I will offer a quick analysis or the full assessment\n" +
		"• /start — start over\n" +
		"• /cancel — abort the current assessment",
}

var moreDataTexts = map[models.Language]string{
	models.LanguageRussian: "Мне пока мало материала для анализа. Расскажите немного о себе и своей работе, и я сразу подготовлю разбор.",
	models.LanguageHebrew:  "עדיין אין לי מספיק חומר לניתוח. ספרו לי קצת על עצמכם ועל העבודה שלכם, ומיד אכין ניתוח.",
	models.LanguageEnglish: "I do not have enough material yet. Tell me a bit about yourself and your work, and I will prepare the analysis right away.",
}

var continueChatTexts = map[models.Language]string{
	models.LanguageRussian: "Хорошо, продолжаем разговор. Расскажите, что вас волнует в работе.",
	models.LanguageHebrew:  "מצוין, נמשיך לשוחח. ספרו לי מה מעסיק אתכם בעבודה.",
	models.LanguageEnglish: "Great, let's keep talking. Tell me what is on your mind about work.",
}

var accessDeniedTexts = map[models.Language]string{
	models.LanguageRussian: "Эта команда доступна только HR-специалистам.",
	models.LanguageHebrew:  "הפקודה הזאת זמינה רק לאנשי משאבי אנוש.",
	models.LanguageEnglish: "This command is available to HR staff only.",
}

var noCandidatesTexts = map[models.Language]string{
	models.LanguageRussian: "Пока нет ни одного сохранённого анализа.",
	models.LanguageHebrew:  "עדיין אין ניתוחים שמורים.",
	models.LanguageEnglish: "No stored analyses yet.",
}

var reportFailedTexts = map[models.Language]string{
	models.LanguageRussian: "Не удалось получить список кандидатов, попробуйте позже.",
	models.LanguageHebrew:  "לא הצלחתי לקבל את רשימת המועמדים, נסו שוב מאוחר יותר.",
	models.LanguageEnglish: "Could not fetch the candidate list, please try again later.",
}

func localized(texts map[models.Language]string, language models.Language) string {
	if text, ok := texts[language]; ok {
		return text
	}
	return texts[models.DefaultLanguage]
}

func greetingText(language models.Language) string     { return localized(greetingTexts, language) }
func helpText(language models.Language) string         { return localized(helpTexts, language) }
func moreDataText(language models.Language) string     { return localized(moreDataTexts, language) }
func continueChatText(language models.Language) string { return localized(continueChatTexts, language) }
func accessDeniedText(language models.Language) string {
	return localized(accessDeniedTexts, language)
}
func noCandidatesText(language models.Language) string {
	return localized(noCandidatesTexts, language)
}
func reportFailedText(language models.Language) string {
	return localized(reportFailedTexts, language)
}
