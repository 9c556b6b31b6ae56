package gatekeeper

import (
	"fmt"

	"github.com/mindprobe/MindProbe/internal/models"
)

var expressButtonLabel = map[models.Language]string{
	models.LanguageRussian: "⚡ Экспресс-анализ сейчас",
	models.LanguageHebrew:  "⚡ ניתוח אקספרס עכשיו",
	models.LanguageEnglish: "⚡ Express analysis now",
}

var surveyButtonLabel = map[models.Language]string{
	models.LanguageRussian: "📋 Полный тест",
	models.LanguageHebrew:  "📋 מבחן מלא",
	models.LanguageEnglish: "📋 Full test",
}

var chatButtonLabel = map[models.Language]string{
	models.LanguageRussian: "💬 Еще поговорить",
	models.LanguageHebrew:  "💬 להמשיך לדבר",
	models.LanguageEnglish: "💬 Keep chatting",
}

var offerText = map[models.Language]string{
	models.LanguageRussian: "💭 **Вижу, вы готовы к более глубокому анализу!**\n\nВыберите формат:",
	models.LanguageHebrew:  "💭 **אני רואה שאתם מוכנים לניתוח עמוק יותר!**\n\nבחרו פורמט:",
	models.LanguageEnglish: "💭 **I see you're ready for deeper analysis!**\n\nChoose format:",
}

var forceText = map[models.Language]string{
	models.LanguageRussian: "🎯 **Отлично! У меня достаточно материала для анализа.**\n\n🔄 *Анализирую ваши сообщения и составляю психологический портрет...*",
	models.LanguageHebrew:  "🎯 **מעולה! יש לי מספיק חומר לניתוח.**\n\n🔄 *מנתח את ההודעות שלכם ומכין פרופיל פסיכולוגי...*",
	models.LanguageEnglish: "🎯 **Excellent! I have enough material for analysis.**\n\n🔄 *Analyzing your messages and creating psychological profile...*",
}

var fallbackReply = map[models.Language]string{
	models.LanguageRussian: "Понимаю! Я здесь, чтобы помочь с психологическим анализом. Напишите /start для начала профессионального анализа личности.",
	models.LanguageHebrew:  "מבין! אני כאן כדי לעזור בניתוח פסיכולוגי. כתבו /start להתחלת ניתוח מקצועי של האישיות.",
	models.LanguageEnglish: "I understand! I'm here to help with psychological analysis. Type /start to begin professional personality analysis.",
}

var thinkPrompts = map[models.Language]string{
	models.LanguageRussian: `Ты психоаналитик и HR-консультант. Пользователь написал: "%s"

ПРАВИЛА:
1. СНАЧАЛА отвечай на прямой вопрос (если есть)
2. Потом кратко анализируй (1-2 предложения)
3. Задавай ОДИН вопрос для продолжения диалога
4. Максимум 3 предложения в ответе
5. Будь мягким и понимающим к опечаткам

Если спрашивают "что умеешь" - отвечай что делаешь анализ личности и профориентацию.
Если просто приветствие - поприветствуй и спроси о целях/мечтах.
Если рассказывают о себе - кратко проанализируй и задай вопрос.

Будь кратким, мягким и по делу!`,
	models.LanguageHebrew: `אתה פסיכואנליטיקאי ויועץ HR. המשתמש כתב: "%s"

כללים:
1. קודם תענה על השאלה הישירה (אם יש)
2. אחר כך נתח בקצרה (1-2 משפטים)
3. שאל שאלה אחת להמשך השיחה
4. מקסימום 3 משפטים בתשובה

אם שואלים "מה אתה יודע לעשות" - תגיד שעושה ניתוח אישיות והכוונה מקצועית.
אם רק ברכה - ברך ושאל על מטרות/חלומות.
אם מספרים על עצמם - נתח בקצרה ושאל שאלה.

היה קצר ולעניין!`,
	models.LanguageEnglish: `You are a psychoanalyst and HR consultant. The user wrote: "%s"

RULES:
1. FIRST answer the direct question (if any)
2. Then briefly analyze (1-2 sentences)
3. Ask ONE question to continue the conversation
4. Maximum 3 sentences in response

If they ask "what can you do" - say you do personality analysis and career guidance.
If just greeting - greet and ask about goals/dreams.
If they tell about themselves - briefly analyze and ask a question.

Be brief and to the point!`,
}

func localized(table map[models.Language]string, language models.Language) string {
	if text, ok := table[language]; ok {
		return text
	}
	return table[models.DefaultLanguage]
}

// ThinkPrompt builds the short-reply prompt for one free-chat message.
func ThinkPrompt(language models.Language, userMessage string) string {
	return fmt.Sprintf(localized(thinkPrompts, language), userMessage)
}

// FallbackReply is sent when the short-reply generation fails.
func FallbackReply(language models.Language) string {
	return localized(fallbackReply, language)
}

// OfferText introduces the structured choices at an offer threshold.
func OfferText(language models.Language) string {
	return localized(offerText, language)
}

// ForceText announces the forced express analysis.
func ForceText(language models.Language) string {
	return localized(forceText, language)
}
