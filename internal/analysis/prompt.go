package analysis

import (
	"fmt"
	"strings"

	"github.com/mindprobe/MindProbe/internal/models"
	"github.com/mindprobe/MindProbe/internal/survey"
)

// Prompt templates. Variant-specific instructions are data per language and
// mode, not code forks.

var answerLabel = map[models.Language]string{
	models.LanguageRussian: "Ответ",
	models.LanguageHebrew:  "תשובה",
	models.LanguageEnglish: "Answer",
}

var fullPromptTemplates = map[models.Language]string{
	models.LanguageRussian: `Ты — ведущий психоаналитик и HR-эксперт с 20-летним опытом.

ДЕТАЛЬНЫЕ ОТВЕТЫ КЛИЕНТА:
%s

%s

ПРОВЕДИ ГЛУБОКИЙ ПСИХОАНАЛИЗ:

🧠 ПСИХОАНАЛИТИЧЕСКИЙ ПРОФИЛЬ:
- Структура личности, защитные механизмы, бессознательные конфликты

🎭 АРХЕТИПЫ И ТИПОЛОГИЯ:
- Доминирующий архетип по Юнгу, MBTI тип с обоснованием, темперамент

📊 BIG FIVE (OCEAN):
- Каждая черта [1-10] с обоснованием

💼 HR-РЕКОМЕНДАЦИИ:
- Подходящие роли, стиль работы, мотивационные факторы, риски

🎓 ОБРАЗОВАТЕЛЬНЫЕ РЕКОМЕНДАЦИИ:
- Направления обучения, дополнительные навыки, карьерная траектория

СТИЛЬ: Профессиональный, детальный, практичный. 800-1200 слов.`,
	models.LanguageHebrew: `אתה פסיכואנליטיקאי מוביל ומומחה HR עם 20 שנות ניסיון.

תשובות מפורטות של הלקוח:
%s

%s

בצע פסיכואנליזה מעמיקה:

🧠 פרופיל פסיכואנליטי: מבנה אישיות, מנגנוני הגנה, קונפליקטים לא מודעים
🎭 ארכיטיפים וטיפולוגיה: ארכיטיפ דומיננטי לפי יונג, סוג MBTI עם נימוק
📊 BIG FIVE: כל תכונה [1-10] עם נימוק
💼 המלצות HR: תפקידים מתאימים, סגנון עבודה, גורמי מוטיבציה, סיכונים
🎓 המלצות לימודים: כיווני לימוד, כישורים נוספים, מסלול קריירה

סגנון: מקצועי, מפורט, מעשי. 800-1200 מילים.`,
	models.LanguageEnglish: `You are a leading psychoanalyst and HR expert with 20 years of experience.

CLIENT'S DETAILED ANSWERS:
%s

%s

CONDUCT A DEEP PSYCHOANALYSIS:

🧠 PSYCHOANALYTIC PROFILE:
- Personality structure, defense mechanisms, unconscious conflicts

🎭 ARCHETYPES AND TYPOLOGY:
- Dominant Jungian archetype, MBTI type with reasoning, temperament

📊 BIG FIVE (OCEAN):
- Each trait [1-10] with reasoning

💼 HR RECOMMENDATIONS:
- Suitable roles, working style, motivational factors, risks

🎓 EDUCATIONAL RECOMMENDATIONS:
- Fields of study, additional skills, career trajectory

STYLE: Professional, detailed, practical. 800-1200 words.`,
}

var expressPromptTemplates = map[models.Language]string{
	models.LanguageRussian: `Ты — профессиональный HR-психоаналитик и карьерный консультант.

ДИАЛОГ КЛИЕНТА (%d сообщений):
%s

ЗАДАЧА: Проведи экспресс-анализ личности на основе диалога.

МЕТОДОЛОГИЯ: психоанализ (Фрейд), аналитическая психология (Юнг), MBTI, Big Five.

ФОРМАТ ОТВЕТА:
🎯 ЭКСПРЕСС-ПРОФИЛЬ

🧠 Психотип: [краткое описание]
📊 Основные черты: [2-3 ключевые характеристики]
💼 Подходящие сферы: [3-4 области деятельности]
🎓 Рекомендации по обучению: [конкретные направления]
⚠️ Зоны развития: [что стоит развивать]

СТИЛЬ: Профессиональный, эмпатичный, конкретный. Максимум 300 слов.`,
	models.LanguageHebrew: `אתה פסיכואנליטיקאי HR מקצועי ויועץ קריירה.

שיחת הלקוח (%d הודעות):
%s

משימה: בצע ניתוח אקספרס של האישיות על בסיס השיחה.

מתודולוגיה: פסיכואנליזה (פרויד), פסיכולוגיה אנליטית (יונג), MBTI, Big Five.

פורמט תשובה:
🎯 פרופיל אקספרס
🧠 פסיכוטיפ, 📊 תכונות עיקריות, 💼 תחומים מתאימים, 🎓 המלצות לימוד, ⚠️ אזורי פיתוח

סגנון: מקצועי, אמפתי, ממוקד. מקסימום 300 מילים.`,
	models.LanguageEnglish: `You are a professional HR psychoanalyst and career consultant.

CLIENT'S DIALOGUE (%d messages):
%s

TASK: Conduct an express personality analysis based on the dialogue.

METHODOLOGY: psychoanalysis (Freud), analytical psychology (Jung), MBTI, Big Five.

RESPONSE FORMAT:
🎯 EXPRESS PROFILE

🧠 Psychotype: [brief description]
📊 Main traits: [2-3 key characteristics]
💼 Suitable fields: [3-4 areas of activity]
🎓 Education recommendations: [specific directions]
⚠️ Growth areas: [what to develop]

STYLE: Professional, empathetic, specific. Maximum 300 words.`,
}

// BuildFullPrompt embeds the seven question/answer pairs in order, plus the
// speech-style profile, into the full-analysis instruction template.
func BuildFullPrompt(questions *survey.Config, language models.Language, answers []string) string {
	label := localizedText(answerLabel, language)
	var block strings.Builder
	for i, answer := range answers {
		fmt.Fprintf(&block, "%d) %s\n%s: %s\n\n", i+1, questions.Question(language, i), label, answer)
	}
	speech := SpeechStyle(strings.Join(answers, " "), language)
	return fmt.Sprintf(localizedText(fullPromptTemplates, language), strings.TrimSpace(block.String()), speech)
}

// BuildExpressPrompt embeds the joined conversation turns into the
// express-analysis instruction template.
func BuildExpressPrompt(language models.Language, history []string) string {
	conversation := strings.Join(history, "\n")
	return fmt.Sprintf(localizedText(expressPromptTemplates, language), len(history), conversation)
}

func localizedText(table map[models.Language]string, language models.Language) string {
	if text, ok := table[language]; ok {
		return text
	}
	return table[models.DefaultLanguage]
}
