package analysis

import (
	"fmt"
	"strings"

	"github.com/mindprobe/MindProbe/internal/models"
	"github.com/mindprobe/MindProbe/internal/survey"
)

// roleThreshold is the trait score at which a role label is assigned.
const roleThreshold = 7

// redFlagThreshold is the trait score at or below which a flag is raised.
const redFlagThreshold = 3

// Summary is the recruiter-facing verdict derived from a trait score vector.
type Summary struct {
	Roles          []string
	RedFlags       []string
	Overall        string
	Recommendation string
	TotalScore     float64
}

var roleLabels = []struct {
	trait  string
	labels map[models.Language]string
}{
	{TraitLeadership, map[models.Language]string{
		models.LanguageRussian: "Лидер", models.LanguageHebrew: "מנהיג", models.LanguageEnglish: "Leader"}},
	{TraitTeamwork, map[models.Language]string{
		models.LanguageRussian: "Командный игрок", models.LanguageHebrew: "שחקן צוות", models.LanguageEnglish: "Team Player"}},
	{TraitCreativity, map[models.Language]string{
		models.LanguageRussian: "Креативщик", models.LanguageHebrew: "יצירתי", models.LanguageEnglish: "Creative"}},
	{TraitAnalyticalThinking, map[models.Language]string{
		models.LanguageRussian: "Аналитик", models.LanguageHebrew: "אנליסט", models.LanguageEnglish: "Analyst"}},
}

var redFlagLabels = []struct {
	trait  string
	labels map[models.Language]string
}{
	{TraitStressResistance, map[models.Language]string{
		models.LanguageRussian: "Низкая стрессоустойчивость", models.LanguageHebrew: "עמידות נמוכה ללחץ", models.LanguageEnglish: "Low stress resistance"}},
	{TraitTeamwork, map[models.Language]string{
		models.LanguageRussian: "Проблемы с командной работой", models.LanguageHebrew: "בעיות עבודה בצוות", models.LanguageEnglish: "Teamwork issues"}},
	{TraitReliability, map[models.Language]string{
		models.LanguageRussian: "Низкая надежность", models.LanguageHebrew: "אמינות נמוכה", models.LanguageEnglish: "Low reliability"}},
}

var overallExcellent = map[models.Language]string{
	models.LanguageRussian: "Отличный кандидат",
	models.LanguageHebrew:  "מועמד מצוין",
	models.LanguageEnglish: "Excellent candidate",
}

var overallGood = map[models.Language]string{
	models.LanguageRussian: "Хороший кандидат",
	models.LanguageHebrew:  "מועמד טוב",
	models.LanguageEnglish: "Good candidate",
}

var overallNeedsReview = map[models.Language]string{
	models.LanguageRussian: "Требует дополнительной оценки",
	models.LanguageHebrew:  "דורש הערכה נוספת",
	models.LanguageEnglish: "Requires additional assessment",
}

var recommendHire = map[models.Language]string{
	models.LanguageRussian: "Найм",
	models.LanguageHebrew:  "גיוס",
	models.LanguageEnglish: "Hire",
}

var recommendInterview = map[models.Language]string{
	models.LanguageRussian: "Доп. интервью",
	models.LanguageHebrew:  "ראיון נוסף",
	models.LanguageEnglish: "Additional interview",
}

var recommendReject = map[models.Language]string{
	models.LanguageRussian: "Не рекомендован",
	models.LanguageHebrew:  "לא מומלץ",
	models.LanguageEnglish: "Not recommended",
}

// BuildSummary maps a trait score vector onto role labels, red flags and a
// hiring recommendation. High traits (>= 7) grant roles, low ones (<= 3)
// raise flags, and the mean score picks the verdict band.
func BuildSummary(scores map[string]int, language models.Language) Summary {
	sum := Summary{TotalScore: AverageScore(scores)}

	for _, r := range roleLabels {
		if scores[r.trait] >= roleThreshold {
			sum.Roles = append(sum.Roles, localizedText(r.labels, language))
		}
	}
	for _, f := range redFlagLabels {
		if v, ok := scores[f.trait]; ok && v <= redFlagThreshold {
			sum.RedFlags = append(sum.RedFlags, localizedText(f.labels, language))
		}
	}

	switch {
	case sum.TotalScore >= 8:
		sum.Overall = localizedText(overallExcellent, language)
	case sum.TotalScore >= 6:
		sum.Overall = localizedText(overallGood, language)
	default:
		sum.Overall = localizedText(overallNeedsReview, language)
	}

	switch {
	case sum.TotalScore >= 6:
		sum.Recommendation = localizedText(recommendHire, language)
	case sum.TotalScore >= 4:
		sum.Recommendation = localizedText(recommendInterview, language)
	default:
		sum.Recommendation = localizedText(recommendReject, language)
	}
	return sum
}

// adminReport builds the recruiter dossier pushed after a completed full
// analysis: answers, speech profile, generated analysis, per-trait scores
// and the summary verdict.
func adminReport(s *models.Session, language models.Language, questions *survey.Config, answers []string, analysis string, scores map[string]int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Candidate: %s (ID: %d)\nLanguage: %s\n\nAnswers:\n", s.DisplayName, s.UserID, language)
	for i, answer := range answers {
		fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, questions.Question(language, i), answer)
	}

	b.WriteString("\n")
	b.WriteString(SpeechStyle(strings.Join(answers, " "), language))
	b.WriteString("\n\nAnalysis:\n")
	b.WriteString(analysis)

	b.WriteString("\n\nScores:\n")
	for _, trait := range SortedTraits(scores) {
		fmt.Fprintf(&b, "- %s: %d/10\n", trait, scores[trait])
	}

	sum := BuildSummary(scores, language)
	fmt.Fprintf(&b, "\nRecommendation: %s\nOverall: %s (%.1f/10)\nRoles: %s\n",
		sum.Recommendation, sum.Overall, sum.TotalScore, joinOrDash(sum.Roles))
	if len(sum.RedFlags) > 0 {
		fmt.Fprintf(&b, "Red flags: %s\n", strings.Join(sum.RedFlags, ", "))
	}
	return b.String()
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
