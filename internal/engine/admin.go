package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mindprobe/MindProbe/internal/analysis"
	"github.com/mindprobe/MindProbe/internal/models"
	"github.com/mindprobe/MindProbe/internal/store"
)

const candidateReportLimit = 10

// handleCandidatesCommand renders the recruiter view of stored analysis
// records. Access needs either the admin chat or the shared password as the
// command argument.
func (e *Engine) handleCandidatesCommand(ctx context.Context, s *models.Session, text string) error {
	if !e.authorized(s.UserID, text) {
		slog.Info("candidate view denied", "userID", s.UserID)
		return e.messenger.SendMessage(ctx, s.UserID, accessDeniedText(s.EffectiveLanguage()))
	}

	records, err := e.candidates.ListCandidates(store.CandidateFilter{Limit: candidateReportLimit})
	if err != nil {
		slog.Error("candidate listing failed", "error", err)
		return e.messenger.SendMessage(ctx, s.UserID, reportFailedText(s.EffectiveLanguage()))
	}
	if len(records) == 0 {
		return e.messenger.SendMessage(ctx, s.UserID, noCandidatesText(s.EffectiveLanguage()))
	}
	return e.messenger.SendMessage(ctx, s.UserID, candidateReport(records))
}

func (e *Engine) authorized(userID int64, text string) bool {
	if e.cfg.AdminChatID != 0 && userID == e.cfg.AdminChatID {
		return true
	}
	fields := strings.Fields(text)
	return e.cfg.HRPassword != "" && len(fields) > 1 && fields[1] == e.cfg.HRPassword
}

// candidateReport builds a plain-text comparison table of recent records,
// newest first as returned by the store.
func candidateReport(records []models.CandidateRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Candidates (%d):\n\n", len(records))
	for i, rec := range records {
		fmt.Fprintf(&b, "%d. %s [%s/%s] %s\n", i+1,
			rec.DisplayName, rec.AnalysisType, rec.Language,
			rec.CreatedAt.Format("2006-01-02 15:04"))
		if len(rec.Scores) == 0 {
			continue
		}
		sum := analysis.BuildSummary(rec.Scores, rec.Language)
		fmt.Fprintf(&b, "   avg %.1f | %s |", sum.TotalScore, sum.Recommendation)
		for _, trait := range analysis.SortedTraits(rec.Scores) {
			fmt.Fprintf(&b, " %s:%d", trait, rec.Scores[trait])
		}
		b.WriteString("\n")
	}
	return b.String()
}
