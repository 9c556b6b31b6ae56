// Package analysis assembles generation prompts from collected answers or
// conversation history, calls the text-generation service, and formats the
// result for delivery.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mindprobe/MindProbe/internal/genai"
	"github.com/mindprobe/MindProbe/internal/models"
	"github.com/mindprobe/MindProbe/internal/store"
	"github.com/mindprobe/MindProbe/internal/survey"
)

// Sender delivers formatted segments to a user. Implemented by the chat
// transport.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Budget bounds one generation mode.
type Budget struct {
	MaxTokens   int64
	Temperature float64
	Timeout     time.Duration
}

// Config holds the per-mode generation budgets and the delivery chunk limit.
type Config struct {
	Express    Budget
	Full       Budget
	ChunkLimit int
	// AdminChatID receives the recruiter dossier after every completed full
	// analysis. Zero disables the push.
	AdminChatID int64
}

// DefaultConfig returns the production budgets: a small fast express pass
// and a larger full pass.
func DefaultConfig() Config {
	return Config{
		Express:    Budget{MaxTokens: 400, Temperature: 0.7, Timeout: 30 * time.Second},
		Full:       Budget{MaxTokens: 1500, Temperature: 0.7, Timeout: 90 * time.Second},
		ChunkLimit: DefaultChunkLimit,
	}
}

// payload is the serialized analysis blob persisted with a record.
type payload struct {
	Answers      []string `json:"answers,omitempty"`
	Conversation []string `json:"conversation,omitempty"`
	Analysis     string   `json:"analysis"`
}

// Dispatcher runs analyses end to end: prompt assembly, generation,
// chunked delivery, scoring and persistence.
type Dispatcher struct {
	gen        genai.Generator
	candidates store.CandidateStore
	questions  *survey.Config
	cfg        Config
}

// NewDispatcher creates a dispatcher with its collaborators.
func NewDispatcher(gen genai.Generator, candidates store.CandidateStore, questions *survey.Config, cfg Config) *Dispatcher {
	return &Dispatcher{gen: gen, candidates: candidates, questions: questions, cfg: cfg}
}

// Run performs one analysis for the session. Full mode requires a complete
// answer set; express mode consumes the conversation history. The session's
// survey fields and history are cleared regardless of outcome, and a
// candidate record is persisted only on success. All generation failures
// are caught here and surface to the user as a localized apology.
func (d *Dispatcher) Run(ctx context.Context, sender Sender, s *models.Session, mode models.AnalysisType) error {
	language := s.EffectiveLanguage()
	defer func() {
		s.ResetSurvey()
		s.History = nil
	}()

	var prompt string
	var input []string
	var budget Budget
	switch mode {
	case models.AnalysisFull:
		if !s.AnswersComplete() {
			slog.Error("analysis dispatched with incomplete answers", "userID", s.UserID)
			return models.ErrIncompleteAnswers
		}
		input = append([]string(nil), s.Answers...)
		prompt = BuildFullPrompt(d.questions, language, input)
		budget = d.cfg.Full
	case models.AnalysisExpress:
		input = append([]string(nil), s.History...)
		prompt = BuildExpressPrompt(language, input)
		budget = d.cfg.Express
	default:
		return fmt.Errorf("unknown analysis type %q", mode)
	}

	slog.Info("analysis started", "userID", s.UserID, "mode", mode, "language", language)
	out, err := d.gen.Generate(ctx, prompt, genai.Options{
		MaxTokens:   budget.MaxTokens,
		Temperature: &budget.Temperature,
		Timeout:     budget.Timeout,
	})
	if err != nil {
		d.sendApology(ctx, sender, s.UserID, language, err)
		return fmt.Errorf("analysis generation failed for %d: %w", s.UserID, err)
	}

	if err := d.deliver(ctx, sender, s.UserID, language, mode, out); err != nil {
		return err
	}

	scores := ComputeScores(strings.Join(input, " "))
	if err := d.persist(s, language, mode, input, out, scores); err != nil {
		// The user already received the analysis; log and report upstream.
		slog.Error("failed to persist candidate record", "error", err, "userID", s.UserID)
		return err
	}

	if mode == models.AnalysisFull && d.cfg.AdminChatID != 0 && s.UserID != d.cfg.AdminChatID {
		d.notifyAdmin(ctx, sender, s, language, input, out, scores)
	}
	slog.Info("analysis completed", "userID", s.UserID, "mode", mode)
	return nil
}

// notifyAdmin pushes the candidate dossier to the admin chat, chunked like
// user delivery. Delivery failures are logged, never surfaced to the user.
func (d *Dispatcher) notifyAdmin(ctx context.Context, sender Sender, s *models.Session, language models.Language, answers []string, out string, scores map[string]int) {
	report := adminReport(s, language, d.questions, answers, out, scores)
	for i, part := range SplitMessage(report, d.cfg.ChunkLimit) {
		if i > 0 {
			part = partHeaderText(language, i+1) + part
		}
		if err := sender.SendMessage(ctx, d.cfg.AdminChatID, part); err != nil {
			slog.Error("failed to deliver admin report", "error", err, "adminChatID", d.cfg.AdminChatID)
			return
		}
	}
	slog.Info("admin report delivered", "userID", s.UserID, "adminChatID", d.cfg.AdminChatID)
}

// sendApology maps a classified generation failure to its localized
// user-facing message.
func (d *Dispatcher) sendApology(ctx context.Context, sender Sender, chatID int64, language models.Language, genErr error) {
	var text string
	switch {
	case errors.Is(genErr, genai.ErrTimeout):
		text = apologyText(timeoutApology, language)
	case errors.Is(genErr, genai.ErrQuotaExceeded):
		text = apologyText(quotaApology, language)
	default:
		text = apologyText(genericApology, language)
	}
	if err := sender.SendMessage(ctx, chatID, text); err != nil {
		slog.Error("failed to deliver apology", "error", err, "chatID", chatID)
	}
}

// deliver chunks the generated text and sends the segments sequentially,
// marking segments after the first as continuations.
func (d *Dispatcher) deliver(ctx context.Context, sender Sender, chatID int64, language models.Language, mode models.AnalysisType, text string) error {
	parts := SplitMessage(text, d.cfg.ChunkLimit)
	for i, part := range parts {
		if i > 0 {
			part = partHeaderText(language, i+1) + part
		}
		if err := sender.SendMessage(ctx, chatID, part); err != nil {
			return fmt.Errorf("failed to deliver analysis segment %d: %w", i+1, err)
		}
	}
	if mode == models.AnalysisFull {
		if err := sender.SendMessage(ctx, chatID, apologyText(fullDoneText, language)); err != nil {
			slog.Error("failed to deliver completion message", "error", err, "chatID", chatID)
		}
	}
	return nil
}

// persist stores the candidate record with the derived score vector.
func (d *Dispatcher) persist(s *models.Session, language models.Language, mode models.AnalysisType, input []string, out string, scores map[string]int) error {
	p := payload{Analysis: out}
	if mode == models.AnalysisFull {
		p.Answers = input
	} else {
		p.Conversation = input
	}
	blob, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode analysis payload: %w", err)
	}

	return d.candidates.SaveCandidate(models.CandidateRecord{
		UserID:       s.UserID,
		DisplayName:  s.DisplayName,
		Language:     language,
		AnalysisType: mode,
		Payload:      string(blob),
		Scores:       scores,
	})
}
