package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mindprobe/MindProbe/internal/genai"
	"github.com/mindprobe/MindProbe/internal/models"
	"github.com/mindprobe/MindProbe/internal/store"
	"github.com/mindprobe/MindProbe/internal/survey"
)

// fakeGenerator implements genai.Generator for testing.
type fakeGenerator struct {
	out    string
	err    error
	prompt string
	opts   genai.Options
	calls  int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, opts genai.Options) (string, error) {
	f.calls++
	f.prompt = prompt
	f.opts = opts
	return f.out, f.err
}

// fakeSender records delivered messages with their destination chats.
type fakeSender struct {
	messages []string
	chats    []int64
}

func (f *fakeSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	f.messages = append(f.messages, text)
	f.chats = append(f.chats, chatID)
	return nil
}

func (f *fakeSender) toChat(chatID int64) []string {
	var out []string
	for i, id := range f.chats {
		if id == chatID {
			out = append(out, f.messages[i])
		}
	}
	return out
}

func questionCatalog(t *testing.T) *survey.Config {
	t.Helper()
	cfg, err := survey.DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig failed: %v", err)
	}
	return cfg
}

func fullSession(language models.Language) *models.Session {
	s := models.NewSession(1, "Alice")
	s.Language = language
	s.Mode = models.ModeInSurvey
	s.QuestionIndex = models.SurveyQuestionCount - 1
	for i := range s.Answers {
		s.Answers[i] = fmt.Sprintf("I genuinely prefer to lead and plan my work carefully, answer %d", i)
	}
	return s
}

func TestRun_FullSuccess(t *testing.T) {
	gen := &fakeGenerator{out: "Deep analysis result"}
	candidates := store.NewInMemoryStore()
	d := NewDispatcher(gen, candidates, questionCatalog(t), DefaultConfig())
	sender := &fakeSender{}
	s := fullSession(models.LanguageEnglish)
	answers := append([]string(nil), s.Answers...)

	if err := d.Run(context.Background(), sender, s, models.AnalysisFull); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Prompt embeds all 7 Q/A pairs in order.
	lastIndex := -1
	for i, answer := range answers {
		idx := strings.Index(gen.prompt, answer)
		if idx < 0 {
			t.Fatalf("prompt missing answer %d", i)
		}
		if idx < lastIndex {
			t.Errorf("answer %d out of order in prompt", i)
		}
		lastIndex = idx
	}
	if gen.opts.MaxTokens != 1500 || gen.opts.Timeout != 90*time.Second {
		t.Errorf("full budget not applied: %+v", gen.opts)
	}

	records, _ := candidates.ListCandidates(store.CandidateFilter{})
	if len(records) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(records))
	}
	rec := records[0]
	if rec.AnalysisType != models.AnalysisFull || rec.Language != models.LanguageEnglish {
		t.Errorf("unexpected record: %+v", rec)
	}
	if !strings.Contains(rec.Payload, "Deep analysis result") {
		t.Errorf("payload missing generated text: %s", rec.Payload)
	}
	if rec.Scores[TraitLeadership] <= baselineScore {
		t.Errorf("expected leadership nudge from answers, got %d", rec.Scores[TraitLeadership])
	}

	if s.Mode != models.ModeIdle || s.QuestionIndex != models.NoQuestion {
		t.Errorf("session not reset after analysis: mode=%s index=%d", s.Mode, s.QuestionIndex)
	}
	if len(sender.messages) == 0 || !strings.Contains(sender.messages[0], "Deep analysis result") {
		t.Errorf("analysis text not delivered: %v", sender.messages)
	}
}

func TestRun_ExpressUsesHistory(t *testing.T) {
	gen := &fakeGenerator{out: "Express profile"}
	candidates := store.NewInMemoryStore()
	d := NewDispatcher(gen, candidates, questionCatalog(t), DefaultConfig())
	sender := &fakeSender{}

	s := models.NewSession(2, "Bob")
	s.Language = models.LanguageRussian
	for i := 0; i < 4; i++ {
		s.AppendHistory(fmt.Sprintf("сообщение номер %d", i), 10)
	}

	if err := d.Run(context.Background(), sender, s, models.AnalysisExpress); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for i := 0; i < 4; i++ {
		if !strings.Contains(gen.prompt, fmt.Sprintf("сообщение номер %d", i)) {
			t.Errorf("prompt missing conversation turn %d", i)
		}
	}
	if gen.opts.MaxTokens != 400 || gen.opts.Timeout != 30*time.Second {
		t.Errorf("express budget not applied: %+v", gen.opts)
	}
	records, _ := candidates.ListCandidates(store.CandidateFilter{})
	if len(records) != 1 || records[0].AnalysisType != models.AnalysisExpress {
		t.Fatalf("expected one express record, got %+v", records)
	}
	if len(s.History) != 0 {
		t.Errorf("history must be cleared after analysis, got %d entries", len(s.History))
	}
}

func TestRun_TimeoutNoRecordSessionCleared(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("%w: deadline", genai.ErrTimeout)}
	candidates := store.NewInMemoryStore()
	d := NewDispatcher(gen, candidates, questionCatalog(t), DefaultConfig())
	sender := &fakeSender{}
	s := fullSession(models.LanguageEnglish)

	err := d.Run(context.Background(), sender, s, models.AnalysisFull)
	if !errors.Is(err, genai.ErrTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}

	if records, _ := candidates.ListCandidates(store.CandidateFilter{}); len(records) != 0 {
		t.Errorf("no record must be persisted on failure, got %d", len(records))
	}
	if s.Mode != models.ModeIdle || s.QuestionIndex != models.NoQuestion {
		t.Errorf("session must be cleared even on failure: mode=%s index=%d", s.Mode, s.QuestionIndex)
	}
	if len(sender.messages) != 1 || !strings.Contains(sender.messages[0], "took too long") {
		t.Errorf("expected timeout-specific apology, got %v", sender.messages)
	}
}

func TestRun_QuotaAndGenericApologiesDiffer(t *testing.T) {
	catalog := questionCatalog(t)
	run := func(genErr error) string {
		d := NewDispatcher(&fakeGenerator{err: genErr}, store.NewInMemoryStore(), catalog, DefaultConfig())
		sender := &fakeSender{}
		d.Run(context.Background(), sender, fullSession(models.LanguageEnglish), models.AnalysisFull)
		if len(sender.messages) != 1 {
			t.Fatalf("expected one apology, got %v", sender.messages)
		}
		return sender.messages[0]
	}

	quota := run(fmt.Errorf("%w: 429", genai.ErrQuotaExceeded))
	generic := run(errors.New("boom"))
	timeout := run(fmt.Errorf("%w: deadline", genai.ErrTimeout))
	if quota == generic || quota == timeout || generic == timeout {
		t.Errorf("apologies must differ per failure kind: %q / %q / %q", quota, generic, timeout)
	}
	for _, msg := range []string{quota, generic, timeout} {
		if strings.Contains(msg, "boom") || strings.Contains(msg, "429") {
			t.Errorf("raw error text must never reach the user: %q", msg)
		}
	}
}

func TestRun_IncompleteAnswersNeverGenerates(t *testing.T) {
	gen := &fakeGenerator{out: "should not run"}
	candidates := store.NewInMemoryStore()
	d := NewDispatcher(gen, candidates, questionCatalog(t), DefaultConfig())
	s := fullSession(models.LanguageEnglish)
	s.Answers[4] = ""

	err := d.Run(context.Background(), &fakeSender{}, s, models.AnalysisFull)
	if !errors.Is(err, models.ErrIncompleteAnswers) {
		t.Fatalf("expected ErrIncompleteAnswers, got %v", err)
	}
	if gen.calls != 0 {
		t.Error("generator must not be called with a hole in the answers")
	}
	if records, _ := candidates.ListCandidates(store.CandidateFilter{}); len(records) != 0 {
		t.Error("no record must be persisted")
	}
}

func TestRun_FullPushesAdminReport(t *testing.T) {
	gen := &fakeGenerator{out: "Deep analysis result"}
	cfg := DefaultConfig()
	cfg.AdminChatID = 99
	d := NewDispatcher(gen, store.NewInMemoryStore(), questionCatalog(t), cfg)
	sender := &fakeSender{}
	s := fullSession(models.LanguageEnglish)
	answers := append([]string(nil), s.Answers...)

	if err := d.Run(context.Background(), sender, s, models.AnalysisFull); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	adminMsgs := sender.toChat(99)
	if len(adminMsgs) == 0 {
		t.Fatal("expected the admin chat to receive the candidate report")
	}
	report := strings.Join(adminMsgs, "\n")
	for _, want := range []string{"Alice", answers[0], "Deep analysis result", "Recommendation:", TraitLeadership} {
		if !strings.Contains(report, want) {
			t.Errorf("admin report missing %q", want)
		}
	}
	for _, msg := range sender.toChat(s.UserID) {
		if strings.Contains(msg, answers[0]) {
			t.Error("answers must not be echoed back to the candidate")
		}
	}
}

func TestRun_AdminReportSkippedForExpressAndSelf(t *testing.T) {
	catalog := questionCatalog(t)
	cfg := DefaultConfig()
	cfg.AdminChatID = 99

	d := NewDispatcher(&fakeGenerator{out: "Express profile"}, store.NewInMemoryStore(), catalog, cfg)
	sender := &fakeSender{}
	s := models.NewSession(2, "Bob")
	s.AppendHistory("рассказываю о работе", 10)
	if err := d.Run(context.Background(), sender, s, models.AnalysisExpress); err != nil {
		t.Fatalf("express Run failed: %v", err)
	}
	if msgs := sender.toChat(99); len(msgs) != 0 {
		t.Errorf("express analyses must not page the admin, got %v", msgs)
	}

	selfCfg := DefaultConfig()
	selfCfg.AdminChatID = 1 // fullSession user id
	d = NewDispatcher(&fakeGenerator{out: "Deep analysis result"}, store.NewInMemoryStore(), catalog, selfCfg)
	sender = &fakeSender{}
	if err := d.Run(context.Background(), sender, fullSession(models.LanguageEnglish), models.AnalysisFull); err != nil {
		t.Fatalf("full Run failed: %v", err)
	}
	for _, msg := range sender.messages {
		if strings.Contains(msg, "Recommendation:") {
			t.Error("the admin completing the survey must not receive a duplicate report")
		}
	}
}

func TestRun_LongAnalysisChunkedWithPartHeaders(t *testing.T) {
	long := strings.Repeat("insight line\n", 800) // well past one chunk
	gen := &fakeGenerator{out: long}
	cfg := DefaultConfig()
	d := NewDispatcher(gen, store.NewInMemoryStore(), questionCatalog(t), cfg)
	sender := &fakeSender{}

	if err := d.Run(context.Background(), sender, fullSession(models.LanguageEnglish), models.AnalysisFull); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// Last message is the completion notice; the rest are analysis parts.
	parts := sender.messages[:len(sender.messages)-1]
	if len(parts) < 2 {
		t.Fatalf("expected chunked delivery, got %d parts", len(parts))
	}
	if strings.Contains(parts[0], "part 2") {
		t.Error("first segment must not carry a continuation header")
	}
	for i, part := range parts[1:] {
		if !strings.Contains(part, fmt.Sprintf("part %d", i+2)) {
			t.Errorf("segment %d missing continuation header", i+2)
		}
	}
}
