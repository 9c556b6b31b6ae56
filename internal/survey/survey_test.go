package survey

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mindprobe/MindProbe/internal/models"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig failed: %v", err)
	}
	return NewEngine(cfg)
}

func englishAnswer(i int) string {
	return fmt.Sprintf("I genuinely enjoy working through difficult problems in my daily life, answer %d", i)
}

func TestStart_EmitsFirstQuestion(t *testing.T) {
	e := newTestEngine(t)
	s := models.NewSession(1, "Alice")

	ev := e.Start(s)
	if ev.Kind != EventQuestion {
		t.Fatalf("expected question event, got %s", ev.Kind)
	}
	if s.QuestionIndex != 0 || s.Mode != models.ModeInSurvey {
		t.Errorf("session not positioned at question 0: index=%d mode=%s", s.QuestionIndex, s.Mode)
	}
	if len(ev.Buttons) != 0 {
		t.Errorf("first question must not offer a back button, got %v", ev.Buttons)
	}
	if !strings.Contains(ev.Text, e.cfg.Question(models.DefaultLanguage, 0)) {
		t.Errorf("event text missing question 0: %q", ev.Text)
	}
}

func TestSubmit_AdvancesExactlyOneQuestion(t *testing.T) {
	e := newTestEngine(t)
	s := models.NewSession(1, "Alice")
	e.Start(s)

	for i := 0; i < models.SurveyQuestionCount-1; i++ {
		if s.QuestionIndex != i {
			t.Fatalf("expected index %d before submit, got %d", i, s.QuestionIndex)
		}
		ev := e.Submit(s, englishAnswer(i))
		if ev.Kind != EventQuestion {
			t.Fatalf("question %d: expected question event, got %s", i, ev.Kind)
		}
		if s.QuestionIndex != i+1 {
			t.Fatalf("question %d: expected advance to %d, got %d", i, i+1, s.QuestionIndex)
		}
		if len(ev.Buttons) != 1 || ev.Buttons[0].Data != BackCallback(i) {
			t.Errorf("question %d: expected back affordance to %d, got %v", i, i, ev.Buttons)
		}
	}
}

func TestSubmit_InvalidKeepsState(t *testing.T) {
	e := newTestEngine(t)
	s := models.NewSession(1, "Alice")
	e.Start(s)
	e.Submit(s, englishAnswer(0))

	ev := e.Submit(s, "ok go")
	if ev.Kind != EventInvalid {
		t.Fatalf("expected invalid event, got %s", ev.Kind)
	}
	if s.QuestionIndex != 1 {
		t.Errorf("invalid answer must not move the index: got %d", s.QuestionIndex)
	}
	if s.Answers[1] != "" {
		t.Errorf("invalid answer must not be stored: %q", s.Answers[1])
	}
}

func TestSubmit_LanguageSticky(t *testing.T) {
	e := newTestEngine(t)
	s := models.NewSession(1, "Alice")
	e.Start(s)

	// Invalid input must not trigger detection.
	e.Submit(s, "hi")
	if s.LanguageLocked() {
		t.Fatal("language locked from an invalid answer")
	}

	ev := e.Submit(s, englishAnswer(0))
	if s.Language != models.LanguageEnglish {
		t.Fatalf("expected en locked, got %q", s.Language)
	}
	if !strings.Contains(ev.Text, e.cfg.Question(models.LanguageEnglish, 1)) {
		t.Errorf("next question not in English: %q", ev.Text)
	}

	// A later Russian answer must not flip the locked language.
	e.Submit(s, "Я считаю себя целеустремленным человеком")
	if s.Language != models.LanguageEnglish {
		t.Errorf("language must stay sticky, got %q", s.Language)
	}
}

func TestBack_OverwritesAndResumes(t *testing.T) {
	e := newTestEngine(t)
	s := models.NewSession(1, "Alice")
	e.Start(s)
	for i := 0; i < 3; i++ {
		e.Submit(s, englishAnswer(i))
	}

	ev, err := e.Back(s, 1)
	if err != nil {
		t.Fatalf("Back failed: %v", err)
	}
	if s.QuestionIndex != 1 {
		t.Fatalf("expected index 1 after back, got %d", s.QuestionIndex)
	}
	if strings.Contains(ev.Text, englishAnswer(1)) {
		t.Errorf("back prompt must not reveal the stored answer")
	}
	// The stored answer survives until a new valid submission.
	if s.Answers[1] != englishAnswer(1) {
		t.Errorf("back navigation must not erase the stored answer")
	}

	replacement := "My second answer is now completely different from before, and much better"
	ev = e.Submit(s, replacement)
	if ev.Kind != EventQuestion || s.QuestionIndex != 2 {
		t.Fatalf("expected forward transition to question 2, got kind=%s index=%d", ev.Kind, s.QuestionIndex)
	}
	if s.Answers[1] != replacement {
		t.Errorf("expected overwritten answer, got %q", s.Answers[1])
	}
}

func TestBack_RejectsForwardTargets(t *testing.T) {
	e := newTestEngine(t)
	s := models.NewSession(1, "Alice")
	e.Start(s)
	e.Submit(s, englishAnswer(0))

	if _, err := e.Back(s, 1); !errors.Is(err, models.ErrInvalidBackTarget) {
		t.Errorf("expected ErrInvalidBackTarget for current index, got %v", err)
	}
	if _, err := e.Back(s, 5); !errors.Is(err, models.ErrInvalidBackTarget) {
		t.Errorf("expected ErrInvalidBackTarget for forward target, got %v", err)
	}

	s.ResetSurvey()
	if _, err := e.Back(s, 0); !errors.Is(err, models.ErrSurveyNotActive) {
		t.Errorf("expected ErrSurveyNotActive, got %v", err)
	}
}

func TestSubmit_Completion(t *testing.T) {
	e := newTestEngine(t)
	s := models.NewSession(1, "Alice")
	e.Start(s)

	var final Event
	for i := 0; i < models.SurveyQuestionCount; i++ {
		final = e.Submit(s, englishAnswer(i))
	}
	if final.Kind != EventCompleted {
		t.Fatalf("expected completed event, got %s", final.Kind)
	}
	if len(final.Answers) != models.SurveyQuestionCount {
		t.Fatalf("expected %d answers, got %d", models.SurveyQuestionCount, len(final.Answers))
	}
	for i, a := range final.Answers {
		if a != englishAnswer(i) {
			t.Errorf("answer %d out of order: %q", i, a)
		}
	}
}

func TestSubmit_IncompleteHoleDetected(t *testing.T) {
	e := newTestEngine(t)
	s := models.NewSession(1, "Alice")
	e.Start(s)
	for i := 0; i < models.SurveyQuestionCount-1; i++ {
		e.Submit(s, englishAnswer(i))
	}
	// Force a hole in an already-answered slot before the final submission.
	s.Answers[3] = ""

	ev := e.Submit(s, englishAnswer(models.SurveyQuestionCount-1))
	if ev.Kind != EventIncomplete {
		t.Fatalf("expected incomplete event, got %s", ev.Kind)
	}
	if len(ev.Answers) != 0 {
		t.Errorf("incomplete event must not carry answers")
	}
	if s.Mode != models.ModeIdle || s.QuestionIndex != models.NoQuestion {
		t.Errorf("session must be reset after incomplete state: mode=%s index=%d", s.Mode, s.QuestionIndex)
	}
}

func TestCancel_ResetsSession(t *testing.T) {
	e := newTestEngine(t)
	s := models.NewSession(1, "Alice")
	e.Start(s)
	e.Submit(s, englishAnswer(0))

	ev := e.Cancel(s)
	if ev.Kind != EventCancelled {
		t.Fatalf("expected cancelled event, got %s", ev.Kind)
	}
	if s.Mode != models.ModeIdle || s.QuestionIndex != models.NoQuestion {
		t.Errorf("session not reset: mode=%s index=%d", s.Mode, s.QuestionIndex)
	}
	for i, a := range s.Answers {
		if a != "" {
			t.Errorf("answer %d not discarded: %q", i, a)
		}
	}
}

func TestParseBackCallback(t *testing.T) {
	for i := 0; i < models.SurveyQuestionCount; i++ {
		got, ok := ParseBackCallback(BackCallback(i))
		if !ok || got != i {
			t.Errorf("round trip failed for %d: got %d ok=%v", i, got, ok)
		}
	}
	for _, data := range []string{"", "back_", "back_x", "back_-1", "back_99", "express_analysis"} {
		if _, ok := ParseBackCallback(data); ok {
			t.Errorf("ParseBackCallback(%q) unexpectedly succeeded", data)
		}
	}
}

func TestParseConfig_Validation(t *testing.T) {
	cases := map[string]string{
		"bad yaml":       "min_words: [",
		"zero min words": "min_words: 0\nquestions:\n  ru: [\"q\"]",
		"no questions":   "min_words: 3",
		"bad language":   "min_words: 3\nquestions:\n  fr: [a, b, c, d, e, f, g]",
		"wrong count":    "min_words: 3\nquestions:\n  ru: [a, b, c]",
		"no default":     "min_words: 3\nquestions:\n  en: [a, b, c, d, e, f, g]",
	}
	for name, data := range cases {
		if _, err := ParseConfig([]byte(data)); err == nil {
			t.Errorf("%s: expected parse error", name)
		}
	}
}
