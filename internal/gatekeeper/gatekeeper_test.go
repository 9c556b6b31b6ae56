package gatekeeper

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mindprobe/MindProbe/internal/models"
)

func TestObserve_Thresholds(t *testing.T) {
	g := New(DefaultConfig())
	s := models.NewSession(1, "Alice")

	expected := map[int]Action{
		1: ActionChat,
		2: ActionChat,
		3: ActionOffer,
		4: ActionChat,
		5: ActionOffer,
		6: ActionForceExpress,
		7: ActionForceExpress,
	}
	for count := 1; count <= 7; count++ {
		action := g.Observe(s, fmt.Sprintf("сообщение %d", count))
		if action != expected[count] {
			t.Errorf("message %d: expected %s, got %s", count, expected[count], action)
		}
	}
}

func TestObserve_RingBufferBound(t *testing.T) {
	cfg := DefaultConfig()
	g := New(cfg)
	s := models.NewSession(1, "Alice")

	total := cfg.HistoryCap + 5
	for i := 0; i < total; i++ {
		g.Observe(s, fmt.Sprintf("msg-%d", i))
	}
	if len(s.History) != cfg.HistoryCap {
		t.Fatalf("expected history length %d, got %d", cfg.HistoryCap, len(s.History))
	}
	// Content equals the last H appended items, oldest evicted first.
	for i, msg := range s.History {
		want := fmt.Sprintf("msg-%d", total-cfg.HistoryCap+i)
		if msg != want {
			t.Errorf("history[%d] = %q, want %q", i, msg, want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
	bad := []Config{
		{HistoryCap: 0, ForceExpressAt: 6},
		{HistoryCap: 10, ForceExpressAt: 0},
		{HistoryCap: 10, OfferAt: []int{6}, ForceExpressAt: 6},
	}
	for i, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Errorf("config %d: expected validation error", i)
		}
	}
}

func TestOfferButtons_CoverAllChoices(t *testing.T) {
	buttons := OfferButtons(models.LanguageEnglish)
	if len(buttons) != 3 {
		t.Fatalf("expected 3 choices, got %d", len(buttons))
	}
	seen := map[string]bool{}
	for _, b := range buttons {
		seen[b.Data] = true
	}
	for _, data := range []string{CallbackExpressAnalysis, CallbackFullSurvey, CallbackContinueChat} {
		if !seen[data] {
			t.Errorf("missing choice %q", data)
		}
	}
}

func TestThinkPrompt_EmbedsMessage(t *testing.T) {
	prompt := ThinkPrompt(models.LanguageEnglish, "tell me about yourself")
	if !strings.Contains(prompt, `"tell me about yourself"`) {
		t.Errorf("prompt missing user message: %q", prompt)
	}
	// Unknown languages fall back to the default prompt.
	if ThinkPrompt("fr", "x") != ThinkPrompt(models.DefaultLanguage, "x") {
		t.Error("unknown language must fall back to default")
	}
}
