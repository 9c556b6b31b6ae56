package lang

import (
	"testing"

	"github.com/mindprobe/MindProbe/internal/models"
)

func TestDetect_Cyrillic(t *testing.T) {
	if got := Detect("Привет, как дела?"); got != models.LanguageRussian {
		t.Errorf("expected ru, got %s", got)
	}
}

func TestDetect_Hebrew(t *testing.T) {
	if got := Detect("שלום, מה קורה"); got != models.LanguageHebrew {
		t.Errorf("expected he, got %s", got)
	}
}

func TestDetect_EnglishMarkers(t *testing.T) {
	if got := Detect("Hello there, how are you"); got != models.LanguageEnglish {
		t.Errorf("expected en, got %s", got)
	}
}

func TestDetect_DefaultsToRussian(t *testing.T) {
	cases := []string{"", "   ", "xyzzy plugh", "12345"}
	for _, text := range cases {
		if got := Detect(text); got != models.LanguageRussian {
			t.Errorf("Detect(%q): expected default ru, got %s", text, got)
		}
	}
}

func TestDetect_CommandsShortCircuit(t *testing.T) {
	// Commands never go through script detection, even with latin letters.
	for _, cmd := range []string{"/start", "/help", "/cancel", "/start hello"} {
		if got := Detect(cmd); got != models.DefaultLanguage {
			t.Errorf("Detect(%q): expected default, got %s", cmd, got)
		}
	}
}

func TestDetect_HebrewWinsOverLatin(t *testing.T) {
	if got := Detect("hello שלום"); got != models.LanguageHebrew {
		t.Errorf("expected he for mixed Hebrew text, got %s", got)
	}
}

func TestDetect_Deterministic(t *testing.T) {
	const text = "Я считаю себя целеустремленным человеком"
	first := Detect(text)
	for i := 0; i < 10; i++ {
		if got := Detect(text); got != first {
			t.Fatalf("Detect is not deterministic: %s != %s", got, first)
		}
	}
}
