package session

import (
	"testing"
	"time"

	"github.com/mindprobe/MindProbe/internal/models"
)

func TestCacheStore_RoundTrip(t *testing.T) {
	store := NewCacheStore(time.Minute)

	if _, ok := store.Get(42); ok {
		t.Fatal("expected miss for unknown user")
	}

	s := models.NewSession(42, "Alice")
	s.Language = models.LanguageEnglish
	store.Put(s)

	got, ok := store.Get(42)
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if got.UserID != 42 || got.Language != models.LanguageEnglish {
		t.Errorf("unexpected session: %+v", got)
	}

	store.Delete(42)
	if _, ok := store.Get(42); ok {
		t.Error("expected miss after Delete")
	}
}

func TestCacheStore_SharedPointer(t *testing.T) {
	// Mutations through the returned pointer are visible without a Put,
	// matching the one-handler-per-user concurrency model.
	store := NewCacheStore(time.Minute)
	s := models.NewSession(7, "Bob")
	store.Put(s)

	got, _ := store.Get(7)
	got.BeginSurvey()

	again, _ := store.Get(7)
	if again.Mode != models.ModeInSurvey {
		t.Errorf("expected shared session state, got mode %s", again.Mode)
	}
}

func TestGetOrCreate(t *testing.T) {
	store := NewCacheStore(time.Minute)

	s := GetOrCreate(store, 1, "Alice")
	if s.Mode != models.ModeIdle || s.QuestionIndex != models.NoQuestion {
		t.Errorf("new session not idle: %+v", s)
	}

	s.AppendHistory("привет", 10)
	again := GetOrCreate(store, 1, "Alice")
	if len(again.History) != 1 {
		t.Error("GetOrCreate must return the existing session")
	}
}
