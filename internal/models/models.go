// Package models defines the core data structures for MindProbe.
//
// It includes the per-user session, persisted candidate records, and the
// shared enums used across packages.
package models

import (
	"errors"
	"time"
)

// Language identifies one of the supported response locales.
type Language string

const (
	// LanguageRussian is the default locale.
	LanguageRussian Language = "ru"
	// LanguageHebrew is selected when Hebrew script is detected.
	LanguageHebrew Language = "he"
	// LanguageEnglish is selected when English marker words are detected.
	LanguageEnglish Language = "en"
)

// DefaultLanguage is used before any valid input has been classified.
const DefaultLanguage = LanguageRussian

// IsValidLanguage checks if the given language is supported.
func IsValidLanguage(l Language) bool {
	switch l {
	case LanguageRussian, LanguageHebrew, LanguageEnglish:
		return true
	default:
		return false
	}
}

// AnalysisType distinguishes the two analysis products.
type AnalysisType string

const (
	// AnalysisExpress is derived from free-form conversation history.
	AnalysisExpress AnalysisType = "express"
	// AnalysisFull is derived from the structured survey answers.
	AnalysisFull AnalysisType = "full"
)

// SessionMode tracks what the bot currently expects from a user.
type SessionMode string

const (
	// ModeIdle means free conversation; the gatekeeper policy applies.
	ModeIdle SessionMode = "idle"
	// ModeInSurvey means the survey state machine owns incoming text.
	ModeInSurvey SessionMode = "in_survey"
	// ModeAwaitingExpressData means the user asked for an express analysis
	// before enough conversation was collected; the next message triggers it.
	ModeAwaitingExpressData SessionMode = "awaiting_express_data"
)

// SurveyQuestionCount is the fixed number of survey questions.
const SurveyQuestionCount = 7

// NoQuestion is the QuestionIndex value when no survey is active.
const NoQuestion = -1

// Error variables shared across packages.
var (
	ErrIncompleteAnswers = errors.New("survey completed with missing answers")
	ErrSurveyNotActive   = errors.New("no survey in progress")
	ErrInvalidBackTarget = errors.New("back target must precede the current question")
)

// Session holds the in-memory conversation state for a single user.
type Session struct {
	UserID        int64        `json:"user_id"`
	DisplayName   string       `json:"display_name"`
	Language      Language     `json:"language,omitempty"` // empty until locked from a valid answer
	Mode          SessionMode  `json:"mode"`
	QuestionIndex int          `json:"question_index"` // NoQuestion when idle
	Answers       []string     `json:"answers"`        // fixed length SurveyQuestionCount; "" marks an unanswered slot
	History       []string     `json:"history"`        // bounded FIFO of free-text messages
	UpdatedAt     time.Time    `json:"updated_at"`
}

// NewSession creates an idle session for the given user.
func NewSession(userID int64, displayName string) *Session {
	return &Session{
		UserID:        userID,
		DisplayName:   displayName,
		Mode:          ModeIdle,
		QuestionIndex: NoQuestion,
		Answers:       make([]string, SurveyQuestionCount),
		UpdatedAt:     time.Now(),
	}
}

// EffectiveLanguage returns the locked language, or the default before lock-in.
func (s *Session) EffectiveLanguage() Language {
	if s.Language == "" {
		return DefaultLanguage
	}
	return s.Language
}

// LanguageLocked reports whether a language has been stuck to the session.
func (s *Session) LanguageLocked() bool {
	return s.Language != ""
}

// AppendHistory adds a free-text message, evicting oldest-first beyond capacity.
func (s *Session) AppendHistory(text string, capacity int) {
	s.History = append(s.History, text)
	if capacity > 0 && len(s.History) > capacity {
		s.History = s.History[len(s.History)-capacity:]
	}
	s.UpdatedAt = time.Now()
}

// BeginSurvey clears prior answers and positions the session at question 0.
func (s *Session) BeginSurvey() {
	s.Answers = make([]string, SurveyQuestionCount)
	s.QuestionIndex = 0
	s.Mode = ModeInSurvey
	s.UpdatedAt = time.Now()
}

// ResetSurvey returns the session to idle and discards in-progress answers.
func (s *Session) ResetSurvey() {
	s.Answers = make([]string, SurveyQuestionCount)
	s.QuestionIndex = NoQuestion
	s.Mode = ModeIdle
	s.UpdatedAt = time.Now()
}

// AnswersComplete reports whether every answer slot has been filled.
func (s *Session) AnswersComplete() bool {
	if len(s.Answers) != SurveyQuestionCount {
		return false
	}
	for _, a := range s.Answers {
		if a == "" {
			return false
		}
	}
	return true
}

// Button is a transport-agnostic inline choice offered with a message.
type Button struct {
	Label string `json:"label"` // text shown to the user
	Data  string `json:"data"`  // callback payload returned on tap
}

// CandidateRecord is the persisted outcome of a completed analysis.
type CandidateRecord struct {
	ID           string         `json:"id"`
	UserID       int64          `json:"user_id"`
	DisplayName  string         `json:"display_name"`
	Language     Language       `json:"language"`
	AnalysisType AnalysisType   `json:"analysis_type"`
	Payload      string         `json:"payload"` // serialized answers/conversation plus generated text
	Scores       map[string]int `json:"scores"`  // named traits, each in [0,10]
	CreatedAt    time.Time      `json:"created_at"`
}
