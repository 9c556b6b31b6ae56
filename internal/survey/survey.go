// Package survey drives the ordered 7-question personality survey: question
// emission, answer validation, backward navigation, and hand-off to analysis
// on completion.
package survey

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mindprobe/MindProbe/internal/lang"
	"github.com/mindprobe/MindProbe/internal/models"
	"github.com/mindprobe/MindProbe/internal/validate"
)

// EventKind tags what the state machine wants to happen next.
type EventKind string

const (
	// EventQuestion asks (or re-asks) a question.
	EventQuestion EventKind = "question"
	// EventInvalid re-asks the current question with a validation error.
	EventInvalid EventKind = "invalid"
	// EventCompleted signals that all answers were collected; the caller
	// must run the full analysis with Event.Answers.
	EventCompleted EventKind = "completed"
	// EventIncomplete signals the defensive completion check failed; the
	// session was reset and no analysis must run.
	EventIncomplete EventKind = "incomplete"
	// EventCancelled signals the survey was cancelled.
	EventCancelled EventKind = "cancelled"
)

// Event is the transport-agnostic result of a state transition.
type Event struct {
	Kind    EventKind
	Text    string
	Buttons []models.Button
	Answers []string // set only for EventCompleted
}

// backCallbackPrefix prefixes the callback payload of the back affordance.
const backCallbackPrefix = "back_"

// BackCallback builds the callback payload targeting question i.
func BackCallback(i int) string {
	return backCallbackPrefix + strconv.Itoa(i)
}

// ParseBackCallback extracts the target question index from a callback
// payload, returning false when the payload is not a back action.
func ParseBackCallback(data string) (int, bool) {
	rest, ok := strings.CutPrefix(data, backCallbackPrefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 || i >= models.SurveyQuestionCount {
		return 0, false
	}
	return i, true
}

// Engine is the survey state machine. It mutates the passed session and
// returns the message to deliver; it performs no I/O itself.
type Engine struct {
	cfg *Config
}

// NewEngine creates a survey engine over a validated question catalog.
func NewEngine(cfg *Config) *Engine {
	return &Engine{cfg: cfg}
}

// Start resets survey state and emits question 0 in the session's current
// (or default) language.
func (e *Engine) Start(s *models.Session) Event {
	s.BeginSurvey()
	language := s.EffectiveLanguage()
	slog.Info("survey started", "userID", s.UserID, "language", language)
	text := localized(surveyIntro, language) + "\n\n" + questionText(e.cfg, language, 0)
	return Event{Kind: EventQuestion, Text: text}
}

// Submit processes an answer at the current question. Invalid answers leave
// the state unchanged and re-emit the question with a reason-specific error.
// A valid answer at the last question completes the survey.
func (e *Engine) Submit(s *models.Session, answer string) Event {
	if s.Mode != models.ModeInSurvey || s.QuestionIndex == models.NoQuestion {
		slog.Error("survey Submit without active survey", "userID", s.UserID, "mode", s.Mode)
		return e.incomplete(s)
	}
	i := s.QuestionIndex
	language := s.EffectiveLanguage()

	res := validate.Validate(answer, e.cfg.MinWords)
	if !res.Valid {
		slog.Debug("survey answer rejected", "userID", s.UserID, "question", i, "reason", res.Reason)
		return Event{
			Kind:    EventInvalid,
			Text:    validationError(language, res.Reason),
			Buttons: e.backButtons(language, i),
		}
	}

	// Language becomes sticky on the first valid answer only.
	if !s.LanguageLocked() {
		s.Language = lang.Detect(answer)
		language = s.Language
		slog.Info("session language locked", "userID", s.UserID, "language", language)
	}

	s.Answers[i] = strings.TrimSpace(answer)

	if i < models.SurveyQuestionCount-1 {
		s.QuestionIndex = i + 1
		return Event{
			Kind:    EventQuestion,
			Text:    questionText(e.cfg, language, i+1),
			Buttons: e.backButtons(language, i+1),
		}
	}

	if !s.AnswersComplete() {
		slog.Error("survey completed with missing answers", "userID", s.UserID, "error", models.ErrIncompleteAnswers)
		return e.incomplete(s)
	}

	answers := make([]string, len(s.Answers))
	copy(answers, s.Answers)
	slog.Info("survey completed", "userID", s.UserID, "language", language)
	return Event{
		Kind:    EventCompleted,
		Text:    localized(processingText, language),
		Answers: answers,
	}
}

// Back rewinds to an earlier question. The stored answer at the target is
// not shown; it is overwritten only when a new valid answer is submitted.
func (e *Engine) Back(s *models.Session, target int) (Event, error) {
	if s.Mode != models.ModeInSurvey || s.QuestionIndex == models.NoQuestion {
		return Event{}, models.ErrSurveyNotActive
	}
	if target < 0 || target >= s.QuestionIndex {
		return Event{}, fmt.Errorf("%w: target %d, current %d", models.ErrInvalidBackTarget, target, s.QuestionIndex)
	}
	s.QuestionIndex = target
	language := s.EffectiveLanguage()
	slog.Debug("survey back navigation", "userID", s.UserID, "target", target)
	text := fmt.Sprintf(localized(backPrompt, language), target+1) + "\n\n" + e.cfg.Question(language, target)
	return Event{
		Kind:    EventQuestion,
		Text:    text,
		Buttons: e.backButtons(language, target),
	}, nil
}

// Cancel discards in-progress answers and returns the session to idle.
func (e *Engine) Cancel(s *models.Session) Event {
	language := s.EffectiveLanguage()
	s.ResetSurvey()
	slog.Info("survey cancelled", "userID", s.UserID)
	return Event{Kind: EventCancelled, Text: localized(cancelText, language)}
}

// incomplete handles the defensively-checked unreachable state: completion
// with a hole in the answers. The session is reset and no analysis runs.
func (e *Engine) incomplete(s *models.Session) Event {
	language := s.EffectiveLanguage()
	s.ResetSurvey()
	return Event{Kind: EventIncomplete, Text: localized(incompleteText, language)}
}

// backButtons returns the back affordance for question i, or nil at the
// first question.
func (e *Engine) backButtons(language models.Language, i int) []models.Button {
	if i == 0 {
		return nil
	}
	return []models.Button{{
		Label: localized(backButtonLabel, language),
		Data:  BackCallback(i - 1),
	}}
}
