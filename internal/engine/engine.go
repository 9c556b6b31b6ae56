// Package engine routes inbound chat events to the survey state machine,
// the conversational gatekeeper, or the analysis dispatcher. It is
// transport-agnostic: the chat service is injected as a Messenger.
package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mindprobe/MindProbe/internal/analysis"
	"github.com/mindprobe/MindProbe/internal/gatekeeper"
	"github.com/mindprobe/MindProbe/internal/genai"
	"github.com/mindprobe/MindProbe/internal/lang"
	"github.com/mindprobe/MindProbe/internal/models"
	"github.com/mindprobe/MindProbe/internal/session"
	"github.com/mindprobe/MindProbe/internal/store"
	"github.com/mindprobe/MindProbe/internal/survey"
)

// Messenger delivers messages and simple button choices to a user.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendMessageWithButtons(ctx context.Context, chatID int64, text string, buttons []models.Button) error
}

// Update is one inbound event from the chat transport: either free text or
// a button callback.
type Update struct {
	UserID      int64
	DisplayName string
	Text        string
	Callback    string
}

// Config holds the engine's policy knobs.
type Config struct {
	// AdminChatID may use the candidate view without a password. Zero
	// disables the shortcut.
	AdminChatID int64
	// HRPassword gates the candidate view for everyone else.
	HRPassword string
	// MinExpressMessages is the minimum history needed before an express
	// analysis runs; below it the user is asked for more material first.
	MinExpressMessages int
	// ChatReply bounds the short free-chat generation.
	ChatReply genai.Options
}

// Engine wires the core components behind one HandleUpdate entry point.
type Engine struct {
	cfg        Config
	messenger  Messenger
	sessions   session.Store
	surveys    *survey.Engine
	gate       *gatekeeper.Gatekeeper
	dispatcher *analysis.Dispatcher
	gen        genai.Generator
	candidates store.CandidateStore
}

// New creates an engine with its collaborators.
func New(cfg Config, messenger Messenger, sessions session.Store, surveys *survey.Engine,
	gate *gatekeeper.Gatekeeper, dispatcher *analysis.Dispatcher, gen genai.Generator,
	candidates store.CandidateStore) *Engine {
	if cfg.MinExpressMessages <= 0 {
		cfg.MinExpressMessages = 2
	}
	return &Engine{
		cfg:        cfg,
		messenger:  messenger,
		sessions:   sessions,
		surveys:    surveys,
		gate:       gate,
		dispatcher: dispatcher,
		gen:        gen,
		candidates: candidates,
	}
}

// HandleUpdate processes one inbound event. Errors are handled internally
// where a user-facing fallback exists; the returned error is for logging.
func (e *Engine) HandleUpdate(ctx context.Context, upd Update) error {
	if upd.Callback != "" {
		return e.handleCallback(ctx, upd)
	}
	return e.handleMessage(ctx, upd)
}

func (e *Engine) handleMessage(ctx context.Context, upd Update) error {
	s := session.GetOrCreate(e.sessions, upd.UserID, upd.DisplayName)
	text := strings.TrimSpace(upd.Text)

	if strings.HasPrefix(text, "/") {
		return e.handleCommand(ctx, s, text)
	}

	if s.Mode == models.ModeInSurvey {
		return e.handleSurveyAnswer(ctx, s, text)
	}
	return e.handleFreeChat(ctx, s, text)
}

func (e *Engine) handleCommand(ctx context.Context, s *models.Session, text string) error {
	command := strings.Fields(text)[0]
	switch command {
	case "/start":
		// A fresh start discards everything known about the user.
		e.sessions.Delete(s.UserID)
		fresh := session.GetOrCreate(e.sessions, s.UserID, s.DisplayName)
		slog.Info("session restarted", "userID", fresh.UserID)
		language := fresh.EffectiveLanguage()
		return e.messenger.SendMessageWithButtons(ctx, fresh.UserID,
			greetingText(language), gatekeeper.OfferButtons(language))
	case "/help":
		return e.messenger.SendMessage(ctx, s.UserID, helpText(s.EffectiveLanguage()))
	case "/cancel":
		ev := e.surveys.Cancel(s)
		return e.messenger.SendMessage(ctx, s.UserID, ev.Text)
	case "/candidates":
		return e.handleCandidatesCommand(ctx, s, text)
	default:
		slog.Debug("unknown command", "userID", s.UserID, "command", command)
		return e.messenger.SendMessage(ctx, s.UserID, helpText(s.EffectiveLanguage()))
	}
}

func (e *Engine) handleSurveyAnswer(ctx context.Context, s *models.Session, text string) error {
	ev := e.surveys.Submit(s, text)
	switch ev.Kind {
	case survey.EventCompleted:
		if err := e.messenger.SendMessage(ctx, s.UserID, ev.Text); err != nil {
			return err
		}
		return e.dispatcher.Run(ctx, e.messenger, s, models.AnalysisFull)
	case survey.EventIncomplete:
		return e.messenger.SendMessage(ctx, s.UserID, ev.Text)
	default:
		return e.sendEvent(ctx, s.UserID, ev)
	}
}

func (e *Engine) handleFreeChat(ctx context.Context, s *models.Session, text string) error {
	action := e.gate.Observe(s, text)
	language := e.displayLanguage(s, text)

	if s.Mode == models.ModeAwaitingExpressData {
		s.Mode = models.ModeIdle
		if err := e.messenger.SendMessage(ctx, s.UserID, gatekeeper.ForceText(language)); err != nil {
			return err
		}
		return e.dispatcher.Run(ctx, e.messenger, s, models.AnalysisExpress)
	}

	switch action {
	case gatekeeper.ActionForceExpress:
		if err := e.messenger.SendMessage(ctx, s.UserID, gatekeeper.ForceText(language)); err != nil {
			return err
		}
		return e.dispatcher.Run(ctx, e.messenger, s, models.AnalysisExpress)
	case gatekeeper.ActionOffer:
		reply := e.shortReply(ctx, language, text)
		if err := e.messenger.SendMessage(ctx, s.UserID, reply); err != nil {
			return err
		}
		return e.messenger.SendMessageWithButtons(ctx, s.UserID,
			gatekeeper.OfferText(language), gatekeeper.OfferButtons(language))
	default:
		return e.messenger.SendMessage(ctx, s.UserID, e.shortReply(ctx, language, text))
	}
}

func (e *Engine) handleCallback(ctx context.Context, upd Update) error {
	s := session.GetOrCreate(e.sessions, upd.UserID, upd.DisplayName)

	if target, ok := survey.ParseBackCallback(upd.Callback); ok {
		ev, err := e.surveys.Back(s, target)
		if err != nil {
			slog.Debug("back navigation rejected", "userID", s.UserID, "target", target, "error", err)
			return nil
		}
		return e.sendEvent(ctx, s.UserID, ev)
	}

	language := s.EffectiveLanguage()
	switch upd.Callback {
	case gatekeeper.CallbackFullSurvey:
		ev := e.surveys.Start(s)
		return e.sendEvent(ctx, s.UserID, ev)
	case gatekeeper.CallbackExpressAnalysis:
		if len(s.History) < e.cfg.MinExpressMessages {
			s.Mode = models.ModeAwaitingExpressData
			return e.messenger.SendMessage(ctx, s.UserID, moreDataText(language))
		}
		if err := e.messenger.SendMessage(ctx, s.UserID, gatekeeper.ForceText(language)); err != nil {
			return err
		}
		return e.dispatcher.Run(ctx, e.messenger, s, models.AnalysisExpress)
	case gatekeeper.CallbackContinueChat:
		return e.messenger.SendMessage(ctx, s.UserID, continueChatText(language))
	default:
		slog.Debug("unknown callback", "userID", s.UserID, "callback", upd.Callback)
		return nil
	}
}

// shortReply generates the context-free free-chat answer, falling back to a
// canned reply on any generation failure.
func (e *Engine) shortReply(ctx context.Context, language models.Language, text string) string {
	out, err := e.gen.Generate(ctx, gatekeeper.ThinkPrompt(language, text), e.cfg.ChatReply)
	if err != nil {
		slog.Error("short reply generation failed", "error", err)
		return gatekeeper.FallbackReply(language)
	}
	return out
}

// displayLanguage picks the locale for free-chat texts: the sticky session
// language when locked, otherwise a per-message detection that does not
// lock anything.
func (e *Engine) displayLanguage(s *models.Session, text string) models.Language {
	if s.LanguageLocked() {
		return s.Language
	}
	return lang.Detect(text)
}

func (e *Engine) sendEvent(ctx context.Context, chatID int64, ev survey.Event) error {
	if len(ev.Buttons) > 0 {
		return e.messenger.SendMessageWithButtons(ctx, chatID, ev.Text, ev.Buttons)
	}
	return e.messenger.SendMessage(ctx, chatID, ev.Text)
}
