// Package gatekeeper implements the counter-based policy that bounds
// free-form conversation before a structured analysis is offered or forced.
package gatekeeper

import (
	"fmt"
	"log/slog"

	"github.com/mindprobe/MindProbe/internal/models"
)

// Action is the policy decision for one incoming free-text message.
type Action string

const (
	// ActionChat replies with a short context-free LLM answer.
	ActionChat Action = "chat"
	// ActionOffer replies and additionally presents structured choices.
	ActionOffer Action = "offer"
	// ActionForceExpress runs an express analysis immediately.
	ActionForceExpress Action = "force_express"
)

// Callback payloads for the offered choices.
const (
	CallbackExpressAnalysis = "express_analysis"
	CallbackFullSurvey      = "full_test"
	CallbackContinueChat    = "continue_chat"
)

// Config holds the threshold constants. Thresholds are deterministic policy
// knobs, not adaptive values.
type Config struct {
	HistoryCap     int   // ring-buffer capacity H
	OfferAt        []int // message counts at which choices are presented
	ForceExpressAt int   // message count at which express analysis is forced
}

// DefaultConfig mirrors the production thresholds: offers at 3 and 5
// messages, forced express at 6, history capped at 10.
func DefaultConfig() Config {
	return Config{
		HistoryCap:     10,
		OfferAt:        []int{3, 5},
		ForceExpressAt: 6,
	}
}

// Validate checks threshold consistency.
func (c Config) Validate() error {
	if c.HistoryCap <= 0 {
		return fmt.Errorf("history cap must be positive, got %d", c.HistoryCap)
	}
	if c.ForceExpressAt <= 0 {
		return fmt.Errorf("force threshold must be positive, got %d", c.ForceExpressAt)
	}
	for _, at := range c.OfferAt {
		if at >= c.ForceExpressAt {
			return fmt.Errorf("offer threshold %d must precede force threshold %d", at, c.ForceExpressAt)
		}
	}
	return nil
}

// Gatekeeper applies the policy to a session's conversation history.
type Gatekeeper struct {
	cfg Config
}

// New creates a gatekeeper with the given thresholds.
func New(cfg Config) *Gatekeeper {
	return &Gatekeeper{cfg: cfg}
}

// HistoryCap exposes the configured ring-buffer capacity.
func (g *Gatekeeper) HistoryCap() int {
	return g.cfg.HistoryCap
}

// Observe appends the message to the session history (evicting oldest-first
// beyond the cap) and returns the policy decision for this turn.
func (g *Gatekeeper) Observe(s *models.Session, text string) Action {
	s.AppendHistory(text, g.cfg.HistoryCap)
	count := len(s.History)

	action := g.decide(count)
	slog.Debug("gatekeeper decision", "userID", s.UserID, "messageCount", count, "action", action)
	return action
}

func (g *Gatekeeper) decide(count int) Action {
	if count >= g.cfg.ForceExpressAt {
		return ActionForceExpress
	}
	for _, at := range g.cfg.OfferAt {
		if count == at {
			return ActionOffer
		}
	}
	return ActionChat
}

// OfferButtons returns the structured choices presented at offer thresholds.
func OfferButtons(language models.Language) []models.Button {
	return []models.Button{
		{Label: localized(expressButtonLabel, language), Data: CallbackExpressAnalysis},
		{Label: localized(surveyButtonLabel, language), Data: CallbackFullSurvey},
		{Label: localized(chatButtonLabel, language), Data: CallbackContinueChat},
	}
}
