// Package telegram adapts the long-polling Telegram Bot API to the engine's
// Messenger interface.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mindprobe/MindProbe/internal/engine"
	"github.com/mindprobe/MindProbe/internal/models"
)

// updateTimeout is the long-poll interval in seconds.
const updateTimeout = 30

// Handler consumes one routed inbound update.
type Handler interface {
	HandleUpdate(ctx context.Context, upd engine.Update) error
}

// Client is the Telegram transport. It implements engine.Messenger for the
// outbound direction and Run drives the inbound loop.
type Client struct {
	bot *tgbotapi.BotAPI
}

// NewClient connects to the Bot API with the given token.
func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	slog.Info("telegram bot authorized", "username", bot.Self.UserName)
	return &Client{bot: bot}, nil
}

// SendMessage delivers plain text to a chat.
func (c *Client) SendMessage(_ context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("sending message to %d: %w", chatID, err)
	}
	return nil
}

// SendMessageWithButtons delivers text with an inline keyboard, one button
// per row.
func (c *Client) SendMessageWithButtons(_ context.Context, chatID int64, text string, buttons []models.Button) error {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data)))
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("sending keyboard message to %d: %w", chatID, err)
	}
	return nil
}

// Run long-polls for updates and routes them to the handler until the
// context is cancelled.
func (c *Client) Run(ctx context.Context, handler Handler) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = updateTimeout
	updates := c.bot.GetUpdatesChan(cfg)
	slog.Info("telegram update loop started")

	for {
		select {
		case <-ctx.Done():
			c.bot.StopReceivingUpdates()
			slog.Info("telegram update loop stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			routed, ok := c.route(update)
			if !ok {
				continue
			}
			if err := handler.HandleUpdate(ctx, routed); err != nil {
				slog.Error("update handling failed", "userID", routed.UserID, "error", err)
			}
		}
	}
}

// route converts a raw Telegram update into an engine.Update, answering
// callback queries so the client stops showing a spinner.
func (c *Client) route(update tgbotapi.Update) (engine.Update, bool) {
	switch {
	case update.Message != nil:
		from := update.Message.From
		return engine.Update{
			UserID:      update.Message.Chat.ID,
			DisplayName: displayName(from),
			Text:        update.Message.Text,
		}, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		if _, err := c.bot.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, "")); err != nil {
			slog.Debug("answering callback query failed", "error", err)
		}
		return engine.Update{
			UserID:      update.CallbackQuery.Message.Chat.ID,
			DisplayName: displayName(update.CallbackQuery.From),
			Callback:    update.CallbackQuery.Data,
		}, true
	default:
		return engine.Update{}, false
	}
}

func displayName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	return user.UserName
}
