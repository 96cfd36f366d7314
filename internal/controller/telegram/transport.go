// Package telegram binds the dispatcher to github.com/go-telegram/bot.
package telegram

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/recrearnolar/recrear_bot/internal/controller/chat"
	"go.uber.org/zap"
)

// Transport delivers messages through the Bot API and feeds updates to a
// chat.Handler. An empty webhook URL means long polling.
type Transport struct {
	bot        *bot.Bot
	webhookURL string
	handler    chat.Handler
	logger     *zap.Logger
}

func New(token, webhookURL string, logger *zap.Logger, opts ...bot.Option) (*Transport, error) {
	t := &Transport{
		webhookURL: webhookURL,
		logger:     logger,
	}

	opts = append(opts, bot.WithDefaultHandler(t.onUnhandled))
	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	t.bot = b

	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, t.onMessage)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, t.onCallback)

	return t, nil
}

// Send implements chat.Messenger.
func (t *Transport) Send(ctx context.Context, chatID int64, msg chat.Message) error {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      msg.Text,
		ParseMode: models.ParseMode(msg.ParseMode),
	}
	if !msg.Keyboard.Empty() {
		params.ReplyMarkup = inlineKeyboard(msg.Keyboard)
	}

	if _, err := t.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("send message to chat %d: %w", chatID, err)
	}
	return nil
}

// WebhookHandler serves Bot API webhook calls. Updates are processed once
// Run has started in webhook mode.
func (t *Transport) WebhookHandler() http.Handler {
	return t.bot.WebhookHandler()
}

// Run registers the command menu and processes updates until ctx is done.
func (t *Transport) Run(ctx context.Context, h chat.Handler) error {
	t.handler = h

	if err := t.setCommands(ctx, h.Commands()); err != nil {
		t.logger.Warn("Continuing without command menu", zap.Error(err))
	}

	if t.webhookURL != "" {
		if _, err := t.bot.SetWebhook(ctx, &bot.SetWebhookParams{URL: t.webhookURL}); err != nil {
			return fmt.Errorf("set webhook: %w", err)
		}
		t.logger.Info("Starting bot in webhook mode", zap.String("url", t.webhookURL))
		t.bot.StartWebhook(ctx)
		return nil
	}

	if _, err := t.bot.DeleteWebhook(ctx, &bot.DeleteWebhookParams{}); err != nil {
		t.logger.Warn("Failed to delete webhook", zap.Error(err))
	}
	t.logger.Info("Starting bot in polling mode")
	t.bot.Start(ctx)
	return nil
}

func (t *Transport) setCommands(ctx context.Context, cmds []chat.Command) error {
	commands := make([]models.BotCommand, 0, len(cmds))
	for _, c := range cmds {
		commands = append(commands, models.BotCommand{Command: c.Name, Description: c.Description})
	}

	_, err := t.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		t.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	t.logger.Info("✅ Bot commands menu set")
	return nil
}

func (t *Transport) onMessage(ctx context.Context, _ *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	t.handler.OnText(ctx, msg.Chat.ID, userOf(*msg.From), msg.Text)
}

func (t *Transport) onCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil {
		return
	}

	// Stop the client spinner before doing any work.
	if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
	}); err != nil {
		t.logger.Warn("Failed to answer callback query", zap.Error(err))
	}

	t.handler.OnCallback(ctx, callbackChatID(cb), userOf(cb.From), cb.Data)
}

func (t *Transport) onUnhandled(_ context.Context, _ *bot.Bot, update *models.Update) {
	t.logger.Debug("Ignoring update", zap.Int64("update_id", update.ID))
}

// callbackChatID returns the chat the pressed button lives in, falling back
// to the presser's private chat.
func callbackChatID(cb *models.CallbackQuery) int64 {
	switch {
	case cb.Message.Message != nil:
		return cb.Message.Message.Chat.ID
	case cb.Message.InaccessibleMessage != nil:
		return cb.Message.InaccessibleMessage.Chat.ID
	default:
		return cb.From.ID
	}
}

func userOf(u models.User) chat.User {
	return chat.User{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func inlineKeyboard(kb chat.Keyboard) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			b := models.InlineKeyboardButton{Text: btn.Label}
			if btn.URL != "" {
				b.URL = btn.URL
			} else {
				b.CallbackData = btn.Token
			}
			buttons = append(buttons, b)
		}
		rows = append(rows, buttons)
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
