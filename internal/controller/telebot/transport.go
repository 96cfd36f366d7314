// Package telebot binds the dispatcher to gopkg.in/telebot.v4. It supports
// long polling only.
package telebot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/controller/chat"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

const pollTimeout = 10 * time.Second

type Transport struct {
	bot    *tele.Bot
	logger *zap.Logger
}

func New(token string, logger *zap.Logger) (*Transport, error) {
	b, err := tele.NewBot(tele.Settings{
		Token:       token,
		Poller:      &tele.LongPoller{Timeout: pollTimeout},
		Synchronous: true,
		OnError: func(err error, c tele.Context) {
			logger.Error("Telebot handler failed", zap.Error(err))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create telebot bot: %w", err)
	}
	return &Transport{bot: b, logger: logger}, nil
}

// Send implements chat.Messenger.
func (t *Transport) Send(_ context.Context, chatID int64, msg chat.Message) error {
	opts := &tele.SendOptions{ParseMode: tele.ParseMode(msg.ParseMode)}
	if !msg.Keyboard.Empty() {
		opts.ReplyMarkup = replyMarkup(msg.Keyboard)
	}

	if _, err := t.bot.Send(tele.ChatID(chatID), msg.Text, opts); err != nil {
		return fmt.Errorf("send message to chat %d: %w", chatID, err)
	}
	return nil
}

// Run registers handlers and the command menu, then polls until ctx is done.
func (t *Transport) Run(ctx context.Context, h chat.Handler) error {
	t.bot.Handle(tele.OnText, func(c tele.Context) error {
		if c.Sender() == nil || c.Chat() == nil {
			return nil
		}
		h.OnText(ctx, c.Chat().ID, userOf(c.Sender()), c.Text())
		return nil
	})

	t.bot.Handle(tele.OnCallback, func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil || cb.Sender == nil {
			return nil
		}
		if err := c.Respond(); err != nil {
			t.logger.Warn("Failed to answer callback query", zap.Error(err))
		}

		chatID := cb.Sender.ID
		if c.Chat() != nil {
			chatID = c.Chat().ID
		}
		h.OnCallback(ctx, chatID, userOf(cb.Sender), callbackToken(cb))
		return nil
	})

	commands := make([]tele.Command, 0, len(h.Commands()))
	for _, c := range h.Commands() {
		commands = append(commands, tele.Command{Text: c.Name, Description: c.Description})
	}
	if err := t.bot.SetCommands(commands); err != nil {
		t.logger.Error("Failed to set bot commands", zap.Error(err))
	} else {
		t.logger.Info("✅ Bot commands menu set")
	}

	t.logger.Info("Starting bot in polling mode", zap.Duration("timeout", pollTimeout))

	done := make(chan struct{})
	go func() {
		t.bot.Start()
		close(done)
	}()

	select {
	case <-ctx.Done():
		t.bot.Stop()
		<-done
	case <-done:
	}
	return nil
}

// callbackToken rebuilds the raw token. Telebot splits "\f<unique>|<data>"
// payloads into Unique and Data.
func callbackToken(cb *tele.Callback) string {
	if cb.Unique != "" {
		if cb.Data == "" {
			return cb.Unique
		}
		return cb.Unique + "|" + cb.Data
	}
	return strings.TrimPrefix(cb.Data, "\f")
}

func userOf(u *tele.User) chat.User {
	return chat.User{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func replyMarkup(kb chat.Keyboard) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tele.InlineButton, 0, len(row))
		for _, btn := range row {
			b := tele.InlineButton{Text: btn.Label}
			if btn.URL != "" {
				b.URL = btn.URL
			} else {
				b.Data = btn.Token
			}
			buttons = append(buttons, b)
		}
		rows = append(rows, buttons)
	}
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}
