// Package chat is the transport-neutral surface the dispatcher and the
// wizards talk to. Each Telegram binding implements Messenger.
package chat

import "context"

type ParseMode string

const (
	ParseModeNone       ParseMode = ""
	ParseModeMarkdown   ParseMode = "Markdown"
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"
)

// Message is one outbound reply, optionally with inline buttons.
type Message struct {
	Text      string
	ParseMode ParseMode
	Keyboard  Keyboard
}

// Messenger delivers messages to a chat.
type Messenger interface {
	Send(ctx context.Context, chatID int64, msg Message) error
}

// User is the sender of an inbound event.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// Command is a menu entry registered with the transport.
type Command struct {
	Name        string
	Description string
}

// Handler receives inbound events from a transport.
type Handler interface {
	OnText(ctx context.Context, chatID int64, from User, text string)
	OnCallback(ctx context.Context, chatID int64, from User, token string)
	Commands() []Command
}
