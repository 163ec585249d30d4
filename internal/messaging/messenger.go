// Package messaging abstracts the chat transport the bot talks through.
package messaging

import "context"

// Button is one inline keyboard button; Data is the opaque callback payload.
type Button struct {
	Text string
	Data string
}

// Keyboard is an inline keyboard, rows of buttons.
type Keyboard [][]Button

// Message is an outbound chat message.
type Message struct {
	ChatID   int64
	Text     string
	Keyboard Keyboard
}

// Messenger delivers outbound messages.
type Messenger interface {
	Send(ctx context.Context, msg Message) error
	Edit(ctx context.Context, chatID int64, messageID int, text string, keyboard Keyboard) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// Sender identifies the account an inbound update came from.
type Sender struct {
	Name     string
	Username string
}

// Callback is an inline button press.
type Callback struct {
	ID        string
	Data      string
	MessageID int
}

// Update is an inbound chat event, normalized from the transport.
// Exactly one of Command, Text or Callback is meaningful.
type Update struct {
	ChatID   int64
	From     Sender
	Command  string
	Text     string
	Callback *Callback
}
