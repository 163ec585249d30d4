package messaging

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-bot/internal/config"
)

// TelegramBot implements Messenger over the Telegram Bot API and exposes
// the long-poll update loop.
type TelegramBot struct {
	api         *tgbotapi.BotAPI
	logger      *zap.Logger
	pollTimeout int
}

// NewTelegramBot authorizes against the Bot API.
func NewTelegramBot(cfg config.BotConfig, logger *zap.Logger) (*TelegramBot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	logger.Info("authorized on telegram", zap.String("username", api.Self.UserName))
	return &TelegramBot{api: api, logger: logger, pollTimeout: cfg.PollTimeoutSeconds}, nil
}

// Send delivers a message, optionally with an inline keyboard.
func (b *TelegramBot) Send(ctx context.Context, msg Message) error {
	out := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	out.ParseMode = tgbotapi.ModeHTML
	if len(msg.Keyboard) > 0 {
		out.ReplyMarkup = toMarkup(msg.Keyboard)
	}
	_, err := b.api.Send(out)
	return err
}

// Edit rewrites a previously sent message in place.
func (b *TelegramBot) Edit(ctx context.Context, chatID int64, messageID int, text string, keyboard Keyboard) error {
	if len(keyboard) > 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, toMarkup(keyboard))
		edit.ParseMode = tgbotapi.ModeHTML
		_, err := b.api.Send(edit)
		return err
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(edit)
	return err
}

// AnswerCallback acknowledges a button press with a short notice.
func (b *TelegramBot) AnswerCallback(ctx context.Context, callbackID, text string) error {
	_, err := b.api.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}

// Poll runs the long-poll loop until the context is cancelled, handing
// normalized updates to the handler one at a time.
func (b *TelegramBot) Poll(ctx context.Context, handle func(context.Context, Update)) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case raw, ok := <-updates:
			if !ok {
				return
			}
			update, accepted := normalize(raw)
			if !accepted {
				continue
			}
			handle(ctx, update)
		}
	}
}

func normalize(raw tgbotapi.Update) (Update, bool) {
	switch {
	case raw.CallbackQuery != nil:
		cq := raw.CallbackQuery
		update := Update{
			From: senderOf(cq.From),
			Callback: &Callback{
				ID:   cq.ID,
				Data: cq.Data,
			},
		}
		if cq.From != nil {
			update.ChatID = cq.From.ID
		}
		if cq.Message != nil {
			update.ChatID = cq.Message.Chat.ID
			update.Callback.MessageID = cq.Message.MessageID
		}
		return update, true
	case raw.Message != nil:
		msg := raw.Message
		update := Update{
			ChatID: msg.Chat.ID,
			From:   senderOf(msg.From),
			Text:   msg.Text,
		}
		if msg.IsCommand() {
			update.Command = msg.Command()
		}
		return update, true
	}
	return Update{}, false
}

func senderOf(user *tgbotapi.User) Sender {
	if user == nil {
		return Sender{}
	}
	name := strings.TrimSpace(strings.TrimSpace(user.FirstName) + " " + strings.TrimSpace(user.LastName))
	if name == "" {
		name = user.UserName
	}
	return Sender{Name: name, Username: user.UserName}
}

func toMarkup(keyboard Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
