// Package telegram routes inbound chat updates to the creation wizard,
// the admin console and the top-level menus.
package telegram

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-bot/internal/auth"
	"github.com/spec-kit/helpdesk-bot/internal/messaging"
	"github.com/spec-kit/helpdesk-bot/internal/observability"
	"github.com/spec-kit/helpdesk-bot/internal/render"
	"github.com/spec-kit/helpdesk-bot/internal/service"
	"github.com/spec-kit/helpdesk-bot/internal/session"
	apperrors "github.com/spec-kit/helpdesk-bot/pkg/util"
)

// Handler owns the conversation surface. Each inbound update is handled to
// completion before the poll loop hands over the next one.
type Handler struct {
	service   *service.TicketService
	sessions  session.Store
	admins    *auth.AdminSet
	messenger messaging.Messenger
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// HandlerDependencies bundles collaborators for the update router.
type HandlerDependencies struct {
	TicketService *service.TicketService
	Sessions      session.Store
	Admins        *auth.AdminSet
	Messenger     messaging.Messenger
	Logger        *zap.Logger
	Metrics       *observability.Metrics
}

// NewHandler constructs the router.
func NewHandler(deps HandlerDependencies) *Handler {
	return &Handler{
		service:   deps.TicketService,
		sessions:  deps.Sessions,
		admins:    deps.Admins,
		messenger: deps.Messenger,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
	}
}

// HandleUpdate dispatches one inbound update.
func (h *Handler) HandleUpdate(ctx context.Context, u messaging.Update) {
	switch {
	case u.Callback != nil:
		h.metrics.RecordUpdate("callback")
		h.handleCallback(ctx, u)
	case u.Command != "":
		h.metrics.RecordUpdate("command")
		h.handleCommand(ctx, u)
	default:
		h.metrics.RecordUpdate("message")
		h.handleText(ctx, u)
	}
}

func (h *Handler) handleCommand(ctx context.Context, u messaging.Update) {
	switch u.Command {
	case "start", "help":
		h.reply(ctx, u.ChatID, "Hi! I register IT support requests and keep you posted on their progress.", render.MainMenuKeyboard())
	case "new":
		h.startWizard(ctx, u)
	case "my":
		h.listOwnTickets(ctx, u)
	case "cancel":
		h.cancelConversation(ctx, u)
	case "admin":
		h.showAdminMenu(ctx, u)
	default:
		h.reply(ctx, u.ChatID, "Unknown command. Use /start for the menu.", nil)
	}
}

func (h *Handler) handleCallback(ctx context.Context, u messaging.Update) {
	data := u.Callback.Data

	switch data {
	case render.CBMenuNewTicket:
		h.answer(ctx, u, "")
		h.startWizard(ctx, u)
		return
	case render.CBMenuMyTickets:
		h.answer(ctx, u, "")
		h.listOwnTickets(ctx, u)
		return
	case render.CBMenuMain:
		h.answer(ctx, u, "")
		h.reply(ctx, u.ChatID, "Main menu:", render.MainMenuKeyboard())
		return
	case render.CBWizardCancel, render.CBConfirmCancel:
		h.answer(ctx, u, "Cancelled")
		h.cancelConversation(ctx, u)
		return
	case render.CBConfirmAccept:
		h.confirmWizard(ctx, u)
		return
	case render.CBPriorityBack:
		h.wizardBackToCategory(ctx, u)
		return
	case render.CBAdminMenu:
		h.answer(ctx, u, "")
		h.editAdminMenu(ctx, u)
		return
	}

	if key, ok := render.DecodeKey(data, render.CBPrefixCategory); ok {
		h.wizardCategoryChosen(ctx, u, key)
		return
	}
	if key, ok := render.DecodeKey(data, render.CBPrefixPriority); ok {
		h.wizardPriorityChosen(ctx, u, key)
		return
	}
	if key, ok := render.DecodeKey(data, render.CBPrefixList); ok {
		h.showTicketList(ctx, u, key)
		return
	}

	verb, ticketID, err := render.DecodeAction(data)
	if err != nil {
		h.logger.Warn("unparseable callback payload", zap.String("data", data))
		h.answer(ctx, u, "")
		return
	}
	h.handleTicketCallback(ctx, u, verb, ticketID)
}

func (h *Handler) handleText(ctx context.Context, u messaging.Update) {
	draft, err := h.sessions.GetDraft(ctx, u.ChatID)
	if err != nil {
		h.logger.Error("read draft", zap.Int64("chat_id", u.ChatID), zap.Error(err))
		h.reply(ctx, u.ChatID, genericFailureNotice, nil)
		return
	}
	if draft != nil {
		h.handleWizardText(ctx, u, draft)
		return
	}

	if h.admins.IsAdmin(u.ChatID) {
		ticketID, pending, err := h.sessions.PendingSolution(ctx, u.ChatID)
		if err != nil {
			h.logger.Error("read pending solution", zap.Int64("chat_id", u.ChatID), zap.Error(err))
			h.reply(ctx, u.ChatID, genericFailureNotice, nil)
			return
		}
		if pending {
			h.captureSolutionText(ctx, u, ticketID)
			return
		}
	}

	h.reply(ctx, u.ChatID, "Use /start for the menu or /new to file a request.", nil)
}

func (h *Handler) cancelConversation(ctx context.Context, u messaging.Update) {
	if err := h.sessions.DeleteDraft(ctx, u.ChatID); err != nil {
		h.logger.Warn("drop draft", zap.Int64("chat_id", u.ChatID), zap.Error(err))
	}
	if err := h.sessions.DisarmSolution(ctx, u.ChatID); err != nil {
		h.logger.Warn("drop pending solution", zap.Int64("chat_id", u.ChatID), zap.Error(err))
	}
	h.reply(ctx, u.ChatID, "Cancelled. Nothing was saved.", render.MainMenuKeyboard())
}

func (h *Handler) listOwnTickets(ctx context.Context, u messaging.Update) {
	tickets, err := h.service.ListRequesterTickets(ctx, u.ChatID, 10, 0)
	if err != nil {
		h.replyError(ctx, u.ChatID, err)
		return
	}
	if len(tickets) == 0 {
		h.reply(ctx, u.ChatID, "You have no tickets yet.", render.MainMenuKeyboard())
		return
	}
	text := "Your tickets:\n"
	for i := range tickets {
		text += render.TicketSummaryLine(&tickets[i]) + "\n"
	}
	h.reply(ctx, u.ChatID, text, render.MainMenuKeyboard())
}

const genericFailureNotice = "Something went wrong. Please try again later."

// noticeFor maps service errors to user-facing notices. Persistence
// failures stay deliberately generic; authorization failures read the same
// regardless of action.
func noticeFor(err error) string {
	domainErr := apperrors.ToDomainError(err)
	switch domainErr.Code {
	case apperrors.CodeValidationFailed:
		return domainErr.Message
	case apperrors.CodeForbidden:
		return "This action is available to administrators only."
	case apperrors.CodeNotFound:
		return "Ticket not found."
	case apperrors.CodeInvalidTransition:
		return "This action is not available in the ticket's current status."
	default:
		return genericFailureNotice
	}
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string, keyboard messaging.Keyboard) {
	if err := h.messenger.Send(ctx, messaging.Message{ChatID: chatID, Text: text, Keyboard: keyboard}); err != nil {
		h.metrics.RecordSendFailure()
		h.logger.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handler) replyError(ctx context.Context, chatID int64, err error) {
	h.metrics.RecordError("handler", apperrors.CodeOf(err))
	if apperrors.ToDomainError(err).Code == apperrors.CodeInternalError {
		h.logger.Error("handler failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	h.reply(ctx, chatID, noticeFor(err), nil)
}

func (h *Handler) answer(ctx context.Context, u messaging.Update, text string) {
	if u.Callback == nil {
		return
	}
	if err := h.messenger.AnswerCallback(ctx, u.Callback.ID, text); err != nil {
		h.logger.Debug("answer callback failed", zap.Error(err))
	}
}

func (h *Handler) edit(ctx context.Context, u messaging.Update, text string, keyboard messaging.Keyboard) {
	if u.Callback == nil || u.Callback.MessageID == 0 {
		h.reply(ctx, u.ChatID, text, keyboard)
		return
	}
	if err := h.messenger.Edit(ctx, u.ChatID, u.Callback.MessageID, text, keyboard); err != nil {
		h.metrics.RecordSendFailure()
		h.logger.Warn("edit failed", zap.Int64("chat_id", u.ChatID), zap.Error(err))
	}
}
