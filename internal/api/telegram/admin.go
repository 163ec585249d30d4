package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-bot/internal/domain"
	"github.com/spec-kit/helpdesk-bot/internal/messaging"
	"github.com/spec-kit/helpdesk-bot/internal/render"
	apperrors "github.com/spec-kit/helpdesk-bot/pkg/util"
)

const adminListPageSize = 10

func (h *Handler) showAdminMenu(ctx context.Context, u messaging.Update) {
	counts, err := h.service.CountByStatus(ctx, u.ChatID)
	if err != nil {
		h.replyError(ctx, u.ChatID, err)
		return
	}
	h.reply(ctx, u.ChatID, "Tickets by status:", render.AdminMenuKeyboard(counts))
}

func (h *Handler) editAdminMenu(ctx context.Context, u messaging.Update) {
	counts, err := h.service.CountByStatus(ctx, u.ChatID)
	if err != nil {
		h.replyError(ctx, u.ChatID, err)
		return
	}
	h.edit(ctx, u, "Tickets by status:", render.AdminMenuKeyboard(counts))
}

func (h *Handler) showTicketList(ctx context.Context, u messaging.Update, key string) {
	status, err := domain.ParseStatus(key)
	if err != nil {
		h.logger.Warn("bad status filter", zap.String("key", key))
		h.answer(ctx, u, "")
		return
	}
	tickets, err := h.service.ListByStatus(ctx, u.ChatID, status, adminListPageSize, 0)
	if err != nil {
		h.answer(ctx, u, noticeFor(err))
		return
	}
	h.answer(ctx, u, "")
	if len(tickets) == 0 {
		h.edit(ctx, u, fmt.Sprintf("No tickets in status %q.", render.StatusLabel(status)),
			messaging.Keyboard{{{Text: "Back", Data: render.CBAdminMenu}}})
		return
	}
	h.edit(ctx, u, fmt.Sprintf("Tickets in status %q:", render.StatusLabel(status)), render.TicketListKeyboard(tickets))
}

// handleTicketCallback covers every verb_id payload: opening a card,
// arming solution capture and the lifecycle actions.
func (h *Handler) handleTicketCallback(ctx context.Context, u messaging.Update, verb string, ticketID int64) {
	switch verb {
	case render.CBVerbTicket:
		h.openTicketCard(ctx, u, ticketID)
		return
	case render.CBVerbSolution:
		h.armSolutionCapture(ctx, u, ticketID)
		return
	}

	action, err := domain.ParseAction(verb)
	if err != nil {
		h.logger.Warn("unknown callback verb", zap.String("verb", verb))
		h.answer(ctx, u, "")
		return
	}
	ticket, err := h.service.ApplyAction(ctx, u.ChatID, u.From.Name, ticketID, action)
	if err != nil {
		h.metrics.RecordError("admin_action", apperrors.CodeOf(err))
		h.answer(ctx, u, noticeFor(err))
		return
	}
	h.answer(ctx, u, fmt.Sprintf("Ticket #%d: %s", ticket.ID, render.StatusLabel(ticket.Status)))
	h.edit(ctx, u, render.TicketCard(ticket), render.AdminTicketKeyboard(ticket))
}

func (h *Handler) openTicketCard(ctx context.Context, u messaging.Update, ticketID int64) {
	ticket, err := h.service.GetTicketForAdmin(ctx, u.ChatID, ticketID)
	if err != nil {
		h.answer(ctx, u, noticeFor(err))
		return
	}
	h.answer(ctx, u, "")
	h.edit(ctx, u, render.TicketCard(ticket), render.AdminTicketKeyboard(ticket))
}

func (h *Handler) armSolutionCapture(ctx context.Context, u messaging.Update, ticketID int64) {
	ticket, err := h.service.GetTicketForAdmin(ctx, u.ChatID, ticketID)
	if err != nil {
		h.answer(ctx, u, noticeFor(err))
		return
	}
	if err := h.sessions.ArmSolution(ctx, u.ChatID, ticket.ID); err != nil {
		h.logger.Error("arm solution capture", zap.Int64("chat_id", u.ChatID), zap.Error(err))
		h.answer(ctx, u, genericFailureNotice)
		return
	}
	h.answer(ctx, u, "")
	h.reply(ctx, u.ChatID, fmt.Sprintf("Send the solution text for ticket #%d, or /cancel.", ticket.ID), nil)
}

func (h *Handler) captureSolutionText(ctx context.Context, u messaging.Update, ticketID int64) {
	ticket, err := h.service.SetSolution(ctx, u.ChatID, u.From.Name, ticketID, u.Text)
	if err != nil {
		h.replyError(ctx, u.ChatID, err)
		return
	}
	if err := h.sessions.DisarmSolution(ctx, u.ChatID); err != nil {
		h.logger.Warn("disarm solution capture", zap.Int64("chat_id", u.ChatID), zap.Error(err))
	}
	h.reply(ctx, u.ChatID, fmt.Sprintf("Solution saved for ticket #%d.", ticket.ID), nil)
	h.reply(ctx, u.ChatID, render.TicketCard(ticket), render.AdminTicketKeyboard(ticket))
}
