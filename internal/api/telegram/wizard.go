package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-bot/internal/domain"
	"github.com/spec-kit/helpdesk-bot/internal/messaging"
	"github.com/spec-kit/helpdesk-bot/internal/render"
	"github.com/spec-kit/helpdesk-bot/internal/service"
	"github.com/spec-kit/helpdesk-bot/internal/session"
	"github.com/spec-kit/helpdesk-bot/internal/validate"
)

// The creation wizard is a strictly ordered sequence of prompts, one field
// per turn. Each answer is validated before the draft advances; a failed
// check re-prompts the same step. Cancel wipes the draft at any point.

func (h *Handler) startWizard(ctx context.Context, u messaging.Update) {
	draft := &session.Draft{
		Step:              session.StepCategory,
		RequesterName:     u.From.Name,
		RequesterUsername: u.From.Username,
	}
	if err := h.sessions.PutDraft(ctx, u.ChatID, draft); err != nil {
		h.logger.Error("store draft", zap.Int64("chat_id", u.ChatID), zap.Error(err))
		h.reply(ctx, u.ChatID, genericFailureNotice, nil)
		return
	}
	h.reply(ctx, u.ChatID, "What is the request about?", render.CategoryKeyboard())
}

func (h *Handler) wizardCategoryChosen(ctx context.Context, u messaging.Update, key string) {
	draft, ok := h.loadDraftAt(ctx, u, session.StepCategory)
	if !ok {
		return
	}
	category, err := domain.ParseCategory(key)
	if err != nil {
		h.answer(ctx, u, "Please pick one of the options")
		return
	}
	draft.Category = category
	draft.Step = session.StepPriority
	if !h.saveDraft(ctx, u, draft) {
		return
	}
	h.answer(ctx, u, "")
	h.edit(ctx, u, "How urgent is it?", render.PriorityKeyboard())
}

func (h *Handler) wizardPriorityChosen(ctx context.Context, u messaging.Update, key string) {
	draft, ok := h.loadDraftAt(ctx, u, session.StepPriority)
	if !ok {
		return
	}
	priority, err := domain.ParsePriority(key)
	if err != nil {
		h.answer(ctx, u, "Please pick one of the options")
		return
	}
	draft.Priority = priority
	draft.Step = session.StepTitle
	if !h.saveDraft(ctx, u, draft) {
		return
	}
	h.answer(ctx, u, "")
	h.edit(ctx, u, fmt.Sprintf("Give the request a short title (up to %d characters).", validate.MaxTitleLen), nil)
}

func (h *Handler) wizardBackToCategory(ctx context.Context, u messaging.Update) {
	draft, ok := h.loadDraftAt(ctx, u, session.StepPriority)
	if !ok {
		return
	}
	draft.Category = ""
	draft.Step = session.StepCategory
	if !h.saveDraft(ctx, u, draft) {
		return
	}
	h.answer(ctx, u, "")
	h.edit(ctx, u, "What is the request about?", render.CategoryKeyboard())
}

func (h *Handler) handleWizardText(ctx context.Context, u messaging.Update, draft *session.Draft) {
	switch draft.Step {
	case session.StepTitle:
		if !validate.Title(u.Text) {
			h.reply(ctx, u.ChatID, fmt.Sprintf("The title must be 1 to %d characters. Try again.", validate.MaxTitleLen), nil)
			return
		}
		draft.Title = u.Text
		draft.Step = session.StepDescription
		if h.saveDraft(ctx, u, draft) {
			h.reply(ctx, u.ChatID, fmt.Sprintf("Describe the problem in detail (at least %d characters).", validate.MinDescriptionLen), nil)
		}
	case session.StepDescription:
		if !validate.Description(u.Text) {
			h.reply(ctx, u.ChatID, fmt.Sprintf("The description must be at least %d characters. Try again.", validate.MinDescriptionLen), nil)
			return
		}
		draft.Description = u.Text
		draft.Step = session.StepLocation
		if h.saveDraft(ctx, u, draft) {
			h.reply(ctx, u.ChatID, "Where are you located? (office, floor, room)", nil)
		}
	case session.StepLocation:
		draft.Location = u.Text
		draft.Step = session.StepPhone
		if h.saveDraft(ctx, u, draft) {
			h.reply(ctx, u.ChatID, "Contact phone number?", nil)
		}
	case session.StepPhone:
		if !validate.Phone(u.Text) {
			h.reply(ctx, u.ChatID, "That does not look like a valid phone number. Try again, e.g. +7 912 345-67-89.", nil)
			return
		}
		draft.Phone = u.Text
		draft.Step = session.StepConfirm
		if h.saveDraft(ctx, u, draft) {
			h.reply(ctx, u.ChatID, render.DraftPreview(draft), render.ConfirmKeyboard())
		}
	case session.StepCategory, session.StepPriority:
		h.reply(ctx, u.ChatID, "Please pick one of the options above, or /cancel.", nil)
	case session.StepConfirm:
		h.reply(ctx, u.ChatID, "Please confirm or cancel the request above.", nil)
	}
}

func (h *Handler) confirmWizard(ctx context.Context, u messaging.Update) {
	draft, ok := h.loadDraftAt(ctx, u, session.StepConfirm)
	if !ok {
		return
	}

	// The draft is discarded on success and on failure alike; a failed
	// creation never leaves a partial ticket behind, the user retries
	// from scratch.
	ticket, err := h.service.CreateTicket(ctx, service.TicketCreateInput{
		ChatID:            u.ChatID,
		RequesterName:     draft.RequesterName,
		RequesterUsername: draft.RequesterUsername,
		Category:          draft.Category,
		Priority:          draft.Priority,
		Title:             draft.Title,
		Description:       draft.Description,
		Location:          draft.Location,
		Phone:             draft.Phone,
	})
	if dropErr := h.sessions.DeleteDraft(ctx, u.ChatID); dropErr != nil {
		h.logger.Warn("drop draft", zap.Int64("chat_id", u.ChatID), zap.Error(dropErr))
	}
	if err != nil {
		h.answer(ctx, u, "")
		h.replyError(ctx, u.ChatID, err)
		return
	}
	h.answer(ctx, u, fmt.Sprintf("Ticket #%d created", ticket.ID))
	h.edit(ctx, u, render.DraftPreview(draft), nil)
	h.reply(ctx, u.ChatID, "Main menu:", render.MainMenuKeyboard())
}

// loadDraftAt fetches the draft and checks the wizard is on the expected
// step; a stale button press on an earlier message is ignored.
func (h *Handler) loadDraftAt(ctx context.Context, u messaging.Update, step session.Step) (*session.Draft, bool) {
	draft, err := h.sessions.GetDraft(ctx, u.ChatID)
	if err != nil {
		h.logger.Error("read draft", zap.Int64("chat_id", u.ChatID), zap.Error(err))
		h.answer(ctx, u, "")
		h.reply(ctx, u.ChatID, genericFailureNotice, nil)
		return nil, false
	}
	if draft == nil || draft.Step != step {
		h.answer(ctx, u, "This menu is no longer active")
		return nil, false
	}
	return draft, true
}

func (h *Handler) saveDraft(ctx context.Context, u messaging.Update, draft *session.Draft) bool {
	if err := h.sessions.PutDraft(ctx, u.ChatID, draft); err != nil {
		h.logger.Error("store draft", zap.Int64("chat_id", u.ChatID), zap.Error(err))
		h.reply(ctx, u.ChatID, genericFailureNotice, nil)
		return false
	}
	return true
}
