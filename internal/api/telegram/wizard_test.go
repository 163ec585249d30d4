package telegram

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-bot/internal/domain"
	"github.com/spec-kit/helpdesk-bot/internal/session"
)

func runFullWizard(t *testing.T, bot *testBot) {
	t.Helper()
	ctx := context.Background()

	bot.handler.HandleUpdate(ctx, userCommand(requesterID, "new"))
	bot.handler.HandleUpdate(ctx, callbackFrom(requesterID, "Alice", "cat_network"))
	bot.handler.HandleUpdate(ctx, callbackFrom(requesterID, "Alice", "prio_high"))
	bot.handler.HandleUpdate(ctx, userText(requesterID, "No internet"))
	bot.handler.HandleUpdate(ctx, userText(requesterID, "Office wifi down since morning"))
	bot.handler.HandleUpdate(ctx, userText(requesterID, "Floor 3"))
	bot.handler.HandleUpdate(ctx, userText(requesterID, "+7 912 000-00-00"))
	bot.handler.HandleUpdate(ctx, callbackFrom(requesterID, "Alice", "confirm_yes"))
}

func TestWizardCreatesTicketAndNotifies(t *testing.T) {
	bot := newTestBot()
	runFullWizard(t, bot)

	ticket, err := bot.repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNew, ticket.Status)
	assert.Equal(t, domain.CategoryNetwork, ticket.Category)
	assert.Equal(t, domain.PriorityHigh, ticket.Priority)
	assert.Equal(t, "No internet", ticket.Title)
	assert.Equal(t, "Office wifi down since morning", ticket.Description)
	require.NotNil(t, ticket.Location)
	assert.Equal(t, "Floor 3", *ticket.Location)
	assert.Equal(t, "+7 912 000-00-00", ticket.Phone)
	assert.Equal(t, requesterID, ticket.ChatID)
	assert.Nil(t, ticket.Assignee)
	assert.Nil(t, ticket.Solution)

	// the draft must be gone after confirmation
	draft, err := bot.store.GetDraft(context.Background(), requesterID)
	require.NoError(t, err)
	assert.Nil(t, draft)

	// exactly one creation notice to the requester
	created := 0
	for _, msg := range bot.messenger.sentTo(requesterID) {
		if strings.Contains(msg.Text, "registered as ticket") {
			created++
		}
	}
	assert.Equal(t, 1, created)

	// one broadcast with action buttons to the configured admin
	adminMsgs := bot.messenger.sentTo(testAdminID)
	require.Len(t, adminMsgs, 1)
	assert.Contains(t, adminMsgs[0].Text, "New ticket")
	require.NotEmpty(t, adminMsgs[0].Keyboard)
	assert.Equal(t, "take_1", adminMsgs[0].Keyboard[0][0].Data)
}

func TestWizardRepromptsOnInvalidInput(t *testing.T) {
	bot := newTestBot()
	ctx := context.Background()

	bot.handler.HandleUpdate(ctx, userCommand(requesterID, "new"))
	bot.handler.HandleUpdate(ctx, callbackFrom(requesterID, "Alice", "cat_network"))
	bot.handler.HandleUpdate(ctx, callbackFrom(requesterID, "Alice", "prio_high"))

	// over-long title keeps the wizard on the title step
	bot.handler.HandleUpdate(ctx, userText(requesterID, strings.Repeat("a", 201)))
	draft, err := bot.store.GetDraft(ctx, requesterID)
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, session.StepTitle, draft.Step)

	bot.handler.HandleUpdate(ctx, userText(requesterID, "No internet"))

	// short description keeps the wizard on the description step
	bot.handler.HandleUpdate(ctx, userText(requesterID, "too short"))
	draft, err = bot.store.GetDraft(ctx, requesterID)
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, session.StepDescription, draft.Step)

	bot.handler.HandleUpdate(ctx, userText(requesterID, "Office wifi down since morning"))
	bot.handler.HandleUpdate(ctx, userText(requesterID, "Floor 3"))

	// invalid phone keeps the wizard on the phone step
	bot.handler.HandleUpdate(ctx, userText(requesterID, "+1 555 123 4567"))
	draft, err = bot.store.GetDraft(ctx, requesterID)
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, session.StepPhone, draft.Step)

	assert.Empty(t, bot.repo.tickets, "nothing may be created before confirmation")
}

func TestWizardBackReturnsToCategory(t *testing.T) {
	bot := newTestBot()
	ctx := context.Background()

	bot.handler.HandleUpdate(ctx, userCommand(requesterID, "new"))
	bot.handler.HandleUpdate(ctx, callbackFrom(requesterID, "Alice", "cat_network"))
	bot.handler.HandleUpdate(ctx, callbackFrom(requesterID, "Alice", "prio_back"))

	draft, err := bot.store.GetDraft(ctx, requesterID)
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, session.StepCategory, draft.Step)
	assert.Empty(t, draft.Category)
}

func TestWizardCancelDiscardsDraft(t *testing.T) {
	bot := newTestBot()
	ctx := context.Background()

	bot.handler.HandleUpdate(ctx, userCommand(requesterID, "new"))
	bot.handler.HandleUpdate(ctx, callbackFrom(requesterID, "Alice", "cat_network"))
	bot.handler.HandleUpdate(ctx, callbackFrom(requesterID, "Alice", "wiz_cancel"))

	draft, err := bot.store.GetDraft(ctx, requesterID)
	require.NoError(t, err)
	assert.Nil(t, draft)
	assert.Empty(t, bot.repo.tickets)
}

func TestWizardCancelCommandMidFlow(t *testing.T) {
	bot := newTestBot()
	ctx := context.Background()

	bot.handler.HandleUpdate(ctx, userCommand(requesterID, "new"))
	bot.handler.HandleUpdate(ctx, callbackFrom(requesterID, "Alice", "cat_hardware"))
	bot.handler.HandleUpdate(ctx, callbackFrom(requesterID, "Alice", "prio_low"))
	bot.handler.HandleUpdate(ctx, userText(requesterID, "Broken keyboard"))
	bot.handler.HandleUpdate(ctx, userCommand(requesterID, "cancel"))

	draft, err := bot.store.GetDraft(ctx, requesterID)
	require.NoError(t, err)
	assert.Nil(t, draft)

	last := bot.messenger.lastTo(requesterID)
	require.NotNil(t, last)
	assert.Contains(t, last.Text, "Cancelled")
}

func TestStaleWizardCallbackIgnored(t *testing.T) {
	bot := newTestBot()
	ctx := context.Background()

	// no wizard in progress: a leftover category button does nothing
	bot.handler.HandleUpdate(ctx, callbackFrom(requesterID, "Alice", "cat_network"))

	draft, err := bot.store.GetDraft(ctx, requesterID)
	require.NoError(t, err)
	assert.Nil(t, draft)
	assert.Empty(t, bot.repo.tickets)
}
