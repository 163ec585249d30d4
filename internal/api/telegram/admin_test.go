package telegram

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-bot/internal/domain"
)

func TestUnauthorizedTakeIsRejected(t *testing.T) {
	bot := newTestBot()
	runFullWizard(t, bot)
	ctx := context.Background()

	bot.handler.HandleUpdate(ctx, callbackFrom(testOtherID, "Mallory", "take_1"))

	ticket, err := bot.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNew, ticket.Status)
	assert.Nil(t, ticket.Assignee)

	require.NotEmpty(t, bot.messenger.answers)
	assert.Contains(t, bot.messenger.answers[len(bot.messenger.answers)-1], "administrators only")
}

func TestTakeThenResolveNotifiesRequester(t *testing.T) {
	bot := newTestBot()
	runFullWizard(t, bot)
	ctx := context.Background()

	bot.handler.HandleUpdate(ctx, callbackFrom(testAdminID, "Bob Admin", "take_1"))
	bot.handler.HandleUpdate(ctx, callbackFrom(testAdminID, "Bob Admin", "resolve_1"))

	ticket, err := bot.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, ticket.Status)
	require.NotNil(t, ticket.Assignee)
	assert.Equal(t, "Bob Admin", *ticket.Assignee)

	last := bot.messenger.lastTo(requesterID)
	require.NotNil(t, last)
	assert.Contains(t, last.Text, "Resolved")
	assert.Contains(t, last.Text, "Bob Admin")

	// the admin card is edited in place with the refreshed actions
	require.NotEmpty(t, bot.messenger.edited)
	card := bot.messenger.edited[len(bot.messenger.edited)-1]
	assert.Contains(t, card.Text, "Ticket #1")
	require.NotEmpty(t, card.Keyboard)
	assert.Equal(t, "retake_1", card.Keyboard[0][0].Data)
	assert.Equal(t, "close_1", card.Keyboard[0][1].Data)
}

func TestCloseOnClosedTicketChangesNothing(t *testing.T) {
	bot := newTestBot()
	runFullWizard(t, bot)
	ctx := context.Background()

	bot.handler.HandleUpdate(ctx, callbackFrom(testAdminID, "Bob Admin", "resolve_1"))
	bot.handler.HandleUpdate(ctx, callbackFrom(testAdminID, "Bob Admin", "close_1"))

	closed, err := bot.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, domain.StatusClosed, closed.Status)
	updatesBefore := bot.repo.updates
	requesterNotices := len(bot.messenger.sentTo(requesterID))

	bot.handler.HandleUpdate(ctx, callbackFrom(testAdminID, "Bob Admin", "close_1"))

	after, err := bot.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, closed.UpdatedAt, after.UpdatedAt)
	assert.Equal(t, updatesBefore, bot.repo.updates)
	assert.Len(t, bot.messenger.sentTo(requesterID), requesterNotices, "no duplicate notification")
}

func TestActionOnMissingTicket(t *testing.T) {
	bot := newTestBot()
	ctx := context.Background()

	bot.handler.HandleUpdate(ctx, callbackFrom(testAdminID, "Bob Admin", "take_17"))

	require.NotEmpty(t, bot.messenger.answers)
	assert.Contains(t, bot.messenger.answers[len(bot.messenger.answers)-1], "not found")
}

func TestAdminMenuRequiresMembership(t *testing.T) {
	bot := newTestBot()
	ctx := context.Background()

	bot.handler.HandleUpdate(ctx, userCommand(testOtherID, "admin"))

	last := bot.messenger.lastTo(testOtherID)
	require.NotNil(t, last)
	assert.Contains(t, last.Text, "administrators only")
}

func TestSolutionCaptureFlow(t *testing.T) {
	bot := newTestBot()
	runFullWizard(t, bot)
	ctx := context.Background()

	bot.handler.HandleUpdate(ctx, callbackFrom(testAdminID, "Bob Admin", "solution_1"))

	ticketID, pending, err := bot.store.PendingSolution(ctx, testAdminID)
	require.NoError(t, err)
	require.True(t, pending)
	assert.Equal(t, int64(1), ticketID)

	bot.handler.HandleUpdate(ctx, textFrom(testAdminID, "Bob Admin", "Rebooted the router"))

	ticket, err := bot.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, ticket.Solution)
	assert.Equal(t, "Rebooted the router", *ticket.Solution)
	assert.Equal(t, domain.StatusNew, ticket.Status, "solution must not change status")

	_, pending, err = bot.store.PendingSolution(ctx, testAdminID)
	require.NoError(t, err)
	assert.False(t, pending)

	// the requester hears about the solution
	last := bot.messenger.lastTo(requesterID)
	require.NotNil(t, last)
	assert.Contains(t, last.Text, "Rebooted the router")
}

func TestTicketListNavigation(t *testing.T) {
	bot := newTestBot()
	runFullWizard(t, bot)
	ctx := context.Background()

	bot.handler.HandleUpdate(ctx, callbackFrom(testAdminID, "Bob Admin", "list_new"))

	require.NotEmpty(t, bot.messenger.edited)
	listing := bot.messenger.edited[len(bot.messenger.edited)-1]
	require.NotEmpty(t, listing.Keyboard)
	assert.Equal(t, "ticket_1", listing.Keyboard[0][0].Data)

	bot.handler.HandleUpdate(ctx, callbackFrom(testAdminID, "Bob Admin", "ticket_1"))
	card := bot.messenger.edited[len(bot.messenger.edited)-1]
	assert.Contains(t, card.Text, "No internet")
}
