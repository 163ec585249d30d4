package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-bot/internal/auth"
	"github.com/spec-kit/helpdesk-bot/internal/events"
	"github.com/spec-kit/helpdesk-bot/internal/messaging"
	"github.com/spec-kit/helpdesk-bot/internal/observability"
	"github.com/spec-kit/helpdesk-bot/internal/render"
)

// NotificationService turns domain events into chat notices. Delivery is
// best-effort: the state change the event describes has already committed,
// so send failures are logged and swallowed.
type NotificationService struct {
	dispatcher events.Dispatcher
	messenger  messaging.Messenger
	admins     *auth.AdminSet
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, messenger messaging.Messenger, admins *auth.AdminSet, logger *zap.Logger, metrics *observability.Metrics) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		messenger:  messenger,
		admins:     admins,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketSolutionSet, n.handleTicketSolutionSet)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	ticket := payload.Ticket

	n.send(ctx, messaging.Message{
		ChatID: ticket.ChatID,
		Text:   render.CreatedNotice(&ticket),
	})
	for _, adminID := range n.admins.IDs() {
		n.send(ctx, messaging.Message{
			ChatID:   adminID,
			Text:     render.AdminBroadcast(&ticket),
			Keyboard: render.AdminTicketKeyboard(&ticket),
		})
	}
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	ticket := payload.Ticket
	n.send(ctx, messaging.Message{
		ChatID: ticket.ChatID,
		Text:   render.StatusNotice(&ticket),
	})
	return nil
}

func (n *NotificationService) handleTicketSolutionSet(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketSolutionSetPayload)
	if !ok {
		return nil
	}
	ticket := payload.Ticket
	n.send(ctx, messaging.Message{
		ChatID: ticket.ChatID,
		Text:   render.SolutionNotice(&ticket),
	})
	return nil
}

func (n *NotificationService) send(ctx context.Context, msg messaging.Message) {
	if err := n.messenger.Send(ctx, msg); err != nil {
		n.metrics.RecordSendFailure()
		n.logger.Warn("notification delivery failed",
			zap.Int64("chat_id", msg.ChatID),
			zap.Error(err))
	}
}
