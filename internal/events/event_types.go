package events

import (
	"time"

	"github.com/spec-kit/helpdesk-bot/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketSolutionSet   EventType = "ticket_solution_set"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload carries the freshly persisted ticket.
type TicketCreatedPayload struct {
	Ticket domain.Ticket `json:"ticket"`
}

// TicketStatusChangedPayload carries the ticket after a transition.
type TicketStatusChangedPayload struct {
	Ticket    domain.Ticket       `json:"ticket"`
	OldStatus domain.TicketStatus `json:"old_status"`
	Action    domain.TicketAction `json:"action"`
	Actor     string              `json:"actor"`
}

// TicketSolutionSetPayload carries the ticket after a solution was attached.
type TicketSolutionSetPayload struct {
	Ticket domain.Ticket `json:"ticket"`
	Actor  string        `json:"actor"`
}
