package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-bot/internal/auth"
	"github.com/spec-kit/helpdesk-bot/internal/domain"
	"github.com/spec-kit/helpdesk-bot/internal/events"
	"github.com/spec-kit/helpdesk-bot/internal/repository"
	"github.com/spec-kit/helpdesk-bot/internal/validate"
	apperrors "github.com/spec-kit/helpdesk-bot/pkg/util"
)

// TicketService coordinates ticket workflows. It is the only writer of
// ticket status; every transition passes the allow-list gate and the
// lifecycle table before anything is persisted.
type TicketService struct {
	tickets    repository.TicketRepository
	admins     *auth.AdminSet
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Admins     *auth.AdminSet
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload, as collected by the
// creation wizard.
type TicketCreateInput struct {
	ChatID            int64
	RequesterName     string
	RequesterUsername string
	Category          domain.TicketCategory
	Priority          domain.TicketPriority
	Title             string
	Description       string
	Location          string
	Phone             string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		admins:     deps.Admins,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket validates the collected fields and persists a new ticket in
// status "new". The created event fires only after the row is committed.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if !validate.Title(input.Title) {
		return nil, apperrors.NewValidationError("title must be 1-200 characters", nil)
	}
	if !validate.Description(input.Description) {
		return nil, apperrors.NewValidationError("description must be at least 10 characters", nil)
	}
	if !validate.Phone(input.Phone) {
		return nil, apperrors.NewValidationError("phone number is not recognized", nil)
	}
	if _, err := domain.ParseCategory(string(input.Category)); err != nil {
		return nil, apperrors.NewValidationError("unknown category", nil)
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if _, err := domain.ParsePriority(string(input.Priority)); err != nil {
		return nil, apperrors.NewValidationError("unknown priority", nil)
	}

	ticket := &domain.Ticket{
		ChatID:        input.ChatID,
		RequesterName: strings.TrimSpace(input.RequesterName),
		Category:      input.Category,
		Priority:      input.Priority,
		Status:        domain.StatusNew,
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Phone:         strings.TrimSpace(input.Phone),
	}
	if username := strings.TrimSpace(input.RequesterUsername); username != "" {
		ticket.RequesterUsername = &username
	}
	if location := strings.TrimSpace(input.Location); location != "" {
		ticket.Location = &location
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload:  events.TicketCreatedPayload{Ticket: *ticket},
	})
	return ticket, nil
}

// GetTicket fetches a ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return ticket, nil
}

// ListRequesterTickets returns the requester's own tickets, newest first.
func (s *TicketService) ListRequesterTickets(ctx context.Context, chatID int64, limit, offset int) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		ChatID: &chatID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return tickets, nil
}

// ListByStatus returns tickets in one lifecycle state, for the admin console.
func (s *TicketService) ListByStatus(ctx context.Context, actorID int64, status domain.TicketStatus, limit, offset int) ([]domain.Ticket, error) {
	if !s.admins.IsAdmin(actorID) {
		return nil, apperrors.NewForbidden("administrator access required")
	}
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses: []domain.TicketStatus{status},
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return tickets, nil
}

// CountByStatus returns ticket counts per lifecycle state.
func (s *TicketService) CountByStatus(ctx context.Context, actorID int64) (map[domain.TicketStatus]int64, error) {
	if !s.admins.IsAdmin(actorID) {
		return nil, apperrors.NewForbidden("administrator access required")
	}
	counts, err := s.tickets.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return counts, nil
}

// GetTicketForAdmin fetches a ticket behind the allow-list gate.
func (s *TicketService) GetTicketForAdmin(ctx context.Context, actorID, ticketID int64) (*domain.Ticket, error) {
	if !s.admins.IsAdmin(actorID) {
		return nil, apperrors.NewForbidden("administrator access required")
	}
	return s.GetTicket(ctx, ticketID)
}

// ApplyAction moves a ticket along the lifecycle graph. Invalid edges are
// rejected before any write, so updated_at never moves and no notification
// fires for them. Only the take action assigns the ticket.
func (s *TicketService) ApplyAction(ctx context.Context, actorID int64, actorName string, ticketID int64, action domain.TicketAction) (*domain.Ticket, error) {
	if !s.admins.IsAdmin(actorID) {
		return nil, apperrors.NewForbidden("administrator access required")
	}
	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	next, ok := domain.Apply(ticket.Status, action)
	if !ok {
		return nil, apperrors.NewInvalidTransition(
			"action not allowed from current status",
			map[string]any{"status": ticket.Status, "action": action},
		)
	}

	oldStatus := ticket.Status
	ticket.Status = next
	if action == domain.ActionTake {
		name := strings.TrimSpace(actorName)
		ticket.Assignee = &name
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, apperrors.NewInternalError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			Ticket:    *ticket,
			OldStatus: oldStatus,
			Action:    action,
			Actor:     actorName,
		},
	})
	return ticket, nil
}

// SetSolution attaches solution text to a ticket. Any status is fine and
// the status does not change.
func (s *TicketService) SetSolution(ctx context.Context, actorID int64, actorName string, ticketID int64, solution string) (*domain.Ticket, error) {
	if !s.admins.IsAdmin(actorID) {
		return nil, apperrors.NewForbidden("administrator access required")
	}
	solution = strings.TrimSpace(solution)
	if solution == "" {
		return nil, apperrors.NewValidationError("solution text must not be empty", nil)
	}
	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	ticket.Solution = &solution
	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, apperrors.NewInternalError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketSolutionSet,
		TicketID: ticket.ID,
		Payload:  events.TicketSolutionSetPayload{Ticket: *ticket, Actor: actorName},
	})
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
