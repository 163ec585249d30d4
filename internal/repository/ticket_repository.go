package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-bot/internal/domain"
)

// TicketFilter captures listing parameters.
type TicketFilter struct {
	ChatID   *int64
	Statuses []domain.TicketStatus
	Limit    int
	Offset   int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	CountByStatus(ctx context.Context) (map[domain.TicketStatus]int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (chat_id, requester_name, requester_username, category, priority, status, title, description, location, phone)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.ChatID,
		ticket.RequesterName,
		ticket.RequesterUsername,
		ticket.Category,
		ticket.Priority,
		ticket.Status,
		ticket.Title,
		ticket.Description,
		ticket.Location,
		ticket.Phone,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, priority=$2, assignee=$3, solution=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	if err := r.pool.QueryRow(ctx, query,
		ticket.Status,
		ticket.Priority,
		ticket.Assignee,
		ticket.Solution,
		ticket.ID,
	).Scan(&ticket.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `
        SELECT id, chat_id, requester_name, requester_username, category, priority, status,
               title, description, location, phone, assignee, solution, created_at, updated_at
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.ChatID,
		&ticket.RequesterName,
		&ticket.RequesterUsername,
		&ticket.Category,
		&ticket.Priority,
		&ticket.Status,
		&ticket.Title,
		&ticket.Description,
		&ticket.Location,
		&ticket.Phone,
		&ticket.Assignee,
		&ticket.Solution,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT id, chat_id, requester_name, requester_username, category, priority, status,
                    title, description, location, phone, assignee, solution, created_at, updated_at
             FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ChatID != nil {
		args = append(args, *filter.ChatID)
		clauses = append(clauses, fmt.Sprintf("chat_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) CountByStatus(ctx context.Context) (map[domain.TicketStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM tickets GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TicketStatus]int64)
	for rows.Next() {
		var status domain.TicketStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.ChatID,
			&ticket.RequesterName,
			&ticket.RequesterUsername,
			&ticket.Category,
			&ticket.Priority,
			&ticket.Status,
			&ticket.Title,
			&ticket.Description,
			&ticket.Location,
			&ticket.Phone,
			&ticket.Assignee,
			&ticket.Solution,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
