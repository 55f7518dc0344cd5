package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-it/helpdesk-service/internal/domain"
	"github.com/campus-it/helpdesk-service/internal/policy"
)

// ListFilter narrows a scoped ticket listing.
type ListFilter struct {
	Category *domain.TicketCategory
	Statuses []domain.TicketStatus
	Limit    int
	Offset   int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListVisible(ctx context.Context, scope policy.TicketScope, filter ListFilter) ([]domain.Ticket, error)
	ListAssignmentRows(ctx context.Context) ([]domain.AssignmentRow, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.TicketStatus) error
	UpdateAssignment(ctx context.Context, id, technicianID string, status domain.TicketStatus, allowedFrom []domain.TicketStatus) error
	TopRecurringIssues(ctx context.Context, category *domain.TicketCategory, dateFrom, dateTo *time.Time) ([]domain.RecurringIssue, error)
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
        INSERT INTO tickets (ticket_number, title, description, category, status, creator_id, assigned_to_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.TicketNumber,
		ticket.Title,
		ticket.Description,
		ticket.Category,
		ticket.Status,
		ticket.CreatorID,
		ticket.AssignedToID,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, ticket_number, title, description, category, status, creator_id, assigned_to_id, created_at, updated_at
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.Title,
		&ticket.Description,
		&ticket.Category,
		&ticket.Status,
		&ticket.CreatorID,
		&ticket.AssignedToID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListVisible applies the role-derived scope as SQL predicates. Results
// are ordered by created_at descending; recency is a contract of the
// listing, not an artifact.
func (r *ticketRepository) ListVisible(ctx context.Context, scope policy.TicketScope, filter ListFilter) ([]domain.Ticket, error) {
	base := `SELECT id, ticket_number, title, description, category, status, creator_id, assigned_to_id, created_at, updated_at
             FROM tickets`
	args := []any{}
	clauses := []string{scopeClause(scope, &args)}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
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

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListAssignmentRows(ctx context.Context) ([]domain.AssignmentRow, error) {
	const query = `
        SELECT id, ticket_number, title, assigned_to_id
        FROM tickets ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AssignmentRow
	for rows.Next() {
		var row domain.AssignmentRow
		if err := rows.Scan(&row.ID, &row.TicketNumber, &row.Title, &row.AssignedToID); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// UpdateStatus commits a transition only while the stored status still
// matches the one it was validated against. Zero rows affected means
// the ticket is gone or moved concurrently.
func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, from, to domain.TicketStatus) error {
	const query = `UPDATE tickets SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`
	cmd, err := r.pool.Exec(ctx, query, to, id, from)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateAssignment writes assignee and status in one conditional UPDATE
// guarded on the expected source statuses, so a reassignment can never
// be applied partially. Zero rows affected means the guard failed.
func (r *ticketRepository) UpdateAssignment(ctx context.Context, id, technicianID string, status domain.TicketStatus, allowedFrom []domain.TicketStatus) error {
	const query = `
        UPDATE tickets SET assigned_to_id=$1, status=$2, updated_at=NOW()
        WHERE id=$3 AND status = ANY($4)`
	from := make([]string, len(allowedFrom))
	for i, s := range allowedFrom {
		from[i] = string(s)
	}
	cmd, err := r.pool.Exec(ctx, query, technicianID, status, id, from)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// TopRecurringIssues calls the get_top_recurring_issues procedure. A
// nil category means all categories; nil dates mean unbounded.
func (r *ticketRepository) TopRecurringIssues(ctx context.Context, category *domain.TicketCategory, dateFrom, dateTo *time.Time) ([]domain.RecurringIssue, error) {
	const query = `SELECT title, category, count FROM get_top_recurring_issues($1,$2,$3)`
	rows, err := r.pool.Query(ctx, query, category, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RecurringIssue
	for rows.Next() {
		var issue domain.RecurringIssue
		if err := rows.Scan(&issue.Title, &issue.Category, &issue.Count); err != nil {
			return nil, err
		}
		result = append(result, issue)
	}
	return result, rows.Err()
}

func scopeClause(scope policy.TicketScope, args *[]any) string {
	switch scope.Kind {
	case policy.ScopeAll:
		return "1=1"
	case policy.ScopeAssigned:
		*args = append(*args, scope.PrincipalID)
		return fmt.Sprintf("assigned_to_id=$%d", len(*args))
	case policy.ScopeOwn:
		*args = append(*args, scope.PrincipalID)
		return fmt.Sprintf("creator_id=$%d", len(*args))
	default:
		// denied scopes never reach the store through the services; the
		// contradiction keeps a stray call from leaking rows
		return "1=0"
	}
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TicketNumber,
			&ticket.Title,
			&ticket.Description,
			&ticket.Category,
			&ticket.Status,
			&ticket.CreatorID,
			&ticket.AssignedToID,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
