package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campus-it/helpdesk-service/internal/cache"
	"github.com/campus-it/helpdesk-service/internal/domain"
	"github.com/campus-it/helpdesk-service/internal/events"
	"github.com/campus-it/helpdesk-service/internal/lifecycle"
	"github.com/campus-it/helpdesk-service/internal/policy"
	"github.com/campus-it/helpdesk-service/internal/repository"
	apperrors "github.com/campus-it/helpdesk-service/pkg/util"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	listings   *cache.ListingCache
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Listings   *cache.ListingCache
	Dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		listings:   deps.Listings,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    domain.TicketCategory
}

// TicketListQuery narrows a scoped listing.
type TicketListQuery struct {
	Category *domain.TicketCategory
	Statuses []domain.TicketStatus
	Limit    int
	Offset   int
}

// ListTickets returns the tickets visible to the principal, newest
// first. Unknown roles get an explicit Forbidden, never an empty list;
// store failures surface as StoreUnavailable for the same reason.
func (s *TicketService) ListTickets(ctx context.Context, p domain.Principal, query TicketListQuery) ([]domain.Ticket, error) {
	scope := policy.ScopeFor(p)
	if scope.Denied() {
		return nil, apperrors.NewForbidden("role has no ticket visibility")
	}
	filter := repository.ListFilter{
		Category: query.Category,
		Statuses: query.Statuses,
		Limit:    query.Limit,
		Offset:   query.Offset,
	}
	tickets, err := s.tickets.ListVisible(ctx, scope, filter)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return tickets, nil
}

// GetTicket fetches one ticket, enforcing the principal's scope.
func (s *TicketService) GetTicket(ctx context.Context, p domain.Principal, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}
	if !policy.ScopeFor(p).Allows(*ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// CreateTicket files a new ticket for a student or professor. New
// tickets start unassigned in status NEW.
func (s *TicketService) CreateTicket(ctx context.Context, p domain.Principal, input TicketCreateInput) (*domain.Ticket, error) {
	if !policy.CanCreate(p) {
		return nil, apperrors.NewForbidden("only students and professors file tickets")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if !domain.ValidCategory(input.Category) {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": input.Category})
	}

	ticket := &domain.Ticket{
		TicketNumber: generateTicketNumber(),
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		Category:     input.Category,
		Status:       domain.TicketStatusNew,
		CreatorID:    p.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    events.Actor{ID: p.ID, Role: p.Role},
		Payload: events.TicketCreatedPayload{
			Category: ticket.Category,
			Title:    ticket.Title,
		},
	})
	return ticket, nil
}

// UpdateStatus moves a ticket through the lifecycle on behalf of a
// technician or admin. The transition table decides legality; the store
// is untouched on an illegal move.
func (s *TicketService) UpdateStatus(ctx context.Context, p domain.Principal, ticketID string, target domain.TicketStatus) (*domain.Ticket, error) {
	if !policy.CanTransition(p) {
		return nil, apperrors.NewForbidden("role cannot change ticket status")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}
	if !policy.ScopeFor(p).Allows(*ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	updated, err := lifecycle.Transition(*ticket, target)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	// the write is guarded on the status the transition was validated
	// against; a concurrent move between read and write refuses here
	if err := s.tickets.UpdateStatus(ctx, ticket.ID, ticket.Status, updated.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewIllegalTransition(ticket.Status, target)
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Actor:    events.Actor{ID: p.ID, Role: p.Role},
		Payload: events.TicketStatusChangedPayload{
			OldStatus:  ticket.Status,
			NewStatus:  updated.Status,
			CreatorID:  ticket.CreatorID,
			AssigneeID: ticket.AssignedToID,
		},
	})
	return &updated, nil
}

// ListAssignmentRows returns the admin projection backing the
// reassignment table. The admin-only constraint is enforced here, at
// the repository's call site; the repository itself does not re-check
// roles.
func (s *TicketService) ListAssignmentRows(ctx context.Context, p domain.Principal) ([]domain.AssignmentRow, error) {
	if policy.ScopeFor(p).Kind != policy.ScopeAll {
		return nil, apperrors.NewForbidden("admin required")
	}

	key := cache.Key("assignment-rows")
	var cached []domain.AssignmentRow
	if s.listings.Get(ctx, key, &cached) {
		return cached, nil
	}
	gen := s.listings.Begin(key)

	rows, err := s.tickets.ListAssignmentRows(ctx)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	s.listings.Put(ctx, key, gen, rows)
	return rows, nil
}

func generateTicketNumber() string {
	return "HD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
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
