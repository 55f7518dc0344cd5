package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campus-it/helpdesk-service/internal/domain"
	"github.com/campus-it/helpdesk-service/internal/events"
	"github.com/campus-it/helpdesk-service/internal/policy"
	"github.com/campus-it/helpdesk-service/internal/repository"
)

var errStoreDown = errors.New("store down")

// fakeTicketRepo is an in-memory TicketRepository honoring the same
// contracts as the pgx implementation, with injectable failures.
type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]*domain.Ticket
	issues  []domain.RecurringIssue

	failList       bool
	failGet        bool
	failUpdate     bool
	assignmentRows int
	updateCalls    int
}

func newFakeTicketRepo(tickets ...*domain.Ticket) *fakeTicketRepo {
	repo := &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
	for _, t := range tickets {
		copied := *t
		repo.tickets[t.ID] = &copied
	}
	return repo
}

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	if r.failUpdate {
		return errStoreDown
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if ticket.ID == "" {
		ticket.ID = "ticket-" + ticket.TicketNumber
	}
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if r.failGet {
		return nil, errStoreDown
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) ListVisible(ctx context.Context, scope policy.TicketScope, filter repository.ListFilter) ([]domain.Ticket, error) {
	if r.failList {
		return nil, errStoreDown
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if !scope.Allows(*ticket) {
			continue
		}
		if filter.Category != nil && ticket.Category != *filter.Category {
			continue
		}
		result = append(result, *ticket)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *fakeTicketRepo) ListAssignmentRows(ctx context.Context) ([]domain.AssignmentRow, error) {
	if r.failList {
		return nil, errStoreDown
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignmentRows++
	var rows []domain.AssignmentRow
	for _, ticket := range r.tickets {
		rows = append(rows, domain.AssignmentRow{
			ID:           ticket.ID,
			TicketNumber: ticket.TicketNumber,
			Title:        ticket.Title,
			AssignedToID: ticket.AssignedToID,
		})
	}
	return rows, nil
}

func (r *fakeTicketRepo) UpdateStatus(ctx context.Context, id string, from, to domain.TicketStatus) error {
	if r.failUpdate {
		return errStoreDown
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok || ticket.Status != from {
		return pgx.ErrNoRows
	}
	ticket.Status = to
	ticket.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) UpdateAssignment(ctx context.Context, id, technicianID string, status domain.TicketStatus, allowedFrom []domain.TicketStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if r.failUpdate {
		return errStoreDown
	}
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	guarded := false
	for _, s := range allowedFrom {
		if ticket.Status == s {
			guarded = true
			break
		}
	}
	if !guarded {
		return pgx.ErrNoRows
	}
	ticket.AssignedToID = &technicianID
	ticket.Status = status
	ticket.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) TopRecurringIssues(ctx context.Context, category *domain.TicketCategory, dateFrom, dateTo *time.Time) ([]domain.RecurringIssue, error) {
	if r.failList {
		return nil, errStoreDown
	}
	return r.issues, nil
}

// staleReadRepo serves reads from a fixed snapshot while writes still
// hit the live store, simulating a concurrent move landing between a
// service's read and its guarded write.
type staleReadRepo struct {
	*fakeTicketRepo
	snapshot domain.Ticket
}

func (r *staleReadRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	copied := r.snapshot
	return &copied, nil
}

func (r *fakeTicketRepo) stored(id string) domain.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.tickets[id]
}

type fakeProfileRepo struct {
	techs []domain.TechnicianProfile
	err   error
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, id string) (*domain.TechnicianProfile, error) {
	for i := range r.techs {
		if r.techs[i].ID == id {
			return &r.techs[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeProfileRepo) ListTechnicians(ctx context.Context) ([]domain.TechnicianProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.techs, nil
}

type fakeStatusRepo struct {
	snapshot domain.StatusSnapshot
	err      error
}

func (r *fakeStatusRepo) FetchSnapshot(ctx context.Context) (domain.StatusSnapshot, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.snapshot, nil
}

type fakeAnnouncementRepo struct {
	items []domain.Announcement
	err   error
}

func (r *fakeAnnouncementRepo) ListRecent(ctx context.Context, limit int) ([]domain.Announcement, error) {
	if r.err != nil {
		return nil, r.err
	}
	if limit > 0 && len(r.items) > limit {
		return r.items[:limit], nil
	}
	return r.items, nil
}

// captureDispatcher records published events.
type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *captureDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
