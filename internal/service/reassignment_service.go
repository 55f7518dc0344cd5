package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campus-it/helpdesk-service/internal/domain"
	"github.com/campus-it/helpdesk-service/internal/events"
	"github.com/campus-it/helpdesk-service/internal/lifecycle"
	"github.com/campus-it/helpdesk-service/internal/policy"
	"github.com/campus-it/helpdesk-service/internal/repository"
	apperrors "github.com/campus-it/helpdesk-service/pkg/util"
)

// ReassignmentService orchestrates admin reassignment of tickets.
type ReassignmentService struct {
	tickets    repository.TicketRepository
	profiles   repository.ProfileRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ReassignmentDependencies bundles collaborators.
type ReassignmentDependencies struct {
	TicketRepo  repository.TicketRepository
	ProfileRepo repository.ProfileRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewReassignmentService creates the service.
func NewReassignmentService(deps ReassignmentDependencies) *ReassignmentService {
	return &ReassignmentService{
		tickets:    deps.TicketRepo,
		profiles:   deps.ProfileRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Roster returns the current technician roster. Lookup failures degrade
// to an empty roster so the reassignment view renders "no technicians
// available" instead of failing the whole admin page.
func (s *ReassignmentService) Roster(ctx context.Context) []domain.TechnicianProfile {
	techs, err := s.profiles.ListTechnicians(ctx)
	if err != nil {
		s.logger.Warn("technician roster lookup failed", zap.Error(err))
		return []domain.TechnicianProfile{}
	}
	if techs == nil {
		return []domain.TechnicianProfile{}
	}
	return techs
}

// Reassign hands a ticket to a technician. A NEW ticket moves to
// ASSIGNED as part of the same write; an already-assigned ticket keeps
// its status (lateral reassignment); terminal tickets reject and the
// store is untouched. Assignment and status always land in one
// conditional update.
func (s *ReassignmentService) Reassign(ctx context.Context, ticketID, technicianID string, actor domain.Principal) (*domain.Ticket, error) {
	if !policy.CanReassign(actor) {
		return nil, apperrors.NewForbidden("admin required")
	}
	if !s.rosterContains(ctx, technicianID) {
		return nil, apperrors.NewUnknownTechnician(technicianID)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}

	newStatus, err := lifecycle.AssignmentStatus(ticket.Status)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	// guard on the exact status the decision was made against; if the
	// ticket moved at all between read and write the update is refused
	// rather than committing a status derived from stale state
	oldAssignee := ticket.AssignedToID
	oldStatus := ticket.Status
	if err := s.tickets.UpdateAssignment(ctx, ticket.ID, technicianID, newStatus, []domain.TicketStatus{ticket.Status}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewIllegalTransition(ticket.Status, newStatus)
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}

	ticket.AssignedToID = &technicianID
	ticket.Status = newStatus
	ticket.UpdatedAt = time.Now()

	s.publishReassigned(ctx, actor, ticket, oldAssignee, oldStatus)
	return ticket, nil
}

func (s *ReassignmentService) rosterContains(ctx context.Context, technicianID string) bool {
	for _, tech := range s.Roster(ctx) {
		if tech.ID == technicianID {
			return true
		}
	}
	return false
}

func (s *ReassignmentService) publishReassigned(ctx context.Context, actor domain.Principal, ticket *domain.Ticket, oldAssignee *string, oldStatus domain.TicketStatus) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketReassigned,
		TicketID:  ticket.ID,
		Actor:     events.Actor{ID: actor.ID, Role: actor.Role},
		Timestamp: time.Now(),
		Payload: events.TicketReassignedPayload{
			OldAssigneeID: oldAssignee,
			NewAssigneeID: *ticket.AssignedToID,
			CreatorID:     ticket.CreatorID,
			OldStatus:     oldStatus,
			NewStatus:     ticket.Status,
		},
	}
	_ = s.dispatcher.Publish(ctx, event)
}
