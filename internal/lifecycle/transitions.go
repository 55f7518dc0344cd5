// Package lifecycle validates and applies ticket status transitions.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/campus-it/helpdesk-service/internal/domain"
)

// IllegalTransitionError reports a status change outside the table.
type IllegalTransitionError struct {
	From domain.TicketStatus
	To   domain.TicketStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal ticket transition %s -> %s", e.From, e.To)
}

var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusNew:        {domain.TicketStatusAssigned, domain.TicketStatusClosed},
	domain.TicketStatusAssigned:   {domain.TicketStatusInProgress, domain.TicketStatusClosed},
	domain.TicketStatusInProgress: {domain.TicketStatusResolved, domain.TicketStatusClosed},
	domain.TicketStatusResolved:   {domain.TicketStatusClosed},
	domain.TicketStatusClosed:     {},
}

// CanTransition reports whether next is a legal successor of current.
func CanTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// AllowedFrom returns the legal successor statuses of current.
func AllowedFrom(current domain.TicketStatus) []domain.TicketStatus {
	return allowedTransitions[current]
}

// Transition returns a copy of ticket moved to target, stamping
// UpdatedAt. The input is never mutated; illegal moves return
// *IllegalTransitionError and the zero Ticket.
func Transition(ticket domain.Ticket, target domain.TicketStatus) (domain.Ticket, error) {
	if !CanTransition(ticket.Status, target) {
		return domain.Ticket{}, &IllegalTransitionError{From: ticket.Status, To: target}
	}
	updated := ticket
	updated.Status = target
	updated.UpdatedAt = time.Now()
	return updated, nil
}

// AssignmentStatus resolves the status a ticket takes when a technician
// is assigned. Assigning an unassigned NEW ticket is the only move that
// bundles an assignment change with a status change; lateral
// reassignment keeps the current non-terminal status. Terminal tickets
// reject with *IllegalTransitionError.
func AssignmentStatus(current domain.TicketStatus) (domain.TicketStatus, error) {
	switch current {
	case domain.TicketStatusNew:
		return domain.TicketStatusAssigned, nil
	case domain.TicketStatusAssigned, domain.TicketStatusInProgress:
		return current, nil
	default:
		return "", &IllegalTransitionError{From: current, To: domain.TicketStatusAssigned}
	}
}
