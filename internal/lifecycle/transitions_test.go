package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-it/helpdesk-service/internal/domain"
)

var allStatuses = []domain.TicketStatus{
	domain.TicketStatusNew,
	domain.TicketStatusAssigned,
	domain.TicketStatusInProgress,
	domain.TicketStatusResolved,
	domain.TicketStatusClosed,
}

// legalMoves is the full transition table; every (from, to) pair not
// listed here must be rejected.
var legalMoves = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusNew:        {domain.TicketStatusAssigned, domain.TicketStatusClosed},
	domain.TicketStatusAssigned:   {domain.TicketStatusInProgress, domain.TicketStatusClosed},
	domain.TicketStatusInProgress: {domain.TicketStatusResolved, domain.TicketStatusClosed},
	domain.TicketStatusResolved:   {domain.TicketStatusClosed},
	domain.TicketStatusClosed:     {},
}

func isLegal(from, to domain.TicketStatus) bool {
	for _, target := range legalMoves[from] {
		if target == to {
			return true
		}
	}
	return false
}

func TestTransitionTableIsExhaustive(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			ticket := domain.Ticket{ID: "t1", Status: from}
			updated, err := Transition(ticket, to)
			if isLegal(from, to) {
				require.NoError(t, err, "%s -> %s should be legal", from, to)
				assert.Equal(t, to, updated.Status)
			} else {
				require.Error(t, err, "%s -> %s should be illegal", from, to)
				var transitionErr *IllegalTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, from, transitionErr.From)
				assert.Equal(t, to, transitionErr.To)
			}
		}
	}
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	ticket := domain.Ticket{ID: "t1", Status: domain.TicketStatusNew, UpdatedAt: created}

	updated, err := Transition(ticket, domain.TicketStatusAssigned)
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusNew, ticket.Status)
	assert.Equal(t, created, ticket.UpdatedAt)
	assert.Equal(t, domain.TicketStatusAssigned, updated.Status)
	assert.True(t, updated.UpdatedAt.After(created))
}

func TestTransitionFromResolvedToInProgressFails(t *testing.T) {
	_, err := Transition(domain.Ticket{Status: domain.TicketStatusResolved}, domain.TicketStatusInProgress)

	var transitionErr *IllegalTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.TicketStatusResolved, transitionErr.From)
	assert.Equal(t, domain.TicketStatusInProgress, transitionErr.To)
}

func TestNoResolveShortcutFromNew(t *testing.T) {
	_, err := Transition(domain.Ticket{Status: domain.TicketStatusNew}, domain.TicketStatusResolved)
	require.Error(t, err)
}

func TestAssignmentStatus(t *testing.T) {
	status, err := AssignmentStatus(domain.TicketStatusNew)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusAssigned, status)

	// lateral reassignment keeps the current status
	status, err = AssignmentStatus(domain.TicketStatusAssigned)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusAssigned, status)

	status, err = AssignmentStatus(domain.TicketStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, status)

	_, err = AssignmentStatus(domain.TicketStatusResolved)
	require.Error(t, err)
	_, err = AssignmentStatus(domain.TicketStatusClosed)
	require.Error(t, err)
}

func TestTerminal(t *testing.T) {
	assert.True(t, domain.TicketStatusResolved.Terminal())
	assert.True(t, domain.TicketStatusClosed.Terminal())
	assert.False(t, domain.TicketStatusNew.Terminal())
	assert.False(t, domain.TicketStatusAssigned.Terminal())
	assert.False(t, domain.TicketStatusInProgress.Terminal())
}
