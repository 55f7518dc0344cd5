package service

import (
	"context"
	"time"

	"github.com/campus-it/helpdesk-service/internal/domain"
	"github.com/campus-it/helpdesk-service/internal/policy"
	"github.com/campus-it/helpdesk-service/internal/repository"
	apperrors "github.com/campus-it/helpdesk-service/pkg/util"
)

// ReportService exposes aggregate ticket reports for admins.
type ReportService struct {
	tickets repository.TicketRepository
}

// NewReportService constructs the service.
func NewReportService(tickets repository.TicketRepository) *ReportService {
	return &ReportService{tickets: tickets}
}

// RecurringIssuesQuery filters the recurring-issues report. Nil fields
// mean all categories / unbounded dates.
type RecurringIssuesQuery struct {
	Category *domain.TicketCategory
	DateFrom *time.Time
	DateTo   *time.Time
}

// TopRecurringIssues returns the most frequently reported issues.
func (s *ReportService) TopRecurringIssues(ctx context.Context, p domain.Principal, query RecurringIssuesQuery) ([]domain.RecurringIssue, error) {
	if policy.ScopeFor(p).Kind != policy.ScopeAll {
		return nil, apperrors.NewForbidden("admin required")
	}
	if query.Category != nil && !domain.ValidCategory(*query.Category) {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": *query.Category})
	}
	issues, err := s.tickets.TopRecurringIssues(ctx, query.Category, query.DateFrom, query.DateTo)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return issues, nil
}
