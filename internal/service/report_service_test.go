package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-it/helpdesk-service/internal/domain"
	apperrors "github.com/campus-it/helpdesk-service/pkg/util"
)

func TestTopRecurringIssues(t *testing.T) {
	repo := newFakeTicketRepo()
	repo.issues = []domain.RecurringIssue{
		{Category: domain.CategoryCampusWifi, Title: "wifi lento biblioteca", Count: 12},
		{Category: domain.CategoryLMS, Title: "no carga plataforma", Count: 7},
	}
	svc := NewReportService(repo)

	issues, err := svc.TopRecurringIssues(context.Background(), domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}, RecurringIssuesQuery{})
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, int64(12), issues[0].Count)
}

func TestTopRecurringIssuesAdminOnly(t *testing.T) {
	svc := NewReportService(newFakeTicketRepo())

	for _, role := range []domain.Role{domain.RoleStudent, domain.RoleProfessor, domain.RoleTechnician, "guest"} {
		_, err := svc.TopRecurringIssues(context.Background(), domain.Principal{ID: "u", Role: role}, RecurringIssuesQuery{})
		require.Error(t, err, "role %s must not run reports", role)
		assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
	}
}

func TestTopRecurringIssuesValidatesCategory(t *testing.T) {
	svc := NewReportService(newFakeTicketRepo())
	bad := domain.TicketCategory("impresoras")

	_, err := svc.TopRecurringIssues(context.Background(), domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}, RecurringIssuesQuery{Category: &bad})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestTopRecurringIssuesStoreFailure(t *testing.T) {
	repo := newFakeTicketRepo()
	repo.failList = true
	svc := NewReportService(repo)

	_, err := svc.TopRecurringIssues(context.Background(), domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}, RecurringIssuesQuery{})
	require.Error(t, err)
	assert.Equal(t, "STORE_UNAVAILABLE", apperrors.ToDomainError(err).Code)
}
