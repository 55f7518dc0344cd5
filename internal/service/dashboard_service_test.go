package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-it/helpdesk-service/internal/config"
	"github.com/campus-it/helpdesk-service/internal/domain"
	"github.com/campus-it/helpdesk-service/internal/observability"
	apperrors "github.com/campus-it/helpdesk-service/pkg/util"
)

type dashboardFixture struct {
	svc           *DashboardService
	ticketRepo    *fakeTicketRepo
	statusRepo    *fakeStatusRepo
	announcements *fakeAnnouncementRepo
}

func newDashboardFixture(tickets ...*domain.Ticket) *dashboardFixture {
	ticketRepo := newFakeTicketRepo(tickets...)
	statusRepo := &fakeStatusRepo{snapshot: healthySnapshot()}
	announcements := &fakeAnnouncementRepo{items: []domain.Announcement{
		{ID: "a1", Title: "mantenimiento wifi"},
		{ID: "a2", Title: "corte plataforma lms"},
	}}
	svc := NewDashboardService(DashboardDependencies{
		TicketRepo:       ticketRepo,
		StatusService:    NewStatusService(statusRepo, zap.NewNop(), observability.NewMetrics()),
		AnnouncementRepo: announcements,
		Config:           config.DashboardConfig{RecentTicketLimit: 3, AnnouncementLimit: 5},
		Logger:           zap.NewNop(),
	})
	return &dashboardFixture{svc: svc, ticketRepo: ticketRepo, statusRepo: statusRepo, announcements: announcements}
}

func TestDashboardLoadsAllSections(t *testing.T) {
	fx := newDashboardFixture(seedTickets()...)

	data := fx.svc.Load(context.Background(), domain.Principal{ID: "student-1", Role: domain.RoleStudent})
	require.NoError(t, data.TicketsErr)
	assert.Equal(t, []string{"T2", "T1"}, ticketIDs(data.RecentTickets))
	assert.False(t, data.Services.Degraded)
	assert.Len(t, data.Announcements, 2)
}

func TestDashboardRecentTicketsLimitAndOrder(t *testing.T) {
	var tickets []*domain.Ticket
	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"T1", "T2", "T3", "T4", "T5"} {
		tickets = append(tickets, &domain.Ticket{
			ID:        id,
			Status:    domain.TicketStatusNew,
			CreatorID: "student-1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	fx := newDashboardFixture(tickets...)

	data := fx.svc.Load(context.Background(), domain.Principal{ID: "student-1", Role: domain.RoleStudent})
	require.NoError(t, data.TicketsErr)
	assert.Equal(t, []string{"T5", "T4", "T3"}, ticketIDs(data.RecentTickets))
}

func TestDashboardSectionsFailIndependently(t *testing.T) {
	fx := newDashboardFixture(seedTickets()...)
	fx.ticketRepo.failList = true
	fx.statusRepo.err = errStoreDown
	fx.announcements.err = errStoreDown

	data := fx.svc.Load(context.Background(), domain.Principal{ID: "admin-1", Role: domain.RoleAdmin})

	// tickets are critical and surface their failure
	require.Error(t, data.TicketsErr)
	assert.Equal(t, "STORE_UNAVAILABLE", apperrors.ToDomainError(data.TicketsErr).Code)

	// the decorative sections degrade instead of failing
	assert.True(t, data.Services.Degraded)
	assert.Equal(t, domain.FallbackSnapshot(), data.Services.Snapshot)
	assert.NotNil(t, data.Announcements)
	assert.Empty(t, data.Announcements)
}

func TestDashboardStatusFailureDoesNotHideTickets(t *testing.T) {
	fx := newDashboardFixture(seedTickets()...)
	fx.statusRepo.err = errStoreDown

	data := fx.svc.Load(context.Background(), domain.Principal{ID: "student-1", Role: domain.RoleStudent})
	require.NoError(t, data.TicketsErr)
	assert.Len(t, data.RecentTickets, 2)
	assert.True(t, data.Services.Degraded)
}

func TestDashboardUnknownRoleGetsTicketsError(t *testing.T) {
	fx := newDashboardFixture(seedTickets()...)

	data := fx.svc.Load(context.Background(), domain.Principal{ID: "g", Role: "guest"})
	require.Error(t, data.TicketsErr)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(data.TicketsErr).Code)

	// the rest of the dashboard still renders
	assert.False(t, data.Services.Degraded)
	assert.Len(t, data.Announcements, 2)
}
