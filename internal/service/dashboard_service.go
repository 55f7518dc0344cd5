package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/campus-it/helpdesk-service/internal/cache"
	"github.com/campus-it/helpdesk-service/internal/config"
	"github.com/campus-it/helpdesk-service/internal/domain"
	"github.com/campus-it/helpdesk-service/internal/policy"
	"github.com/campus-it/helpdesk-service/internal/repository"
	apperrors "github.com/campus-it/helpdesk-service/pkg/util"
)

// DashboardData aggregates the three independent dashboard reads. Each
// section fails on its own: a broken status source never hides tickets
// and vice versa. TicketsErr is the surfaced error state for the
// critical ticket read; the decorative sections degrade instead.
type DashboardData struct {
	RecentTickets []domain.Ticket
	TicketsErr    error
	Services      StatusResult
	Announcements []domain.Announcement
}

// DashboardService composes recent tickets, service status and the
// announcement feed for the viewer.
type DashboardService struct {
	tickets       repository.TicketRepository
	status        *StatusService
	announcements repository.AnnouncementRepository
	listings      *cache.ListingCache
	cfg           config.DashboardConfig
	logger        *zap.Logger
}

// DashboardDependencies bundles collaborators.
type DashboardDependencies struct {
	TicketRepo       repository.TicketRepository
	StatusService    *StatusService
	AnnouncementRepo repository.AnnouncementRepository
	Listings         *cache.ListingCache
	Config           config.DashboardConfig
	Logger           *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	return &DashboardService{
		tickets:       deps.TicketRepo,
		status:        deps.StatusService,
		announcements: deps.AnnouncementRepo,
		listings:      deps.Listings,
		cfg:           deps.Config,
		logger:        deps.Logger,
	}
}

// Load fetches the three dashboard sections concurrently and joins the
// results. No ordering is guaranteed between the fetches; each lands
// independently.
func (s *DashboardService) Load(ctx context.Context, p domain.Principal) DashboardData {
	var data DashboardData
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		data.RecentTickets, data.TicketsErr = s.recentTickets(ctx, p)
	}()
	go func() {
		defer wg.Done()
		data.Services = s.status.FetchServiceStatus(ctx)
	}()
	go func() {
		defer wg.Done()
		data.Announcements = s.recentAnnouncements(ctx)
	}()
	wg.Wait()

	return data
}

// recentTickets returns the viewer's newest tickets, through the
// listing cache. The cache key carries the principal id so an admin's
// reassignment refresh lands on the right viewers.
func (s *DashboardService) recentTickets(ctx context.Context, p domain.Principal) ([]domain.Ticket, error) {
	scope := policy.ScopeFor(p)
	if scope.Denied() {
		return nil, apperrors.NewForbidden("role has no ticket visibility")
	}

	key := cache.Key("recent-tickets", p.ID)
	var cached []domain.Ticket
	if s.listings.Get(ctx, key, &cached) {
		return cached, nil
	}
	gen := s.listings.Begin(key)

	tickets, err := s.tickets.ListVisible(ctx, scope, repository.ListFilter{Limit: s.cfg.RecentTicketLimit})
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	s.listings.Put(ctx, key, gen, tickets)
	return tickets, nil
}

// recentAnnouncements degrades to an empty feed on error; the feed is
// decorative and never blocks the dashboard.
func (s *DashboardService) recentAnnouncements(ctx context.Context) []domain.Announcement {
	items, err := s.announcements.ListRecent(ctx, s.cfg.AnnouncementLimit)
	if err != nil {
		s.logger.Warn("announcement feed unavailable", zap.Error(err))
		return []domain.Announcement{}
	}
	if items == nil {
		return []domain.Announcement{}
	}
	return items
}
