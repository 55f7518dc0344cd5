package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-it/helpdesk-service/internal/cache"
	"github.com/campus-it/helpdesk-service/internal/domain"
	"github.com/campus-it/helpdesk-service/internal/events"
)

type memStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string][]byte)}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.entries[key]
	return raw, ok, nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *memStore) Del(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}

func seedListing(t *testing.T, listings *cache.ListingCache, key string) {
	t.Helper()
	require.True(t, listings.Put(context.Background(), key, listings.Begin(key), []string{"seed"}))
}

func cached(listings *cache.ListingCache, key string) bool {
	var dest []string
	return listings.Get(context.Background(), key, &dest)
}

func TestReassignmentInvalidatesAffectedListings(t *testing.T) {
	ctx := context.Background()
	listings := cache.NewListingCache(newMemStore(), time.Minute, zap.NewNop())
	dispatcher := events.NewInMemoryDispatcher()
	StartRefreshWorker(dispatcher, listings)

	oldAssignee := "tech-3"
	affected := []string{
		cache.Key(OpAssignmentRows),
		cache.Key(OpRecentTickets, "admin-1"),
		cache.Key(OpRecentTickets, "student-1"),
		cache.Key(OpRecentTickets, "tech-7"),
		cache.Key(OpRecentTickets, "tech-3"),
	}
	unaffected := cache.Key(OpRecentTickets, "student-2")
	for _, key := range append(affected, unaffected) {
		seedListing(t, listings, key)
	}

	err := dispatcher.Publish(ctx, events.Event{
		Type:  events.EventTicketReassigned,
		Actor: events.Actor{ID: "admin-1", Role: domain.RoleAdmin},
		Payload: events.TicketReassignedPayload{
			OldAssigneeID: &oldAssignee,
			NewAssigneeID: "tech-7",
			CreatorID:     "student-1",
			OldStatus:     domain.TicketStatusInProgress,
			NewStatus:     domain.TicketStatusInProgress,
		},
	})
	require.NoError(t, err)

	for _, key := range affected {
		assert.False(t, cached(listings, key), "key %s must be invalidated", key)
	}
	assert.True(t, cached(listings, unaffected), "unrelated viewers keep their cached listing")
}

func TestStatusChangeInvalidatesCreatorAndAssignee(t *testing.T) {
	ctx := context.Background()
	listings := cache.NewListingCache(newMemStore(), time.Minute, zap.NewNop())
	dispatcher := events.NewInMemoryDispatcher()
	StartRefreshWorker(dispatcher, listings)

	assignee := "tech-3"
	affected := []string{
		cache.Key(OpAssignmentRows),
		cache.Key(OpRecentTickets, "tech-3"),
		cache.Key(OpRecentTickets, "student-1"),
	}
	for _, key := range affected {
		seedListing(t, listings, key)
	}

	err := dispatcher.Publish(ctx, events.Event{
		Type:  events.EventTicketStatusChanged,
		Actor: events.Actor{ID: "tech-3", Role: domain.RoleTechnician},
		Payload: events.TicketStatusChangedPayload{
			OldStatus:  domain.TicketStatusAssigned,
			NewStatus:  domain.TicketStatusInProgress,
			CreatorID:  "student-1",
			AssigneeID: &assignee,
		},
	})
	require.NoError(t, err)

	for _, key := range affected {
		assert.False(t, cached(listings, key), "key %s must be invalidated", key)
	}
}

func TestCreateInvalidatesCreatorListing(t *testing.T) {
	ctx := context.Background()
	listings := cache.NewListingCache(newMemStore(), time.Minute, zap.NewNop())
	dispatcher := events.NewInMemoryDispatcher()
	StartRefreshWorker(dispatcher, listings)

	creatorKey := cache.Key(OpRecentTickets, "student-1")
	seedListing(t, listings, creatorKey)
	seedListing(t, listings, cache.Key(OpAssignmentRows))

	err := dispatcher.Publish(ctx, events.Event{
		Type:    events.EventTicketCreated,
		Actor:   events.Actor{ID: "student-1", Role: domain.RoleStudent},
		Payload: events.TicketCreatedPayload{Category: domain.CategoryCampusWifi, Title: "sin wifi"},
	})
	require.NoError(t, err)

	assert.False(t, cached(listings, creatorKey))
	assert.False(t, cached(listings, cache.Key(OpAssignmentRows)))
}
