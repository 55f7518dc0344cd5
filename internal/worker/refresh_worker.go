// Package worker wires fire-and-forget refresh of cached listings.
package worker

import (
	"context"

	"github.com/campus-it/helpdesk-service/internal/cache"
	"github.com/campus-it/helpdesk-service/internal/events"
)

// Listing cache operations invalidated by ticket mutations. The keys
// mirror the ones the services read through.
const (
	OpRecentTickets  = "recent-tickets"
	OpAssignmentRows = "assignment-rows"
)

// StartRefreshWorker subscribes cache invalidation to ticket mutation
// events so viewer listings refresh after the write is acknowledged.
func StartRefreshWorker(dispatcher events.Dispatcher, listings *cache.ListingCache) {
	if dispatcher == nil || listings == nil {
		return
	}

	dispatcher.Subscribe(events.EventTicketReassigned, func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.TicketReassignedPayload)
		if !ok {
			return nil
		}
		keys := []string{
			cache.Key(OpAssignmentRows),
			cache.Key(OpRecentTickets, event.Actor.ID),
			cache.Key(OpRecentTickets, payload.CreatorID),
			cache.Key(OpRecentTickets, payload.NewAssigneeID),
		}
		if payload.OldAssigneeID != nil {
			keys = append(keys, cache.Key(OpRecentTickets, *payload.OldAssigneeID))
		}
		listings.Invalidate(ctx, keys...)
		return nil
	})

	dispatcher.Subscribe(events.EventTicketStatusChanged, func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.TicketStatusChangedPayload)
		if !ok {
			return nil
		}
		keys := []string{
			cache.Key(OpAssignmentRows),
			cache.Key(OpRecentTickets, event.Actor.ID),
			cache.Key(OpRecentTickets, payload.CreatorID),
		}
		if payload.AssigneeID != nil {
			keys = append(keys, cache.Key(OpRecentTickets, *payload.AssigneeID))
		}
		listings.Invalidate(ctx, keys...)
		return nil
	})

	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, event events.Event) error {
		listings.Invalidate(ctx,
			cache.Key(OpAssignmentRows),
			cache.Key(OpRecentTickets, event.Actor.ID),
		)
		return nil
	})
}
