package activity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/shared"
)

// Entry is one item in the activity feed
type Entry struct {
	EventID       uuid.UUID `json:"event_id"`
	EventType     string    `json:"event_type"`
	AggregateType string    `json:"aggregate_type"`
	AggregateID   uuid.UUID `json:"aggregate_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Feed is a bounded, in-memory activity stream built from domain events.
// It subscribes as a wildcard handler and keeps the most recent entries,
// newest first. Older entries roll off; the feed is a UI convenience, not
// an audit log.
type Feed struct {
	mu      sync.RWMutex
	entries []Entry
	limit   int
}

// DefaultFeedLimit bounds the feed when no explicit limit is given
const DefaultFeedLimit = 100

// NewFeed creates a feed retaining at most limit entries
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return &Feed{
		entries: make([]Entry, 0, limit),
		limit:   limit,
	}
}

// Handle records the event in the feed
func (f *Feed) Handle(ctx context.Context, event shared.DomainEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry := Entry{
		EventID:       event.EventID(),
		EventType:     event.EventType(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		OccurredAt:    event.OccurredAt(),
	}

	f.entries = append([]Entry{entry}, f.entries...)
	if len(f.entries) > f.limit {
		f.entries = f.entries[:f.limit]
	}
	return nil
}

// EventTypes returns an empty slice: the feed listens to everything
func (f *Feed) EventTypes() []string {
	return nil
}

// Recent returns up to n entries, newest first
func (f *Feed) Recent(n int) []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if n <= 0 || n > len(f.entries) {
		n = len(f.entries)
	}
	out := make([]Entry, n)
	copy(out, f.entries[:n])
	return out
}

// Ensure Feed can subscribe to the event bus
var _ shared.EventHandler = (*Feed)(nil)
