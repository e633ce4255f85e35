package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/consumer"
	"github.com/sefcontact/engine/internal/domain/shared"
)

// ConsumerRepository is an in-memory consumer.ConsumerRepository
type ConsumerRepository struct {
	mu        sync.RWMutex
	consumers map[uuid.UUID]consumer.Consumer
	order     []uuid.UUID
}

// NewConsumerRepository creates an empty in-memory consumer repository
func NewConsumerRepository() *ConsumerRepository {
	return &ConsumerRepository{
		consumers: make(map[uuid.UUID]consumer.Consumer),
		order:     make([]uuid.UUID, 0),
	}
}

func cloneConsumer(c consumer.Consumer) consumer.Consumer {
	out := c
	out.Notes = append([]consumer.Note(nil), c.Notes...)
	if c.LastPaymentAt != nil {
		at := *c.LastPaymentAt
		out.LastPaymentAt = &at
	}
	return out
}

// FindByID returns a copy of the consumer with the given ID
func (r *ConsumerRepository) FindByID(ctx context.Context, id uuid.UUID) (*consumer.Consumer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.consumers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := cloneConsumer(c)
	return &out, nil
}

// FindAll returns consumers in insertion order
func (r *ConsumerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]consumer.Consumer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]consumer.Consumer, 0, len(r.order))
	for _, id := range r.order {
		c := r.consumers[id]
		if !consumerMatches(c, filter) {
			continue
		}
		out = append(out, cloneConsumer(c))
	}
	return paginate(out, filter), nil
}

// FindByAgent returns consumers assigned to the given agent
func (r *ConsumerRepository) FindByAgent(ctx context.Context, agentID uuid.UUID) ([]consumer.Consumer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]consumer.Consumer, 0)
	for _, id := range r.order {
		c := r.consumers[id]
		if c.AssignedAgentID == agentID {
			out = append(out, cloneConsumer(c))
		}
	}
	return out, nil
}

// FindByPortfolio returns consumers belonging to the given portfolio
func (r *ConsumerRepository) FindByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]consumer.Consumer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]consumer.Consumer, 0)
	for _, id := range r.order {
		c := r.consumers[id]
		if c.PortfolioID == portfolioID {
			out = append(out, cloneConsumer(c))
		}
	}
	return out, nil
}

// Save stores a copy of the consumer
func (r *ConsumerRepository) Save(ctx context.Context, c *consumer.Consumer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.consumers[c.ID]; !ok {
		r.order = append(r.order, c.ID)
	}
	r.consumers[c.ID] = cloneConsumer(*c)
	return nil
}

// Count returns the number of consumers matching the filter
func (r *ConsumerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, c := range r.consumers {
		if consumerMatches(c, filter) {
			n++
		}
	}
	return n, nil
}

func consumerMatches(c consumer.Consumer, filter shared.Filter) bool {
	if status, ok := filter.Filters["status"]; ok && consumer.Status(toString(status)) != c.Status {
		return false
	}
	if filter.Search != "" {
		s := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(c.Name), s) &&
			!strings.Contains(c.Email, s) &&
			!strings.Contains(strings.ToLower(c.AccountNumber), s) {
			return false
		}
	}
	return true
}

var _ consumer.ConsumerRepository = (*ConsumerRepository)(nil)
