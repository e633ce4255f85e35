package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/payment"
	"github.com/sefcontact/engine/internal/domain/shared"
)

// PaymentRepository is an in-memory payment.PaymentRepository
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]payment.Payment
	order    []uuid.UUID
}

// NewPaymentRepository creates an empty in-memory payment repository
func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		payments: make(map[uuid.UUID]payment.Payment),
		order:    make([]uuid.UUID, 0),
	}
}

func clonePayment(p payment.Payment) payment.Payment {
	c := p
	if p.ProcessedAt != nil {
		at := *p.ProcessedAt
		c.ProcessedAt = &at
	}
	return c
}

// FindByID returns a copy of the payment with the given ID
func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	c := clonePayment(p)
	return &c, nil
}

// FindAll returns payments in insertion order
func (r *PaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payment.Payment, 0, len(r.order))
	for _, id := range r.order {
		p := r.payments[id]
		if !paymentMatches(p, filter) {
			continue
		}
		out = append(out, clonePayment(p))
	}
	return paginate(out, filter), nil
}

// FindByConsumer returns payments recorded against the given consumer
func (r *PaymentRepository) FindByConsumer(ctx context.Context, consumerID uuid.UUID) ([]payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payment.Payment, 0)
	for _, id := range r.order {
		p := r.payments[id]
		if p.ConsumerID == consumerID {
			out = append(out, clonePayment(p))
		}
	}
	return out, nil
}

// FindByAgent returns payments recorded by the given agent
func (r *PaymentRepository) FindByAgent(ctx context.Context, agentID uuid.UUID) ([]payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payment.Payment, 0)
	for _, id := range r.order {
		p := r.payments[id]
		if p.AgentID == agentID {
			out = append(out, clonePayment(p))
		}
	}
	return out, nil
}

// FindByDueDateRange returns payments due within [from, to], inclusive
func (r *PaymentRepository) FindByDueDateRange(ctx context.Context, from, to time.Time) ([]payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payment.Payment, 0)
	for _, id := range r.order {
		p := r.payments[id]
		if p.DueDate.Before(from) || p.DueDate.After(to) {
			continue
		}
		out = append(out, clonePayment(p))
	}
	return out, nil
}

// Save stores a copy of the payment
func (r *PaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.payments[p.ID] = clonePayment(*p)
	return nil
}

// Count returns the number of payments matching the filter
func (r *PaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, p := range r.payments {
		if paymentMatches(p, filter) {
			n++
		}
	}
	return n, nil
}

func paymentMatches(p payment.Payment, filter shared.Filter) bool {
	if status, ok := filter.Filters["status"]; ok && payment.Status(toString(status)) != p.Status {
		return false
	}
	if agent, ok := filter.Filters["agent_id"]; ok {
		if id, isID := agent.(uuid.UUID); isID && id != p.AgentID {
			return false
		}
	}
	return true
}

var _ payment.PaymentRepository = (*PaymentRepository)(nil)
