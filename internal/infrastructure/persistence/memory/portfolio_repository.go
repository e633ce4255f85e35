package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/portfolio"
	"github.com/sefcontact/engine/internal/domain/shared"
)

// PortfolioRepository is an in-memory portfolio.PortfolioRepository
type PortfolioRepository struct {
	mu         sync.RWMutex
	portfolios map[uuid.UUID]portfolio.Portfolio
	order      []uuid.UUID
}

// NewPortfolioRepository creates an empty in-memory portfolio repository
func NewPortfolioRepository() *PortfolioRepository {
	return &PortfolioRepository{
		portfolios: make(map[uuid.UUID]portfolio.Portfolio),
		order:      make([]uuid.UUID, 0),
	}
}

func clonePortfolio(p portfolio.Portfolio) portfolio.Portfolio {
	c := p
	if p.AssignedAgentID != nil {
		id := *p.AssignedAgentID
		c.AssignedAgentID = &id
	}
	return c
}

// FindByID returns a copy of the portfolio with the given ID
func (r *PortfolioRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.portfolios[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	c := clonePortfolio(p)
	return &c, nil
}

// FindAll returns portfolios in insertion order
func (r *PortfolioRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]portfolio.Portfolio, 0, len(r.order))
	for _, id := range r.order {
		p := r.portfolios[id]
		if !portfolioMatches(p, filter) {
			continue
		}
		out = append(out, clonePortfolio(p))
	}
	return paginate(out, filter), nil
}

// FindByAgent returns portfolios assigned to the given agent
func (r *PortfolioRepository) FindByAgent(ctx context.Context, agentID uuid.UUID) ([]portfolio.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]portfolio.Portfolio, 0)
	for _, id := range r.order {
		p := r.portfolios[id]
		if p.AssignedAgentID != nil && *p.AssignedAgentID == agentID {
			out = append(out, clonePortfolio(p))
		}
	}
	return out, nil
}

// FindUnassigned returns portfolios with no assigned agent
func (r *PortfolioRepository) FindUnassigned(ctx context.Context) ([]portfolio.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]portfolio.Portfolio, 0)
	for _, id := range r.order {
		p := r.portfolios[id]
		if p.AssignedAgentID == nil {
			out = append(out, clonePortfolio(p))
		}
	}
	return out, nil
}

// Save stores a copy of the portfolio
func (r *PortfolioRepository) Save(ctx context.Context, p *portfolio.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.portfolios[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.portfolios[p.ID] = clonePortfolio(*p)
	return nil
}

// Count returns the number of portfolios matching the filter
func (r *PortfolioRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, p := range r.portfolios {
		if portfolioMatches(p, filter) {
			n++
		}
	}
	return n, nil
}

func portfolioMatches(p portfolio.Portfolio, filter shared.Filter) bool {
	if status, ok := filter.Filters["status"]; ok && portfolio.Status(toString(status)) != p.Status {
		return false
	}
	if filter.Search != "" {
		if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			return false
		}
	}
	return true
}

var _ portfolio.PortfolioRepository = (*PortfolioRepository)(nil)
