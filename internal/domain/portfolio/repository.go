package portfolio

import (
	"context"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/shared"
)

// PortfolioRepository defines persistence operations for portfolios
type PortfolioRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Portfolio, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Portfolio, error)
	FindByAgent(ctx context.Context, agentID uuid.UUID) ([]Portfolio, error)
	FindUnassigned(ctx context.Context) ([]Portfolio, error)
	Save(ctx context.Context, p *Portfolio) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
