package consumer

import (
	"context"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/shared"
)

// ConsumerRepository defines persistence operations for consumers
type ConsumerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Consumer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Consumer, error)
	FindByAgent(ctx context.Context, agentID uuid.UUID) ([]Consumer, error)
	FindByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]Consumer, error)
	Save(ctx context.Context, c *Consumer) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
