package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/shared"
)

// PaymentRepository defines persistence operations for payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)
	FindByConsumer(ctx context.Context, consumerID uuid.UUID) ([]Payment, error)
	FindByAgent(ctx context.Context, agentID uuid.UUID) ([]Payment, error)
	FindByDueDateRange(ctx context.Context, from, to time.Time) ([]Payment, error)
	Save(ctx context.Context, p *Payment) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
