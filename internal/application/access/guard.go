package access

import (
	"context"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/consumer"
	"github.com/sefcontact/engine/internal/domain/shared"
)

// Guard scopes consumer visibility by role. Admins and supervisors see every
// consumer; agents see only consumers assigned to them. The check runs at the
// boundary of every profile-opening and payment-recording operation, not just
// at the list level, since a caller may hold an id without having listed it.
type Guard struct {
	consumerRepo consumer.ConsumerRepository
}

// NewGuard creates a new Guard
func NewGuard(consumerRepo consumer.ConsumerRepository) *Guard {
	return &Guard{consumerRepo: consumerRepo}
}

// VisibleConsumers returns the consumers the actor may see
func (g *Guard) VisibleConsumers(ctx context.Context, actor Actor) ([]consumer.Consumer, error) {
	if actor.SeesEverything() {
		return g.consumerRepo.FindAll(ctx, shared.Filter{})
	}
	return g.consumerRepo.FindByAgent(ctx, actor.UserID)
}

// CanOpenProfile reports whether the actor may open the consumer's profile
func (g *Guard) CanOpenProfile(ctx context.Context, actor Actor, consumerID uuid.UUID) (bool, error) {
	if actor.SeesEverything() {
		return true, nil
	}

	c, err := g.consumerRepo.FindByID(ctx, consumerID)
	if err != nil {
		return false, err
	}
	return c.AssignedAgentID == actor.UserID, nil
}

// Authorize fails with an access error unless the actor may open the profile
func (g *Guard) Authorize(ctx context.Context, actor Actor, consumerID uuid.UUID) error {
	ok, err := g.CanOpenProfile(ctx, actor, consumerID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrAccessDenied
	}
	return nil
}
