package access

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/consumer"
	"github.com/sefcontact/engine/internal/domain/directory"
	"github.com/sefcontact/engine/internal/domain/shared"
	"github.com/sefcontact/engine/internal/infrastructure/persistence/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewConsumerRepository()
	guard := NewGuard(repo)

	agent1 := uuid.New()
	agent2 := uuid.New()

	c1, err := consumer.NewConsumer(uuid.New(), agent1, consumer.ContactInfo{Name: "John Doe"}, decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c1))

	c2, err := consumer.NewConsumer(uuid.New(), agent2, consumer.ContactInfo{Name: "Jane Smith"}, decimal.NewFromInt(500))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c2))

	t.Run("admin sees all consumers", func(t *testing.T) {
		admin := NewActor(uuid.New(), directory.RoleAdmin)

		visible, err := guard.VisibleConsumers(ctx, admin)
		require.NoError(t, err)
		assert.Len(t, visible, 2)
	})

	t.Run("agent sees only own consumers", func(t *testing.T) {
		actor := NewActor(agent1, directory.RoleAgent)

		visible, err := guard.VisibleConsumers(ctx, actor)
		require.NoError(t, err)
		require.Len(t, visible, 1)
		assert.Equal(t, c1.ID, visible[0].ID)
	})

	t.Run("agent cannot open another agent's profile", func(t *testing.T) {
		actor := NewActor(agent2, directory.RoleAgent)

		ok, err := guard.CanOpenProfile(ctx, actor, c1.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		err = guard.Authorize(ctx, actor, c1.ID)
		assert.True(t, shared.IsCode(err, shared.CodeAccessDenied))
	})

	t.Run("admin opens any profile regardless of assignment", func(t *testing.T) {
		admin := NewActor(uuid.New(), directory.RoleAdmin)

		ok, err := guard.CanOpenProfile(ctx, admin, c1.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("supervisor has full read visibility", func(t *testing.T) {
		supervisor := NewActor(uuid.New(), directory.RoleSupervisor)

		visible, err := guard.VisibleConsumers(ctx, supervisor)
		require.NoError(t, err)
		assert.Len(t, visible, 2)
	})

	t.Run("unknown consumer id yields not found", func(t *testing.T) {
		actor := NewActor(agent1, directory.RoleAgent)

		_, err := guard.CanOpenProfile(ctx, actor, uuid.New())
		assert.Equal(t, shared.ErrNotFound, err)
	})
}
