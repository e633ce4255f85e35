package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/consumer"
	"github.com/sefcontact/engine/internal/domain/directory"
	"github.com/sefcontact/engine/internal/domain/payment"
	"github.com/sefcontact/engine/internal/domain/portfolio"
	"github.com/sefcontact/engine/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	agent, err := directory.NewUser("John Smith", "john@sefcontact.com", directory.RoleAgent)
	require.NoError(t, err)
	admin, err := directory.NewUser("Michael Admin", "admin@sefcontact.com", directory.RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, agent))
	require.NoError(t, repo.Save(ctx, admin))

	t.Run("finds by id and email", func(t *testing.T) {
		found, err := repo.FindByID(ctx, agent.ID)
		require.NoError(t, err)
		assert.Equal(t, "John Smith", found.Name)

		byEmail, err := repo.FindByEmail(ctx, "JOHN@sefcontact.com")
		require.NoError(t, err)
		assert.Equal(t, agent.ID, byEmail.ID)
	})

	t.Run("unknown id yields not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("exists by email", func(t *testing.T) {
		ok, err := repo.ExistsByEmail(ctx, "john@sefcontact.com")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsByEmail(ctx, "nobody@sefcontact.com")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("active agents excludes admins and deactivated agents", func(t *testing.T) {
		inactive, err := directory.NewUser("Gone Agent", "gone@sefcontact.com", directory.RoleAgent)
		require.NoError(t, err)
		inactive.SetActive(false)
		require.NoError(t, repo.Save(ctx, inactive))

		agents, err := repo.FindActiveAgents(ctx)
		require.NoError(t, err)
		require.Len(t, agents, 1)
		assert.Equal(t, agent.ID, agents[0].ID)
	})

	t.Run("returns copies, not references", func(t *testing.T) {
		found, err := repo.FindByID(ctx, agent.ID)
		require.NoError(t, err)
		found.Name = "Mutated"

		again, err := repo.FindByID(ctx, agent.ID)
		require.NoError(t, err)
		assert.Equal(t, "John Smith", again.Name)
	})

	t.Run("filters by role", func(t *testing.T) {
		f := shared.DefaultFilter()
		f.Filters["role"] = "admin"
		admins, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		require.Len(t, admins, 1)
		assert.Equal(t, directory.RoleAdmin, admins[0].Role)
	})
}

func TestPortfolioRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPortfolioRepository()

	assigned, err := portfolio.NewPortfolio("Medical Collections", 150, decimal.NewFromInt(45000))
	require.NoError(t, err)
	agentID := uuid.New()
	assigned.AssignAgent(agentID)

	unassigned, err := portfolio.NewPortfolio("Auto Loan Recoveries", 75, decimal.NewFromInt(120000))
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, assigned))
	require.NoError(t, repo.Save(ctx, unassigned))

	byAgent, err := repo.FindByAgent(ctx, agentID)
	require.NoError(t, err)
	require.Len(t, byAgent, 1)
	assert.Equal(t, assigned.ID, byAgent[0].ID)

	open, err := repo.FindUnassigned(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, unassigned.ID, open[0].ID)

	all, err := repo.FindAll(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestConsumerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewConsumerRepository()

	portfolioID := uuid.New()
	agentID := uuid.New()

	c, err := consumer.NewConsumer(portfolioID, agentID, consumer.ContactInfo{Name: "John Doe"}, decimal.NewFromInt(1250))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))

	byAgent, err := repo.FindByAgent(ctx, agentID)
	require.NoError(t, err)
	require.Len(t, byAgent, 1)

	byPortfolio, err := repo.FindByPortfolio(ctx, portfolioID)
	require.NoError(t, err)
	require.Len(t, byPortfolio, 1)

	t.Run("note log survives round trip as a copy", func(t *testing.T) {
		require.NoError(t, c.AppendNote(consumer.NoteCategoryContact, "called", agentID))
		require.NoError(t, repo.Save(ctx, c))

		found, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, found.Notes, 1)

		found.Notes[0].Text = "tampered"
		again, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "called", again.Notes[0].Text)
	})
}

func TestPaymentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()

	consumerID := uuid.New()
	agentID := uuid.New()

	due := time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC)
	p, err := payment.NewScheduledPayment(consumerID, agentID, decimal.NewFromFloat(150.75), due, payment.MethodCreditCard)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	direct, err := payment.NewDirectPayment(consumerID, agentID, decimal.NewFromInt(250), payment.MethodCash, "", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, direct))

	byConsumer, err := repo.FindByConsumer(ctx, consumerID)
	require.NoError(t, err)
	assert.Len(t, byConsumer, 2)

	inRange, err := repo.FindByDueDateRange(ctx,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, p.ID, inRange[0].ID)

	f := shared.DefaultFilter()
	f.Filters["status"] = "completed"
	n, err := repo.Count(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
