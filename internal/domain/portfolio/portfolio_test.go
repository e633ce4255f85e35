package portfolio

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPortfolio(t *testing.T) {
	t.Run("creates portfolio successfully", func(t *testing.T) {
		p, err := NewPortfolio("Medical Collections Q1 2024", 150, decimal.NewFromInt(45000))

		require.NoError(t, err)
		assert.Equal(t, "Medical Collections Q1 2024", p.Name)
		assert.Equal(t, 150, p.AccountCount)
		assert.True(t, p.TotalValue.Equal(decimal.NewFromInt(45000)))
		assert.True(t, p.RecoveredAmount.IsZero())
		assert.Equal(t, StatusActive, p.Status)
		assert.Nil(t, p.AssignedAgentID)
		assert.Len(t, p.GetDomainEvents(), 1)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		p, err := NewPortfolio("  ", 10, decimal.NewFromInt(100))

		assert.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("fails with negative account count", func(t *testing.T) {
		p, err := NewPortfolio("Bad", -1, decimal.NewFromInt(100))

		assert.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("fails with negative total value", func(t *testing.T) {
		p, err := NewPortfolio("Bad", 10, decimal.NewFromInt(-100))

		assert.Error(t, err)
		assert.Nil(t, p)
	})
}

func TestPortfolioAssignAgent(t *testing.T) {
	p, err := NewPortfolio("Auto Loan Recoveries", 75, decimal.NewFromInt(120000))
	require.NoError(t, err)
	p.ClearDomainEvents()

	agentID := uuid.New()
	p.AssignAgent(agentID)

	require.NotNil(t, p.AssignedAgentID)
	assert.Equal(t, agentID, *p.AssignedAgentID)
	assert.True(t, p.IsAssigned())
	assert.Len(t, p.GetDomainEvents(), 1)
}

func TestPortfolioRecordRecovery(t *testing.T) {
	newPortfolio := func(t *testing.T) *Portfolio {
		p, err := NewPortfolio("Credit Card Defaults", 200, decimal.NewFromInt(75000))
		require.NoError(t, err)
		return p
	}

	t.Run("increments recovered amount", func(t *testing.T) {
		p := newPortfolio(t)

		require.NoError(t, p.RecordRecovery(decimal.NewFromInt(25000)))
		assert.True(t, p.RecoveredAmount.Equal(decimal.NewFromInt(25000)))

		require.NoError(t, p.RecordRecovery(decimal.NewFromInt(50000)))
		assert.True(t, p.RecoveredAmount.Equal(decimal.NewFromInt(75000)))
	})

	t.Run("fails past the cap without clamping", func(t *testing.T) {
		p := newPortfolio(t)
		require.NoError(t, p.RecordRecovery(decimal.NewFromInt(70000)))

		err := p.RecordRecovery(decimal.NewFromInt(10000))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "exceed")
		assert.True(t, p.RecoveredAmount.Equal(decimal.NewFromInt(70000)))
	})

	t.Run("fails with non-positive amount", func(t *testing.T) {
		p := newPortfolio(t)

		assert.Error(t, p.RecordRecovery(decimal.Zero))
		assert.Error(t, p.RecordRecovery(decimal.NewFromInt(-5)))
		assert.True(t, p.RecoveredAmount.IsZero())
	})
}

func TestPortfolioRecoveryRate(t *testing.T) {
	t.Run("computes percentage", func(t *testing.T) {
		p, err := NewPortfolio("Medical", 10, decimal.NewFromInt(45000))
		require.NoError(t, err)
		require.NoError(t, p.RecordRecovery(decimal.NewFromInt(15000)))

		rate := p.RecoveryRate()
		assert.True(t, rate.Sub(decimal.NewFromFloat(33.33)).Abs().LessThan(decimal.NewFromFloat(0.01)))
	})

	t.Run("zero total value yields zero rate", func(t *testing.T) {
		p, err := NewPortfolio("Empty", 0, decimal.Zero)
		require.NoError(t, err)

		assert.True(t, p.RecoveryRate().IsZero())
	})
}

func TestPortfolioChangeStatus(t *testing.T) {
	p, err := NewPortfolio("Medical", 10, decimal.NewFromInt(1000))
	require.NoError(t, err)

	require.NoError(t, p.ChangeStatus(StatusClosed))
	assert.Equal(t, StatusClosed, p.Status)

	assert.Error(t, p.ChangeStatus(Status("archived")))
	assert.Equal(t, StatusClosed, p.Status)
}
