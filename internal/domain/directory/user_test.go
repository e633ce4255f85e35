package directory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates agent successfully", func(t *testing.T) {
		user, err := NewUser("John Smith", "john.smith@sefcontact.com", RoleAgent)

		require.NoError(t, err)
		assert.Equal(t, "John Smith", user.Name)
		assert.Equal(t, "john.smith@sefcontact.com", user.Email)
		assert.Equal(t, RoleAgent, user.Role)
		assert.True(t, user.Active)
		assert.Empty(t, user.AssignedPortfolios)
		require.NotNil(t, user.PerformanceScore)
		assert.True(t, user.PerformanceScore.IsZero())
		assert.Nil(t, user.LastLoginAt)
		assert.Len(t, user.GetDomainEvents(), 1)
	})

	t.Run("admin carries no performance score", func(t *testing.T) {
		user, err := NewUser("Michael Admin", "admin@sefcontact.com", RoleAdmin)

		require.NoError(t, err)
		assert.Nil(t, user.PerformanceScore)
	})

	t.Run("normalizes email", func(t *testing.T) {
		user, err := NewUser("Sarah Jones", "  Sarah.Jones@SefContact.com ", RoleAgent)

		require.NoError(t, err)
		assert.Equal(t, "sarah.jones@sefcontact.com", user.Email)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		user, err := NewUser("", "a@b.com", RoleAgent)

		assert.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("fails with malformed email", func(t *testing.T) {
		user, err := NewUser("John", "not-an-email", RoleAgent)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		user, err := NewUser("John", "a@b.com", Role("manager"))

		assert.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestUserSetActive(t *testing.T) {
	user, err := NewUser("John Smith", "john@sefcontact.com", RoleAgent)
	require.NoError(t, err)
	user.ClearDomainEvents()

	user.SetActive(false)
	assert.False(t, user.Active)
	assert.False(t, user.IsActiveAgent())
	assert.Len(t, user.GetDomainEvents(), 1)

	// Toggling to the current value is a no-op
	user.SetActive(false)
	assert.Len(t, user.GetDomainEvents(), 1)

	user.SetActive(true)
	assert.True(t, user.IsActiveAgent())
}

func TestUserRecordLogin(t *testing.T) {
	user, err := NewUser("John Smith", "john@sefcontact.com", RoleAgent)
	require.NoError(t, err)

	at := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	user.RecordLogin(at)

	require.NotNil(t, user.LastLoginAt)
	assert.True(t, user.LastLoginAt.Equal(at))
}

func TestUserPortfolioSet(t *testing.T) {
	user, err := NewUser("John Smith", "john@sefcontact.com", RoleAgent)
	require.NoError(t, err)

	p1 := uuid.New()
	p2 := uuid.New()

	user.AttachPortfolio(p1)
	user.AttachPortfolio(p2)
	user.AttachPortfolio(p1) // duplicate is ignored

	assert.Len(t, user.AssignedPortfolios, 2)
	assert.True(t, user.HasPortfolio(p1))
	assert.True(t, user.HasPortfolio(p2))

	user.DetachPortfolio(p1)
	assert.False(t, user.HasPortfolio(p1))
	assert.True(t, user.HasPortfolio(p2))
	assert.Len(t, user.AssignedPortfolios, 1)
}

func TestUserSetPerformanceScore(t *testing.T) {
	agent, err := NewUser("John Smith", "john@sefcontact.com", RoleAgent)
	require.NoError(t, err)

	require.NoError(t, agent.SetPerformanceScore(decimal.NewFromFloat(85.5)))
	assert.True(t, agent.PerformanceScore.Equal(decimal.NewFromFloat(85.5)))

	assert.Error(t, agent.SetPerformanceScore(decimal.NewFromInt(-1)))

	admin, err := NewUser("Michael Admin", "admin@sefcontact.com", RoleAdmin)
	require.NoError(t, err)
	assert.Error(t, admin.SetPerformanceScore(decimal.NewFromInt(50)))
}
