package consumer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConsumer(t *testing.T, balance decimal.Decimal) *Consumer {
	t.Helper()
	c, err := NewConsumer(uuid.New(), uuid.New(), ContactInfo{
		Name:          "John Doe",
		Phone:         "(555) 123-4567",
		Email:         "john.doe@email.com",
		Address:       "123 Main St, Anytown, ST 12345",
		SSN:           "XXX-XX-1234",
		AccountNumber: "XXC001",
	}, balance)
	require.NoError(t, err)
	return c
}

func TestNewConsumer(t *testing.T) {
	t.Run("creates consumer successfully", func(t *testing.T) {
		c := testConsumer(t, decimal.NewFromFloat(1250.00))

		assert.Equal(t, "John Doe", c.Name)
		assert.Equal(t, StatusActive, c.Status)
		assert.True(t, c.Balance.Equal(decimal.NewFromFloat(1250.00)))
		assert.Nil(t, c.LastPaymentAt)
		assert.Empty(t, c.Notes)
		assert.Len(t, c.GetDomainEvents(), 1)
	})

	t.Run("masks SSN and account number on creation", func(t *testing.T) {
		c, err := NewConsumer(uuid.New(), uuid.New(), ContactInfo{
			Name:          "Jane Roe",
			SSN:           "123-45-6789",
			AccountNumber: "ACCT998877",
		}, decimal.NewFromInt(500))
		require.NoError(t, err)

		assert.Equal(t, "XXXXXXX6789", c.SSN)
		assert.Equal(t, "XXXXXX8877", c.AccountNumber)
		assert.NotContains(t, c.SSN, "123-45")
	})

	t.Run("masking is stable for already-masked input", func(t *testing.T) {
		c, err := NewConsumer(uuid.New(), uuid.New(), ContactInfo{
			Name:          "Jane Roe",
			SSN:           "XXXXX6789",
			AccountNumber: "XXC001",
		}, decimal.Zero)
		require.NoError(t, err)

		assert.Equal(t, "XXXXX6789", c.SSN)
		assert.Equal(t, "XXC001", c.AccountNumber)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		c, err := NewConsumer(uuid.New(), uuid.New(), ContactInfo{Name: ""}, decimal.Zero)

		assert.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("fails with negative balance", func(t *testing.T) {
		c, err := NewConsumer(uuid.New(), uuid.New(), ContactInfo{Name: "Jane"}, decimal.NewFromInt(-1))

		assert.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("fails without portfolio reference", func(t *testing.T) {
		c, err := NewConsumer(uuid.Nil, uuid.New(), ContactInfo{Name: "Jane"}, decimal.Zero)

		assert.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestConsumerAppendNote(t *testing.T) {
	c := testConsumer(t, decimal.NewFromInt(100))
	author := uuid.New()

	require.NoError(t, c.AppendNote(NoteCategoryContact, "Left voicemail, will retry tomorrow", author))
	require.NoError(t, c.AppendNote(NoteCategoryPayment, "Discussed payment plan", author))

	require.Len(t, c.Notes, 2)
	assert.Equal(t, NoteCategoryContact, c.Notes[0].Category)
	assert.Equal(t, "Left voicemail, will retry tomorrow", c.Notes[0].Text)
	assert.Equal(t, author, c.Notes[0].AuthorID)
	assert.False(t, c.Notes[0].At.IsZero())

	t.Run("fails with empty text", func(t *testing.T) {
		assert.Error(t, c.AppendNote(NoteCategoryGeneral, "   ", author))
		assert.Len(t, c.Notes, 2)
	})

	t.Run("fails with unknown category", func(t *testing.T) {
		assert.Error(t, c.AppendNote(NoteCategory("gossip"), "text", author))
	})
}

func TestConsumerChangeStatus(t *testing.T) {
	t.Run("records provenance note", func(t *testing.T) {
		c := testConsumer(t, decimal.NewFromInt(100))
		author := uuid.New()

		require.NoError(t, c.ChangeStatus(StatusDisputed, "Debtor disputes the amount", author))

		assert.Equal(t, StatusDisputed, c.Status)
		require.Len(t, c.Notes, 1)
		assert.Equal(t, NoteCategoryStatusChange, c.Notes[0].Category)
		assert.Contains(t, c.Notes[0].Text, "active")
		assert.Contains(t, c.Notes[0].Text, "disputed")
		assert.Contains(t, c.Notes[0].Text, "Debtor disputes the amount")
	})

	t.Run("any status may move to any other", func(t *testing.T) {
		c := testConsumer(t, decimal.NewFromInt(100))
		author := uuid.New()

		require.NoError(t, c.ChangeStatus(StatusClosed, "closing", author))
		require.NoError(t, c.ChangeStatus(StatusActive, "reopened", author))
		assert.Equal(t, StatusActive, c.Status)
		assert.Len(t, c.Notes, 2)
	})

	t.Run("fails without reason", func(t *testing.T) {
		c := testConsumer(t, decimal.NewFromInt(100))

		err := c.ChangeStatus(StatusSettled, "", uuid.New())
		assert.Error(t, err)
		assert.Equal(t, StatusActive, c.Status)
		assert.Empty(t, c.Notes)
	})

	t.Run("fails with unknown status", func(t *testing.T) {
		c := testConsumer(t, decimal.NewFromInt(100))

		assert.Error(t, c.ChangeStatus(Status("archived"), "reason", uuid.New()))
		assert.Equal(t, StatusActive, c.Status)
	})
}

func TestConsumerApplyPayment(t *testing.T) {
	t.Run("decrements balance and stamps last payment", func(t *testing.T) {
		c := testConsumer(t, decimal.NewFromFloat(1250.00))
		at := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

		require.NoError(t, c.ApplyPayment(decimal.NewFromFloat(250.00), at))

		assert.True(t, c.Balance.Equal(decimal.NewFromFloat(1000.00)))
		require.NotNil(t, c.LastPaymentAt)
		assert.True(t, c.LastPaymentAt.Equal(at))
	})

	t.Run("fails when amount exceeds balance", func(t *testing.T) {
		c := testConsumer(t, decimal.NewFromFloat(1000.00))

		err := c.ApplyPayment(decimal.NewFromFloat(2000.00), time.Now())
		assert.Error(t, err)
		assert.True(t, c.Balance.Equal(decimal.NewFromFloat(1000.00)))
		assert.Nil(t, c.LastPaymentAt)
	})

	t.Run("fails with non-positive amount", func(t *testing.T) {
		c := testConsumer(t, decimal.NewFromInt(100))

		assert.Error(t, c.ApplyPayment(decimal.Zero, time.Now()))
		assert.Error(t, c.ApplyPayment(decimal.NewFromInt(-10), time.Now()))
		assert.True(t, c.Balance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("allows paying the balance to exactly zero", func(t *testing.T) {
		c := testConsumer(t, decimal.NewFromInt(100))

		require.NoError(t, c.ApplyPayment(decimal.NewFromInt(100), time.Now()))
		assert.True(t, c.Balance.IsZero())
	})
}
