package payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/application/access"
	"github.com/sefcontact/engine/internal/domain/consumer"
	"github.com/sefcontact/engine/internal/domain/directory"
	"github.com/sefcontact/engine/internal/domain/shared"
	"github.com/sefcontact/engine/internal/infrastructure/persistence/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service      *PaymentService
	consumerRepo *memory.ConsumerRepository
	actor        access.Actor
	consumerID   uuid.UUID
}

func newFixture(t *testing.T, balance int64) *fixture {
	t.Helper()
	ctx := context.Background()

	paymentRepo := memory.NewPaymentRepository()
	consumerRepo := memory.NewConsumerRepository()
	guard := access.NewGuard(consumerRepo)

	agentID := uuid.New()
	c, err := consumer.NewConsumer(uuid.New(), agentID, consumer.ContactInfo{Name: "John Doe"}, decimal.NewFromInt(balance))
	require.NoError(t, err)
	require.NoError(t, consumerRepo.Save(ctx, c))

	return &fixture{
		service:      NewPaymentService(paymentRepo, consumerRepo, guard),
		consumerRepo: consumerRepo,
		actor:        access.NewActor(agentID, directory.RoleAgent),
		consumerID:   c.ID,
	}
}

func (f *fixture) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	c, err := f.consumerRepo.FindByID(context.Background(), f.consumerID)
	require.NoError(t, err)
	return c.Balance
}

func TestPaymentService_RecordDirect(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1250)

	resp, err := f.service.RecordDirect(ctx, f.actor, RecordDirectPaymentRequest{
		ConsumerID: f.consumerID,
		Amount:     decimal.NewFromInt(250),
		Method:     "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.NotNil(t, resp.ProcessedAt)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(1000)))

	// Exceeding the remaining balance fails and leaves it untouched
	_, err = f.service.RecordDirect(ctx, f.actor, RecordDirectPaymentRequest{
		ConsumerID: f.consumerID,
		Amount:     decimal.NewFromInt(2000),
		Method:     "cash",
	})
	assert.True(t, shared.IsCode(err, shared.CodeInsufficientBalance))
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(1000)))
}

func TestPaymentService_RecordDirect_GuardScoped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1000)

	stranger := access.NewActor(uuid.New(), directory.RoleAgent)
	_, err := f.service.RecordDirect(ctx, stranger, RecordDirectPaymentRequest{
		ConsumerID: f.consumerID,
		Amount:     decimal.NewFromInt(100),
		Method:     "check",
	})
	assert.True(t, shared.IsCode(err, shared.CodeAccessDenied))
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(1000)))
}

func TestPaymentService_ScheduleAndProcess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1000)

	scheduled, err := f.service.Schedule(ctx, f.actor, SchedulePaymentRequest{
		ConsumerID: f.consumerID,
		Amount:     decimal.NewFromInt(300),
		DueDate:    time.Now().Add(72 * time.Hour),
		Method:     "ach",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", scheduled.Status)
	// Scheduling alone must not move the balance
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(1000)))

	processed, err := f.service.Process(ctx, f.actor, scheduled.ID, ProcessPaymentRequest{
		Method:    "bank_transfer",
		Reference: "TXN-4411",
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", processed.Status)
	assert.Equal(t, "bank_transfer", processed.Method)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(700)))

	// Processing twice must not deduct again
	_, err = f.service.Process(ctx, f.actor, scheduled.ID, ProcessPaymentRequest{})
	assert.True(t, shared.IsCode(err, shared.CodeAlreadyCompleted))
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(700)))
}

func TestPaymentService_Process_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 100)

	scheduled, err := f.service.Schedule(ctx, f.actor, SchedulePaymentRequest{
		ConsumerID: f.consumerID,
		Amount:     decimal.NewFromInt(500),
		DueDate:    time.Now().Add(24 * time.Hour),
		Method:     "check",
	})
	require.NoError(t, err)

	_, err = f.service.Process(ctx, f.actor, scheduled.ID, ProcessPaymentRequest{})
	assert.True(t, shared.IsCode(err, shared.CodeInsufficientBalance))

	// The stored payment keeps its prior status and the balance is untouched
	current, err := f.service.GetByID(ctx, f.actor, scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", current.Status)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(100)))
}

func TestPaymentService_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1000)

	scheduled, err := f.service.Schedule(ctx, f.actor, SchedulePaymentRequest{
		ConsumerID: f.consumerID,
		Amount:     decimal.NewFromInt(200),
		DueDate:    time.Now().Add(24 * time.Hour),
		Method:     "cash",
	})
	require.NoError(t, err)

	cancelled, err := f.service.Cancel(ctx, f.actor, scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(1000)))

	// A cancelled payment cannot be processed
	_, err = f.service.Process(ctx, f.actor, scheduled.ID, ProcessPaymentRequest{})
	assert.True(t, shared.IsCode(err, shared.CodeValidation))
}

func TestPaymentService_OverdueIsDerived(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1000)

	base := time.Now()
	f.service.SetClock(func() time.Time { return base })

	scheduled, err := f.service.Schedule(ctx, f.actor, SchedulePaymentRequest{
		ConsumerID: f.consumerID,
		Amount:     decimal.NewFromInt(150),
		DueDate:    base.Add(24 * time.Hour),
		Method:     "money_order",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", scheduled.Status)

	// A week later the same stored row reads as overdue
	f.service.SetClock(func() time.Time { return base.Add(7 * 24 * time.Hour) })

	current, err := f.service.GetByID(ctx, f.actor, scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, "overdue", current.Status)

	listed, err := f.service.List(ctx, f.actor, PaymentListFilter{Status: "overdue"})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	assert.Equal(t, scheduled.ID, listed.Items[0].ID)

	// An overdue payment can still be processed
	processed, err := f.service.Process(ctx, f.actor, scheduled.ID, ProcessPaymentRequest{})
	require.NoError(t, err)
	assert.Equal(t, "completed", processed.Status)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(850)))
}

func TestPaymentService_Edit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1000)

	scheduled, err := f.service.Schedule(ctx, f.actor, SchedulePaymentRequest{
		ConsumerID: f.consumerID,
		Amount:     decimal.NewFromInt(200),
		DueDate:    time.Now().Add(24 * time.Hour),
		Method:     "cash",
	})
	require.NoError(t, err)

	amount := decimal.NewFromInt(250)
	method := "credit_card"
	edited, err := f.service.Edit(ctx, f.actor, scheduled.ID, EditPaymentRequest{
		Amount: &amount,
		Method: &method,
	})
	require.NoError(t, err)
	assert.True(t, edited.Amount.Equal(amount))
	assert.Equal(t, "credit_card", edited.Method)
	// Corrections never move the balance
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(1000)))

	bad := decimal.NewFromInt(-5)
	_, err = f.service.Edit(ctx, f.actor, scheduled.ID, EditPaymentRequest{Amount: &bad})
	assert.True(t, shared.IsCode(err, shared.CodeValidation))
}

func TestPaymentService_ListDueBetween(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5000)

	now := time.Now()
	for _, offset := range []time.Duration{24 * time.Hour, 48 * time.Hour, 30 * 24 * time.Hour} {
		_, err := f.service.Schedule(ctx, f.actor, SchedulePaymentRequest{
			ConsumerID: f.consumerID,
			Amount:     decimal.NewFromInt(100),
			DueDate:    now.Add(offset),
			Method:     "ach",
		})
		require.NoError(t, err)
	}

	due, err := f.service.ListDueBetween(ctx, f.actor, now, now.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Len(t, due, 2)
}
