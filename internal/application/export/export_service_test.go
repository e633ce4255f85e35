package export

import (
	"context"
	"strings"
	"testing"

	"github.com/sefcontact/engine/internal/domain/consumer"
	"github.com/sefcontact/engine/internal/domain/directory"
	"github.com/sefcontact/engine/internal/domain/payment"
	"github.com/sefcontact/engine/internal/domain/portfolio"
	"github.com/sefcontact/engine/internal/domain/shared"
	"github.com/sefcontact/engine/internal/infrastructure/persistence/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_Mask(t *testing.T) {
	t.Run("redacts all but last four characters", func(t *testing.T) {
		d := &Dataset{
			Headers: []string{"name", "account_number"},
			Rows: [][]string{
				{"John Doe", "ACC001"},
				{"Jane Smith", "1234567890"},
			},
		}

		d.Mask("account_number")

		assert.Equal(t, "XXC001", d.Rows[0][1])
		assert.Equal(t, "XXXXXX7890", d.Rows[1][1])
		// Unmasked columns stay intact
		assert.Equal(t, "John Doe", d.Rows[0][0])
	})

	t.Run("short values are fully redacted", func(t *testing.T) {
		d := &Dataset{
			Headers: []string{"code"},
			Rows:    [][]string{{"AB1"}},
		}

		d.Mask("code")

		assert.Equal(t, "XXX", d.Rows[0][0])
	})

	t.Run("unknown column is a no-op", func(t *testing.T) {
		d := &Dataset{
			Headers: []string{"name"},
			Rows:    [][]string{{"John Doe"}},
		}

		d.Mask("ssn")

		assert.Equal(t, "John Doe", d.Rows[0][0])
	})
}

func newExportService(t *testing.T) (*ExportService, context.Context) {
	t.Helper()
	ctx := context.Background()

	portfolioRepo := memory.NewPortfolioRepository()
	userRepo := memory.NewUserRepository()
	consumerRepo := memory.NewConsumerRepository()
	paymentRepo := memory.NewPaymentRepository()

	admin, err := directory.NewUser("Alex Ford", "boss@collections.test", directory.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, userRepo.Save(ctx, admin))

	agent, err := directory.NewUser("Sarah Mitchell", "sarah@collections.test", directory.RoleAgent)
	require.NoError(t, err)
	require.NoError(t, userRepo.Save(ctx, agent))

	p, err := portfolio.NewPortfolio("Q3 Batch", 50, decimal.NewFromInt(100000))
	require.NoError(t, err)
	require.NoError(t, portfolioRepo.Save(ctx, p))

	c, err := consumer.NewConsumer(p.ID, agent.ID, consumer.ContactInfo{
		Name:          "John Doe",
		SSN:           "123-45-6789",
		AccountNumber: "ACC001",
	}, decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NoError(t, consumerRepo.Save(ctx, c))

	paid, err := payment.NewDirectPayment(c.ID, agent.ID, decimal.NewFromInt(250), payment.MethodCash, "TXN-1", "")
	require.NoError(t, err)
	require.NoError(t, paymentRepo.Save(ctx, paid))

	return NewExportService(portfolioRepo, userRepo, consumerRepo, paymentRepo), ctx
}

func TestExportService_Users_ExcludesAdmins(t *testing.T) {
	service, ctx := newExportService(t)

	d, err := service.Export(ctx, DatasetUsers, false)
	require.NoError(t, err)
	require.Len(t, d.Rows, 1)
	assert.Equal(t, "Sarah Mitchell", d.Rows[0][1])
	assert.Equal(t, "agent", d.Rows[0][3])
}

func TestExportService_Consumers_Masked(t *testing.T) {
	service, ctx := newExportService(t)

	d, err := service.Export(ctx, DatasetConsumers, true)
	require.NoError(t, err)
	require.Len(t, d.Rows, 1)
	assert.Equal(t, "XXXXXXX6789", d.Rows[0][4])
	assert.Equal(t, "XXC001", d.Rows[0][5])

	// The unmasked export only exposes stored values, which the consumer
	// constructor already masked; full precision is not recoverable.
	unmasked, err := service.Export(ctx, DatasetConsumers, false)
	require.NoError(t, err)
	assert.Equal(t, "XXXXXXX6789", unmasked.Rows[0][4])
	assert.Equal(t, "XXC001", unmasked.Rows[0][5])
}

func TestExportService_Payments_Masked(t *testing.T) {
	service, ctx := newExportService(t)

	d, err := service.Export(ctx, DatasetPayments, true)
	require.NoError(t, err)
	require.Len(t, d.Rows, 1)

	masked := d.Rows[0][1]
	assert.True(t, strings.HasPrefix(masked, "X"))
	assert.NotContains(t, masked[:len(masked)-4], "-")
	assert.Equal(t, "completed", d.Rows[0][4])
}

func TestExportService_Portfolios(t *testing.T) {
	service, ctx := newExportService(t)

	d, err := service.Export(ctx, DatasetPortfolios, false)
	require.NoError(t, err)
	require.Len(t, d.Rows, 1)
	assert.Equal(t, "Q3 Batch", d.Rows[0][1])
	assert.Equal(t, "100000.00", d.Rows[0][3])
}

func TestExportService_UnknownDataset(t *testing.T) {
	service, ctx := newExportService(t)

	_, err := service.Export(ctx, "invoices", false)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidInput))
}
