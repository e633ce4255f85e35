package export

import (
	"context"
	"strconv"
	"time"

	"github.com/sefcontact/engine/internal/domain/consumer"
	"github.com/sefcontact/engine/internal/domain/directory"
	"github.com/sefcontact/engine/internal/domain/payment"
	"github.com/sefcontact/engine/internal/domain/portfolio"
	"github.com/sefcontact/engine/internal/domain/shared"
)

// Dataset names accepted by Export
const (
	DatasetPortfolios = "portfolios"
	DatasetUsers      = "users"
	DatasetConsumers  = "consumers"
	DatasetPayments   = "payments"
)

// ExportService builds flat datasets from the stores for file download.
// The caller owns serialization and delivery; this layer owns row shapes
// and redaction.
type ExportService struct {
	portfolioRepo portfolio.PortfolioRepository
	userRepo      directory.UserRepository
	consumerRepo  consumer.ConsumerRepository
	paymentRepo   payment.PaymentRepository
	now           func() time.Time
}

// NewExportService creates a new ExportService
func NewExportService(
	portfolioRepo portfolio.PortfolioRepository,
	userRepo directory.UserRepository,
	consumerRepo consumer.ConsumerRepository,
	paymentRepo payment.PaymentRepository,
) *ExportService {
	return &ExportService{
		portfolioRepo: portfolioRepo,
		userRepo:      userRepo,
		consumerRepo:  consumerRepo,
		paymentRepo:   paymentRepo,
		now:           time.Now,
	}
}

// Export builds the named dataset, applying redaction when masked is set
func (s *ExportService) Export(ctx context.Context, dataset string, masked bool) (*Dataset, error) {
	switch dataset {
	case DatasetPortfolios:
		return s.portfolios(ctx, masked)
	case DatasetUsers:
		return s.users(ctx)
	case DatasetConsumers:
		return s.consumers(ctx, masked)
	case DatasetPayments:
		return s.payments(ctx, masked)
	}
	return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unknown export dataset: "+dataset)
}

func (s *ExportService) portfolios(ctx context.Context, masked bool) (*Dataset, error) {
	portfolios, err := s.portfolioRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		Name:    DatasetPortfolios,
		Headers: []string{"id", "name", "account_count", "total_value", "recovered_amount", "recovery_rate", "status", "assigned_agent_id", "created_at"},
		Rows:    make([][]string, 0, len(portfolios)),
	}
	for i := range portfolios {
		p := &portfolios[i]
		agentID := ""
		if p.AssignedAgentID != nil {
			agentID = p.AssignedAgentID.String()
		}
		d.Rows = append(d.Rows, []string{
			p.ID.String(),
			p.Name,
			strconv.Itoa(p.AccountCount),
			p.TotalValue.StringFixed(2),
			p.RecoveredAmount.StringFixed(2),
			p.RecoveryRate().StringFixed(2),
			string(p.Status),
			agentID,
			p.CreatedAt.Format(time.RFC3339),
		})
	}
	if masked {
		d.Mask("id")
	}
	return d, nil
}

// users excludes admin accounts from the exported rows
func (s *ExportService) users(ctx context.Context) (*Dataset, error) {
	users, err := s.userRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		Name:    DatasetUsers,
		Headers: []string{"id", "name", "email", "role", "active", "portfolio_count", "performance_score", "last_login_at"},
		Rows:    make([][]string, 0, len(users)),
	}
	for i := range users {
		u := &users[i]
		if u.Role == directory.RoleAdmin {
			continue
		}
		score := ""
		if u.PerformanceScore != nil {
			score = u.PerformanceScore.StringFixed(2)
		}
		lastLogin := ""
		if u.LastLoginAt != nil {
			lastLogin = u.LastLoginAt.Format(time.RFC3339)
		}
		d.Rows = append(d.Rows, []string{
			u.ID.String(),
			u.Name,
			u.Email,
			string(u.Role),
			strconv.FormatBool(u.Active),
			strconv.Itoa(len(u.AssignedPortfolios)),
			score,
			lastLogin,
		})
	}
	return d, nil
}

func (s *ExportService) consumers(ctx context.Context, masked bool) (*Dataset, error) {
	consumers, err := s.consumerRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		Name:    DatasetConsumers,
		Headers: []string{"id", "name", "phone", "email", "ssn", "account_number", "balance", "status", "assigned_agent_id", "portfolio_id"},
		Rows:    make([][]string, 0, len(consumers)),
	}
	for i := range consumers {
		c := &consumers[i]
		d.Rows = append(d.Rows, []string{
			c.ID.String(),
			c.Name,
			c.Phone,
			c.Email,
			c.SSN,
			c.AccountNumber,
			c.Balance.StringFixed(2),
			string(c.Status),
			c.AssignedAgentID.String(),
			c.PortfolioID.String(),
		})
	}
	if masked {
		d.Mask("ssn", "account_number")
	}
	return d, nil
}

func (s *ExportService) payments(ctx context.Context, masked bool) (*Dataset, error) {
	payments, err := s.paymentRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	d := &Dataset{
		Name:    DatasetPayments,
		Headers: []string{"id", "consumer_id", "amount", "due_date", "status", "method", "agent_id", "reference", "processed_at"},
		Rows:    make([][]string, 0, len(payments)),
	}
	for i := range payments {
		p := &payments[i]
		processedAt := ""
		if p.ProcessedAt != nil {
			processedAt = p.ProcessedAt.Format(time.RFC3339)
		}
		d.Rows = append(d.Rows, []string{
			p.ID.String(),
			p.ConsumerID.String(),
			p.Amount.StringFixed(2),
			p.DueDate.Format(time.RFC3339),
			string(p.EffectiveStatus(now)),
			string(p.Method),
			p.AgentID.String(),
			p.Reference,
			processedAt,
		})
	}
	if masked {
		d.Mask("consumer_id")
	}
	return d, nil
}
