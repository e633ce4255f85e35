package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/consumer"
	"github.com/sefcontact/engine/internal/domain/directory"
	"github.com/sefcontact/engine/internal/domain/payment"
	"github.com/sefcontact/engine/internal/domain/portfolio"
	"github.com/sefcontact/engine/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// rate divides as a percentage, defined as 0 for a zero denominator
func rate(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator).Mul(hundred)
}

// MetricsService computes derived, read-only statistics over the stores.
// Every figure is recomputed on demand from current state; nothing here
// mutates or caches.
type MetricsService struct {
	portfolioRepo portfolio.PortfolioRepository
	userRepo      directory.UserRepository
	consumerRepo  consumer.ConsumerRepository
	paymentRepo   payment.PaymentRepository
	now           func() time.Time
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(
	portfolioRepo portfolio.PortfolioRepository,
	userRepo directory.UserRepository,
	consumerRepo consumer.ConsumerRepository,
	paymentRepo payment.PaymentRepository,
) *MetricsService {
	return &MetricsService{
		portfolioRepo: portfolioRepo,
		userRepo:      userRepo,
		consumerRepo:  consumerRepo,
		paymentRepo:   paymentRepo,
		now:           time.Now,
	}
}

// SetClock overrides the service clock, for tests
func (s *MetricsService) SetClock(now func() time.Time) {
	s.now = now
}

// Dashboard computes the aggregate snapshot across all stores
func (s *MetricsService) Dashboard(ctx context.Context) (*DashboardMetrics, error) {
	portfolios, err := s.portfolioRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	consumers, err := s.consumerRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	agents, err := s.userRepo.FindActiveAgents(ctx)
	if err != nil {
		return nil, err
	}

	m := DashboardMetrics{
		TotalPortfolios:    len(portfolios),
		TotalConsumers:     len(consumers),
		ActiveAgents:       len(agents),
		TotalValue:         decimal.Zero,
		TotalRecovered:     decimal.Zero,
		OutstandingBalance: decimal.Zero,
	}
	for i := range portfolios {
		m.TotalAccounts += portfolios[i].AccountCount
		m.TotalValue = m.TotalValue.Add(portfolios[i].TotalValue)
		m.TotalRecovered = m.TotalRecovered.Add(portfolios[i].RecoveredAmount)
	}
	for i := range consumers {
		m.OutstandingBalance = m.OutstandingBalance.Add(consumers[i].Balance)
	}
	m.OverallRecoveryRate = rate(m.TotalRecovered, m.TotalValue)

	return &m, nil
}

// PortfolioPerformances computes per-portfolio recovery figures, including
// the collected amount derived from completed payments
func (s *MetricsService) PortfolioPerformances(ctx context.Context) ([]PortfolioPerformance, error) {
	portfolios, err := s.portfolioRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	collected, err := s.collectedByPortfolio(ctx)
	if err != nil {
		return nil, err
	}

	performances := make([]PortfolioPerformance, len(portfolios))
	for i := range portfolios {
		p := &portfolios[i]
		performances[i] = PortfolioPerformance{
			PortfolioID:     p.ID,
			Name:            p.Name,
			TotalValue:      p.TotalValue,
			RecoveredAmount: p.RecoveredAmount,
			RecoveryRate:    p.RecoveryRate(),
			CollectedAmount: collected[p.ID],
		}
	}
	return performances, nil
}

// TopPortfolio returns the portfolio with the highest recovery rate. Ties
// keep the first-encountered portfolio in listing order. Returns nil when
// there are no portfolios.
func (s *MetricsService) TopPortfolio(ctx context.Context) (*PortfolioPerformance, error) {
	performances, err := s.PortfolioPerformances(ctx)
	if err != nil {
		return nil, err
	}
	if len(performances) == 0 {
		return nil, nil
	}

	top := 0
	for i := 1; i < len(performances); i++ {
		if performances[i].RecoveryRate.GreaterThan(performances[top].RecoveryRate) {
			top = i
		}
	}
	return &performances[top], nil
}

// AgentReports computes a performance report per agent; inactive agents are
// included so historical books stay reviewable
func (s *MetricsService) AgentReports(ctx context.Context) ([]AgentReport, error) {
	users, err := s.userRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	consumers, err := s.consumerRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	byAgent := make(map[uuid.UUID][]*consumer.Consumer)
	for i := range consumers {
		c := &consumers[i]
		byAgent[c.AssignedAgentID] = append(byAgent[c.AssignedAgentID], c)
	}

	reports := make([]AgentReport, 0, len(users))
	for i := range users {
		u := &users[i]
		if u.Role != directory.RoleAgent {
			continue
		}

		assigned := byAgent[u.ID]
		report := AgentReport{
			AgentID:          u.ID,
			Name:             u.Name,
			Active:           u.Active,
			PortfolioCount:   len(u.AssignedPortfolios),
			ConsumerCount:    len(assigned),
			AverageBalance:   decimal.Zero,
			PerformanceScore: u.PerformanceScore,
		}

		totalBalance := decimal.Zero
		for _, c := range assigned {
			totalBalance = totalBalance.Add(c.Balance)
			switch c.Status {
			case consumer.StatusActive:
				report.ActiveConsumers++
			case consumer.StatusSettled:
				report.SettledConsumers++
			}
		}
		if len(assigned) > 0 {
			report.AverageBalance = totalBalance.Div(decimal.NewFromInt(int64(len(assigned))))
		}
		report.SettlementRate = rate(decimal.NewFromInt(int64(report.SettledConsumers)), decimal.NewFromInt(int64(report.ConsumerCount)))

		reports = append(reports, report)
	}
	return reports, nil
}

// PaymentSummary tallies the payment ledger by effective status at the
// current time, so stored-pending rows past due count as overdue
func (s *MetricsService) PaymentSummary(ctx context.Context) (*PaymentMetrics, error) {
	payments, err := s.paymentRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	m := PaymentMetrics{
		TotalPayments:  len(payments),
		TotalCollected: decimal.Zero,
		TotalScheduled: decimal.Zero,
	}
	for i := range payments {
		p := &payments[i]
		switch p.EffectiveStatus(now) {
		case payment.StatusPending:
			m.Pending++
			m.TotalScheduled = m.TotalScheduled.Add(p.Amount)
		case payment.StatusOverdue:
			m.Overdue++
			m.TotalScheduled = m.TotalScheduled.Add(p.Amount)
		case payment.StatusCompleted:
			m.Completed++
			m.TotalCollected = m.TotalCollected.Add(p.Amount)
		case payment.StatusCancelled:
			m.Cancelled++
		}
	}
	m.CollectionRate = rate(decimal.NewFromInt(int64(m.Completed)), decimal.NewFromInt(int64(m.TotalPayments)))

	return &m, nil
}

// collectedByPortfolio sums completed payment amounts per owning portfolio
func (s *MetricsService) collectedByPortfolio(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	consumers, err := s.consumerRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	owner := make(map[uuid.UUID]uuid.UUID, len(consumers))
	for i := range consumers {
		owner[consumers[i].ID] = consumers[i].PortfolioID
	}

	collected := make(map[uuid.UUID]decimal.Decimal)
	for i := range payments {
		p := &payments[i]
		if p.Status != payment.StatusCompleted {
			continue
		}
		portfolioID, ok := owner[p.ConsumerID]
		if !ok {
			continue
		}
		current, ok := collected[portfolioID]
		if !ok {
			current = decimal.Zero
		}
		collected[portfolioID] = current.Add(p.Amount)
	}
	return collected, nil
}
