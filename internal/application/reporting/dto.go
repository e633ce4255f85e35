package reporting

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardMetrics is the aggregate snapshot shown on the floor dashboard
type DashboardMetrics struct {
	TotalPortfolios     int             `json:"total_portfolios"`
	TotalAccounts       int             `json:"total_accounts"`
	TotalValue          decimal.Decimal `json:"total_value"`
	TotalRecovered      decimal.Decimal `json:"total_recovered"`
	OverallRecoveryRate decimal.Decimal `json:"overall_recovery_rate"`
	TotalConsumers      int             `json:"total_consumers"`
	OutstandingBalance  decimal.Decimal `json:"outstanding_balance"`
	ActiveAgents        int             `json:"active_agents"`
}

// PortfolioPerformance is the per-portfolio slice of the recovery report
type PortfolioPerformance struct {
	PortfolioID     uuid.UUID       `json:"portfolio_id"`
	Name            string          `json:"name"`
	TotalValue      decimal.Decimal `json:"total_value"`
	RecoveredAmount decimal.Decimal `json:"recovered_amount"`
	RecoveryRate    decimal.Decimal `json:"recovery_rate"`
	// CollectedAmount is derived from completed payments against the
	// portfolio's consumers. It can diverge from RecoveredAmount, which is
	// maintained by explicit recovery commands; reporting shows both so the
	// divergence is visible instead of silently reconciled.
	CollectedAmount decimal.Decimal `json:"collected_amount"`
}

// AgentReport summarizes one agent's book of work
type AgentReport struct {
	AgentID          uuid.UUID        `json:"agent_id"`
	Name             string           `json:"name"`
	Active           bool             `json:"active"`
	PortfolioCount   int              `json:"portfolio_count"`
	ConsumerCount    int              `json:"consumer_count"`
	ActiveConsumers  int              `json:"active_consumers"`
	SettledConsumers int              `json:"settled_consumers"`
	AverageBalance   decimal.Decimal  `json:"average_balance"`
	SettlementRate   decimal.Decimal  `json:"settlement_rate"`
	PerformanceScore *decimal.Decimal `json:"performance_score,omitempty"`
}

// PaymentMetrics summarizes the payment ledger by effective status
type PaymentMetrics struct {
	TotalPayments  int             `json:"total_payments"`
	Pending        int             `json:"pending"`
	Overdue        int             `json:"overdue"`
	Completed      int             `json:"completed"`
	Cancelled      int             `json:"cancelled"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	TotalScheduled decimal.Decimal `json:"total_scheduled"`
	CollectionRate decimal.Decimal `json:"collection_rate"`
}
