package portfolio

import (
	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Portfolio
const AggregateTypePortfolio = "Portfolio"

// Portfolio domain event types
const (
	EventTypePortfolioUploaded = "PortfolioUploaded"
	EventTypePortfolioAssigned = "PortfolioAssigned"
	EventTypeRecoveryRecorded  = "RecoveryRecorded"
)

// PortfolioUploadedEvent is published when a portfolio is uploaded
type PortfolioUploadedEvent struct {
	shared.BaseDomainEvent
	Name         string          `json:"name"`
	AccountCount int             `json:"account_count"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// NewPortfolioUploadedEvent creates a new PortfolioUploadedEvent
func NewPortfolioUploadedEvent(p *Portfolio) *PortfolioUploadedEvent {
	return &PortfolioUploadedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePortfolioUploaded, AggregateTypePortfolio, p.ID),
		Name:            p.Name,
		AccountCount:    p.AccountCount,
		TotalValue:      p.TotalValue,
	}
}

// PortfolioAssignedEvent is published when a portfolio is assigned to an agent
type PortfolioAssignedEvent struct {
	shared.BaseDomainEvent
	Name    string    `json:"name"`
	AgentID uuid.UUID `json:"agent_id"`
}

// NewPortfolioAssignedEvent creates a new PortfolioAssignedEvent
func NewPortfolioAssignedEvent(p *Portfolio, agentID uuid.UUID) *PortfolioAssignedEvent {
	return &PortfolioAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePortfolioAssigned, AggregateTypePortfolio, p.ID),
		Name:            p.Name,
		AgentID:         agentID,
	}
}

// RecoveryRecordedEvent is published when a recovery is recorded against a portfolio
type RecoveryRecordedEvent struct {
	shared.BaseDomainEvent
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Recovered decimal.Decimal `json:"recovered"`
}

// NewRecoveryRecordedEvent creates a new RecoveryRecordedEvent
func NewRecoveryRecordedEvent(p *Portfolio, amount decimal.Decimal) *RecoveryRecordedEvent {
	return &RecoveryRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecoveryRecorded, AggregateTypePortfolio, p.ID),
		Name:            p.Name,
		Amount:          amount,
		Recovered:       p.RecoveredAmount,
	}
}
