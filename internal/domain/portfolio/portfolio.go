package portfolio

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of a portfolio
type Status string

const (
	StatusActive  Status = "active"
	StatusPending Status = "pending"
	StatusClosed  Status = "closed"
)

// ValidStatus reports whether s is a known portfolio status
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusPending, StatusClosed:
		return true
	}
	return false
}

// Portfolio represents a batch of delinquent accounts placed for collection.
// It is the aggregate root for portfolio operations.
//
// Invariant: RecoveredAmount never exceeds TotalValue.
type Portfolio struct {
	shared.BaseAggregateRoot
	Name            string
	AccountCount    int
	TotalValue      decimal.Decimal
	RecoveredAmount decimal.Decimal
	Status          Status
	AssignedAgentID *uuid.UUID
}

// NewPortfolio creates an uploaded portfolio: active, nothing recovered yet
func NewPortfolio(name string, accountCount int, totalValue decimal.Decimal) (*Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Portfolio name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Portfolio name cannot exceed 200 characters")
	}
	if accountCount < 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Account count cannot be negative")
	}
	if totalValue.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Total value cannot be negative")
	}

	p := &Portfolio{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		AccountCount:      accountCount,
		TotalValue:        totalValue,
		RecoveredAmount:   decimal.Zero,
		Status:            StatusActive,
	}

	p.AddDomainEvent(NewPortfolioUploadedEvent(p))

	return p, nil
}

// AssignAgent points the portfolio at an agent. Validation of the target and
// the two-sided update of the agent's assignment set happen in the
// application-level assignment flow; this only mutates the owning side.
func (p *Portfolio) AssignAgent(agentID uuid.UUID) {
	p.AssignedAgentID = &agentID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPortfolioAssignedEvent(p, agentID))
}

// RecordRecovery increments the recovered amount. A recovery that would push
// RecoveredAmount past TotalValue fails outright rather than being clamped.
func (p *Portfolio) RecordRecovery(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError(shared.CodeValidation, "Recovery amount must be positive")
	}

	next := p.RecoveredAmount.Add(amount)
	if next.GreaterThan(p.TotalValue) {
		return shared.NewDomainError(shared.CodeInvariantViolation,
			"Recovery would exceed portfolio total value")
	}

	p.RecoveredAmount = next
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewRecoveryRecordedEvent(p, amount))

	return nil
}

// ChangeStatus moves the portfolio to a new lifecycle status
func (p *Portfolio) ChangeStatus(status Status) error {
	if !ValidStatus(status) {
		return shared.NewDomainError(shared.CodeValidation, "Status must be active, pending, or closed")
	}
	if p.Status == status {
		return nil
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// RecoveryRate returns recovered over total value as a percentage,
// defined as 0 for a zero-value portfolio
func (p *Portfolio) RecoveryRate() decimal.Decimal {
	if p.TotalValue.IsZero() {
		return decimal.Zero
	}
	return p.RecoveredAmount.Div(p.TotalValue).Mul(decimal.NewFromInt(100))
}

// IsAssigned reports whether the portfolio has an assigned agent
func (p *Portfolio) IsAssigned() bool {
	return p.AssignedAgentID != nil
}
