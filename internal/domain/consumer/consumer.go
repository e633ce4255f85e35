package consumer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the collection status of a consumer account
type Status string

const (
	StatusActive   Status = "active"
	StatusPending  Status = "pending"
	StatusSettled  Status = "settled"
	StatusDisputed Status = "disputed"
	StatusClosed   Status = "closed"
)

// ValidStatus reports whether s is a known consumer status
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusPending, StatusSettled, StatusDisputed, StatusClosed:
		return true
	}
	return false
}

// Consumer represents an individual debtor record within a portfolio.
// It is the aggregate root for ledger operations on the account.
//
// SSN and AccountNumber are display-masked by the constructor before they are
// stored; full-precision values never persist. Balance never goes negative:
// ApplyPayment is the single mutation path for it.
type Consumer struct {
	shared.BaseAggregateRoot
	Name            string
	Phone           string
	Email           string
	Address         string
	SSN             string // display-masked, e.g. XXX-XX-1234
	AccountNumber   string // display-masked
	Balance         decimal.Decimal
	LastPaymentAt   *time.Time
	Status          Status
	AssignedAgentID uuid.UUID
	PortfolioID     uuid.UUID
	Notes           []Note
}

// ContactInfo carries the identity and contact fields for a new consumer
type ContactInfo struct {
	Name          string
	Phone         string
	Email         string
	Address       string
	SSN           string
	AccountNumber string
}

// NewConsumer creates a consumer record in a portfolio with an opening balance
func NewConsumer(portfolioID, agentID uuid.UUID, info ContactInfo, balance decimal.Decimal) (*Consumer, error) {
	name := strings.TrimSpace(info.Name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Consumer name cannot be empty")
	}
	if portfolioID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Portfolio reference is required")
	}
	if balance.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Opening balance cannot be negative")
	}

	c := &Consumer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             strings.TrimSpace(info.Phone),
		Email:             strings.ToLower(strings.TrimSpace(info.Email)),
		Address:           strings.TrimSpace(info.Address),
		SSN:               shared.Redact(strings.TrimSpace(info.SSN)),
		AccountNumber:     shared.Redact(strings.TrimSpace(info.AccountNumber)),
		Balance:           balance,
		Status:            StatusActive,
		AssignedAgentID:   agentID,
		PortfolioID:       portfolioID,
		Notes:             make([]Note, 0),
	}

	c.AddDomainEvent(NewConsumerCreatedEvent(c))

	return c, nil
}

// AppendNote appends an immutable note entry to the audit trail
func (c *Consumer) AppendNote(category NoteCategory, text string, authorID uuid.UUID) error {
	note, err := NewNote(category, text, authorID)
	if err != nil {
		return err
	}

	c.Notes = append(c.Notes, note)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// ChangeStatus moves the consumer to a new status. Any status may move to any
// other, but the reason is mandatory and lands in the note log so every
// transition carries its provenance.
func (c *Consumer) ChangeStatus(status Status, reason string, authorID uuid.UUID) error {
	if !ValidStatus(status) {
		return shared.NewDomainError(shared.CodeValidation, "Unknown consumer status")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError(shared.CodeValidation, "Status change reason is required")
	}

	oldStatus := c.Status
	c.Status = status

	note, err := NewNote(NoteCategoryStatusChange,
		"Status changed from "+string(oldStatus)+" to "+string(status)+". Reason: "+reason, authorID)
	if err != nil {
		c.Status = oldStatus
		return err
	}
	c.Notes = append(c.Notes, note)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewConsumerStatusChangedEvent(c, oldStatus, status))

	return nil
}

// ApplyPayment decrements the balance by amount and stamps the last payment
// time. This is the only balance mutation path; the payment ledger routes
// through here so balance and payment history cannot diverge.
func (c *Consumer) ApplyPayment(amount decimal.Decimal, at time.Time) error {
	if !amount.IsPositive() {
		return shared.NewDomainError(shared.CodeInsufficientBalance, "Payment amount must be positive")
	}
	if amount.GreaterThan(c.Balance) {
		return shared.NewDomainError(shared.CodeInsufficientBalance, "Payment amount exceeds outstanding balance")
	}

	c.Balance = c.Balance.Sub(amount)
	c.LastPaymentAt = &at
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewPaymentAppliedEvent(c, amount))

	return nil
}
