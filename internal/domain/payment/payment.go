package payment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the state of a payment
type Status string

const (
	StatusPending   Status = "pending"
	StatusOverdue   Status = "overdue"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is a known payment status
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusOverdue, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Method represents an enumerated payment channel
type Method string

const (
	MethodBankTransfer Method = "bank_transfer"
	MethodCreditCard   Method = "credit_card"
	MethodDebitCard    Method = "debit_card"
	MethodACH          Method = "ach"
	MethodCheck        Method = "check"
	MethodCash         Method = "cash"
	MethodMoneyOrder   Method = "money_order"
)

// ValidMethod reports whether m is a known payment method
func ValidMethod(m Method) bool {
	switch m {
	case MethodBankTransfer, MethodCreditCard, MethodDebitCard,
		MethodACH, MethodCheck, MethodCash, MethodMoneyOrder:
		return true
	}
	return false
}

// Payment represents one payment transaction against a consumer.
// It is the aggregate root for payment operations.
//
// Overdue is time-derived: a stored pending payment past its due date reports
// overdue on read (EffectiveStatus); there is no explicit overdue transition.
type Payment struct {
	shared.BaseAggregateRoot
	ConsumerID  uuid.UUID
	Amount      decimal.Decimal
	DueDate     time.Time
	Status      Status
	Method      Method
	AgentID     uuid.UUID
	Reference   string
	Notes       string
	ProcessedAt *time.Time
}

func validateNew(consumerID, agentID uuid.UUID, amount decimal.Decimal, method Method) error {
	if consumerID == uuid.Nil {
		return shared.NewDomainError(shared.CodeValidation, "Consumer reference is required")
	}
	if agentID == uuid.Nil {
		return shared.NewDomainError(shared.CodeValidation, "Recording agent is required")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError(shared.CodeValidation, "Payment amount must be positive")
	}
	if !ValidMethod(method) {
		return shared.NewDomainError(shared.CodeValidation, "Unknown payment method")
	}
	return nil
}

// NewScheduledPayment creates a pending payment due on the given date
func NewScheduledPayment(consumerID, agentID uuid.UUID, amount decimal.Decimal, dueDate time.Time, method Method) (*Payment, error) {
	if err := validateNew(consumerID, agentID, amount, method); err != nil {
		return nil, err
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ConsumerID:        consumerID,
		Amount:            amount,
		DueDate:           dueDate,
		Status:            StatusPending,
		Method:            method,
		AgentID:           agentID,
	}

	p.AddDomainEvent(NewPaymentScheduledEvent(p))

	return p, nil
}

// NewDirectPayment creates an already-completed payment for the agent-side
// record-payment path. The caller applies the balance change in the same step.
func NewDirectPayment(consumerID, agentID uuid.UUID, amount decimal.Decimal, method Method, reference, notes string) (*Payment, error) {
	if err := validateNew(consumerID, agentID, amount, method); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ConsumerID:        consumerID,
		Amount:            amount,
		DueDate:           now,
		Status:            StatusCompleted,
		Method:            method,
		AgentID:           agentID,
		Reference:         strings.TrimSpace(reference),
		Notes:             strings.TrimSpace(notes),
		ProcessedAt:       &now,
	}

	p.AddDomainEvent(NewPaymentCompletedEvent(p))

	return p, nil
}

// Complete marks the payment completed and stamps the processed date.
// Completing twice fails; the balance deduction must never re-apply.
func (p *Payment) Complete(method Method, reference string) error {
	if p.Status == StatusCompleted {
		return shared.NewDomainError(shared.CodeAlreadyCompleted, "Payment is already completed")
	}
	if p.Status == StatusCancelled {
		return shared.NewDomainError(shared.CodeValidation, "Cancelled payment cannot be completed")
	}
	if method != "" {
		if !ValidMethod(method) {
			return shared.NewDomainError(shared.CodeValidation, "Unknown payment method")
		}
		p.Method = method
	}

	now := time.Now()
	p.Status = StatusCompleted
	p.ProcessedAt = &now
	p.Reference = strings.TrimSpace(reference)
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentCompletedEvent(p))

	return nil
}

// Cancel abandons a pending (or stored-overdue) payment
func (p *Payment) Cancel() error {
	if p.Status == StatusCompleted {
		return shared.NewDomainError(shared.CodeAlreadyCompleted, "Completed payment cannot be cancelled")
	}
	if p.Status == StatusCancelled {
		return nil
	}

	p.Status = StatusCancelled
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentCancelledEvent(p))

	return nil
}

// EffectiveStatus derives the reported status at the given time: a pending
// payment past its due date is overdue
func (p *Payment) EffectiveStatus(now time.Time) Status {
	if p.Status == StatusPending && p.DueDate.Before(now) {
		return StatusOverdue
	}
	return p.Status
}

// IsOpen reports whether the payment still awaits processing at the given time
func (p *Payment) IsOpen(now time.Time) bool {
	s := p.EffectiveStatus(now)
	return s == StatusPending || s == StatusOverdue
}

// EditFields carries the free-form corrections applied by Edit
type EditFields struct {
	Amount    *decimal.Decimal
	DueDate   *time.Time
	Method    *Method
	Status    *Status
	Reference *string
	Notes     *string
}

// Edit applies free-form corrections with no transition validation. This is
// the explicit data-correction escape hatch, separate from the guarded
// Complete and Cancel paths; it never touches consumer balances.
func (p *Payment) Edit(fields EditFields) error {
	if fields.Amount != nil {
		if !fields.Amount.IsPositive() {
			return shared.NewDomainError(shared.CodeValidation, "Payment amount must be positive")
		}
		p.Amount = *fields.Amount
	}
	if fields.Method != nil {
		if !ValidMethod(*fields.Method) {
			return shared.NewDomainError(shared.CodeValidation, "Unknown payment method")
		}
		p.Method = *fields.Method
	}
	if fields.Status != nil {
		if !ValidStatus(*fields.Status) {
			return shared.NewDomainError(shared.CodeValidation, "Unknown payment status")
		}
		p.Status = *fields.Status
	}
	if fields.DueDate != nil {
		p.DueDate = *fields.DueDate
	}
	if fields.Reference != nil {
		p.Reference = strings.TrimSpace(*fields.Reference)
	}
	if fields.Notes != nil {
		p.Notes = strings.TrimSpace(*fields.Notes)
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}
