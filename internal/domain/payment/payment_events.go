package payment

import (
	"github.com/sefcontact/engine/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Payment
const AggregateTypePayment = "Payment"

// Payment domain event types
const (
	EventTypePaymentScheduled = "PaymentScheduled"
	EventTypePaymentCompleted = "PaymentCompleted"
	EventTypePaymentCancelled = "PaymentCancelled"
)

// PaymentScheduledEvent is published when a pending payment is scheduled
type PaymentScheduledEvent struct {
	shared.BaseDomainEvent
	Amount decimal.Decimal `json:"amount"`
	Method Method          `json:"method"`
}

// NewPaymentScheduledEvent creates a new PaymentScheduledEvent
func NewPaymentScheduledEvent(p *Payment) *PaymentScheduledEvent {
	return &PaymentScheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentScheduled, AggregateTypePayment, p.ID),
		Amount:          p.Amount,
		Method:          p.Method,
	}
}

// PaymentCompletedEvent is published when a payment completes
type PaymentCompletedEvent struct {
	shared.BaseDomainEvent
	Amount decimal.Decimal `json:"amount"`
	Method Method          `json:"method"`
}

// NewPaymentCompletedEvent creates a new PaymentCompletedEvent
func NewPaymentCompletedEvent(p *Payment) *PaymentCompletedEvent {
	return &PaymentCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCompleted, AggregateTypePayment, p.ID),
		Amount:          p.Amount,
		Method:          p.Method,
	}
}

// PaymentCancelledEvent is published when a payment is abandoned
type PaymentCancelledEvent struct {
	shared.BaseDomainEvent
	Amount decimal.Decimal `json:"amount"`
}

// NewPaymentCancelledEvent creates a new PaymentCancelledEvent
func NewPaymentCancelledEvent(p *Payment) *PaymentCancelledEvent {
	return &PaymentCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCancelled, AggregateTypePayment, p.ID),
		Amount:          p.Amount,
	}
}
