package consumer

import (
	"github.com/sefcontact/engine/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Consumer
const AggregateTypeConsumer = "Consumer"

// Consumer domain event types
const (
	EventTypeConsumerCreated       = "ConsumerCreated"
	EventTypeConsumerStatusChanged = "ConsumerStatusChanged"
	EventTypePaymentApplied        = "PaymentApplied"
)

// ConsumerCreatedEvent is published when a consumer record is created
type ConsumerCreatedEvent struct {
	shared.BaseDomainEvent
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// NewConsumerCreatedEvent creates a new ConsumerCreatedEvent
func NewConsumerCreatedEvent(c *Consumer) *ConsumerCreatedEvent {
	return &ConsumerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeConsumerCreated, AggregateTypeConsumer, c.ID),
		Name:            c.Name,
		Balance:         c.Balance,
	}
}

// ConsumerStatusChangedEvent is published on every consumer status transition
type ConsumerStatusChangedEvent struct {
	shared.BaseDomainEvent
	Name      string `json:"name"`
	OldStatus Status `json:"old_status"`
	NewStatus Status `json:"new_status"`
}

// NewConsumerStatusChangedEvent creates a new ConsumerStatusChangedEvent
func NewConsumerStatusChangedEvent(c *Consumer, oldStatus, newStatus Status) *ConsumerStatusChangedEvent {
	return &ConsumerStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeConsumerStatusChanged, AggregateTypeConsumer, c.ID),
		Name:            c.Name,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// PaymentAppliedEvent is published when a payment reduces the balance
type PaymentAppliedEvent struct {
	shared.BaseDomainEvent
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
}

// NewPaymentAppliedEvent creates a new PaymentAppliedEvent
func NewPaymentAppliedEvent(c *Consumer, amount decimal.Decimal) *PaymentAppliedEvent {
	return &PaymentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentApplied, AggregateTypeConsumer, c.ID),
		Name:            c.Name,
		Amount:          amount,
		Balance:         c.Balance,
	}
}
