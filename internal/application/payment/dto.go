package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// SchedulePaymentRequest creates a pending payment due on a future date
type SchedulePaymentRequest struct {
	ConsumerID uuid.UUID       `json:"consumer_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required,dgt0"`
	DueDate    time.Time       `json:"due_date" binding:"required"`
	Method     string          `json:"method" binding:"required,oneof=bank_transfer credit_card debit_card ach check cash money_order"`
}

// RecordDirectPaymentRequest records an immediately-completed payment
type RecordDirectPaymentRequest struct {
	ConsumerID uuid.UUID       `json:"consumer_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Method     string          `json:"method" binding:"required,oneof=bank_transfer credit_card debit_card ach check cash money_order"`
	Reference  string          `json:"reference" binding:"max=100"`
	Notes      string          `json:"notes" binding:"max=2000"`
}

// ProcessPaymentRequest completes a scheduled payment
type ProcessPaymentRequest struct {
	Method    string `json:"method" binding:"omitempty,oneof=bank_transfer credit_card debit_card ach check cash money_order"`
	Reference string `json:"reference" binding:"max=100"`
}

// EditPaymentRequest applies free-form corrections to a payment record
type EditPaymentRequest struct {
	Amount    *decimal.Decimal `json:"amount"`
	DueDate   *time.Time       `json:"due_date"`
	Method    *string          `json:"method" binding:"omitempty,oneof=bank_transfer credit_card debit_card ach check cash money_order"`
	Status    *string          `json:"status" binding:"omitempty,oneof=pending overdue completed cancelled"`
	Reference *string          `json:"reference"`
	Notes     *string          `json:"notes"`
}

// PaymentListFilter carries query options for listing payments
type PaymentListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	Status     string     `form:"status"`
	ConsumerID *uuid.UUID `form:"consumer_id"`
	DueFrom    *time.Time `form:"due_from"`
	DueTo      *time.Time `form:"due_to"`
}

// PaymentResponse represents a payment in API responses. Status is the
// time-derived effective status, so a pending payment past its due date
// reads as overdue.
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	ConsumerID  uuid.UUID       `json:"consumer_id"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	Status      string          `json:"status"`
	Method      string          `json:"method"`
	AgentID     uuid.UUID       `json:"agent_id"`
	Reference   string          `json:"reference,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(p *payment.Payment, now time.Time) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		ConsumerID:  p.ConsumerID,
		Amount:      p.Amount,
		DueDate:     p.DueDate,
		Status:      string(p.EffectiveStatus(now)),
		Method:      string(p.Method),
		AgentID:     p.AgentID,
		Reference:   p.Reference,
		Notes:       p.Notes,
		ProcessedAt: p.ProcessedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPaymentResponses converts a slice of domain payments to response DTOs
func ToPaymentResponses(payments []payment.Payment, now time.Time) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i], now)
	}
	return responses
}
