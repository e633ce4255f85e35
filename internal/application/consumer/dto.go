package consumer

import (
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/consumer"
	"github.com/shopspring/decimal"
)

// CreateConsumerRequest represents a request to create a consumer record
type CreateConsumerRequest struct {
	PortfolioID   uuid.UUID       `json:"portfolio_id" binding:"required"`
	AgentID       uuid.UUID       `json:"agent_id" binding:"required"`
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	Phone         string          `json:"phone" binding:"max=50"`
	Email         string          `json:"email" binding:"omitempty,email,max=200"`
	Address       string          `json:"address" binding:"max=500"`
	SSN           string          `json:"ssn" binding:"max=50"`
	AccountNumber string          `json:"account_number" binding:"max=50"`
	Balance       decimal.Decimal `json:"balance" binding:"required"`
}

// AppendNoteRequest appends an entry to a consumer's note log
type AppendNoteRequest struct {
	Category string `json:"category" binding:"required,oneof=contact payment arrangement dispute general callback status_change"`
	Text     string `json:"text" binding:"required,min=1,max=2000"`
}

// ChangeConsumerStatusRequest moves a consumer to a new collection status
type ChangeConsumerStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active pending settled disputed closed"`
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// ConsumerListFilter carries query options for listing consumers
type ConsumerListFilter struct {
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
	Search      string     `form:"search"`
	Status      string     `form:"status"`
	PortfolioID *uuid.UUID `form:"portfolio_id"`
}

// NoteResponse represents one note entry in API responses
type NoteResponse struct {
	At       time.Time `json:"at"`
	Category string    `json:"category"`
	Text     string    `json:"text"`
	AuthorID uuid.UUID `json:"author_id"`
}

// ConsumerResponse represents a consumer in API responses
type ConsumerResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	Address         string          `json:"address"`
	SSN             string          `json:"ssn"`
	AccountNumber   string          `json:"account_number"`
	Balance         decimal.Decimal `json:"balance"`
	LastPaymentAt   *time.Time      `json:"last_payment_at,omitempty"`
	Status          string          `json:"status"`
	AssignedAgentID uuid.UUID       `json:"assigned_agent_id"`
	PortfolioID     uuid.UUID       `json:"portfolio_id"`
	Notes           []NoteResponse  `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToConsumerResponse converts a domain consumer to a response DTO
func ToConsumerResponse(c *consumer.Consumer) ConsumerResponse {
	notes := make([]NoteResponse, len(c.Notes))
	for i, n := range c.Notes {
		notes[i] = NoteResponse{
			At:       n.At,
			Category: string(n.Category),
			Text:     n.Text,
			AuthorID: n.AuthorID,
		}
	}
	return ConsumerResponse{
		ID:              c.ID,
		Name:            c.Name,
		Phone:           c.Phone,
		Email:           c.Email,
		Address:         c.Address,
		SSN:             c.SSN,
		AccountNumber:   c.AccountNumber,
		Balance:         c.Balance,
		LastPaymentAt:   c.LastPaymentAt,
		Status:          string(c.Status),
		AssignedAgentID: c.AssignedAgentID,
		PortfolioID:     c.PortfolioID,
		Notes:           notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// ToConsumerResponses converts a slice of domain consumers to response DTOs
func ToConsumerResponses(consumers []consumer.Consumer) []ConsumerResponse {
	responses := make([]ConsumerResponse, len(consumers))
	for i := range consumers {
		responses[i] = ToConsumerResponse(&consumers[i])
	}
	return responses
}
