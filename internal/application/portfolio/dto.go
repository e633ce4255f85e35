package portfolio

import (
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/portfolio"
	"github.com/shopspring/decimal"
)

// UploadPortfolioRequest represents a request to upload a new portfolio.
// AgentID optionally assigns the portfolio to an agent on creation.
type UploadPortfolioRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	AccountCount int             `json:"account_count" binding:"min=0"`
	TotalValue   decimal.Decimal `json:"total_value" binding:"required"`
	AgentID      *uuid.UUID      `json:"agent_id,omitempty"`
}

// AssignPortfolioRequest points a portfolio at an agent
type AssignPortfolioRequest struct {
	AgentID uuid.UUID `json:"agent_id" binding:"required"`
}

// RecordRecoveryRequest increments a portfolio's recovered amount
type RecordRecoveryRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,dgt0"`
}

// ChangePortfolioStatusRequest moves a portfolio to a new lifecycle status
type ChangePortfolioStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active pending closed"`
}

// PortfolioListFilter carries query options for listing portfolios
type PortfolioListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status"`
}

// PortfolioResponse represents a portfolio in API responses
type PortfolioResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	AccountCount    int             `json:"account_count"`
	TotalValue      decimal.Decimal `json:"total_value"`
	RecoveredAmount decimal.Decimal `json:"recovered_amount"`
	RecoveryRate    decimal.Decimal `json:"recovery_rate"`
	Status          string          `json:"status"`
	AssignedAgentID *uuid.UUID      `json:"assigned_agent_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PortfolioInsights summarizes the portfolio book for the dashboard
type PortfolioInsights struct {
	TotalPortfolios  int                `json:"total_portfolios"`
	ActivePortfolios int                `json:"active_portfolios"`
	Unassigned       int                `json:"unassigned"`
	TotalValue       decimal.Decimal    `json:"total_value"`
	TotalRecovered   decimal.Decimal    `json:"total_recovered"`
	OverallRate      decimal.Decimal    `json:"overall_rate"`
	TopPerformer     *PortfolioResponse `json:"top_performer,omitempty"`
}

// ToPortfolioResponse converts a domain portfolio to a response DTO
func ToPortfolioResponse(p *portfolio.Portfolio) PortfolioResponse {
	return PortfolioResponse{
		ID:              p.ID,
		Name:            p.Name,
		AccountCount:    p.AccountCount,
		TotalValue:      p.TotalValue,
		RecoveredAmount: p.RecoveredAmount,
		RecoveryRate:    p.RecoveryRate(),
		Status:          string(p.Status),
		AssignedAgentID: p.AssignedAgentID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToPortfolioResponses converts a slice of domain portfolios to response DTOs
func ToPortfolioResponses(portfolios []portfolio.Portfolio) []PortfolioResponse {
	responses := make([]PortfolioResponse, len(portfolios))
	for i := range portfolios {
		responses[i] = ToPortfolioResponse(&portfolios[i])
	}
	return responses
}
