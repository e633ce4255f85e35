package directory

import (
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/directory"
	"github.com/shopspring/decimal"
)

// CreateUserRequest represents a request to register a new user
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Email string `json:"email" binding:"required,email,max=200"`
	Role  string `json:"role" binding:"required,oneof=admin agent supervisor"`
}

// SetUserActiveRequest toggles a user's active flag
type SetUserActiveRequest struct {
	Active bool `json:"active"`
}

// SetPerformanceScoreRequest updates an agent's performance score
type SetPerformanceScoreRequest struct {
	Score decimal.Decimal `json:"score" binding:"required"`
}

// UserListFilter carries query options for listing users
type UserListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Role     string `form:"role"`
	Active   *bool  `form:"active"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID                 uuid.UUID        `json:"id"`
	Name               string           `json:"name"`
	Email              string           `json:"email"`
	Role               string           `json:"role"`
	Active             bool             `json:"active"`
	AssignedPortfolios []uuid.UUID      `json:"assigned_portfolios"`
	PerformanceScore   *decimal.Decimal `json:"performance_score,omitempty"`
	LastLoginAt        *time.Time       `json:"last_login_at,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(u *directory.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               string(u.Role),
		Active:             u.Active,
		AssignedPortfolios: u.AssignedPortfolios,
		PerformanceScore:   u.PerformanceScore,
		LastLoginAt:        u.LastLoginAt,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

// ToUserResponses converts a slice of domain users to response DTOs
func ToUserResponses(users []directory.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}
