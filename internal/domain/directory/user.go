package directory

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Role represents a user's role in the collection floor
type Role string

const (
	RoleAdmin      Role = "admin"      // Full visibility and user management
	RoleAgent      Role = "agent"      // Works assigned portfolios and consumers
	RoleSupervisor Role = "supervisor" // Oversees agents, full read visibility
)

// ValidRole reports whether r is a known role
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleSupervisor:
		return true
	}
	return false
}

// User represents an agent or administrator account.
// It is the aggregate root for directory operations.
//
// AssignedPortfolios mirrors Portfolio.AssignedAgentID and is mutated only
// through the portfolio assignment flow, never written directly by callers.
type User struct {
	shared.BaseAggregateRoot
	Name               string
	Email              string
	Role               Role
	Active             bool
	AssignedPortfolios []uuid.UUID
	PerformanceScore   *decimal.Decimal // agents only, nil otherwise
	LastLoginAt        *time.Time
}

// NewUser creates a new user with the given role, active by default
func NewUser(name, email string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Name cannot exceed 200 characters")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if !ValidRole(role) {
		return nil, shared.NewDomainError(shared.CodeValidation, "Role must be admin, agent, or supervisor")
	}

	user := &User{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Name:               name,
		Email:              normalizeEmail(email),
		Role:               role,
		Active:             true,
		AssignedPortfolios: make([]uuid.UUID, 0),
	}

	// New agents start at a zero performance score; other roles carry none
	if role == RoleAgent {
		zero := decimal.Zero
		user.PerformanceScore = &zero
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// SetActive toggles the user's active flag. Deactivation does not unassign
// the user's portfolios or consumers; historical assignment stays visible
// and callers wanting reassignment must go through the portfolio registry.
func (u *User) SetActive(active bool) {
	if u.Active == active {
		return
	}
	u.Active = active
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u))
}

// RecordLogin records a login at the given time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// SetPerformanceScore updates the agent's performance score
func (u *User) SetPerformanceScore(score decimal.Decimal) error {
	if u.Role != RoleAgent {
		return shared.NewDomainError(shared.CodeValidation, "Performance score applies to agents only")
	}
	if score.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Performance score cannot be negative")
	}
	u.PerformanceScore = &score
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// AttachPortfolio adds a portfolio to the user's assignment set.
// Called by the portfolio assignment flow only.
func (u *User) AttachPortfolio(portfolioID uuid.UUID) {
	for _, id := range u.AssignedPortfolios {
		if id == portfolioID {
			return
		}
	}
	u.AssignedPortfolios = append(u.AssignedPortfolios, portfolioID)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// DetachPortfolio removes a portfolio from the user's assignment set
func (u *User) DetachPortfolio(portfolioID uuid.UUID) {
	kept := make([]uuid.UUID, 0, len(u.AssignedPortfolios))
	for _, id := range u.AssignedPortfolios {
		if id != portfolioID {
			kept = append(kept, id)
		}
	}
	u.AssignedPortfolios = kept
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// HasPortfolio reports whether the portfolio is in the user's assignment set
func (u *User) HasPortfolio(portfolioID uuid.UUID) bool {
	for _, id := range u.AssignedPortfolios {
		if id == portfolioID {
			return true
		}
	}
	return false
}

// IsActiveAgent reports whether the user can receive assignments
func (u *User) IsActiveAgent() bool {
	return u.Role == RoleAgent && u.Active
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError(shared.CodeValidation, "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError(shared.CodeValidation, "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError(shared.CodeValidation, "Invalid email format")
	}

	return nil
}
